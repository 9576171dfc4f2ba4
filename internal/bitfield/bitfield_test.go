package bitfield

import "testing"

type accessByte struct {
	Accessed  bool   `bitfield:",1"`
	ReadWrite bool   `bitfield:",1"`
	DirCorm   bool   `bitfield:",1"`
	Exec      bool   `bitfield:",1"`
	TypeSys   bool   `bitfield:",1"`
	DPL       uint8  `bitfield:",2"`
	Present   bool   `bitfield:",1"`
}

func TestPackUnpackRoundTrip(t *testing.T) {
	in := accessByte{
		Accessed:  false,
		ReadWrite: true,
		DirCorm:   false,
		Exec:      true,
		TypeSys:   true,
		DPL:       0,
		Present:   true,
	}

	packed, err := Pack(in, &Config{NumBits: 8})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if packed != 0x9A {
		t.Fatalf("Pack: got 0x%02x, want 0x9A (kernel code access byte)", packed)
	}

	var out accessByte
	if err := Unpack(&out, packed, &Config{NumBits: 8}); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if out != in {
		t.Fatalf("Unpack round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestPackRejectsOversizeField(t *testing.T) {
	type tooWide struct {
		DPL uint8 `bitfield:",2"`
	}
	_, err := Pack(tooWide{DPL: 7}, &Config{NumBits: 8})
	if err == nil {
		t.Fatalf("Pack: expected error for value exceeding field width")
	}
}

func TestPackRejectsOverflowOfNumBits(t *testing.T) {
	type oneByte struct {
		A uint8 `bitfield:",4"`
		B uint8 `bitfield:",8"`
	}
	_, err := Pack(oneByte{A: 1, B: 1}, &Config{NumBits: 8})
	if err == nil {
		t.Fatalf("Pack: expected error when total bits exceed NumBits")
	}
}

func TestUnpackRequiresPointer(t *testing.T) {
	var out accessByte
	if err := Unpack(out, 0, &Config{NumBits: 8}); err == nil {
		t.Fatalf("Unpack: expected error for non-pointer dst")
	}
}
