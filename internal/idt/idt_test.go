package idt

import (
	"testing"

	"github.com/pgosar/TAOS/internal/gdt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateSizeIsArchitectural(t *testing.T) {
	require.Len(t, Gate{}, 16)
}

func TestBuildInstallsEveryGate(t *testing.T) {
	Build()
	entries := Entries()

	for v := 0; v < numVectors; v++ {
		g := entries[v]
		assert.Truef(t, g.Present(), "vector %d should be present", v)
		assert.Equalf(t, uint16(gdt.SelectorKernelCode), g.Selector(), "vector %d selector", v)
		assert.Equalf(t, uint8(gateTypeInterrupt), g.Type(), "vector %d type", v)
		assert.Equalf(t, uint8(0), g.DPL(), "vector %d dpl", v)
		assert.NotZerof(t, g.Offset(), "vector %d offset should point at its stub", v)
	}
}

func TestGateOffsetsAreDistinctPerVector(t *testing.T) {
	Build()
	entries := Entries()
	seen := make(map[uint64]int, numVectors)
	for v := 0; v < numVectors; v++ {
		off := entries[v].Offset()
		if other, ok := seen[off]; ok {
			t.Fatalf("vector %d and %d share a stub address", v, other)
		}
		seen[off] = v
	}
}

func TestRegisterHandlerOverridesDefault(t *testing.T) {
	Build()
	called := false
	RegisterHandler(3, func(f *Frame) { called = true })
	handlers[3](&Frame{InterruptNumber: 3})
	assert.True(t, called)
}

func TestCommonInterruptHandlerDispatchesByVector(t *testing.T) {
	Build()
	var got uint64
	RegisterHandler(50, func(f *Frame) { got = f.InterruptNumber })
	commonInterruptHandler(&Frame{InterruptNumber: 50})
	assert.Equal(t, uint64(50), got)
}

func TestDecodePageFault(t *testing.T) {
	// present=0, write=1, user=1, reserved=0, instruction-fetch=0 -> 0b00110
	d := DecodePageFault(0x06)
	assert.False(t, d.Present)
	assert.True(t, d.Write)
	assert.True(t, d.User)
	assert.False(t, d.ReservedWrite)
	assert.False(t, d.InstructionFetch)
}

func TestGateRoundTrip(t *testing.T) {
	g := newGate(0x1122334455667788, 0x08, 2, 0xE, 0, true)
	assert.Equal(t, uint64(0x1122334455667788), g.Offset())
	assert.Equal(t, uint16(0x08), g.Selector())
	assert.Equal(t, uint8(2), g.IST())
	assert.Equal(t, uint8(0xE), g.Type())
	assert.Equal(t, uint8(0), g.DPL())
	assert.True(t, g.Present())
}
