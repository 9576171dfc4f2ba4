// Package idt builds the Interrupt Descriptor Table, loads it, and
// dispatches every vector to a registered Go handler. The gate's 16 bytes
// are built with explicit shifts and masks over a fixed byte array, the
// same technique gdt uses for segment descriptors, since the real
// hardware gate straddles byte boundaries no Go struct can represent
// portably. The one-byte type_attr field within it is narrow enough to
// build declaratively instead: see gateAttr below.
package idt

import (
	"encoding/binary"
	"unsafe"

	"github.com/pgosar/TAOS/internal/bitfield"
	"github.com/pgosar/TAOS/internal/gdt"
)

const numVectors = 256

// Gate types used in the type_attr byte. 0xE is a 64-bit interrupt gate:
// it clears IF on entry, unlike a trap gate (0xF).
const (
	gateTypeInterrupt = 0xE
	gateDPLKernel     = 0
)

// Gate is one 16-byte IDT entry:
// {offset_low:16, selector:16, ist:8, type_attr:8, offset_mid:16, offset_high:32, reserved:32}.
type Gate [16]byte

// gateAttr is the type_attr byte: a 4-bit gate type, a reserved zero bit,
// a 2-bit DPL, and Present.
type gateAttr struct {
	Type    uint8 `bitfield:",4"`
	Zero    bool  `bitfield:",1"`
	DPL     uint8 `bitfield:",2"`
	Present bool  `bitfield:",1"`
}

func packGateAttr(a gateAttr) uint8 {
	v, err := bitfield.Pack(a, &bitfield.Config{NumBits: 8})
	if err != nil {
		panic(err)
	}
	return uint8(v)
}

func newGate(offset uint64, selector uint16, ist uint8, gateType uint8, dpl uint8, present bool) Gate {
	var g Gate
	binary.LittleEndian.PutUint16(g[0:2], uint16(offset))
	binary.LittleEndian.PutUint16(g[2:4], selector)
	g[4] = ist & 0x7
	g[5] = packGateAttr(gateAttr{Type: gateType, DPL: dpl, Present: present})
	binary.LittleEndian.PutUint16(g[6:8], uint16(offset>>16))
	binary.LittleEndian.PutUint32(g[8:12], uint32(offset>>32))
	return g
}

// Offset decodes the 64-bit handler address; used by tests.
func (g Gate) Offset() uint64 {
	low := uint64(binary.LittleEndian.Uint16(g[0:2]))
	mid := uint64(binary.LittleEndian.Uint16(g[6:8]))
	high := uint64(binary.LittleEndian.Uint32(g[8:12]))
	return low | mid<<16 | high<<32
}

// Selector decodes the code segment selector.
func (g Gate) Selector() uint16 { return binary.LittleEndian.Uint16(g[2:4]) }

// IST decodes the interrupt stack table index (0 means "current stack").
func (g Gate) IST() uint8 { return g[4] & 0x7 }

// Type decodes the gate type nibble.
func (g Gate) Type() uint8 { return g[5] & 0xF }

// DPL decodes the descriptor privilege level.
func (g Gate) DPL() uint8 { return (g[5] >> 5) & 0x3 }

// Present decodes the present bit.
func (g Gate) Present() bool { return g[5]&0x80 != 0 }

var entries [numVectors]Gate

// HandlerFunc is a registered interrupt handler. frame is only valid for
// the duration of the call; stashing the pointer past return is undefined.
type HandlerFunc func(frame *Frame)

var handlers [numVectors]HandlerFunc

// stubAddress returns the entry address of the assembly trampoline
// installed for vector v, built once by funcPC over every stub in
// stub_decls.go.
func stubAddress(v int) uint64 { return stubTable[v] }

// loadIDTR executes LIDT over a hand-packed {limit:u16, base:u64} buffer;
// implemented in stubs_amd64.s.
func loadIDTR(ptr unsafe.Pointer)

// Build fills in all 256 gates pointing at their stub trampolines and
// registers the default handlers for the vectors the kernel always wants to
// see (divide error, debug, NMI, breakpoint, page fault). It touches only
// this package's own table and handler arrays, never CPU state, so it can
// be exercised without the privileged LIDT instruction Init issues
// afterward.
func Build() {
	for v := 0; v < numVectors; v++ {
		entries[v] = newGate(stubAddress(v), gdt.SelectorKernelCode, 0, gateTypeInterrupt, gateDPLKernel, true)
	}

	RegisterHandler(0, defaultDivideError)
	RegisterHandler(1, defaultDebug)
	RegisterHandler(2, defaultNMI)
	RegisterHandler(3, defaultBreakpoint)
	RegisterHandler(14, defaultPageFault)
}

// Init builds the table via Build and loads it. It rebuilds the single
// shared table and re-registers the default handlers, so only the boot
// core calls it — every other core loads the same IDTR value via
// LoadIDTR and does not rebuild the table.
//
//go:nosplit
func Init() {
	Build()
	LoadIDTR()
}

// LoadIDTR (re)installs the shared table on the calling core. Init calls
// this once on the boot core; every other core calls it again on its own
// bring-up path since IDTR is per-core architectural state even though
// the table it points at is shared.
//
//go:nosplit
func LoadIDTR() {
	var dtr [10]byte
	binary.LittleEndian.PutUint16(dtr[0:2], uint16(numVectors*16-1))
	binary.LittleEndian.PutUint64(dtr[2:10], uint64(uintptr(unsafe.Pointer(&entries[0]))))
	loadIDTR(unsafe.Pointer(&dtr[0]))
}

// RegisterHandler installs fn as the handler for vector v, replacing
// whatever was registered before (including the defaults Init installs).
func RegisterHandler(v int, fn HandlerFunc) {
	handlers[v] = fn
}

// commonInterruptHandler is called by every stub trampoline with a pointer
// to the normalized Frame built on the interrupt stack. It dispatches to
// the registered handler for frame.InterruptNumber, or the unhandled
// fallback if none was ever registered for that vector.
//
//go:nosplit
func commonInterruptHandler(frame *Frame) {
	if h := handlers[frame.InterruptNumber]; h != nil {
		h(frame)
		return
	}
	unhandled(frame)
}

// Entries exposes the installed table, for tests and diagnostics.
func Entries() *[numVectors]Gate { return &entries }
