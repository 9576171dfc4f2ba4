// Package gdt builds and loads each core's Global Descriptor Table and
// Task State Segment. Each core installs its own table and TSS once at
// bring-up, the same one-time, per-core register setup pattern used for
// other architectural control registers that must be loaded fresh on
// every core rather than shared.
//
// The access byte and flags nibble of each descriptor are built once, at
// package init, from bitfield.Pack over the tagged structs below, rather
// than as opaque hex constants: the field order matches the hardware bit
// layout exactly, so the struct doubles as documentation for what each
// bit means. The full 8-byte descriptor itself is still built with
// explicit shifts and masks (newSegmentDescriptor below): it straddles a
// base/limit split no flat bitfield tag set captures cleanly, and that
// path never reflects.
package gdt

import (
	"encoding/binary"
	"unsafe"

	"github.com/pgosar/TAOS/internal/bitfield"
	"github.com/pgosar/TAOS/internal/cpulocal"
)

// Segment selectors, fixed by the table layout below.
const (
	SelectorNull       = 0x00
	SelectorKernelCode = 0x08
	SelectorKernelData = 0x10
	SelectorUserCode   = 0x18
	SelectorUserData   = 0x20
	SelectorTSS        = 0x28
)

// segmentAccess is the x86_64 segment descriptor access byte, one field
// per bit in hardware order: Accessed, ReadWrite (readable for code,
// writable for data), DirConform (direction for data, conforming for
// code), Executable, DescriptorType (1 = code/data, 0 = system), a 2-bit
// DPL, and Present.
type segmentAccess struct {
	Accessed       bool  `bitfield:",1"`
	ReadWrite      bool  `bitfield:",1"`
	DirConform     bool  `bitfield:",1"`
	Executable     bool  `bitfield:",1"`
	DescriptorType bool  `bitfield:",1"`
	DPL            uint8 `bitfield:",2"`
	Present        bool  `bitfield:",1"`
}

// segmentFlags is the 4-bit flags nibble: Available, Long-mode, Size
// (DB), and Granularity.
type segmentFlags struct {
	Available bool `bitfield:",1"`
	Long      bool `bitfield:",1"`
	Size      bool `bitfield:",1"`
	Gran      bool `bitfield:",1"`
}

func packAccess(a segmentAccess) uint8 {
	v, err := bitfield.Pack(a, &bitfield.Config{NumBits: 8})
	if err != nil {
		// Every call site below packs a fixed literal; a failure here
		// means a bit width constant above was changed inconsistently.
		panic(err)
	}
	return uint8(v)
}

func packFlags(f segmentFlags) uint8 {
	v, err := bitfield.Pack(f, &bitfield.Config{NumBits: 4})
	if err != nil {
		panic(err)
	}
	return uint8(v)
}

// Access bytes, bit-exact for the x86_64 segment descriptor format.
var (
	accessNull       = packAccess(segmentAccess{})
	accessKernelCode = packAccess(segmentAccess{ReadWrite: true, Executable: true, DescriptorType: true, Present: true})
	accessKernelData = packAccess(segmentAccess{ReadWrite: true, DescriptorType: true, Present: true})
	accessUserCode   = packAccess(segmentAccess{ReadWrite: true, Executable: true, DescriptorType: true, DPL: 3, Present: true})
	accessUserData   = packAccess(segmentAccess{ReadWrite: true, DescriptorType: true, DPL: 3, Present: true})
	// accessTSS's type nibble (1001b) is the "available 64-bit TSS" system
	// segment type; it has no Go-level name beyond its bit pattern, so it
	// borrows the Accessed/Executable bit positions to spell 0x9.
	accessTSS = packAccess(segmentAccess{Accessed: true, Executable: true, Present: true})
)

// Flags nibbles (granularity, size, long-mode, available), bit-exact for
// the x86_64 segment descriptor format.
var (
	flagsNull = packFlags(segmentFlags{})
	flagsCode = packFlags(segmentFlags{Long: true, Gran: true})
	flagsData = packFlags(segmentFlags{Size: true, Gran: true})
	flagsTSS  = packFlags(segmentFlags{})
)

// numEntries is the per-core GDT entry count: null, kernel code/data, user
// code/data, and the two-entry TSS descriptor.
const numEntries = 7

// tssSegmentLimit is sizeof(TaskStateSegment) - 1.
const tssSegmentLimit = uint32(unsafe.Sizeof(TaskStateSegment{})) - 1

// SegmentDescriptor is one 8-byte GDT entry:
// {limit_low:16, base_low:16, base_middle:8, access:8, limit_high:4, flags:4, base_high:8}.
type SegmentDescriptor uint64

func newSegmentDescriptor(base uint32, limit uint32, access uint8, flags uint8) SegmentDescriptor {
	var d uint64
	d |= uint64(limit & 0xFFFF)
	d |= uint64(base&0xFFFF) << 16
	d |= uint64((base>>16)&0xFF) << 32
	d |= uint64(access) << 40
	d |= uint64((limit>>16)&0xF) << 48
	d |= uint64(flags&0xF) << 52
	d |= uint64((base>>24)&0xFF) << 56
	return SegmentDescriptor(d)
}

// Limit decodes the 20-bit limit field back out of a built descriptor;
// used only by tests to assert the layout invariant.
func (d SegmentDescriptor) Limit() uint32 {
	limitLow := uint32(d) & 0xFFFF
	limitHigh := uint32(d>>48) & 0xF
	return limitLow | limitHigh<<16
}

// Base decodes the 32-bit base field.
func (d SegmentDescriptor) Base() uint32 {
	baseLow := uint32(d>>16) & 0xFFFF
	baseMiddle := uint32(d>>32) & 0xFF
	baseHigh := uint32(d>>56) & 0xFF
	return baseLow | baseMiddle<<16 | baseHigh<<24
}

// Access decodes the access byte.
func (d SegmentDescriptor) Access() uint8 { return uint8(d >> 40) }

// Flags decodes the flags nibble.
func (d SegmentDescriptor) Flags() uint8 { return uint8(d>>52) & 0xF }

// Table is one core's 7-entry GDT.
type Table [numEntries]SegmentDescriptor

// TaskStateSegment is the 104-byte x86_64 TSS: rsp0-2, seven IST stacks,
// and an IOPB offset that points past the structure (empty I/O permission
// bitmap).
type TaskStateSegment struct {
	reserved0 uint32
	RSP       [3]uint64
	reserved1 uint64
	IST       [7]uint64
	reserved2 uint64
	reserved3 uint16
	IOPB      uint16
}

var (
	tables [cpulocal.MaxNumCores]Table
	tsses  [cpulocal.MaxNumCores]TaskStateSegment
)

// loadGDTR executes LGDT over a hand-packed {limit:u16, base:u64} buffer;
// implemented in asm_amd64.s.
func loadGDTR(ptr unsafe.Pointer)

// loadTaskRegister executes LTR with the given selector; implemented in
// asm_amd64.s.
func loadTaskRegister(selector uint16)

// reloadSegments reloads DS/ES/FS/GS/SS and CS via the far-return
// trampoline, the only architecturally sanctioned way to change CS outside
// an IRET; implemented in asm_amd64.s.
func reloadSegments(codeSelector, dataSelector uint16)

// Build constructs core id's GDT and TSS in place and returns them, without
// touching any register: it sets rsp0 to the top of that core's private
// kernel stack and writes the TSS descriptor across GDT entries 5 and 6.
// Separated from Init so the table-building logic can be exercised without
// the privileged load instructions Init issues afterward — Build touches
// only this package's own per-core arrays, never CPU state.
func Build(id int) (*Table, *TaskStateSegment) {
	tss := &tsses[id]
	*tss = TaskStateSegment{}
	tss.RSP[0] = uint64(cpulocal.StackTop(id))
	tss.IOPB = uint16(unsafe.Sizeof(TaskStateSegment{}))

	table := &tables[id]
	table[0] = newSegmentDescriptor(0, 0, accessNull, flagsNull)
	table[1] = newSegmentDescriptor(0, 0xFFFFF, accessKernelCode, flagsCode)
	table[2] = newSegmentDescriptor(0, 0xFFFFF, accessKernelData, flagsData)
	table[3] = newSegmentDescriptor(0, 0xFFFFF, accessUserCode, flagsCode)
	table[4] = newSegmentDescriptor(0, 0xFFFFF, accessUserData, flagsData)

	tssBase := uint64(uintptr(unsafe.Pointer(tss)))
	table[5] = newSegmentDescriptor(uint32(tssBase), tssSegmentLimit, accessTSS, flagsTSS)
	table[6] = SegmentDescriptor(uint32(tssBase >> 32))

	return table, tss
}

// Init builds core id's GDT and TSS via Build and installs them: it loads
// GDTR, loads the task register, and reloads every segment register. GDTR,
// TR, and the segment reloads must be issued in this order; do not reorder
// these steps around the far return that reloads CS.
//
//go:nosplit
func Init(id int) {
	table, _ := Build(id)

	var dtr [10]byte
	binary.LittleEndian.PutUint16(dtr[0:2], uint16(numEntries*8-1))
	binary.LittleEndian.PutUint64(dtr[2:10], uint64(uintptr(unsafe.Pointer(table))))
	loadGDTR(unsafe.Pointer(&dtr[0]))

	loadTaskRegister(SelectorTSS)
	reloadSegments(SelectorKernelCode, SelectorKernelData)
}

// TableFor returns core id's installed GDT, for tests and diagnostics.
func TableFor(id int) *Table { return &tables[id] }

// TSSFor returns core id's installed TSS, for tests and diagnostics.
func TSSFor(id int) *TaskStateSegment { return &tsses[id] }
