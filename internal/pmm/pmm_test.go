package pmm

import (
	"testing"
	"unsafe"

	"github.com/pgosar/TAOS/internal/bootinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAllocator builds a FrameAllocator over a small, entirely synthetic
// "physical" address space, with the HHDM offset chosen so that the
// placement entry (the usable entry at placementBase that hosts the
// tracking bitmap) resolves to real host-owned memory. No code outside
// this helper ever dereferences a notional physical address beyond the
// bitmap's own backing bytes: the memory map only needs to describe the
// rest, never read or write it.
func newTestAllocator(t *testing.T, entries []bootinfo.MemoryMapEntry, placementBase uint64) *FrameAllocator {
	t.Helper()

	// Worst case every byte of the smallest usable region in these tests
	// could be consumed by the tracking bitmap itself; 64 bytes is
	// comfortably more than any of this package's tests need.
	hostBuf := make([]byte, 64)
	hostAddr := uint64(uintptr(unsafe.Pointer(&hostBuf[0])))
	hhdmOffset := hostAddr - placementBase

	mm := &bootinfo.MemoryMapResponse{Entries: entries}
	info := &bootinfo.BootInfo{
		MemoryMap:     mm,
		Hhdm:          &bootinfo.HhdmResponse{Offset: hhdmOffset},
		KernelAddress: &bootinfo.KernelAddressResponse{},
		SMP:           &bootinfo.SMPResponse{},
	}

	fa, err := New(info)
	require.NoError(t, err)
	return fa
}

func TestNewReservesItsOwnBackingFrame(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x100000, Kind: bootinfo.Usable}, // 256 frames
	}, 0)

	// 256 frames total, minus the one the tracking bitmap itself occupies.
	assert.Equal(t, uint64(255), fa.FreeFrames())
	assert.Equal(t, uint64(1), fa.nextAvailableFrame)
}

func TestNewMarksReservedEntriesAllocated(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x1000, Kind: bootinfo.Reserved},     // frame 0
		{Base: 0x1000, Length: 0xFF000, Kind: bootinfo.Usable}, // frames 1..255
	}, 0x1000)

	// Frame 0 reserved, frame 1 consumed by the bitmap's own placement.
	assert.Equal(t, uint64(254), fa.FreeFrames())
}

func TestGetPageThenFreePageRoundTrips(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x100000, Kind: bootinfo.Usable},
	}, 0)

	before := fa.FreeFrames()
	addr, err := fa.GetPage()
	require.NoError(t, err)
	assert.Zero(t, addr%PageSize, "returned address must be page-aligned")
	assert.Equal(t, before-1, fa.FreeFrames())

	require.NoError(t, fa.FreePage(addr))
	assert.Equal(t, before, fa.FreeFrames())
}

func TestGetPageNeverRepeatsBeforeFree(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x100000, Kind: bootinfo.Usable},
	}, 0)

	seen := make(map[uint64]bool)
	for i := 0; i < 10; i++ {
		addr, err := fa.GetPage()
		require.NoError(t, err)
		assert.False(t, seen[addr], "address %#x handed out twice", addr)
		seen[addr] = true
	}
}

func TestGetPageExhaustion(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x3000, Kind: bootinfo.Usable}, // 3 frames total
	}, 0)

	free := fa.FreeFrames()
	for i := uint64(0); i < free; i++ {
		_, err := fa.GetPage()
		require.NoError(t, err)
	}

	_, err := fa.GetPage()
	assert.ErrorIs(t, err, ErrOutOfMemory)
}

func TestFreePageIsIdempotentSafe(t *testing.T) {
	fa := newTestAllocator(t, []bootinfo.MemoryMapEntry{
		{Base: 0, Length: 0x100000, Kind: bootinfo.Usable},
	}, 0)

	addr, err := fa.GetPage()
	require.NoError(t, err)

	require.NoError(t, fa.FreePage(addr))
	afterFirstFree := fa.FreeFrames()
	require.NoError(t, fa.FreePage(addr))
	assert.Equal(t, afterFirstFree, fa.FreeFrames())
}

func TestNewFailsWithNoUsableMemory(t *testing.T) {
	hostBuf := make([]byte, 64)
	hhdmOffset := uint64(uintptr(unsafe.Pointer(&hostBuf[0])))
	info := &bootinfo.BootInfo{
		MemoryMap:     &bootinfo.MemoryMapResponse{Entries: []bootinfo.MemoryMapEntry{{Base: 0, Length: 0x1000, Kind: bootinfo.Reserved}}},
		Hhdm:          &bootinfo.HhdmResponse{Offset: hhdmOffset},
		KernelAddress: &bootinfo.KernelAddressResponse{},
		SMP:           &bootinfo.SMPResponse{},
	}
	_, err := New(info)
	assert.Error(t, err)
}
