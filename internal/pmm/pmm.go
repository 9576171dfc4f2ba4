// Package pmm implements the physical frame allocator: the single owner
// of "which 4 KiB physical frames are free" for the rest of the kernel.
// It bootstraps itself from the boot protocol's memory map before any
// other allocator exists, using internal/bitmap for its free/allocated
// bookkeeping and internal/spinlock to serialize concurrent callers.
package pmm

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/pgosar/TAOS/internal/bitmap"
	"github.com/pgosar/TAOS/internal/bootinfo"
	"github.com/pgosar/TAOS/internal/spinlock"
)

// PageSize is the frame size this allocator tracks. x86_64 base paging
// uses 4 KiB pages; huge pages are out of scope here.
const PageSize = 4096

// ErrOutOfMemory is returned by GetPage when no frame is free.
var ErrOutOfMemory = errors.New("pmm: out of physical memory")

// FrameAllocator tracks every physical frame below maxPhysicalAddress as
// FREE or ALLOCATED in a Bitmap placed in the first usable memory region
// large enough to hold it.
type FrameAllocator struct {
	lock spinlock.Lock

	bits               *bitmap.Bitmap[uint64]
	nextAvailableFrame uint64
	maxPhysicalAddress uint64
}

// New runs the full bootstrap sequence: locate a placement region for the
// tracking bitmap inside the boot memory map, construct it, mark every
// non-usable region and the bitmap's own backing frames ALLOCATED, and
// record the first FREE frame. info must already be validated (see
// bootinfo.New); a missing or empty usable region is a fatal startup
// error, since there is no allocator to fall back to.
func New(info *bootinfo.BootInfo) (*FrameAllocator, error) {
	maxPhys, err := maxPhysicalAddress(info.MemoryMap)
	if err != nil {
		return nil, err
	}

	bitmapEntries := (maxPhys + 1 + PageSize - 1) / PageSize
	bitmapBytes := bitmap.BytesFor[uint64](bitmapEntries)

	region, err := findPlacementRegion(info.MemoryMap, bitmapBytes)
	if err != nil {
		return nil, err
	}

	virtBase := info.Hhdm.ToVirtual(region.Base)
	buf := unsafeByteSliceAt(virtBase, bitmapBytes)

	bits, err := bitmap.FromBuffer[uint64](bitmapEntries, buf)
	if err != nil {
		return nil, fmt.Errorf("pmm: constructing tracking bitmap: %w", err)
	}

	fa := &FrameAllocator{
		bits:               bits,
		maxPhysicalAddress: maxPhys,
	}

	trackedRangeEnd := bitmapEntries * PageSize
	info.MemoryMap.Visit(func(e bootinfo.MemoryMapEntry) bool {
		if e.Kind == bootinfo.Usable {
			return true
		}
		if e.Base >= trackedRangeEnd {
			return false
		}
		startFrame := e.Base / PageSize
		endFrame := (e.End() + PageSize - 1) / PageSize
		if endFrame > bitmapEntries {
			endFrame = bitmapEntries
		}
		if endFrame > startFrame {
			_ = fa.bits.SetContiguous(startFrame, endFrame-startFrame, bitmap.Allocated)
		}
		return true
	})

	bitmapStartFrame := region.Base / PageSize
	bitmapFrameCount := (bitmapBytes + PageSize - 1) / PageSize
	_ = fa.bits.SetContiguous(bitmapStartFrame, bitmapFrameCount, bitmap.Allocated)

	first, err := fa.bits.FindFirstFree()
	if err != nil {
		return nil, fmt.Errorf("pmm: no usable frame survived reservation: %w", err)
	}
	fa.nextAvailableFrame = first

	return fa, nil
}

// GetPage reserves and returns the physical address of one free frame.
// The returned address is always page-aligned and was FREE immediately
// before the call.
func (fa *FrameAllocator) GetPage() (uint64, error) {
	fa.lock.Acquire()
	defer fa.lock.Release()

	if fa.bits.FreeEntries() == 0 {
		return 0, ErrOutOfMemory
	}

	frame := fa.nextAvailableFrame
	if err := fa.bits.Set(frame, bitmap.Allocated); err != nil {
		return 0, fmt.Errorf("pmm: %w", err)
	}

	// If this was the last free frame, FindFirstFree now fails and
	// nextAvailableFrame is left stale; the FreeEntries guard above
	// catches that on the next call before it's ever read again.
	if next, err := fa.bits.FindFirstFree(); err == nil {
		fa.nextAvailableFrame = next
	}
	return frame * PageSize, nil
}

// FreePage releases the frame at physAddr, which must be page-aligned
// and must have been returned by a prior GetPage. Freeing an address
// that was never allocated corrupts the free-entry count and is treated
// as a kernel bug upstream of this call, not a recoverable error here;
// freeing an already-free frame is safe and a no-op on the count (Bitmap
// Set only changes free_entries when the bit's value actually flips).
func (fa *FrameAllocator) FreePage(physAddr uint64) error {
	fa.lock.Acquire()
	defer fa.lock.Release()

	frame := physAddr / PageSize
	return fa.bits.Set(frame, bitmap.Free)
}

// FreeFrames reports the number of currently FREE frames, for diagnostics.
func (fa *FrameAllocator) FreeFrames() uint64 {
	fa.lock.Acquire()
	defer fa.lock.Release()
	return fa.bits.FreeEntries()
}

func maxPhysicalAddress(mm *bootinfo.MemoryMapResponse) (uint64, error) {
	var max uint64
	found := false
	mm.Visit(func(e bootinfo.MemoryMapEntry) bool {
		if e.Kind != bootinfo.Usable {
			return true
		}
		found = true
		if end := e.End() - 1; end > max {
			max = end
		}
		return true
	})
	if !found {
		return 0, errors.New("pmm: no usable memory map entry")
	}
	return max, nil
}

// unsafeByteSliceAt reinterprets the n bytes starting at virtual address
// addr as a []byte. addr comes from the HHDM, not from Go's allocator, so
// there is no way to obtain this view without unsafe.
func unsafeByteSliceAt(addr uint64, n uint64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(uintptr(addr))), n)
}

func findPlacementRegion(mm *bootinfo.MemoryMapResponse, needBytes uint64) (bootinfo.MemoryMapEntry, error) {
	var found bootinfo.MemoryMapEntry
	ok := false
	mm.Visit(func(e bootinfo.MemoryMapEntry) bool {
		if e.Kind == bootinfo.Usable && e.Length >= needBytes {
			found = e
			ok = true
			return false
		}
		return true
	})
	if !ok {
		return bootinfo.MemoryMapEntry{}, fmt.Errorf("pmm: no usable region holds %d bytes for the tracking bitmap", needBytes)
	}
	return found, nil
}
