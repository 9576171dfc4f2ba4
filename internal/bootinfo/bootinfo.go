// Package bootinfo holds typed views over the boot protocol responses the
// kernel receives from its Limine-compatible loader before it can do
// anything else: the physical memory map, the higher-half direct map
// offset, the kernel's own load addresses, and the per-CPU SMP startup
// list. None of these are optional — a kernel that can't see memory or
// its own load address has nothing useful to do — so New fails fast
// and names exactly what's missing.
package bootinfo

import (
	"errors"
	"fmt"
)

// MemoryKind classifies one MemoryMapEntry.
type MemoryKind int

const (
	Usable MemoryKind = iota
	Reserved
	ACPIReclaimable
	ACPINVS
	BadMemory
	BootloaderReclaimable
	KernelAndModules
	Framebuffer
)

func (k MemoryKind) String() string {
	switch k {
	case Usable:
		return "usable"
	case Reserved:
		return "reserved"
	case ACPIReclaimable:
		return "acpi_reclaimable"
	case ACPINVS:
		return "acpi_nvs"
	case BadMemory:
		return "bad_memory"
	case BootloaderReclaimable:
		return "bootloader_reclaimable"
	case KernelAndModules:
		return "kernel_and_modules"
	case Framebuffer:
		return "framebuffer"
	default:
		return "unknown"
	}
}

// MemoryMapEntry describes one contiguous physical memory range.
type MemoryMapEntry struct {
	Base   uint64
	Length uint64
	Kind   MemoryKind
}

// End returns the address one past the last byte in this entry.
func (e MemoryMapEntry) End() uint64 { return e.Base + e.Length }

// MemoryMapResponse is the boot protocol's view of physical memory.
type MemoryMapResponse struct {
	Entries []MemoryMapEntry
}

// Visit calls fn for every entry in order, stopping early if fn returns
// false. Mirrors the visitor shape used elsewhere in the kernel for
// walking fixed-size boot data without allocating an intermediate slice.
func (m *MemoryMapResponse) Visit(fn func(MemoryMapEntry) bool) {
	for _, e := range m.Entries {
		if !fn(e) {
			return
		}
	}
}

// HhdmResponse carries the higher-half direct map offset: physical
// address P is readable at virtual address P + Offset.
type HhdmResponse struct {
	Offset uint64
}

// ToVirtual maps a physical address into the direct map.
func (h HhdmResponse) ToVirtual(phys uint64) uint64 { return phys + h.Offset }

// KernelAddressResponse gives the kernel's own load addresses. New
// requires it, but no package here reads its fields: pmm keeps the kernel
// image's frames out of circulation only through the memory map's
// non-usable (kernel_and_modules) entries.
type KernelAddressResponse struct {
	VirtualBase  uint64
	PhysicalBase uint64
}

// CPUInfo describes one logical CPU in the SMP response.
type CPUInfo struct {
	LapicID     uint32
	ProcessorID uint32
	// GotoAddress is written by the BSP to signal this AP to start
	// executing at the given entry point; zero until then.
	GotoAddress uint64
}

// SMPResponse lists every logical CPU the loader discovered, including
// the bootstrap processor itself.
type SMPResponse struct {
	BSPLapicID uint32
	CPUs       []CPUInfo
}

// FramebufferResponse is carried for completeness but not consumed by
// anything under this package: no component here drives a display.
type FramebufferResponse struct {
	Address uint64
	Width   uint64
	Height  uint64
	Pitch   uint64
	BPP     uint16
}

// ErrMissingResponse is wrapped by New when any required response is
// absent.
var ErrMissingResponse = errors.New("bootinfo: required boot response missing")

// BootInfo aggregates the required responses once validated.
type BootInfo struct {
	MemoryMap     *MemoryMapResponse
	Hhdm          *HhdmResponse
	KernelAddress *KernelAddressResponse
	SMP           *SMPResponse
}

// New validates that every required response is present and returns the
// aggregate. A nil required response is a fatal startup condition: there
// is no sensible degraded mode for "no memory map" or "no kernel address".
func New(mm *MemoryMapResponse, hhdm *HhdmResponse, kaddr *KernelAddressResponse, smp *SMPResponse) (*BootInfo, error) {
	missing := make([]string, 0, 4)
	if mm == nil {
		missing = append(missing, "memory_map")
	}
	if hhdm == nil {
		missing = append(missing, "hhdm")
	}
	if kaddr == nil {
		missing = append(missing, "kernel_address")
	}
	if smp == nil {
		missing = append(missing, "smp")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingResponse, missing)
	}
	return &BootInfo{MemoryMap: mm, Hhdm: hhdm, KernelAddress: kaddr, SMP: smp}, nil
}
