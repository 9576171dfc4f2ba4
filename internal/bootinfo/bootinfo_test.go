package bootinfo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsMissingResponses(t *testing.T) {
	_, err := New(nil, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingResponse))
	assert.Contains(t, err.Error(), "memory_map")
	assert.Contains(t, err.Error(), "hhdm")
	assert.Contains(t, err.Error(), "kernel_address")
	assert.Contains(t, err.Error(), "smp")
}

func TestNewAcceptsAllResponsesPresent(t *testing.T) {
	mm := &MemoryMapResponse{Entries: []MemoryMapEntry{{Base: 0, Length: 0x1000, Kind: Usable}}}
	hhdm := &HhdmResponse{Offset: 0xFFFF800000000000}
	kaddr := &KernelAddressResponse{VirtualBase: 0xFFFFFFFF80000000, PhysicalBase: 0x100000}
	smp := &SMPResponse{BSPLapicID: 0, CPUs: []CPUInfo{{LapicID: 0}}}

	info, err := New(mm, hhdm, kaddr, smp)
	require.NoError(t, err)
	assert.Same(t, mm, info.MemoryMap)
}

func TestNewReportsOnlyWhatsMissing(t *testing.T) {
	mm := &MemoryMapResponse{}
	hhdm := &HhdmResponse{}
	_, err := New(mm, hhdm, nil, nil)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "memory_map")
	assert.Contains(t, err.Error(), "kernel_address")
	assert.Contains(t, err.Error(), "smp")
}

func TestHhdmToVirtual(t *testing.T) {
	h := HhdmResponse{Offset: 0xFFFF800000000000}
	assert.Equal(t, uint64(0xFFFF800000001000), h.ToVirtual(0x1000))
}

func TestMemoryMapEntryEnd(t *testing.T) {
	e := MemoryMapEntry{Base: 0x1000, Length: 0x2000}
	assert.Equal(t, uint64(0x3000), e.End())
}

func TestMemoryMapVisitStopsEarly(t *testing.T) {
	mm := &MemoryMapResponse{Entries: []MemoryMapEntry{
		{Base: 0, Length: 0x1000, Kind: Usable},
		{Base: 0x1000, Length: 0x1000, Kind: Reserved},
		{Base: 0x2000, Length: 0x1000, Kind: Usable},
	}}
	var visited []uint64
	mm.Visit(func(e MemoryMapEntry) bool {
		visited = append(visited, e.Base)
		return e.Kind != Reserved
	})
	assert.Equal(t, []uint64{0, 0x1000}, visited)
}

func TestMemoryKindString(t *testing.T) {
	assert.Equal(t, "usable", Usable.String())
	assert.Equal(t, "bootloader_reclaimable", BootloaderReclaimable.String())
	assert.Equal(t, "unknown", MemoryKind(99).String())
}
