// Command kernel is the freestanding x86_64 kernel image: it wires the
// boot protocol's responses into the physical frame allocator, brings up
// the bootstrap processor's descriptor tables, starts every application
// processor the loader discovered, and then has nothing left to do but
// wait for interrupts.
package main

import (
	"unsafe"

	"github.com/pgosar/TAOS/internal/bootinfo"
	"github.com/pgosar/TAOS/internal/cpulocal"
	"github.com/pgosar/TAOS/internal/gdt"
	"github.com/pgosar/TAOS/internal/idt"
	"github.com/pgosar/TAOS/internal/klog"
	"github.com/pgosar/TAOS/internal/pmm"
	"github.com/pgosar/TAOS/pkg/serial"
)

// enableInterrupts executes STI; implemented in asm_amd64.s.
func enableInterrupts()

// haltForever parks the calling core in a HLT loop; implemented in
// asm_amd64.s. It leaves the interrupt flag as it finds it.
func haltForever()

// funcval mirrors the Go runtime's internal func value representation:
// a func's only exported field is its entry-point address. Used the same
// way internal/idt builds its stub address table, here to hand each AP
// the address of apEntry without a hand-written assembly constant.
type funcval struct{ fn uintptr }

func funcPC(f func()) uint64 {
	return uint64((*funcval)(*(*unsafe.Pointer)(unsafe.Pointer(&f))).fn)
}

// KernelMain is called once, on the bootstrap processor, by the loader's
// entry trampoline (a Limine-compatible boot protocol, implemented
// outside this repo) with the boot protocol's required responses already
// decoded into this package's types. It never returns: the BSP finishes
// bring-up and then falls into the same halt-and-wait state as every AP.
//
//go:nosplit
//go:noinline
func KernelMain(mm *bootinfo.MemoryMapResponse, hhdm *bootinfo.HhdmResponse, kaddr *bootinfo.KernelAddressResponse, smp *bootinfo.SMPResponse) {
	serial.Init()
	klog.Puts("TAOS: booting")

	info, err := bootinfo.New(mm, hhdm, kaddr, smp)
	if err != nil {
		klog.Print("fatal: ")
		klog.Puts(err.Error())
		haltForever()
	}
	klog.Puts("TAOS: boot responses validated")

	alloc, err := pmm.New(info)
	if err != nil {
		klog.Print("fatal: ")
		klog.Puts(err.Error())
		haltForever()
	}
	klog.Print("TAOS: frame allocator ready, free_frames=")
	klog.Uint(alloc.FreeFrames())
	klog.Puts("")

	gdt.Init(0)
	klog.Puts("TAOS: BSP GDT/TSS installed")

	idt.Init()
	klog.Puts("TAOS: IDT installed")

	cpulocal.BootedCPUs.Store(1)
	startApplicationProcessors(info.SMP)

	enableInterrupts()
	klog.Puts("TAOS: BSP interrupts enabled, idling")
	haltForever()
}

// startApplicationProcessors signals every CPU in smp other than the
// bootstrap processor to start executing at apEntry, mirroring how the
// boot protocol's SMP response hands the loader a slot per AP to fill in
// with a goto address rather than this kernel driving IPIs itself.
func startApplicationProcessors(smp *bootinfo.SMPResponse) {
	entry := funcPC(apEntry)
	for i := range smp.CPUs {
		if smp.CPUs[i].LapicID == smp.BSPLapicID {
			continue
		}
		smp.CPUs[i].GotoAddress = entry
	}
}

// apEntry is the entry point every application processor starts running
// at once the loader dispatches it to the address startApplicationProcessors
// installed. Each AP claims the next cpulocal slot, builds its own
// GDT/TSS, reloads the IDT the BSP already built, enables interrupts, and
// waits.
//
//go:nosplit
//go:noinline
func apEntry() {
	id := int(cpulocal.BootedCPUs.Add(1)) - 1
	gdt.Init(id)
	idt.LoadIDTR()
	enableInterrupts()
	haltForever()
}

// main exists only so this package builds as a normal Go program; the
// loader never calls it. It does not call or reference KernelMain.
func main() {
	haltForever()
}
