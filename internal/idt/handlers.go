package idt

import "github.com/pgosar/TAOS/internal/klog"

// defaultDivideError logs the faulting instruction pointer and halts. A
// divide-by-zero this early in boot means corrupted kernel state; there is
// no recovery path to return to.
func defaultDivideError(f *Frame) {
	klog.Print("panic: divide error at rip=0x")
	klog.Hex64(f.RIP)
	klog.Puts("")
	halt()
}

// defaultDebug is a no-op: vector 1 fires for single-step and hardware
// breakpoints, neither of which the kernel uses outside of a debugger
// attached over the serial line, so the safe default is to resume.
func defaultDebug(f *Frame) {}

// defaultNMI logs and halts. An NMI this early indicates a hardware
// condition (e.g. a watchdog or a fatal memory error) the kernel has no
// driver for yet.
func defaultNMI(f *Frame) {
	klog.Puts("panic: non-maskable interrupt")
	halt()
}

// defaultBreakpoint is a no-op: vector 3 (INT3) is the standard debugger
// breakpoint trap, expected to be handled by whatever attached and resumed
// execution, not by the kernel itself.
func defaultBreakpoint(f *Frame) {}

// defaultPageFault logs the faulting address is unavailable without CR2
// support plumbed through (tracked separately); it reports what the error
// code gives us and halts, since the kernel has no demand-paging or
// copy-on-write fault handler yet.
func defaultPageFault(f *Frame) {
	decoded := DecodePageFault(f.ErrorCode)
	klog.Print("panic: page fault at rip=0x")
	klog.Hex64(f.RIP)
	klog.Print(" present=")
	klog.Uint(boolToUint(decoded.Present))
	klog.Print(" write=")
	klog.Uint(boolToUint(decoded.Write))
	klog.Print(" user=")
	klog.Uint(boolToUint(decoded.User))
	klog.Puts("")
	halt()
}

// unhandled is the fallback for any vector with no registered handler.
func unhandled(f *Frame) {
	klog.Print("panic: unhandled interrupt vector=")
	klog.Uint(f.InterruptNumber)
	klog.Print(" error_code=0x")
	klog.Hex64(f.ErrorCode)
	klog.Puts("")
	halt()
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// halt stops the calling core. Implemented in stubs_amd64.s as a tight
// CLI/HLT loop: there is nowhere left to return to.
func halt()
