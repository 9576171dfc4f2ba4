// Package serial drives the 16550-compatible COM1 UART at I/O port 0x3F8,
// the kernel's only outbound channel before any richer driver exists:
// direct register pokes behind a tiny busy-wait, no buffering, no
// interrupts.
package serial

// COM1 register offsets from the port base.
const (
	comBase = 0x3F8

	regData       = comBase + 0 // DLAB=0: data; DLAB=1: divisor low byte
	regIntEnable  = comBase + 1 // DLAB=0: IER; DLAB=1: divisor high byte
	regFIFOCtrl   = comBase + 2
	regLineCtrl   = comBase + 3
	regModemCtrl  = comBase + 4
	regLineStatus = comBase + 5
)

const (
	lineCtrlDLAB  = 0x80
	lineCtrl8N1   = 0x03
	fifoEnableClr = 0xC7 // enable, clear rx/tx, 14-byte trigger
	modemRTSDTR   = 0x0B

	// divisorFor38400 = 115200 / 38400, giving 38400 baud 8-N-1.
	divisorFor38400 = 3

	lineStatusTxEmpty = 0x20
)

// outb writes a single byte to an x86 I/O port. Implemented in
// asm_amd64.s; there is no portable Go equivalent of the OUT instruction.
func outb(port uint16, val byte)

// inb reads a single byte from an x86 I/O port. Implemented in
// asm_amd64.s.
func inb(port uint16) byte

// Init configures COM1 for 38400 8-N-1 with the transmit/receive FIFOs
// enabled.
//
//go:nosplit
func Init() {
	outb(regIntEnable, 0x00) // mask all UART interrupts; polled I/O only
	outb(regLineCtrl, lineCtrlDLAB)
	outb(regData, divisorFor38400)
	outb(regIntEnable, 0x00)
	outb(regLineCtrl, lineCtrl8N1)
	outb(regFIFOCtrl, fifoEnableClr)
	outb(regModemCtrl, modemRTSDTR)
}

// WriteByte blocks until the transmit holding register is empty, then
// writes b. Safe to call from interrupt context: no allocation, no lock.
//
//go:nosplit
func WriteByte(b byte) {
	for inb(regLineStatus)&lineStatusTxEmpty == 0 {
		// Wait for the transmit FIFO to drain.
	}
	outb(regData, b)
}

// WriteString writes s one byte at a time.
//
//go:nosplit
func WriteString(s string) {
	for i := 0; i < len(s); i++ {
		WriteByte(s[i])
	}
}
