// Package klog formats diagnostic lines for the serial sink. A freestanding
// kernel this early in boot cannot use fmt (it allocates and assumes a
// hosted runtime), so this hand-rolls the handful of primitives the kernel
// actually needs: string passthrough, fixed-width hex, and decimal.
package klog

import "github.com/pgosar/TAOS/pkg/serial"

const hexDigits = "0123456789abcdef"

// Puts writes s followed by a CRLF line ending, the usual convention for
// bare-metal serial output.
//
//go:nosplit
func Puts(s string) {
	serial.WriteString(s)
	serial.WriteString("\r\n")
}

// Print writes s with no line ending, for building up a diagnostic line
// from several pieces before terminating it with Puts("").
//
//go:nosplit
func Print(s string) {
	serial.WriteString(s)
}

// Hex64 writes v as a zero-padded 16-digit lowercase hex string, no
// leading "0x" (callers that want the prefix write it themselves).
//
//go:nosplit
func Hex64(v uint64) {
	var buf [16]byte
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	serial.WriteString(string(buf[:]))
}

// Hex8 writes v as a zero-padded 2-digit lowercase hex string.
//
//go:nosplit
func Hex8(v uint8) {
	var buf [2]byte
	buf[0] = hexDigits[(v>>4)&0xF]
	buf[1] = hexDigits[v&0xF]
	serial.WriteString(string(buf[:]))
}

// Uint writes v in decimal with no leading zeroes ("0" for v == 0).
//
//go:nosplit
func Uint(v uint64) {
	if v == 0 {
		serial.WriteByte('0')
		return
	}
	var buf [20]byte // max digits in a uint64
	idx := len(buf)
	for v > 0 {
		idx--
		buf[idx] = byte('0' + v%10)
		v /= 10
	}
	serial.WriteString(string(buf[idx:]))
}
