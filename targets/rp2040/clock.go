//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"segmux/core"
)

// Unlatched raw reads of the 64-bit 1MHz timer; the base address is chip
// specific (timer_rp2040.go, timer_rp2350.go).
var (
	timerRawH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerBase + 0x24)))
	timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerBase + 0x28)))
)

// GetHardwareUptime reads the full microsecond counter, retrying when the
// high word carried between the reads
func GetHardwareUptime() uint64 {
	for {
		high1 := timerRawH.Get()
		low := timerRawL.Get()
		if timerRawH.Get() == high1 {
			return uint64(high1)<<32 | uint64(low)
		}
	}
}

// UpdateSystemTime publishes the hardware time to the display core
func UpdateSystemTime() {
	core.SetTime(GetHardwareUptime())
}
