//go:build tinygo

package core

var systemTicksValue uint64

// getSystemTicks returns the microsecond time last published by the board
func getSystemTicks() uint64 {
	state := disableInterrupts()
	ticks := systemTicksValue
	restoreInterrupts(state)
	return ticks
}

// SetTime publishes the hardware microsecond counter.
// Boards call it from the main loop before dispatching timers.
func SetTime(ticks uint64) {
	state := disableInterrupts()
	systemTicksValue = ticks
	restoreInterrupts(state)
}
