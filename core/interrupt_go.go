//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMask stands in for the global interrupt mask. Host goroutines that play
// the role of interrupt handlers and the worker thread all serialize on it.
var irqMask sync.Mutex

// disableInterrupts blocks until no other context holds the mask
func disableInterrupts() State {
	irqMask.Lock()
	return 0
}

// restoreInterrupts releases the mask taken by disableInterrupts
func restoreInterrupts(state State) {
	irqMask.Unlock()
}
