package core

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrSignalClosed is returned once the signal has been shut down
	ErrSignalClosed = errors.New("signal closed")
)

// Signal is a binary wake-up from interrupt context to one waiting thread.
// At most one wake is kept pending; further raises before the waiter runs
// are folded into it.
type Signal struct {
	pending chan struct{}
	done    chan struct{}
	closed  uint32
}

// NewSignal creates a signal with no wake pending
func NewSignal() *Signal {
	return &Signal{
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Raise marks a wake pending. It never blocks and is safe in interrupt context.
func (s *Signal) Raise() error {
	if atomic.LoadUint32(&s.closed) != 0 {
		return ErrSignalClosed
	}
	select {
	case s.pending <- struct{}{}:
	default:
		// Already pending
	}
	return nil
}

// Wait blocks until a wake is pending and consumes it. Thread context only.
func (s *Signal) Wait() error {
	select {
	case <-s.done:
		return ErrSignalClosed
	default:
	}
	select {
	case <-s.pending:
		return nil
	case <-s.done:
		return ErrSignalClosed
	}
}

// Pending reports whether a wake is waiting to be consumed
func (s *Signal) Pending() bool {
	return len(s.pending) > 0
}

// Close wakes any waiter with ErrSignalClosed. Further raises fail.
func (s *Signal) Close() {
	if atomic.CompareAndSwapUint32(&s.closed, 0, 1) {
		close(s.done)
	}
}
