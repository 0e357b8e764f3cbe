package core

import "time"

// Frame is one armed display cycle: the value shown and when it must blank
type Frame struct {
	Value  uint16
	Expiry Instant
}

// Expired reports whether the frame must blank at now
func (f Frame) Expired(now Instant) bool {
	return f.Value == 0 || now.After(f.Expiry)
}

// DisplayState is the record shared between the worker and the multiplexer.
// The frame is only reachable through methods that hold the critical section,
// so Value and Expiry are always read and written as a unit.
type DisplayState struct {
	frame Frame
}

// Arm stores value with an expiry hold after the current time.
// The expiry is computed inside the critical section.
func (s *DisplayState) Arm(value uint16, hold time.Duration, clock Clock) Frame {
	cs := EnterCritical()
	f := Frame{Value: value, Expiry: clock.Now().Add(hold)}
	s.frame = f
	cs.Exit()
	return f
}

// Snapshot returns the current frame
func (s *DisplayState) Snapshot() Frame {
	cs := EnterCritical()
	f := s.frame
	cs.Exit()
	return f
}

// Reset blanks the state
func (s *DisplayState) Reset() {
	cs := EnterCritical()
	s.frame.Value = 0
	cs.Exit()
}

// expireIfDue resets the value when the frame has expired at now.
// The check and the reset share one critical section so a concurrent Arm
// is never overwritten.
func (s *DisplayState) expireIfDue(now Instant) (Frame, bool) {
	cs := EnterCritical()
	f := s.frame
	expired := f.Expired(now)
	if expired {
		s.frame.Value = 0
	}
	cs.Exit()
	return f, expired
}
