package core

import "time"

// Instant is a monotonic timestamp in microseconds since boot
type Instant uint64

// Add returns the instant d after i. Negative durations are clamped to zero.
func (i Instant) Add(d time.Duration) Instant {
	if d <= 0 {
		return i
	}
	return i + Instant(d/time.Microsecond)
}

// After reports whether i is strictly later than o
func (i Instant) After(o Instant) bool {
	return i > o
}

// Sub returns the duration i-o
func (i Instant) Sub(o Instant) time.Duration {
	return time.Duration(int64(i)-int64(o)) * time.Microsecond
}

// Clock is the monotonic time source used by the display core
type Clock interface {
	// Now returns the current monotonic time
	Now() Instant

	// Sleep blocks the calling thread for at least d, yielding the CPU
	Sleep(d time.Duration)
}

// SystemClock reads the firmware system time
type SystemClock struct{}

// Now returns the current system time
func (SystemClock) Now() Instant {
	return Instant(getSystemTicks())
}

// Sleep yields to the scheduler for d
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// GetTime returns the current system time in microseconds
func GetTime() Instant {
	return Instant(getSystemTicks())
}

// TimerFromUS converts microseconds to a duration
func TimerFromUS(us uint32) time.Duration {
	return time.Duration(us) * time.Microsecond
}
