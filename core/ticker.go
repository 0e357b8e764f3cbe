package core

import (
	"sync/atomic"
	"time"
)

// PeriodicTimer implements TickTimer on top of a Scheduler
type PeriodicTimer struct {
	sched   *Scheduler
	clock   Clock
	period  time.Duration
	handler func()
	enabled uint32
	timer   Timer
}

// NewPeriodicTimer creates a disabled periodic timer firing every period
func NewPeriodicTimer(sched *Scheduler, clock Clock, period time.Duration) *PeriodicTimer {
	p := &PeriodicTimer{
		sched:  sched,
		clock:  clock,
		period: period,
	}
	p.timer.Handler = p.fire
	return p
}

// SetHandler registers the per-tick callback
func (p *PeriodicTimer) SetHandler(fn func()) {
	p.handler = fn
}

// Enable schedules the first tick one period from now
func (p *PeriodicTimer) Enable() {
	if !atomic.CompareAndSwapUint32(&p.enabled, 0, 1) {
		return
	}
	p.timer.WakeTime = p.clock.Now().Add(p.period)
	p.sched.ScheduleTimer(&p.timer)
}

// Disable stops further ticks
func (p *PeriodicTimer) Disable() {
	if !atomic.CompareAndSwapUint32(&p.enabled, 1, 0) {
		return
	}
	p.sched.RemoveTimer(&p.timer)
}

// Enabled reports whether the timer is running
func (p *PeriodicTimer) Enabled() bool {
	return atomic.LoadUint32(&p.enabled) == 1
}

// Period returns the tick period
func (p *PeriodicTimer) Period() time.Duration {
	return p.period
}

func (p *PeriodicTimer) fire(t *Timer) uint8 {
	if !p.Enabled() {
		return SF_DONE
	}
	if p.handler != nil {
		p.handler()
	}
	// The handler may have disabled us, or disabled and re-enabled us, in
	// which case Enable already queued the timer.
	if !p.Enabled() || p.sched.isQueued(t) {
		return SF_DONE
	}

	next := t.WakeTime.Add(p.period)
	if now := p.clock.Now(); !next.After(now) {
		// Fell behind; skip the missed ticks rather than bursting
		next = now.Add(p.period)
	}
	t.WakeTime = next
	return SF_RESCHEDULE
}
