package core

import "time"

// Heartbeat blinks an LED from the software timer list so a stalled main
// loop shows as a frozen LED.
type Heartbeat struct {
	gpio   GPIODriver
	pin    GPIOPin
	clock  Clock
	period time.Duration
	sched  *Scheduler
	lit    bool
	timer  Timer
}

// NewHeartbeat creates a stopped heartbeat on pin
func NewHeartbeat(gpio GPIODriver, pin GPIOPin, clock Clock, period time.Duration) *Heartbeat {
	h := &Heartbeat{
		gpio:   gpio,
		pin:    pin,
		clock:  clock,
		period: period,
	}
	h.timer.Handler = h.toggle
	return h
}

// Start schedules the first toggle one period from now
func (h *Heartbeat) Start(sched *Scheduler) {
	h.sched = sched
	h.timer.WakeTime = h.clock.Now().Add(h.period)
	sched.ScheduleTimer(&h.timer)
}

// Stop removes the heartbeat from the schedule and turns the LED off
func (h *Heartbeat) Stop() {
	if h.sched != nil {
		h.sched.RemoveTimer(&h.timer)
	}
	h.lit = false
	h.gpio.SetPin(h.pin, false)
}

// Lit reports the LED level last driven
func (h *Heartbeat) Lit() bool {
	return h.lit
}

func (h *Heartbeat) toggle(t *Timer) uint8 {
	h.lit = !h.lit
	h.gpio.SetPin(h.pin, h.lit)

	next := t.WakeTime.Add(h.period)
	if now := h.clock.Now(); !next.After(now) {
		next = now.Add(h.period)
	}
	t.WakeTime = next
	return SF_RESCHEDULE
}
