package core

import (
	"testing"
	"time"
)

func TestSchedulerDispatchOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	mk := func(id int, wake Instant) *Timer {
		return &Timer{
			WakeTime: wake,
			Handler: func(*Timer) uint8 {
				order = append(order, id)
				return SF_DONE
			},
		}
	}

	s.ScheduleTimer(mk(3, 300))
	s.ScheduleTimer(mk(1, 100))
	s.ScheduleTimer(mk(2, 200))
	s.ScheduleTimer(mk(4, 400))

	if n := s.Dispatch(250); n != 2 {
		t.Errorf("Dispatch(250) ran %d timers, want 2", n)
	}
	if n := s.Dispatch(1000); n != 2 {
		t.Errorf("Dispatch(1000) ran %d timers, want 2", n)
	}
	for i, id := range order {
		if id != i+1 {
			t.Fatalf("dispatch order %v, want 1 2 3 4", order)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("%d timers left queued", s.Pending())
	}
}

func TestSchedulerRemoveAndDoubleSchedule(t *testing.T) {
	s := NewScheduler()
	fired := 0
	a := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 { fired++; return SF_DONE }}
	b := &Timer{WakeTime: 20, Handler: func(*Timer) uint8 { fired++; return SF_DONE }}

	s.ScheduleTimer(a)
	s.ScheduleTimer(a) // already queued
	s.ScheduleTimer(b)
	if s.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", s.Pending())
	}

	s.RemoveTimer(b)
	s.RemoveTimer(b)
	s.Dispatch(100)
	if fired != 1 {
		t.Errorf("%d timers fired, want 1", fired)
	}
}

func TestPeriodicTimer(t *testing.T) {
	s := NewScheduler()
	clock := &fakeClock{}
	p := NewPeriodicTimer(s, clock, time.Millisecond)
	ticks := 0
	p.SetHandler(func() { ticks++ })

	step := func(n int) {
		for i := 0; i < n; i++ {
			clock.Advance(time.Millisecond)
			s.Dispatch(clock.Now())
		}
	}

	step(5)
	if ticks != 0 {
		t.Fatalf("disabled timer ticked %d times", ticks)
	}

	p.Enable()
	p.Enable()
	step(5)
	if ticks != 5 {
		t.Errorf("ticked %d times in 5 periods, want 5", ticks)
	}

	p.Disable()
	step(5)
	if ticks != 5 {
		t.Errorf("ticked after Disable (%d)", ticks)
	}
	if s.Pending() != 0 {
		t.Errorf("%d timers still queued after Disable", s.Pending())
	}
}

func TestPeriodicTimerDisableFromHandler(t *testing.T) {
	s := NewScheduler()
	clock := &fakeClock{}
	p := NewPeriodicTimer(s, clock, time.Millisecond)
	ticks := 0
	p.SetHandler(func() {
		ticks++
		if ticks == 3 {
			p.Disable()
		}
	})

	p.Enable()
	for i := 0; i < 10; i++ {
		clock.Advance(time.Millisecond)
		s.Dispatch(clock.Now())
	}
	if ticks != 3 {
		t.Errorf("ticked %d times, want 3", ticks)
	}

	// Disable then Enable from inside the handler keeps a single queued timer
	p.SetHandler(func() {
		p.Disable()
		p.Enable()
	})
	p.Enable()
	for i := 0; i < 3; i++ {
		clock.Advance(time.Millisecond)
		s.Dispatch(clock.Now())
		if s.Pending() != 1 {
			t.Fatalf("Pending() = %d after re-enable in handler, want 1", s.Pending())
		}
	}
}

func TestPeriodicTimerSkipsMissedTicks(t *testing.T) {
	s := NewScheduler()
	clock := &fakeClock{}
	p := NewPeriodicTimer(s, clock, time.Millisecond)
	ticks := 0
	p.SetHandler(func() { ticks++ })

	p.Enable()
	clock.Advance(50 * time.Millisecond)
	s.Dispatch(clock.Now())
	if ticks != 1 {
		t.Errorf("late dispatch ran %d ticks, want 1", ticks)
	}
}
