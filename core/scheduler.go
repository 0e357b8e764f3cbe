package core

import "time"

// Timer represents a scheduled event
type Timer struct {
	WakeTime Instant
	Handler  func(*Timer) uint8
	Next     *Timer

	queued bool
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps a list of timers sorted by WakeTime.
// Handlers run outside the critical section so they may take it themselves.
type Scheduler struct {
	timerList *Timer
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// ScheduleTimer adds a timer to the schedule. A timer that is already
// queued keeps its place.
func (s *Scheduler) ScheduleTimer(t *Timer) {
	cs := EnterCritical()
	defer cs.Exit()

	if t.queued {
		return
	}
	s.insertTimer(t)
}

// RemoveTimer takes a timer off the schedule if it is queued
func (s *Scheduler) RemoveTimer(t *Timer) {
	cs := EnterCritical()
	defer cs.Exit()

	if !t.queued {
		return
	}
	if s.timerList == t {
		s.timerList = t.Next
	} else {
		for current := s.timerList; current != nil; current = current.Next {
			if current.Next == t {
				current.Next = t.Next
				break
			}
		}
	}
	t.Next = nil
	t.queued = false
}

// insertTimer inserts a timer in sorted order by WakeTime
func (s *Scheduler) insertTimer(t *Timer) {
	t.queued = true
	if s.timerList == nil || t.WakeTime < s.timerList.WakeTime {
		t.Next = s.timerList
		s.timerList = t
		return
	}

	current := s.timerList
	for current.Next != nil && current.Next.WakeTime <= t.WakeTime {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// popDue removes and returns the first timer due at now, or nil
func (s *Scheduler) popDue(now Instant) *Timer {
	cs := EnterCritical()
	defer cs.Exit()

	timer := s.timerList
	if timer == nil || timer.WakeTime > now {
		return nil
	}
	s.timerList = timer.Next
	timer.Next = nil // Clear Next pointer to avoid circular references
	timer.queued = false
	return timer
}

// Dispatch runs every timer with WakeTime <= now and returns how many ran
func (s *Scheduler) Dispatch(now Instant) int {
	fired := 0
	for {
		timer := s.popDue(now)
		if timer == nil {
			return fired
		}
		fired++

		if timer.Handler(timer) == SF_RESCHEDULE {
			s.ScheduleTimer(timer)
		}
	}
}

func (s *Scheduler) isQueued(t *Timer) bool {
	cs := EnterCritical()
	defer cs.Exit()
	return t.queued
}

// Pending reports the number of queued timers
func (s *Scheduler) Pending() int {
	cs := EnterCritical()
	defer cs.Exit()

	n := 0
	for t := s.timerList; t != nil; t = t.Next {
		n++
	}
	return n
}

// Run dispatches timers against clock every poll until stop is closed.
// Boards without a hardware alarm use this as their timer interrupt.
func (s *Scheduler) Run(clock Clock, poll time.Duration, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		s.Dispatch(clock.Now())
		clock.Sleep(poll)
	}
}
