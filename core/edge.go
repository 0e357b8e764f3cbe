package core

import "time"

// Raiser wakes the worker. Raise must not block.
type Raiser interface {
	Raise() error
}

// EdgeDetector is the sensor rising-edge interrupt handler
type EdgeDetector struct {
	gpio   GPIODriver
	pin    GPIOPin
	signal Raiser
	clock  Clock
	rearm  time.Duration

	last     Instant
	accepted bool
}

// NewEdgeDetector creates the handler. rearm == 0 accepts every edge.
func NewEdgeDetector(gpio GPIODriver, pin GPIOPin, signal Raiser, clock Clock, rearm time.Duration) *EdgeDetector {
	return &EdgeDetector{
		gpio:   gpio,
		pin:    pin,
		signal: signal,
		clock:  clock,
		rearm:  rearm,
	}
}

// HandleEdge raises the signal once if the sensor line is high.
// It never blocks and never retries.
func (d *EdgeDetector) HandleEdge() {
	if !d.gpio.ReadPin(d.pin) {
		return
	}

	now := d.clock.Now()
	if d.rearm > 0 && d.accepted && now.Sub(d.last) < d.rearm {
		RecordEvent(EvtEdgeDropped, now, 0, 0)
		return
	}
	d.last = now
	d.accepted = true
	RecordEvent(EvtEdge, now, 0, 0)

	if err := d.signal.Raise(); err != nil {
		RecordEvent(EvtRaiseFail, now, 0, 0)
		Logln("edge: raise failed: " + err.Error())
	}
}
