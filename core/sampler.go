package core

import (
	"time"

	"segmux/statusline"
)

// Waiter blocks until the next sensor wake
type Waiter interface {
	Wait() error
}

// Sampler is the worker thread: it waits for a sensor wake, converts one
// reading and arms the display with it.
type Sampler struct {
	signal  Waiter
	sensor  *AnalogSensor
	state   *DisplayState
	timer   TickTimer
	clock   Clock
	params  Params
	samples uint32

	// Optional above-threshold LED
	led    GPIODriver
	ledPin GPIOPin
}

// NewSampler creates the worker
func NewSampler(signal Waiter, sensor *AnalogSensor, state *DisplayState, timer TickTimer, clock Clock, params Params) *Sampler {
	return &Sampler{
		signal: signal,
		sensor: sensor,
		state:  state,
		timer:  timer,
		clock:  clock,
		params: params,
	}
}

// SetStatusLED drives pin high after every reading above the threshold and
// low after every other reading
func (s *Sampler) SetStatusLED(gpio GPIODriver, pin GPIOPin) {
	s.led = gpio
	s.ledPin = pin
}

// Run loops until waiting on the signal fails, and returns that error.
// There is no restart; a failed wait ends the thread.
func (s *Sampler) Run() error {
	for {
		if err := s.signal.Wait(); err != nil {
			Logln("sampler: wait failed: " + err.Error())
			return err
		}
		RecordEvent(EvtWake, s.clock.Now(), s.samples, 0)

		// Conversion failures are logged in SampleOnce; wait for the next edge
		_, _ = s.SampleOnce()
	}
}

// SampleOnce converts one reading and arms the display with it
func (s *Sampler) SampleOnce() (Frame, error) {
	raw, err := s.sensor.Read()
	if err != nil {
		RecordEvent(EvtConvTimeout, s.clock.Now(), uint32(s.sensor.Polls()), 0)
		Logln("sampler: conversion failed: " + err.Error())
		return Frame{}, err
	}
	s.samples++

	value := uint16(raw)
	hold := s.params.HoldFor(value)
	if s.led != nil {
		s.led.SetPin(s.ledPin, value > s.params.Threshold)
	}

	Logln(statusline.Format(statusline.Reading{
		Channel: uint8(s.params.ADCChannel),
		Value:   value,
		Hold:    hold,
	}))

	f := s.state.Arm(value, hold, s.clock)
	// Enable strictly after the frame is written so the first tick sees it
	s.timer.Enable()

	RecordEvent(EvtArm, s.clock.Now(), uint32(value), uint32(hold/time.Millisecond))
	return f, nil
}

// Samples returns the number of successful conversions
func (s *Sampler) Samples() uint32 {
	return s.samples
}
