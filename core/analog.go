package core

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	// ErrConversionTimeout is returned when the ADC does not finish within the poll limit
	ErrConversionTimeout = errors.New("adc: conversion timed out")
)

// AnalogSensor performs single bounded conversions on one ADC channel.
// It implements drivers.Sensor for the drivers.Voltage measurement.
type AnalogSensor struct {
	adc          ADCDriver
	channel      ADCChannelID
	clock        Clock
	pollInterval time.Duration
	maxPolls     int

	raw   ADCValue
	polls int
}

var _ drivers.Sensor = (*AnalogSensor)(nil)

// NewAnalogSensor creates a sensor on ch. maxPolls == 0 polls forever.
func NewAnalogSensor(adc ADCDriver, ch ADCChannelID, clock Clock, pollInterval time.Duration, maxPolls int) *AnalogSensor {
	return &AnalogSensor{
		adc:          adc,
		channel:      ch,
		clock:        clock,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
	}
}

// Update starts a conversion and sleeps between completion polls until it
// finishes. Measurements other than drivers.Voltage are ignored.
func (a *AnalogSensor) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return nil
	}

	if err := a.adc.StartConversion(a.channel); err != nil {
		return err
	}

	a.polls = 0
	for !a.adc.IsComplete() {
		if a.maxPolls > 0 && a.polls >= a.maxPolls {
			return ErrConversionTimeout
		}
		a.clock.Sleep(a.pollInterval)
		a.polls++
	}

	a.raw = a.adc.ReadResult()
	return nil
}

// Raw returns the last converted value
func (a *AnalogSensor) Raw() ADCValue {
	return a.raw
}

// Polls returns how many times the last conversion slept waiting for completion
func (a *AnalogSensor) Polls() int {
	return a.polls
}

// Read converts once and returns the raw value
func (a *AnalogSensor) Read() (ADCValue, error) {
	if err := a.Update(drivers.Voltage); err != nil {
		return 0, err
	}
	return a.raw, nil
}
