// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package main

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/gpio"

	"segmux/core"
)

var (
	errBusy       = errors.New("mcp3008: conversion in progress")
	errBadChannel = errors.New("mcp3008: channel out of range")
)

// MCP3008 reads a 10-bit MCP3008 over bit-banged SPI and implements
// core.ADCDriver. StartConversion runs the transfer on its own goroutine so
// the caller polls IsComplete like it would a register.
type MCP3008 struct {
	mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	tclk time.Duration
	clk  gpio.PinIO
	csz  gpio.PinIO
	di   gpio.PinIO
	do   gpio.PinIO

	busy   atomic.Bool
	result atomic.Uint32
}

// NewMCP3008 creates the driver and holds the chip deselected
func NewMCP3008(tclk time.Duration, clk, csz, di, do gpio.PinIO) (*MCP3008, error) {
	adc := &MCP3008{
		tclk: tclk,
		clk:  clk,
		csz:  csz,
		di:   di,
		do:   do,
	}
	if err := adc.clk.Out(gpio.Low); err != nil {
		return nil, err
	}
	if err := adc.csz.Out(gpio.High); err != nil {
		return nil, err
	}
	if err := adc.do.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, err
	}
	return adc, nil
}

// ConfigureChannel checks the channel number
func (adc *MCP3008) ConfigureChannel(ch core.ADCChannelID) error {
	if ch > 7 {
		return errBadChannel
	}
	return nil
}

// StartConversion begins a single-ended read of ch
func (adc *MCP3008) StartConversion(ch core.ADCChannelID) error {
	if ch > 7 {
		return errBadChannel
	}
	if !adc.busy.CompareAndSwap(false, true) {
		return errBusy
	}
	go func() {
		adc.result.Store(uint32(adc.Read(int(ch))))
		adc.busy.Store(false)
	}()
	return nil
}

// IsComplete reports whether the last conversion finished
func (adc *MCP3008) IsComplete() bool {
	return !adc.busy.Load()
}

// ReadResult returns the last 10-bit result
func (adc *MCP3008) ReadResult() core.ADCValue {
	return core.ADCValue(adc.result.Load())
}

// Read performs a blocking conversion of ch
func (adc *MCP3008) Read(ch int) uint16 {
	adc.mu.Lock()
	defer adc.mu.Unlock()

	adc.csz.Out(gpio.High)
	adc.clk.Out(gpio.Low)
	adc.di.Out(gpio.High)
	time.Sleep(adc.tclk)
	adc.csz.Out(gpio.Low)

	adc.clockOut(gpio.High) // Start
	adc.clockOut(gpio.High) // SGL/DIFFZ - single ended
	for i := 2; i >= 0; i-- {
		adc.clockOut(gpio.Level(ch>>uint(i)&0x01 == 0x01))
	}
	// mux settling
	time.Sleep(adc.tclk)
	adc.clk.Out(gpio.High)
	adc.clockIn() // null bit
	var d uint16
	for i := 0; i < 10; i++ {
		d <<= 1
		if adc.clockIn() == gpio.High {
			d |= 0x01
		}
	}
	adc.csz.Out(gpio.High)
	return d
}

// Halt releases the bus lines
func (adc *MCP3008) Halt() {
	adc.mu.Lock()
	defer adc.mu.Unlock()
	for _, p := range []gpio.PinIO{adc.clk, adc.csz, adc.di} {
		p.In(gpio.Float, gpio.NoEdge)
	}
}

// clockIn clocks in a data bit from the ADC on do.
// Assumes clock starts high and ends with the rising edge of the next clock.
func (adc *MCP3008) clockIn() gpio.Level {
	time.Sleep(adc.tclk)
	adc.clk.Out(gpio.Low) // ADC writes on the falling edge
	time.Sleep(adc.tclk)
	b := adc.do.Read()
	adc.clk.Out(gpio.High)
	return b
}

// clockOut clocks out a data bit to the ADC on di.
// Assumes clock starts low and ends with the falling edge of the next clock.
func (adc *MCP3008) clockOut(l gpio.Level) {
	adc.di.Out(l)
	time.Sleep(adc.tclk)
	adc.clk.Out(gpio.High) // ADC reads on the rising edge
	time.Sleep(adc.tclk)
	adc.clk.Out(gpio.Low)
}
