//go:build rp2040 || rp2350

package main

import (
	"machine"

	"segmux/core"
)

// RPGPIODriver implements core.GPIODriver on machine pins
type RPGPIODriver struct {
	// Track configured pins; SetPin and ReadPin ignore anything else
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = machinePin
	return nil
}

// ConfigureInput configures a pin as an input with the given pull
func (d *RPGPIODriver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	mode := machine.PinInput
	switch pull {
	case core.PullUp:
		mode = machine.PinInputPullup
	case core.PullDown:
		mode = machine.PinInputPulldown
	}

	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: mode})
	d.configuredPins[pin] = machinePin
	return nil
}

// SetPin drives an output
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) {
	if machinePin, ok := d.configuredPins[pin]; ok {
		machinePin.Set(value)
	}
}

// ReadPin reads the current pin level
func (d *RPGPIODriver) ReadPin(pin core.GPIOPin) bool {
	machinePin, ok := d.configuredPins[pin]
	if !ok {
		return false
	}
	return machinePin.Get()
}
