//go:build linux

package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"segmux/core"
)

// PeriphGPIODriver implements core.GPIODriver on periph pins addressed by
// their BCM numbers.
type PeriphGPIODriver struct {
	pins map[core.GPIOPin]gpio.PinIO
}

// NewPeriphGPIODriver creates the driver. host.Init must have run.
func NewPeriphGPIODriver() *PeriphGPIODriver {
	return &PeriphGPIODriver{pins: make(map[core.GPIOPin]gpio.PinIO)}
}

func (d *PeriphGPIODriver) lookup(pin core.GPIOPin) (gpio.PinIO, error) {
	if p, ok := d.pins[pin]; ok {
		return p, nil
	}
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("gpio: no pin GPIO%d", pin)
	}
	d.pins[pin] = p
	return p, nil
}

// ConfigureOutput configures a pin as an output driven low
func (d *PeriphGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	p, err := d.lookup(pin)
	if err != nil {
		return err
	}
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("gpio: %s out: %w", p, err)
	}
	return nil
}

// ConfigureInput configures a pin as an input with rising edge detection
func (d *PeriphGPIODriver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	p, err := d.lookup(pin)
	if err != nil {
		return err
	}

	gp := gpio.Float
	switch pull {
	case core.PullUp:
		gp = gpio.PullUp
	case core.PullDown:
		gp = gpio.PullDown
	}
	if err := p.In(gp, gpio.RisingEdge); err != nil {
		return fmt.Errorf("gpio: %s in: %w", p, err)
	}
	return nil
}

// SetPin drives a configured output
func (d *PeriphGPIODriver) SetPin(pin core.GPIOPin, value bool) {
	if p, ok := d.pins[pin]; ok {
		p.Out(gpio.Level(value))
	}
}

// ReadPin reads the current pin level
func (d *PeriphGPIODriver) ReadPin(pin core.GPIOPin) bool {
	p, ok := d.pins[pin]
	if !ok {
		return false
	}
	return p.Read() == gpio.High
}

// Pin returns the periph pin behind a configured line
func (d *PeriphGPIODriver) Pin(pin core.GPIOPin) gpio.PinIO {
	return d.pins[pin]
}

// Halt releases every configured line
func (d *PeriphGPIODriver) Halt() {
	for _, p := range d.pins {
		p.Halt()
	}
}
