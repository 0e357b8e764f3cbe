//go:build rp2040 || rp2350

package main

import (
	"device/rp"
	"errors"
	"machine"

	"segmux/core"
)

var errBadChannel = errors.New("adc: unsupported channel")

// RPADCDriver implements core.ADCDriver on the ADC registers so a
// conversion can be started and then polled.
type RPADCDriver struct{}

// NewRPADCDriver creates the ADC driver
func NewRPADCDriver() *RPADCDriver {
	return &RPADCDriver{}
}

// ConfigureChannel powers the ADC and switches the channel's pin to analog
func (d *RPADCDriver) ConfigureChannel(ch core.ADCChannelID) error {
	if ch > 3 {
		return errBadChannel
	}

	if rp.ADC.CS.Get()&rp.ADC_CS_EN == 0 {
		machine.InitADC()
	}
	adc := machine.ADC{Pin: machine.ADC0 + machine.Pin(ch)}
	return adc.Configure(machine.ADCConfig{})
}

// StartConversion selects ch and starts a single conversion
func (d *RPADCDriver) StartConversion(ch core.ADCChannelID) error {
	if ch > 3 {
		return errBadChannel
	}

	rp.ADC.CS.ReplaceBits(
		uint32(ch)<<rp.ADC_CS_AINSEL_Pos,
		rp.ADC_CS_AINSEL_Msk,
		0,
	)
	rp.ADC.CS.SetBits(rp.ADC_CS_START_ONCE)
	return nil
}

// IsComplete reports whether the last conversion finished
func (d *RPADCDriver) IsComplete() bool {
	return rp.ADC.CS.HasBits(rp.ADC_CS_READY)
}

// ReadResult returns the raw 12-bit result (0-4095)
func (d *RPADCDriver) ReadResult() core.ADCValue {
	return core.ADCValue(rp.ADC.RESULT.Get())
}
