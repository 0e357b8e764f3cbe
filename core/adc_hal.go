package core

// ADCChannelID identifies a logical ADC channel.
type ADCChannelID uint8

// ADCValue is the raw ADC reading as seen by the rest of the firmware.
type ADCValue uint16

// ADCDriver is the abstract single-conversion ADC interface that core code uses.
// Conversions are started and then polled; the driver never blocks.
type ADCDriver interface {
	// ConfigureChannel prepares a channel for analog input.
	// For pin-muxed channels, this should set pin to analog mode.
	ConfigureChannel(ch ADCChannelID) error

	// StartConversion begins a one-shot conversion on ch.
	StartConversion(ch ADCChannelID) error

	// IsComplete reports whether the last started conversion has finished.
	IsComplete() bool

	// ReadResult returns the result of the last finished conversion.
	ReadResult() ADCValue
}

// Global singleton used by core code.
var adcDriver ADCDriver

// SetADCDriver is called by target-specific code to register its driver.
func SetADCDriver(d ADCDriver) {
	adcDriver = d
}

// MustADC returns the configured driver or panics if missing.
func MustADC() ADCDriver {
	if adcDriver == nil {
		panic("ADC driver not configured")
	}
	return adcDriver
}
