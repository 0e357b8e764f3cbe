package core

import (
	"errors"
	"time"
)

// DigitCount is the number of multiplexed digit positions
const DigitCount = 4

var (
	ErrNoPhases        = errors.New("params: phases per digit must be at least 1")
	ErrBadHold         = errors.New("params: hold durations must be positive")
	ErrBadPollInterval = errors.New("params: ADC poll interval must be positive")
	ErrBadPollLimit    = errors.New("params: ADC poll limit must not be negative")
	ErrBadRefresh      = errors.New("params: refresh period must be positive")
	ErrPinConflict     = errors.New("params: pin assigned twice")
	ErrMissingDriver   = errors.New("firmware: hardware driver missing")
	ErrBadHeartbeat    = errors.New("params: heartbeat period must be positive")
)

// DisplayPins wires the multiplexed display.
// Segments are a..g; Point is the decimal point / separator line (NoPin if absent).
// Digits[0] is the lowest-order position.
type DisplayPins struct {
	Segments [7]GPIOPin
	Point    GPIOPin
	Digits   [DigitCount]GPIOPin

	// Active-low lines are asserted by driving them low
	DigitActiveLow   bool
	SegmentActiveLow bool
}

// Indicator is an optional LED output. The zero value is not wired.
type Indicator struct {
	Pin     GPIOPin
	Enabled bool
}

// Params holds every tunable of the display core
type Params struct {
	Display    DisplayPins
	SensorPin  GPIOPin
	SensorPull Pull
	ADCChannel ADCChannelID

	// Readings above Threshold are held LongHold, others ShortHold
	Threshold uint16
	LongHold  time.Duration
	ShortHold time.Duration

	// Timer ticks each digit stays lit; DigitCount*PhasesPerDigit ticks is
	// one full multiplex cycle and the expiry check cadence
	PhasesPerDigit uint8
	RefreshPeriod  time.Duration

	// Conversion polling. ADCMaxPolls == 0 polls forever.
	ADCPollInterval time.Duration
	ADCMaxPolls     int

	// Minimum time between accepted sensor edges. 0 accepts every edge.
	RearmInterval time.Duration

	// StatusLED is lit while the last reading was above Threshold
	StatusLED Indicator
	// HeartbeatLED toggles every HeartbeatPeriod while the board runs
	HeartbeatLED    Indicator
	HeartbeatPeriod time.Duration
}

// Validate checks that the parameters describe a usable device
func (p Params) Validate() error {
	if p.PhasesPerDigit == 0 {
		return ErrNoPhases
	}
	if p.LongHold <= 0 || p.ShortHold <= 0 {
		return ErrBadHold
	}
	if p.ADCPollInterval <= 0 {
		return ErrBadPollInterval
	}
	if p.ADCMaxPolls < 0 {
		return ErrBadPollLimit
	}
	if p.RefreshPeriod <= 0 {
		return ErrBadRefresh
	}
	if p.HeartbeatLED.Enabled && p.HeartbeatPeriod <= 0 {
		return ErrBadHeartbeat
	}

	used := make(map[GPIOPin]bool)
	claim := func(pin GPIOPin) bool {
		if pin == NoPin {
			return true
		}
		if used[pin] {
			return false
		}
		used[pin] = true
		return true
	}
	for _, pin := range p.Display.Segments {
		if !claim(pin) {
			return ErrPinConflict
		}
	}
	for _, pin := range p.Display.Digits {
		if !claim(pin) {
			return ErrPinConflict
		}
	}
	if !claim(p.Display.Point) || !claim(p.SensorPin) {
		return ErrPinConflict
	}
	for _, led := range []Indicator{p.StatusLED, p.HeartbeatLED} {
		if led.Enabled && !claim(led.Pin) {
			return ErrPinConflict
		}
	}
	return nil
}

// HoldFor returns how long a reading stays on the display
func (p Params) HoldFor(raw uint16) time.Duration {
	if raw > p.Threshold {
		return p.LongHold
	}
	return p.ShortHold
}
