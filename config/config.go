// Package config loads the device description from JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"segmux/core"
)

// Defaults applied to fields left out of the JSON document
const (
	DefaultThreshold      = 0x300
	DefaultLongHoldMS     = 10000
	DefaultShortHoldMS    = 3000
	DefaultRefreshUS      = 1000
	DefaultPhasesPerDigit = 2
	DefaultADCPollMS      = 1
	DefaultADCMaxPolls    = 100
	DefaultHeartbeatMS    = 500
)

var (
	ErrBadPin  = errors.New("config: pin numbers must not be negative")
	ErrBadPull = errors.New("config: sensor_pull must be \"none\", \"up\" or \"down\"")
)

// DeviceConfig describes the wiring and tunables of one display board
type DeviceConfig struct {
	// Segment lines a..g
	Segments [7]int `json:"segments"`
	// Decimal point / separator line; omitted when not wired
	Point *int `json:"point,omitempty"`
	// Digit select lines, lowest-order position first
	Digits [core.DigitCount]int `json:"digits"`

	DigitActiveLow   bool `json:"digit_active_low"`
	SegmentActiveLow bool `json:"segment_active_low"`

	Sensor     int    `json:"sensor"`
	SensorPull string `json:"sensor_pull"`
	ADCChannel uint8  `json:"adc_channel"`

	// Readings above Threshold get the long hold; 0 is a valid threshold
	Threshold   *uint16 `json:"threshold,omitempty"`
	LongHoldMS  uint32  `json:"long_hold_ms"`
	ShortHoldMS uint32  `json:"short_hold_ms"`

	RefreshUS      uint32 `json:"refresh_us"`
	PhasesPerDigit uint8  `json:"phases_per_digit"`

	ADCPollMS uint32 `json:"adc_poll_ms"`
	// 0 polls forever
	ADCMaxPolls *int `json:"adc_max_polls,omitempty"`

	// Minimum time between accepted sensor edges, 0 disables
	RearmMS uint32 `json:"rearm_ms"`

	// Optional LEDs: lit above threshold, and a blinking heartbeat
	StatusLED    *int   `json:"status_led,omitempty"`
	HeartbeatLED *int   `json:"heartbeat_led,omitempty"`
	HeartbeatMS  uint32 `json:"heartbeat_ms"`
}

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*DeviceConfig, error) {
	var config DeviceConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *DeviceConfig) {
	if config.SensorPull == "" {
		config.SensorPull = "none"
	}
	if config.Threshold == nil {
		threshold := uint16(DefaultThreshold)
		config.Threshold = &threshold
	}
	if config.LongHoldMS == 0 {
		config.LongHoldMS = DefaultLongHoldMS
	}
	if config.ShortHoldMS == 0 {
		config.ShortHoldMS = DefaultShortHoldMS
	}
	if config.RefreshUS == 0 {
		config.RefreshUS = DefaultRefreshUS
	}
	if config.PhasesPerDigit == 0 {
		config.PhasesPerDigit = DefaultPhasesPerDigit
	}
	if config.ADCPollMS == 0 {
		config.ADCPollMS = DefaultADCPollMS
	}
	if config.HeartbeatMS == 0 {
		config.HeartbeatMS = DefaultHeartbeatMS
	}
	if config.ADCMaxPolls == nil {
		polls := DefaultADCMaxPolls
		config.ADCMaxPolls = &polls
	}
}

// Validate checks the configuration against the display core's rules
func (c *DeviceConfig) Validate() error {
	pins := append([]int{c.Sensor}, c.Segments[:]...)
	pins = append(pins, c.Digits[:]...)
	for _, opt := range []*int{c.Point, c.StatusLED, c.HeartbeatLED} {
		if opt != nil {
			pins = append(pins, *opt)
		}
	}
	for _, pin := range pins {
		if pin < 0 {
			return ErrBadPin
		}
	}
	if _, ok := parsePull(c.SensorPull); !ok {
		return ErrBadPull
	}
	return c.Params().Validate()
}

// Params converts the configuration into core parameters
func (c *DeviceConfig) Params() core.Params {
	p := core.Params{
		SensorPin:       core.GPIOPin(c.Sensor),
		ADCChannel:      core.ADCChannelID(c.ADCChannel),
		HeartbeatPeriod: time.Duration(c.HeartbeatMS) * time.Millisecond,
		LongHold:        time.Duration(c.LongHoldMS) * time.Millisecond,
		ShortHold:       time.Duration(c.ShortHoldMS) * time.Millisecond,
		PhasesPerDigit:  c.PhasesPerDigit,
		RefreshPeriod:   time.Duration(c.RefreshUS) * time.Microsecond,
		ADCPollInterval: time.Duration(c.ADCPollMS) * time.Millisecond,
		RearmInterval:   time.Duration(c.RearmMS) * time.Millisecond,
	}
	p.SensorPull, _ = parsePull(c.SensorPull)
	if c.Threshold != nil {
		p.Threshold = *c.Threshold
	}
	if c.StatusLED != nil {
		p.StatusLED = core.Indicator{Pin: core.GPIOPin(*c.StatusLED), Enabled: true}
	}
	if c.HeartbeatLED != nil {
		p.HeartbeatLED = core.Indicator{Pin: core.GPIOPin(*c.HeartbeatLED), Enabled: true}
	}
	if c.ADCMaxPolls != nil {
		p.ADCMaxPolls = *c.ADCMaxPolls
	}

	for i, pin := range c.Segments {
		p.Display.Segments[i] = core.GPIOPin(pin)
	}
	for i, pin := range c.Digits {
		p.Display.Digits[i] = core.GPIOPin(pin)
	}
	p.Display.Point = core.NoPin
	if c.Point != nil {
		p.Display.Point = core.GPIOPin(*c.Point)
	}
	p.Display.DigitActiveLow = c.DigitActiveLow
	p.Display.SegmentActiveLow = c.SegmentActiveLow
	return p
}

func parsePull(s string) (core.Pull, bool) {
	switch s {
	case "", "none":
		return core.PullNone, true
	case "up":
		return core.PullUp, true
	case "down":
		return core.PullDown, true
	}
	return core.PullNone, false
}

// Default returns the reference wiring: segments a..g on GPIO2-8, the
// separator on GPIO9, digits on GPIO10-13 (lowest order first), the status
// LED on GPIO14, the sensor on GPIO15, the heartbeat on GPIO25 and the
// reading on ADC channel 0.
func Default() *DeviceConfig {
	point, status, heartbeat := 9, 14, 25
	config := &DeviceConfig{
		Segments:     [7]int{2, 3, 4, 5, 6, 7, 8},
		Point:        &point,
		Digits:       [core.DigitCount]int{10, 11, 12, 13},
		Sensor:       15,
		StatusLED:    &status,
		HeartbeatLED: &heartbeat,
	}
	applyDefaults(config)
	return config
}
