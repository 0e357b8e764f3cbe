package config

import (
	"errors"
	"testing"
	"time"

	"segmux/core"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"segments": [2, 3, 4, 5, 6, 7, 8],
		"digits": [10, 11, 12, 13],
		"sensor": 15
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	p := cfg.Params()
	if p.Threshold != 0x300 {
		t.Errorf("threshold = %#x, want 0x300", p.Threshold)
	}
	if p.LongHold != 10*time.Second || p.ShortHold != 3*time.Second {
		t.Errorf("holds = %v / %v", p.LongHold, p.ShortHold)
	}
	if p.RefreshPeriod != time.Millisecond || p.PhasesPerDigit != 2 {
		t.Errorf("refresh = %v x %d", p.RefreshPeriod, p.PhasesPerDigit)
	}
	if p.ADCPollInterval != time.Millisecond || p.ADCMaxPolls != 100 {
		t.Errorf("adc polling = %v x %d", p.ADCPollInterval, p.ADCMaxPolls)
	}
	if p.Display.Point != core.NoPin {
		t.Errorf("point = %d, want NoPin", p.Display.Point)
	}
	if p.SensorPull != core.PullNone || p.RearmInterval != 0 {
		t.Errorf("sensor pull %v, rearm %v", p.SensorPull, p.RearmInterval)
	}
	if p.StatusLED.Enabled || p.HeartbeatLED.Enabled {
		t.Errorf("LEDs wired without being configured: %+v %+v", p.StatusLED, p.HeartbeatLED)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"segments": [0, 1, 2, 3, 4, 5, 6],
		"point": 7,
		"digits": [20, 21, 22, 23],
		"digit_active_low": true,
		"sensor": 24,
		"sensor_pull": "down",
		"adc_channel": 2,
		"threshold": 3072,
		"long_hold_ms": 5000,
		"short_hold_ms": 500,
		"refresh_us": 500,
		"phases_per_digit": 4,
		"adc_max_polls": 0,
		"rearm_ms": 30
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	p := cfg.Params()
	if p.Display.Point != 7 || !p.Display.DigitActiveLow || p.Display.SegmentActiveLow {
		t.Errorf("display pins = %+v", p.Display)
	}
	if p.Display.Digits[3] != 23 || p.SensorPin != 24 || p.SensorPull != core.PullDown {
		t.Errorf("digits %v sensor %d pull %v", p.Display.Digits, p.SensorPin, p.SensorPull)
	}
	if p.ADCChannel != 2 || p.Threshold != 0xC00 {
		t.Errorf("adc channel %d threshold %#x", p.ADCChannel, p.Threshold)
	}
	if p.ADCMaxPolls != 0 {
		t.Errorf("explicit 0 polls became %d", p.ADCMaxPolls)
	}
	if p.RefreshPeriod != 500*time.Microsecond || p.PhasesPerDigit != 4 || p.RearmInterval != 30*time.Millisecond {
		t.Errorf("timing = %v x %d, rearm %v", p.RefreshPeriod, p.PhasesPerDigit, p.RearmInterval)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		json string
		want error
	}{
		{"bad pull", `{"segments":[0,1,2,3,4,5,6],"digits":[7,8,9,10],"sensor":11,"sensor_pull":"sideways"}`, ErrBadPull},
		{"negative pin", `{"segments":[0,1,2,3,4,5,-6],"digits":[7,8,9,10],"sensor":11}`, ErrBadPin},
		{"shared pin", `{"segments":[0,1,2,3,4,5,6],"digits":[7,8,9,10],"sensor":10}`, core.ErrPinConflict},
		{"negative polls", `{"segments":[0,1,2,3,4,5,6],"digits":[7,8,9,10],"sensor":11,"adc_max_polls":-1}`, core.ErrBadPollLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig([]byte(tc.json)); !errors.Is(err, tc.want) {
				t.Errorf("LoadConfig error = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := LoadConfig([]byte(`{"segments":`)); err == nil {
		t.Error("LoadConfig accepted truncated JSON")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	p := cfg.Params()
	if p.Display.Point != 9 || p.SensorPin != 15 || p.Threshold != DefaultThreshold {
		t.Errorf("default wiring = %+v", p)
	}
	if p.StatusLED.Pin != 14 || p.HeartbeatLED.Pin != 25 || p.HeartbeatPeriod != 500*time.Millisecond {
		t.Errorf("default LEDs = %+v %+v every %v", p.StatusLED, p.HeartbeatLED, p.HeartbeatPeriod)
	}
}

func TestLoadConfigZeroThreshold(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"segments": [2, 3, 4, 5, 6, 7, 8],
		"digits": [10, 11, 12, 13],
		"sensor": 15,
		"threshold": 0
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	p := cfg.Params()
	if p.Threshold != 0 {
		t.Fatalf("threshold = %#x, want 0", p.Threshold)
	}
	if p.HoldFor(1) != p.LongHold {
		t.Error("reading 1 does not get the long hold with a zero threshold")
	}
}

func TestLoadConfigIndicators(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"segments": [2, 3, 4, 5, 6, 7, 8],
		"digits": [10, 11, 12, 13],
		"sensor": 15,
		"status_led": 14,
		"heartbeat_led": 25,
		"heartbeat_ms": 250
	}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	p := cfg.Params()
	if p.StatusLED != (core.Indicator{Pin: 14, Enabled: true}) {
		t.Errorf("status LED = %+v", p.StatusLED)
	}
	if p.HeartbeatLED != (core.Indicator{Pin: 25, Enabled: true}) || p.HeartbeatPeriod != 250*time.Millisecond {
		t.Errorf("heartbeat = %+v every %v", p.HeartbeatLED, p.HeartbeatPeriod)
	}

	_, err = LoadConfig([]byte(`{"segments":[0,1,2,3,4,5,6],"digits":[7,8,9,10],"sensor":11,"status_led":3}`))
	if !errors.Is(err, core.ErrPinConflict) {
		t.Errorf("status LED on a segment: error = %v, want %v", err, core.ErrPinConflict)
	}
}
