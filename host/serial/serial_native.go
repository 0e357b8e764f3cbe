//go:build !wasm && !tinygo

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// UART is a device serial port. It satisfies Port.
type UART struct {
	*serial.Port
	device string
}

// Open opens the device described by cfg. A zero baud rate means DefaultBaud.
func Open(cfg *Config) (*UART, error) {
	if cfg == nil || cfg.Device == "" {
		return nil, fmt.Errorf("serial: no device given")
	}
	baud := cfg.Baud
	if baud == 0 {
		baud = DefaultBaud
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return &UART{Port: port, device: cfg.Device}, nil
}

// Device returns the path the port was opened from
func (u *UART) Device() string {
	return u.device
}

var _ Port = (*UART)(nil)
