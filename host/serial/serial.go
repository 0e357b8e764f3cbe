// Package serial carries the display's status lines over a UART.
package serial

import (
	"io"
)

// Port is the byte stream a status line travels over.
// NativePort wraps a real device; tests use in-memory pipes.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "/dev/serial0")
	Device string

	// Baud rate; the firmware console runs at 115200
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud matches the firmware console
const DefaultBaud = 115200

// DefaultConfig returns the console configuration for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
