//go:build !tinygo

package core

import "time"

var bootTime = time.Now()

// getSystemTicks returns microseconds since process start (regular Go implementation)
func getSystemTicks() uint64 {
	return uint64(time.Since(bootTime) / time.Microsecond)
}
