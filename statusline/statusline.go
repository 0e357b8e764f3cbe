// Package statusline formats and parses the device's text status lines.
//
// The firmware writes one line per reading:
//
//	ADC[0]: 0x345 hold=10000ms
//
// Older firmware omits the hold field; Parse accepts both forms.
package statusline

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Banner is the first line written after boot
const Banner = "Go"

var (
	ErrNotReading = errors.New("statusline: not a reading line")
	ErrMalformed  = errors.New("statusline: malformed reading")
)

// Reading is one sampled value reported by the device
type Reading struct {
	Channel uint8
	Value   uint16
	Hold    time.Duration // zero when the line carried no hold field
}

// Format renders r as a status line without a trailing newline
func Format(r Reading) string {
	var b strings.Builder
	b.WriteString("ADC[")
	b.WriteString(strconv.FormatUint(uint64(r.Channel), 10))
	b.WriteString("]: 0x")
	b.WriteString(strconv.FormatUint(uint64(r.Value), 16))
	if r.Hold > 0 {
		b.WriteString(" hold=")
		b.WriteString(strconv.FormatInt(int64(r.Hold/time.Millisecond), 10))
		b.WriteString("ms")
	}
	return b.String()
}

// Parse decodes a status line produced by Format
func Parse(line string) (Reading, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "ADC[") {
		return Reading{}, ErrNotReading
	}
	rest := line[len("ADC["):]

	end := strings.Index(rest, "]:")
	if end < 0 {
		return Reading{}, ErrMalformed
	}
	ch, err := strconv.ParseUint(rest[:end], 10, 8)
	if err != nil {
		return Reading{}, ErrMalformed
	}

	fields := strings.Fields(rest[end+2:])
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "0x") {
		return Reading{}, ErrMalformed
	}
	value, err := strconv.ParseUint(fields[0][2:], 16, 16)
	if err != nil {
		return Reading{}, ErrMalformed
	}

	r := Reading{Channel: uint8(ch), Value: uint16(value)}
	for _, f := range fields[1:] {
		if !strings.HasPrefix(f, "hold=") || !strings.HasSuffix(f, "ms") {
			continue
		}
		ms, err := strconv.ParseInt(strings.TrimSuffix(f[len("hold="):], "ms"), 10, 64)
		if err != nil || ms < 0 {
			return Reading{}, ErrMalformed
		}
		r.Hold = time.Duration(ms) * time.Millisecond
	}
	return r, nil
}
