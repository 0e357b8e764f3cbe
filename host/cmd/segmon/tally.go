package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"segmux/statusline"
)

// tally classifies readings seen on the console. A reading that carries its
// hold is long when the hold exceeds shortHold; bare readings fall back to
// comparing against threshold.
type tally struct {
	mu        sync.Mutex
	threshold uint16
	shortHold time.Duration
	long      int
	short     int
	banners   int
	other     int
	min, max  uint16
}

func newTally(threshold uint16, shortHold time.Duration) *tally {
	return &tally{threshold: threshold, shortHold: shortHold, min: 0xFFFF}
}

// observe records one console line and returns a message for readings
func (t *tally) observe(line string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if line == statusline.Banner {
		t.banners++
		return "-- device started --", true
	}

	r, err := statusline.Parse(line)
	if err != nil {
		t.other++
		return "", false
	}

	long := r.Value > t.threshold
	if r.Hold > 0 {
		long = r.Hold > t.shortHold
	}

	class := "short"
	if long {
		class = "long"
		t.long++
	} else {
		t.short++
	}
	t.min = min(t.min, r.Value)
	t.max = max(t.max, r.Value)

	msg := fmt.Sprintf("ADC[%d] 0x%04x %-5s", r.Channel, r.Value, class)
	if r.Hold > 0 {
		msg += fmt.Sprintf(" held %v", r.Hold)
	}
	return msg, true
}

func (t *tally) summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	total := t.long + t.short
	fmt.Fprintf(&b, "readings: %d (long %d, short %d)\n", total, t.long, t.short)
	if total > 0 {
		fmt.Fprintf(&b, "range:    0x%04x - 0x%04x\n", t.min, t.max)
	}
	fmt.Fprintf(&b, "restarts: %d\n", t.banners)
	if t.other > 0 {
		fmt.Fprintf(&b, "other:    %d lines\n", t.other)
	}
	return b.String()
}

func (t *tally) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.long, t.short, t.banners, t.other = 0, 0, 0, 0
	t.min, t.max = 0xFFFF, 0
}
