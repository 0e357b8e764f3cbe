package core

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Pin layout used by the tests
var testPins = DisplayPins{
	Segments: [7]GPIOPin{0, 1, 2, 3, 4, 5, 6},
	Point:    7,
	Digits:   [DigitCount]GPIOPin{8, 9, 10, 11},
}

const testSensorPin GPIOPin = 12

func testParams() Params {
	return Params{
		Display:         testPins,
		SensorPin:       testSensorPin,
		SensorPull:      PullDown,
		ADCChannel:      0,
		Threshold:       0x300,
		LongHold:        10 * time.Second,
		ShortHold:       3 * time.Second,
		PhasesPerDigit:  2,
		RefreshPeriod:   time.Millisecond,
		ADCPollInterval: time.Millisecond,
		ADCMaxPolls:     100,
	}
}

// fakeGPIO records pin levels
type fakeGPIO struct {
	mu      sync.Mutex
	levels  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]Pull

	// onSet runs after every SetPin, outside the lock
	onSet func(pin GPIOPin, value bool)
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]Pull),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outputs[pin] = true
	return nil
}

func (g *fakeGPIO) ConfigureInput(pin GPIOPin, pull Pull) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs[pin] = pull
	return nil
}

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) {
	g.mu.Lock()
	g.levels[pin] = value
	hook := g.onSet
	g.mu.Unlock()
	if hook != nil {
		hook(pin, value)
	}
}

func (g *fakeGPIO) setHook(fn func(pin GPIOPin, value bool)) {
	g.mu.Lock()
	g.onSet = fn
	g.mu.Unlock()
}

func (g *fakeGPIO) ReadPin(pin GPIOPin) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.levels[pin]
}

// litDigits returns the asserted digit positions for pins
func (g *fakeGPIO) litDigits(pins DisplayPins) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	var lit []int
	for i, pin := range pins.Digits {
		if g.levels[pin] != pins.DigitActiveLow {
			lit = append(lit, i)
		}
	}
	return lit
}

// pattern returns the segment pattern currently driven
func (g *fakeGPIO) pattern(pins DisplayPins) Pattern {
	g.mu.Lock()
	defer g.mu.Unlock()
	var p Pattern
	for i, pin := range pins.Segments {
		if g.levels[pin] != pins.SegmentActiveLow {
			p |= 1 << uint(i)
		}
	}
	if pins.Point != NoPin && g.levels[pins.Point] != pins.SegmentActiveLow {
		p |= SegDP
	}
	return p
}

// fakeADC completes a conversion after a number of polls
type fakeADC struct {
	mu           sync.Mutex
	value        ADCValue
	pollsToReady int
	never        bool
	polled       int
	started      int
	configured   []ADCChannelID
}

func (a *fakeADC) ConfigureChannel(ch ADCChannelID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configured = append(a.configured, ch)
	return nil
}

func (a *fakeADC) StartConversion(ch ADCChannelID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started++
	a.polled = 0
	return nil
}

func (a *fakeADC) IsComplete() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.never {
		return false
	}
	done := a.polled >= a.pollsToReady
	a.polled++
	return done
}

func (a *fakeADC) ReadResult() ADCValue {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

func (a *fakeADC) set(v ADCValue) {
	a.mu.Lock()
	a.value = v
	a.mu.Unlock()
}

// fakeTimer is a TickTimer driven by calling Tick by hand
type fakeTimer struct {
	enabled  uint32
	handler  func()
	enables  int
	onEnable func()
}

func (t *fakeTimer) SetHandler(fn func()) { t.handler = fn }

func (t *fakeTimer) Enable() {
	t.enables++
	if t.onEnable != nil {
		t.onEnable()
	}
	atomic.StoreUint32(&t.enabled, 1)
}

func (t *fakeTimer) Disable() { atomic.StoreUint32(&t.enabled, 0) }

func (t *fakeTimer) Enabled() bool { return atomic.LoadUint32(&t.enabled) == 1 }

// fakeClock advances only when told to, or when slept on
type fakeClock struct {
	mu  sync.Mutex
	now Instant
}

func (c *fakeClock) Now() Instant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.Advance(d)
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// captureLog collects log lines until the returned func is called
func captureLog(t *testing.T) (lines func() []string) {
	t.Helper()
	var mu sync.Mutex
	var got []string
	SetLogWriter(func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})
	t.Cleanup(func() { SetLogWriter(nil) })
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), got...)
	}
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
