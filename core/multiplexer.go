package core

// MuxState is the display multiplexer state
type MuxState uint8

const (
	MuxBlank   MuxState = iota // Timer disabled, every line deasserted
	MuxCycling                 // Timer enabled, one digit lit per step
)

func (s MuxState) String() string {
	if s == MuxCycling {
		return "cycling"
	}
	return "blank"
}

// Multiplexer drives one digit per step from the shared DisplayState and
// blanks itself once the armed frame expires.
//
// Tick is the timer interrupt handler. cursor and phase belong to it alone
// and are never touched from another context.
type Multiplexer struct {
	state *DisplayState
	gpio  GPIODriver
	timer TickTimer
	clock Clock
	pins  DisplayPins

	phasesPerDigit int
	cycleLen       int

	cursor int
	phase  int
}

// NewMultiplexer creates a multiplexer. Register Tick as timer handler.
func NewMultiplexer(state *DisplayState, gpio GPIODriver, timer TickTimer, clock Clock, pins DisplayPins, phasesPerDigit uint8) *Multiplexer {
	if phasesPerDigit == 0 {
		phasesPerDigit = 1
	}
	return &Multiplexer{
		state:          state,
		gpio:           gpio,
		timer:          timer,
		clock:          clock,
		pins:           pins,
		phasesPerDigit: int(phasesPerDigit),
		cycleLen:       int(phasesPerDigit) * DigitCount,
	}
}

// State reports whether the multiplexer is cycling
func (m *Multiplexer) State() MuxState {
	if m.timer.Enabled() {
		return MuxCycling
	}
	return MuxBlank
}

// CycleTicks is the number of ticks in one full multiplex cycle
func (m *Multiplexer) CycleTicks() int {
	return m.cycleLen
}

// Tick advances the multiplexer by one timer period
func (m *Multiplexer) Tick() {
	if !m.timer.Enabled() {
		return
	}

	if m.phase == 0 {
		if f, expired := m.state.expireIfDue(m.clock.Now()); expired {
			m.blank(f)
			return
		}
	}

	if m.phase%m.phasesPerDigit == 0 {
		m.showDigit()
	}

	m.phase++
	if m.phase == m.cycleLen {
		m.phase = 0
	}
}

// showDigit moves the lit position to cursor and advances it
func (m *Multiplexer) showDigit() {
	// Shared segment lines: release the previous digit before changing them
	m.deselectAll()

	f := m.state.Snapshot()
	p := Decode(Nibble(f.Value, m.cursor))
	if m.cursor == 0 {
		p |= SegDP
	}
	m.driveSegments(p)
	m.selectDigit(m.cursor, true)

	m.cursor++
	if m.cursor == DigitCount {
		m.cursor = 0
	}
}

// blank turns the display off and stops the timer
func (m *Multiplexer) blank(f Frame) {
	m.Off()
	m.timer.Disable()
	m.cursor = 0
	m.phase = 0

	RecordEvent(EvtBlank, m.clock.Now(), uint32(f.Value), 0)
	Debugln("display: blank after " + hex16(f.Value))

	// An arm that landed between the expiry check and Disable would
	// otherwise leave a live frame with no timer
	if m.state.Snapshot().Value != 0 {
		m.timer.Enable()
	}
}

// Off deasserts every digit and segment line
func (m *Multiplexer) Off() {
	m.deselectAll()
	m.driveSegments(0)
}

func (m *Multiplexer) deselectAll() {
	for i := range m.pins.Digits {
		m.selectDigit(i, false)
	}
}

func (m *Multiplexer) selectDigit(i int, on bool) {
	m.gpio.SetPin(m.pins.Digits[i], on != m.pins.DigitActiveLow)
}

func (m *Multiplexer) driveSegments(p Pattern) {
	for i, pin := range m.pins.Segments {
		m.gpio.SetPin(pin, p.Lit(i) != m.pins.SegmentActiveLow)
	}
	if m.pins.Point != NoPin {
		m.gpio.SetPin(m.pins.Point, p.Lit(7) != m.pins.SegmentActiveLow)
	}
}
