package core

// LogWriter is a function type for writing one status line
type LogWriter func(string)

// TraceEvent captures a display event for post-mortem analysis
type TraceEvent struct {
	EventType uint8   // Event type code
	Clock     Instant // System time at event
	Value1    uint32  // Context-dependent value
	Value2    uint32  // Context-dependent value
}

// Event type codes
const (
	EvtEdge        = 1 // Sensor edge accepted
	EvtWake        = 2 // Worker woke from the signal
	EvtArm         = 3 // Display armed (value, hold ms)
	EvtBlank       = 4 // Multiplexer blanked (value seen)
	EvtRaiseFail   = 5 // Signal raise failed
	EvtConvTimeout = 6 // Conversion did not complete (polls)
	EvtEdgeDropped = 7 // Edge inside the rearm interval
)

const (
	TraceRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// logPrintln is the global line sink (set by platform code)
	logPrintln LogWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether Debugln output is active
	debugEnabled bool = false

	// Event ring buffer (guarded by the critical section)
	traceRing     [TraceRingSize]TraceEvent
	traceRingHead uint8

	// Async log channel, nil until InitAsyncLog
	logChan chan string
)

// SetLogWriter sets the platform-specific line sink
// This allows platforms to redirect output to UART, USB, stdout, etc.
func SetLogWriter(writer LogWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	logPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncLog starts the goroutine that drains queued lines into the sink.
// After this call Logln never blocks, which makes it usable from interrupt
// handlers. Call from main() after SetLogWriter.
func InitAsyncLog(buffer int) {
	logChan = make(chan string, buffer)
	go logOutputWorker(logChan)
}

// logOutputWorker runs in background, drains the log channel
func logOutputWorker(ch chan string) {
	for msg := range ch {
		logPrintln(msg)
	}
}

// Logln emits one line. With async logging active the line is queued and
// dropped if the queue is full.
func Logln(msg string) {
	if logChan != nil {
		select {
		case logChan <- msg:
		default:
			// Queue full, drop message (non-blocking)
		}
		return
	}
	logPrintln(msg)
}

// Debugln emits one line only when debug output is enabled
func Debugln(msg string) {
	if debugEnabled {
		Logln(msg)
	}
}

// RecordEvent captures an event in the ring buffer.
// Must not be called while a critical section is held.
func RecordEvent(eventType uint8, clock Instant, value1, value2 uint32) {
	cs := EnterCritical()
	idx := traceRingHead
	traceRing[idx] = TraceEvent{
		EventType: eventType,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	traceRingHead = (idx + 1) % TraceRingSize
	cs.Exit()
}

// Events returns the recorded events from oldest to newest
func Events() []TraceEvent {
	cs := EnterCritical()
	defer cs.Exit()

	out := make([]TraceEvent, 0, TraceRingSize)
	start := traceRingHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// eventName returns the printable name of an event type
func eventName(eventType uint8) string {
	switch eventType {
	case EvtEdge:
		return "EDGE"
	case EvtWake:
		return "WAKE"
	case EvtArm:
		return "ARM"
	case EvtBlank:
		return "BLANK"
	case EvtRaiseFail:
		return "RAISE_FAIL!"
	case EvtConvTimeout:
		return "CONV_TIMEOUT!"
	case EvtEdgeDropped:
		return "EDGE_DROP"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents writes the event ring to the log sink (call on shutdown/error)
func DumpEvents() {
	logPrintln("[TRACE] === Event Ring Dump ===")
	for _, evt := range Events() {
		logPrintln("[TRACE] " + eventName(evt.EventType) +
			" clock=" + utoa64(uint64(evt.Clock)) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	logPrintln("[TRACE] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	cs := EnterCritical()
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceRingHead = 0
	cs.Exit()
}
