package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// LoopEvent captures a loop event for post-mortem analysis
type LoopEvent struct {
	EventType uint8  // Event type code
	Clock     uint32 // Loop time at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtPulseStart  = 1 // Pin driven to active level (v1=pin, v2=pulses so far)
	EvtPulseEnd    = 2 // Pin returned to idle level (v1=pin, v2=pulses so far)
	EvtRelayToSoft = 3 // Bytes forwarded primary -> secondary (v1=count, v2=total)
	EvtRelayToHard = 4 // Bytes forwarded secondary -> primary (v1=count, v2=total)
	EvtBoot        = 5 // Loop initialized (v1=variant index)
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]LoopEvent
	eventRingHead uint8        // Next write position
	eventsEnabled bool  = true // Always capture events
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, stderr, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer
// This is always non-blocking and never allocates
func RecordEvent(eventType uint8, clock, value1, value2 uint32) {
	if !eventsEnabled {
		return
	}
	idx := eventRingHead
	eventRing[idx] = LoopEvent{
		EventType: eventType,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events from oldest to newest
func Events() []LoopEvent {
	events := make([]LoopEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// eventName returns the dump label for an event type
func eventName(eventType uint8) string {
	switch eventType {
	case EvtPulseStart:
		return "PULSE_START"
	case EvtPulseEnd:
		return "PULSE_END"
	case EvtRelayToSoft:
		return "RELAY_TO_SOFT"
	case EvtRelayToHard:
		return "RELAY_TO_HARD"
	case EvtBoot:
		return "BOOT"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents outputs the event ring through the debug writer, bypassing the enable flag
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.EventType) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the event buffer
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = LoopEvent{}
	}
	eventRingHead = 0
}
