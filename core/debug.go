package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event records something a device did, for post-mortem dumps
type Event struct {
	Kind   uint8  // Event kind code
	OID    uint8  // Device that produced it (motor port, battery channel)
	Clock  uint32 // System clock at event
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event kind codes
const (
	EvtMotorDirection = 1 // Value1 = direction
	EvtMotorSpeed     = 2 // Value1 = speed
	EvtBatterySample  = 3 // Value1 = raw level, Value2 = millivolts
	EvtCutoff         = 4 // Value1 = millivolts that tripped the cutoff
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether DebugPrintln writes anything
	debugEnabled bool = false

	// event ring, shared by the main loop and timer handlers
	eventLock     Section
	eventRing     [EventRingSize]Event
	eventRingHead uint8

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16)
	go debugOutputWorker()
}

func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output. Safe to call from
// timer handlers: it never blocks and drops the message when the queue is full.
func DebugAsync(msg string) {
	if debugChan != nil {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordEvent appends an event to the ring, overwriting the oldest one
func RecordEvent(kind, oid uint8, value1, value2 uint32) {
	clock := GetTime()
	Synchronized(&eventLock, func() {
		idx := eventRingHead
		eventRing[idx] = Event{
			Kind:   kind,
			OID:    oid,
			Clock:  clock,
			Value1: value1,
			Value2: value2,
		}
		eventRingHead = (idx + 1) % EventRingSize
	})
}

// Events returns the recorded events, oldest first
func Events() []Event {
	return SynchronizedValue(&eventLock, func() []Event {
		out := make([]Event, 0, EventRingSize)
		for i := uint8(0); i < EventRingSize; i++ {
			evt := eventRing[(eventRingHead+i)%EventRingSize]
			if evt.Kind == 0 {
				continue
			}
			out = append(out, evt)
		}
		return out
	})
}

// DumpEvents writes the event ring through the debug writer
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		var name string
		switch evt.Kind {
		case EvtMotorDirection:
			name = "MOTOR_DIR"
		case EvtMotorSpeed:
			name = "MOTOR_SPEED"
		case EvtBatterySample:
			name = "BATTERY"
		case EvtCutoff:
			name = "CUTOFF!"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[EVENTS] " + name +
			" oid=" + itoa(int(evt.OID)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents empties the event ring
func ClearEvents() {
	Synchronized(&eventLock, func() {
		for i := range eventRing {
			eventRing[i] = Event{}
		}
		eventRingHead = 0
	})
}
