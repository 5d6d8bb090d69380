package core

import (
	"strings"
	"testing"
)

func TestEventRing(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	SetTime(42)
	RecordEvent(EvtMotorSpeed, 1, 200, 0)
	RecordEvent(EvtCutoff, 0, 6100, 0)

	events := Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Kind != EvtMotorSpeed || events[0].Value1 != 200 || events[0].Clock != 42 {
		t.Errorf("Unexpected first event: %+v", events[0])
	}
	if events[1].Kind != EvtCutoff {
		t.Errorf("Expected cutoff event second, got %+v", events[1])
	}
}

func TestEventRingWraps(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	for i := 0; i < EventRingSize+5; i++ {
		RecordEvent(EvtBatterySample, 0, uint32(i), 0)
	}

	events := Events()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	if events[0].Value1 != 5 {
		t.Errorf("Expected oldest surviving event to be 5, got %d", events[0].Value1)
	}
}

func TestDumpEvents(t *testing.T) {
	ClearEvents()
	defer ClearEvents()

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	defer SetDebugWriter(func(string) {})

	RecordEvent(EvtMotorDirection, 2, 1, 0)
	DumpEvents()

	if len(lines) != 3 {
		t.Fatalf("Expected header, one event and footer, got %v", lines)
	}
	if !strings.Contains(lines[1], "MOTOR_DIR oid=2") {
		t.Errorf("Unexpected event line %q", lines[1])
	}
}

func TestDebugPrintlnRespectsEnabled(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")
	SetDebugEnabled(false)

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("Expected only the enabled message, got %v", got)
	}
}
