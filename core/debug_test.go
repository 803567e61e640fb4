package core

import (
	"strings"
	"testing"
)

func TestEventRing(t *testing.T) {
	ClearEvents()

	for i := uint32(0); i < EventRingSize+5; i++ {
		RecordEvent(EvtPulseStart, i, 0, i)
	}

	events := Events()
	if len(events) != EventRingSize {
		t.Fatalf("Expected %d events, got %d", EventRingSize, len(events))
	}
	// Oldest surviving event is the sixth one recorded
	if events[0].Clock != 5 {
		t.Errorf("Expected oldest clock 5, got %d", events[0].Clock)
	}
	if events[len(events)-1].Clock != EventRingSize+4 {
		t.Errorf("Expected newest clock %d, got %d", EventRingSize+4, events[len(events)-1].Clock)
	}

	ClearEvents()
	if len(Events()) != 0 {
		t.Error("Ring should be empty after clear")
	}
}

func TestPulseEventsAndDump(t *testing.T) {
	ClearEvents()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	defer func() {
		SetDebugEnabled(false)
		SetDebugWriter(func(string) {})
	}()

	loop := NewLoop(VariantPulse, NewMockGPIODriver(), nil, nil)
	if err := loop.Init(0); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	loop.Step(270000)
	loop.Step(271000)

	events := Events()
	if len(events) != 3 {
		t.Fatalf("Expected boot + 2 pulse events, got %d", len(events))
	}
	if events[0].EventType != EvtBoot || events[1].EventType != EvtPulseStart || events[2].EventType != EvtPulseEnd {
		t.Errorf("Unexpected event order: %+v", events)
	}
	if events[0].Value1 != 1 {
		t.Errorf("Expected boot event to record variant index 1, got %d", events[0].Value1)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "[PULSE] PULSING pin=8 level=LOW t=270000") {
		t.Errorf("Missing pulse start log line in:\n%s", joined)
	}

	lines = nil
	DumpEvents()
	if len(lines) != 5 {
		t.Fatalf("Expected header, 3 events, footer; got %d lines", len(lines))
	}
	if lines[2] != "[EVENTS] PULSE_START clock=270000 v1=8 v2=0" {
		t.Errorf("Unexpected dump line: %q", lines[2])
	}
}

func TestDebugDisabled(t *testing.T) {
	called := false
	SetDebugWriter(func(string) { called = true })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("quiet")
	if called {
		t.Error("Writer should not be called while debug is disabled")
	}
	if IsDebugEnabled() {
		t.Error("Debug should report disabled")
	}
}

func TestUtoa(t *testing.T) {
	tests := []struct {
		in   uint32
		want string
	}{
		{0, "0"},
		{7, "7"},
		{270000, "270000"},
		{4294967295, "4294967295"},
	}
	for _, tt := range tests {
		if got := utoa(tt.in); got != tt.want {
			t.Errorf("utoa(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
