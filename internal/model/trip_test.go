package model

import (
	"testing"
	"time"
)

func TestTripSplitEvents(t *testing.T) {
	dayStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := Trip{
		StartTime:    dayStart.Add(90 * time.Minute),
		EndTime:      dayStart.Add(105 * time.Minute),
		StartStation: "A",
		EndStation:   "B",
	}

	start, end := trip.SplitEvents(dayStart)
	if start.Minute != 90 || start.Kind != EventStart || start.Station != "A" {
		t.Fatalf("start event = %+v, want Minute=90 Kind=EventStart Station=A", start)
	}
	if end.Minute != 105 || end.Kind != EventEnd || end.Station != "B" {
		t.Fatalf("end event = %+v, want Minute=105 Kind=EventEnd Station=B", end)
	}
}

func TestTripSplitEventsOutsideWindowCanBeNegativeOrOverflow(t *testing.T) {
	dayStart := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := Trip{
		StartTime:    dayStart.Add(-10 * time.Minute),
		EndTime:      dayStart.Add(1450 * time.Minute),
		StartStation: "A",
		EndStation:   "B",
	}
	start, end := trip.SplitEvents(dayStart)
	if start.Minute != -10 {
		t.Fatalf("start.Minute = %d, want -10", start.Minute)
	}
	if end.Minute != 1450 {
		t.Fatalf("end.Minute = %d, want 1450", end.Minute)
	}
}

func TestEventKindString(t *testing.T) {
	if EventStart.String() != "start" {
		t.Fatalf("EventStart.String() = %q, want start", EventStart.String())
	}
	if EventEnd.String() != "end" {
		t.Fatalf("EventEnd.String() = %q, want end", EventEnd.String())
	}
}
