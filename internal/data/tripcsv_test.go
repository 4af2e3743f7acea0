package data

import (
	"strings"
	"testing"
	"time"
)

func TestTripCSVLoaderParsesRows(t *testing.T) {
	csv := "Start Time,End Time,Start Station Id,End Station Id\n" +
		"06/01/2024 08:00,06/01/2024 08:15,A,B\n"

	result, err := TripCSVLoader{}.LoadFrom(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(result.Trips) != 1 {
		t.Fatalf("len(Trips) = %d, want 1", len(result.Trips))
	}
	trip := result.Trips[0]
	if trip.StartStation != "A" || trip.EndStation != "B" {
		t.Fatalf("trip = %+v, want StartStation=A EndStation=B", trip)
	}
	if result.SkippedRows != 0 {
		t.Fatalf("SkippedRows = %d, want 0", result.SkippedRows)
	}
}

func TestTripCSVLoaderSkipsMalformedTimestamps(t *testing.T) {
	csv := "Start Time,End Time,Start Station Id,End Station Id\n" +
		"not-a-time,06/01/2024 08:15,A,B\n" +
		"06/01/2024 08:00,06/01/2024 08:15,A,B\n"

	result, err := TripCSVLoader{}.LoadFrom(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if result.SkippedRows != 1 {
		t.Fatalf("SkippedRows = %d, want 1", result.SkippedRows)
	}
	if len(result.Trips) != 1 {
		t.Fatalf("len(Trips) = %d, want 1", len(result.Trips))
	}
}

func TestTripCSVLoaderMissingColumnErrors(t *testing.T) {
	csv := "Start Time,End Time,Start Station Id\n06/01/2024 08:00,06/01/2024 08:15,A\n"
	_, err := TripCSVLoader{}.LoadFrom(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected an error for a missing End Station Id column")
	}
}

func TestTripCSVLoaderCustomTimestampParser(t *testing.T) {
	csv := "Start Time,End Time,Start Station Id,End Station Id\n" +
		"2024-06-01T08:00:00Z,2024-06-01T08:15:00Z,A,B\n"

	loader := TripCSVLoader{ParseTimestamp: func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339, s)
	}}
	result, err := loader.LoadFrom(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if len(result.Trips) != 1 {
		t.Fatalf("len(Trips) = %d, want 1", len(result.Trips))
	}
}
