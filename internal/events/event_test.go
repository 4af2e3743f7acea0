package events

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParsesEventsWrapper(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	raw := `{"events":[{"start_utc":"2024-06-01T19:00:00Z","venue_lat":40.1,"venue_lon":-73.2,"venue_name":"Arena","name":"Game Night","segment":"sports","classification":"major"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	evs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("len(evs) = %d, want 1", len(evs))
	}
	if evs[0].VenueName != "Arena" || evs[0].Segment != "sports" {
		t.Fatalf("event = %+v, unexpected fields", evs[0])
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
