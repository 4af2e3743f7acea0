package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

func TestWriteSnapshotsCSVUsesHourColumnForHourlyMode(t *testing.T) {
	snapshots := []model.Snapshot{
		{StationID: "A", MinuteOfDay: 120, Bikes: 5, EmptyDocks: 5, Capacity: 10},
	}
	path := filepath.Join(t.TempDir(), "snapshots.csv")
	if err := WriteSnapshotsCSV(path, snapshots, model.HourlyOutput()); err != nil {
		t.Fatalf("WriteSnapshotsCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "station_id,hour,bikes,empty_docks,capacity" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "A,2,5,5,10" {
		t.Fatalf("row = %q, want A,2,5,5,10 (minute 120 -> hour 2)", lines[1])
	}
}

func TestWriteSnapshotsCSVUsesMinuteColumnForSubHourMode(t *testing.T) {
	snapshots := []model.Snapshot{
		{StationID: "A", MinuteOfDay: 45, Bikes: 3, EmptyDocks: 7, Capacity: 10},
	}
	path := filepath.Join(t.TempDir(), "snapshots.csv")
	if err := WriteSnapshotsCSV(path, snapshots, model.SubHourOutput(15)); err != nil {
		t.Fatalf("WriteSnapshotsCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if lines[0] != "station_id,t_min,bikes,empty_docks,capacity" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "A,45,3,7,10" {
		t.Fatalf("row = %q, want A,45,3,7,10", lines[1])
	}
}

func TestWriteAppliedMovesCSVIncludesRequestedAndDistance(t *testing.T) {
	moves := []model.AppliedMove{
		{
			TruckMove: model.TruckMove{From: "A", To: "B", Bikes: 3, When: model.At(60), DistanceKm: 1.25},
			Requested: 5,
		},
		{
			TruckMove: model.TruckMove{From: "C", To: "D", Bikes: 2, When: model.Unscheduled()},
			Requested: 2,
		},
	}
	path := filepath.Join(t.TempDir(), "moves.csv")
	if err := WriteAppliedMovesCSV(path, moves); err != nil {
		t.Fatalf("WriteAppliedMovesCSV: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[1] != "60,A,B,3,5,1.250" {
		t.Fatalf("row 1 = %q, want 60,A,B,3,5,1.250", lines[1])
	}
	if lines[2] != "0,C,D,2,2,0.000" {
		t.Fatalf("row 2 (unscheduled move) = %q, want t_min=0", lines[2])
	}
}
