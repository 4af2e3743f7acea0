package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPassesValidation(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default() failed validation: %v", err)
	}
}

func TestValidateRejectsBucketMinutesNotDividingDay(t *testing.T) {
	c := Default()
	c.Fleet.BucketMinutes = 13
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for bucket_minutes that does not divide 1440")
	}
}

func TestValidateRejectsRatioOutOfRange(t *testing.T) {
	c := Default()
	c.Fleet.TotalBikesRatio = 1.5
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for total_bikes_ratio > 1")
	}
}

func TestValidateRejectsNegativeCostWeight(t *testing.T) {
	c := Default()
	c.Cost.WEmpty = -1.0
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for a negative w_empty")
	}
}

func TestValidateRejectsNegativeThreshold(t *testing.T) {
	c := Default()
	c.Cost.EmptyThreshold = -0.1
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for a negative empty_threshold")
	}
}

func TestValidateRejectsBadServiceWindow(t *testing.T) {
	c := Default()
	c.Planner.ServiceStartHour = 20
	c.Planner.ServiceEndHour = 8
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for service_end_hour <= service_start_hour")
	}
}

func TestValidateNilConfigErrors(t *testing.T) {
	var c *Config
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error validating a nil config")
	}
}

func TestLoadMergesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	raw := "planner:\n  moves_budget: 12\ncost:\n  w_empty: 2.0\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Planner.MovesBudget != 12 {
		t.Fatalf("MovesBudget = %d, want 12", c.Planner.MovesBudget)
	}
	if c.Cost.WEmpty != 2.0 {
		t.Fatalf("WEmpty = %v, want 2.0", c.Cost.WEmpty)
	}
	// Untouched defaults must survive the merge.
	if c.Fleet.BucketMinutes != 15 {
		t.Fatalf("BucketMinutes = %d, want default 15", c.Fleet.BucketMinutes)
	}
}

func TestLoadRejectsInvalidMergedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	raw := "fleet:\n  bucket_minutes: 7\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected Load to validate and reject bucket_minutes=7")
	}
}

func TestLoadUncheckedResolvesScenarioFileOverlayRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	fleetPath := filepath.Join(dir, "fleet.yaml")
	if err := os.WriteFile(fleetPath, []byte("fleet:\n  total_bikes: 500\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	mainPath := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(mainPath, []byte("scenario_file: fleet.yaml\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := LoadUnchecked(mainPath)
	if err != nil {
		t.Fatalf("LoadUnchecked: %v", err)
	}
	if c.Fleet.TotalBikes != 500 {
		t.Fatalf("TotalBikes = %d, want 500 (from the overlay file)", c.Fleet.TotalBikes)
	}
}

func TestMergeFleetOverlaysOnlyNonZeroFields(t *testing.T) {
	base := FleetConfig{BucketMinutes: 15, TotalBikesRatio: 0.6, TotalBikes: 0}
	override := FleetConfig{TotalBikes: 200}

	merged := MergeFleet(base, override)
	if merged.BucketMinutes != 15 {
		t.Fatalf("BucketMinutes = %d, want 15 (unchanged)", merged.BucketMinutes)
	}
	if merged.TotalBikes != 200 {
		t.Fatalf("TotalBikes = %d, want 200 (overridden)", merged.TotalBikes)
	}
}
