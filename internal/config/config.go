// Package config loads the YAML scenario configuration that drives one
// midnight-allocator + day-planner + replay run, grounded on the teacher's
// two-phase Load/LoadUnchecked pattern (internal/config/config.go).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load fleet parameters from a separate YAML (e.g.
	// examples/fleets/*.yaml). If both ScenarioFile and Fleet are provided,
	// Fleet overrides ScenarioFile, matching the teacher's BatteryFile
	// overlay semantics.
	ScenarioFile string       `yaml:"scenario_file"`
	Fleet        FleetConfig  `yaml:"fleet"`
	Cost         CostConfig   `yaml:"cost"`
	Planner      PlannerConfig `yaml:"planner"`
}

// FleetConfig sizes the fleet and the bucket resolution.
type FleetConfig struct {
	BucketMinutes   int     `yaml:"bucket_minutes"`
	TotalBikesRatio float64 `yaml:"total_bikes_ratio"`
	TotalBikes      int     `yaml:"total_bikes"`
}

// CostConfig holds the station cost kernel's weights.
type CostConfig struct {
	EmptyThreshold    float64 `yaml:"empty_threshold"`
	FullThreshold     float64 `yaml:"full_threshold"`
	WEmpty            float64 `yaml:"w_empty"`
	WFull             float64 `yaml:"w_full"`
	WBikeNeed         float64 `yaml:"w_bike_need"`
	WDockNeed         float64 `yaml:"w_dock_need"`
	PickupBufferMult  float64 `yaml:"pickup_buffer_mult"`
	DropoffBufferMult float64 `yaml:"dropoff_buffer_mult"`
	LookaheadMinutes  int     `yaml:"lookahead_minutes"`
}

// PlannerConfig holds the day planner's move-budget, candidate-selection,
// and distance-guard parameters.
type PlannerConfig struct {
	MovesBudget               int     `yaml:"moves_budget"`
	TruckCap                  int     `yaml:"truck_cap"`
	DonorMinBikesLeft         int     `yaml:"donor_min_bikes_left"`
	ReceiverMinEmptyDocksLeft int     `yaml:"receiver_min_empty_docks_left"`
	ServiceStartHour          int     `yaml:"service_start_hour"`
	ServiceEndHour            int     `yaml:"service_end_hour"`
	CandidateTimeTopK         int     `yaml:"candidate_time_top_k"`
	TopKSources               int     `yaml:"top_k_sources"`
	TopKSinks                 int     `yaml:"top_k_sinks"`
	UseDistancePenalty        bool    `yaml:"use_distance_penalty"`
	DistancePenaltyPerKm      float64 `yaml:"distance_penalty_per_km"`
	MaxPairKm                 float64 `yaml:"max_pair_km"`
	MovesPerHour              int     `yaml:"moves_per_hour"`
}

// Default returns the spec's documented defaults.
func Default() Config {
	return Config{
		Fleet: FleetConfig{
			BucketMinutes:   15,
			TotalBikesRatio: 0.60,
		},
		Cost: CostConfig{
			EmptyThreshold:    0.10,
			FullThreshold:     0.90,
			WEmpty:            1.0,
			WFull:             1.0,
			WBikeNeed:         1.0,
			WDockNeed:         1.4,
			PickupBufferMult:  1.0,
			DropoffBufferMult: 1.0,
			LookaheadMinutes:  180,
		},
		Planner: PlannerConfig{
			TruckCap:                  20,
			DonorMinBikesLeft:         3,
			ReceiverMinEmptyDocksLeft: 2,
			ServiceStartHour:          8,
			ServiceEndHour:            20,
			CandidateTimeTopK:         8,
			TopKSources:               10,
			TopKSinks:                 10,
			UseDistancePenalty:        true,
			DistancePenaltyPerKm:      0.06,
			MaxPairKm:                 10.0,
		},
	}
}

// Load reads, merges, and validates a scenario config.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config onto the documented defaults, but
// does not validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}

	if c.ScenarioFile != "" {
		scenarioPath := c.ScenarioFile
		if !filepath.IsAbs(scenarioPath) {
			cand := filepath.Join(filepath.Dir(path), scenarioPath)
			if _, err := os.Stat(cand); err == nil {
				scenarioPath = cand
			}
		}
		loaded, err := loadFleetFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		// Precedence: defaults, then the scenario file, then fleet fields
		// set explicitly in this config.
		var explicit fleetFileWrapper
		if err := yaml.Unmarshal(raw, &explicit); err != nil {
			return nil, err
		}
		c.Fleet = MergeFleet(MergeFleet(Default().Fleet, loaded), explicit.Fleet)
	}
	return &c, nil
}

// ValidationError reports a configuration field that failed validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Validate checks the configuration's internal consistency.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Fleet.BucketMinutes <= 0 || 1440%c.Fleet.BucketMinutes != 0 {
		return &ValidationError{"fleet.bucket_minutes", "must be positive and divide 1440"}
	}
	if c.Fleet.TotalBikesRatio < 0 || c.Fleet.TotalBikesRatio > 1 {
		return &ValidationError{"fleet.total_bikes_ratio", "must be in [0, 1]"}
	}
	costWeights := []struct {
		field string
		value float64
	}{
		{"cost.empty_threshold", c.Cost.EmptyThreshold},
		{"cost.full_threshold", c.Cost.FullThreshold},
		{"cost.w_empty", c.Cost.WEmpty},
		{"cost.w_full", c.Cost.WFull},
		{"cost.w_bike_need", c.Cost.WBikeNeed},
		{"cost.w_dock_need", c.Cost.WDockNeed},
		{"cost.pickup_buffer_mult", c.Cost.PickupBufferMult},
		{"cost.dropoff_buffer_mult", c.Cost.DropoffBufferMult},
	}
	for _, w := range costWeights {
		if w.value < 0 {
			return &ValidationError{w.field, "must be >= 0"}
		}
	}
	if c.Planner.ServiceEndHour <= c.Planner.ServiceStartHour {
		return &ValidationError{"planner.service_end_hour", "must be greater than service_start_hour"}
	}
	if c.Planner.ServiceStartHour < 0 || c.Planner.ServiceEndHour > 24 {
		return &ValidationError{"planner.service_start_hour", "service window must fall within [0, 24]"}
	}
	return nil
}

type fleetFileWrapper struct {
	Fleet FleetConfig `yaml:"fleet"`
}

func loadFleetFile(path string) (FleetConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return FleetConfig{}, err
	}
	var w fleetFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return FleetConfig{}, err
	}
	return w.Fleet, nil
}

// MergeFleet overlays non-zero fields from override onto base, matching the
// teacher's MergeBattery overlay semantics.
func MergeFleet(base, override FleetConfig) FleetConfig {
	out := base
	if override.BucketMinutes != 0 {
		out.BucketMinutes = override.BucketMinutes
	}
	if override.TotalBikesRatio != 0 {
		out.TotalBikesRatio = override.TotalBikesRatio
	}
	if override.TotalBikes != 0 {
		out.TotalBikes = override.TotalBikes
	}
	return out
}
