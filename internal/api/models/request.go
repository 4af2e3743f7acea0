package models

// PlanRequest represents the request body for running a full day
// (midnight allocation + day planner + replay) pipeline.
type PlanRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     PlanConfig       `json:"config" binding:"required"`
	Options    PlanOptions      `json:"options,omitempty"`
}

// DataSourceConfig defines where the trip CSV, station registry, and
// optional cluster/event overlay files live.
type DataSourceConfig struct {
	TripsCSVPath string `json:"trips_csv_path" binding:"required"`
	RegistryPath string `json:"registry_path" binding:"required"`
	ClustersPath string `json:"clusters_path,omitempty"`
	EventsPath   string `json:"events_path,omitempty"`
	Day          string `json:"day" binding:"required"` // YYYY-MM-DD
}

// PlanConfig contains fleet, cost, and planner configuration for one run.
type PlanConfig struct {
	ScenarioFile string        `json:"scenario_file,omitempty"`
	Fleet        FleetConfig   `json:"fleet,omitempty"`
	Cost         CostConfig    `json:"cost,omitempty"`
	Planner      PlannerConfig `json:"planner,omitempty"`
}

// FleetConfig sizes the fleet and bucket resolution.
type FleetConfig struct {
	BucketMinutes   int     `json:"bucket_minutes,omitempty"`
	TotalBikesRatio float64 `json:"total_bikes_ratio,omitempty"`
	TotalBikes      int     `json:"total_bikes,omitempty"`
}

// CostConfig holds the station cost kernel's weights.
type CostConfig struct {
	EmptyThreshold    float64 `json:"empty_threshold,omitempty"`
	FullThreshold     float64 `json:"full_threshold,omitempty"`
	WEmpty            float64 `json:"w_empty,omitempty"`
	WFull             float64 `json:"w_full,omitempty"`
	WBikeNeed         float64 `json:"w_bike_need,omitempty"`
	WDockNeed         float64 `json:"w_dock_need,omitempty"`
	PickupBufferMult  float64 `json:"pickup_buffer_mult,omitempty"`
	DropoffBufferMult float64 `json:"dropoff_buffer_mult,omitempty"`
	LookaheadMinutes  int     `json:"lookahead_minutes,omitempty"`
}

// PlannerConfig holds the day planner's move-budget and candidate-selection
// parameters.
type PlannerConfig struct {
	MovesBudget               int     `json:"moves_budget,omitempty"`
	TruckCap                  int     `json:"truck_cap,omitempty"`
	DonorMinBikesLeft         int     `json:"donor_min_bikes_left,omitempty"`
	ReceiverMinEmptyDocksLeft int     `json:"receiver_min_empty_docks_left,omitempty"`
	ServiceStartHour          int     `json:"service_start_hour,omitempty"`
	ServiceEndHour            int     `json:"service_end_hour,omitempty"`
	CandidateTimeTopK         int     `json:"candidate_time_top_k,omitempty"`
	TopKSources               int     `json:"top_k_sources,omitempty"`
	TopKSinks                 int     `json:"top_k_sinks,omitempty"`
	UseDistancePenalty        bool    `json:"use_distance_penalty,omitempty"`
	DistancePenaltyPerKm      float64 `json:"distance_penalty_per_km,omitempty"`
	MaxPairKm                 float64 `json:"max_pair_km,omitempty"`
	MovesPerHour              int     `json:"moves_per_hour,omitempty"`
}

// PlanOptions contains optional run parameters.
type PlanOptions struct {
	IncludeSnapshots bool `json:"include_snapshots,omitempty"`
}

// CompareScenariosRequest requests running the same day under multiple
// planner/cost variations for comparison.
type CompareScenariosRequest struct {
	DataSource DataSourceConfig    `json:"data_source" binding:"required"`
	BaseConfig PlanConfig          `json:"base_config" binding:"required"`
	Variations []ScenarioVariation `json:"variations" binding:"required"`
}

// ScenarioVariation names one configuration variant to compare.
type ScenarioVariation struct {
	Name   string     `json:"name" binding:"required"`
	Config PlanConfig `json:"config" binding:"required"`
}

// RankRequest requests a risk-ranked list of stations for a given day.
type RankRequest struct {
	TripsCSVPath string `form:"trips_csv_path" binding:"required"`
	RegistryPath string `form:"registry_path" binding:"required"`
	Day          string `form:"day" binding:"required"`
	Limit        int    `form:"limit,omitempty"` // default: 10
}
