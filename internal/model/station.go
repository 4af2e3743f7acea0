package model

import "errors"

// Station is an immutable station record: identity, dock capacity, and
// coordinates used for the optional distance penalty in the day planner.
type Station struct {
	ID       string
	Name     string
	Capacity int
	Lat      float64
	Lon      float64
}

func (s Station) Validate() error {
	if s.ID == "" {
		return errors.New("station id must not be empty")
	}
	if s.Capacity < 0 {
		return errors.New("station capacity must be >= 0")
	}
	return nil
}

// Registry is the loaded, deduplicated set of stations for one invocation,
// with a dense integer index assigned to each station id (see Index).
// Registries are built once at load and treated as read-only thereafter.
type Registry struct {
	Stations []Station
	indexOf  map[string]int
}

func NewRegistry(stations []Station) (*Registry, error) {
	indexOf := make(map[string]int, len(stations))
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := indexOf[s.ID]; dup {
			continue
		}
		indexOf[s.ID] = len(out)
		out = append(out, s)
	}
	return &Registry{Stations: out, indexOf: indexOf}, nil
}

// Index returns the dense index for a station id, or -1 if unknown.
func (r *Registry) Index(stationID string) int {
	if r == nil {
		return -1
	}
	if idx, ok := r.indexOf[stationID]; ok {
		return idx
	}
	return -1
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Stations)
}

func (r *Registry) Station(idx int) Station {
	return r.Stations[idx]
}

// TotalCapacity sums capacity across every station in the registry.
func (r *Registry) TotalCapacity() int {
	total := 0
	for _, s := range r.Stations {
		total += s.Capacity
	}
	return total
}

// StationCluster maps a station id to an integer cluster id, produced by an
// external clustering collaborator (k-means over hourly departure/arrival
// signatures) and consumed here only as a cost-weighting key.
type StationCluster map[string]int

// ClusterOf returns the cluster id for a station, or -1 if the station has
// no assigned cluster (including when clusters is nil).
func (c StationCluster) ClusterOf(stationID string) int {
	if c == nil {
		return -1
	}
	if id, ok := c[stationID]; ok {
		return id
	}
	return -1
}
