package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

type stationsDoc struct {
	Data struct {
		Stations []stationRecord `json:"stations"`
	} `json:"data"`
}

type stationRecord struct {
	StationID string  `json:"station_id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// LoadRegistry reads a station registry JSON document in the
// {"data":{"stations":[...]}} shape and builds a model.Registry.
func LoadRegistry(path string) (*model.Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(raw)
}

// ParseRegistry parses already-read registry JSON bytes, exposed separately
// so a remote-fetched body can be parsed without a temp file.
func ParseRegistry(raw []byte) (*model.Registry, error) {
	var doc stationsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("data: parsing station registry: %w", err)
	}
	stations := make([]model.Station, 0, len(doc.Data.Stations))
	for _, r := range doc.Data.Stations {
		stations = append(stations, model.Station{
			ID:       r.StationID,
			Name:     r.Name,
			Capacity: r.Capacity,
			Lat:      r.Lat,
			Lon:      r.Lon,
		})
	}
	return model.NewRegistry(stations)
}
