package events

import (
	"math"

	"github.com/AndrewGordienko/rebalance3/internal/geo"
	"github.com/AndrewGordienko/rebalance3/internal/model"
)

const defaultDecayKm = 1.5

// Multiplier computes the bike/dock demand multiplier for one station at one
// hour of day, from proximity to same-day venue events: a station near an
// event that started this hour sees elevated dropoff pressure beforehand
// (more arrivals) and elevated pickup pressure afterward (more departures),
// decaying exponentially with great-circle distance to the venue.
func Multiplier(events []Event, station model.Station, hour int, decayKm float64) (bikeMult, dockMult float64) {
	if decayKm <= 0 {
		decayKm = defaultDecayKm
	}
	bikeMult, dockMult = 1.0, 1.0
	for _, e := range events {
		d := geo.HaversineKm(station.Lat, station.Lon, e.VenueLat, e.VenueLon)
		decay := math.Exp(-d / decayKm)
		eventHour := e.StartUTC.Hour()

		if hour <= eventHour {
			dockMult += decay // inbound: more dropoffs near the venue pre-event
		} else {
			bikeMult += decay // outbound: more pickups near the venue post-event
		}
	}
	return bikeMult, dockMult
}

// StationAdapter implements cost.Multiplier by looking up each station's own
// coordinates and applying Multiplier. Per Kernel.Evaluate's call contract it
// is keyed by whatever integer the caller threads through as "cluster" — when
// using this adapter the caller passes each station's own dense registry
// index as that argument instead of a real cluster id, since event proximity
// is a per-station signal, not a per-cluster one.
type StationAdapter struct {
	Events   []Event
	Stations []model.Station
	DecayKm  float64
}

func (a StationAdapter) BikeDockMultiplier(stationIdx, hour int) (bikeMult, dockMult float64) {
	if stationIdx < 0 || stationIdx >= len(a.Stations) {
		return 1, 1
	}
	return Multiplier(a.Events, a.Stations[stationIdx], hour, a.DecayKm)
}
