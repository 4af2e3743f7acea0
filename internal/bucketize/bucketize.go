// Package bucketize converts a day's trips into per-station, per-bucket
// pickup/dropoff/delta arrays, grounded on the original source's
// bucketize_trips (rebalance3/trucks/day_planner.py).
package bucketize

import (
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// Result is the bucketized trip signal plus the per-row skip diagnostics
// required by the "explicit Result per row" design note: a silently
// discarded trip still increments a counter rather than vanishing
// unaccountably.
type Result struct {
	Arrays *model.StationArrays

	SelfLoopSkipped    int
	UnknownStation     int
	OutsideDayWindow   int
}

// DayWindow is the half-open local-time interval [Start, Start+24h) that
// defines "the operating day" for bucket assignment.
type DayWindow struct {
	Start time.Time
}

func (w DayWindow) End() time.Time { return w.Start.Add(24 * time.Hour) }

func (w DayWindow) contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End())
}

func (w DayWindow) minuteOfDay(t time.Time) int {
	d := t.Sub(w.Start)
	return int(d.Minutes())
}

// Bucketize builds per-station pickup/dropoff/delta arrays from a trip
// slice, a station registry, the day window, and the bucket width.
//
// Rules (spec §4.A): a trip contributes a pickup to its start station at its
// start bucket iff the start timestamp lies in the day window; a dropoff
// likewise for the end timestamp at the end station. Self-loop trips
// (identical start/end station) are discarded. Trips referencing a station
// outside the registry are discarded. None of these are fatal; only an
// invalid bucketMinutes is.
func Bucketize(trips []model.Trip, reg *model.Registry, window DayWindow, bucketMinutes int) (*Result, error) {
	b, err := model.BucketCount(bucketMinutes)
	if err != nil {
		return nil, err
	}
	arrays := model.NewStationArrays(reg.Len(), b)
	res := &Result{Arrays: arrays}

	for _, trip := range trips {
		if trip.StartStation == trip.EndStation {
			res.SelfLoopSkipped++
			continue
		}
		startIdx := reg.Index(trip.StartStation)
		endIdx := reg.Index(trip.EndStation)
		if startIdx < 0 || endIdx < 0 {
			res.UnknownStation++
			continue
		}

		countedAny := false
		if window.contains(trip.StartTime) {
			bucket := model.BucketOf(window.minuteOfDay(trip.StartTime), bucketMinutes)
			if bucket >= 0 && bucket < b {
				arrays.AddPickup(startIdx, bucket)
				countedAny = true
			}
		}
		if window.contains(trip.EndTime) {
			bucket := model.BucketOf(window.minuteOfDay(trip.EndTime), bucketMinutes)
			if bucket >= 0 && bucket < b {
				arrays.AddDropoff(endIdx, bucket)
				countedAny = true
			}
		}
		if !countedAny {
			res.OutsideDayWindow++
		}
	}

	return res, nil
}
