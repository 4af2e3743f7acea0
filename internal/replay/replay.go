// Package replay deterministically steps a day's trip event stream and a
// planned move list through fixed-width buckets, producing per-bucket station
// snapshots and the record of moves actually applied, grounded on
// rebalance3/baseline/station_state_by_hour.py's simulation loop.
package replay

import (
	"sort"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// Params configures one replay run.
type Params struct {
	BucketMinutes int

	// DonorMinBikesLeft/ReceiverMinEmptyDocksLeft, when > 0, apply the
	// planner's safety-floor clamp a second time during replay, guaranteeing
	// replay never violates planner invariants even if the plan was built
	// under different assumptions. Zero disables the extra clamp.
	DonorMinBikesLeft         int
	ReceiverMinEmptyDocksLeft int

	// MovesPerHour, when > 0, caps applied moves per wall-clock hour;
	// excess moves for that hour are dropped, first-N by original plan
	// order (the spec's explicit disambiguation for ties).
	MovesPerHour int
}

// Replay steps through buckets 0..B-1, consuming trip events and applying
// plan moves scheduled at each bucket's start minute, in that order.
func Replay(reg *model.Registry, x0 []int, events []model.TripEvent, plan model.Plan, p Params) (model.ScenarioResult, error) {
	b, err := model.BucketCount(p.BucketMinutes)
	if err != nil {
		return model.ScenarioResult{}, err
	}
	n := reg.Len()

	caps := make([]int, n)
	bikes := make([]int, n)
	for i, s := range reg.Stations {
		caps[i] = s.Capacity
		if i < len(x0) {
			bikes[i] = clamp(x0[i], 0, caps[i])
		}
	}

	sortedEvents := append([]model.TripEvent(nil), events...)
	sort.SliceStable(sortedEvents, func(i, j int) bool { return sortedEvents[i].Minute < sortedEvents[j].Minute })

	moves := append([]model.TruckMove(nil), plan.Moves...)
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].When.IsScheduled() && moves[j].When.IsScheduled() && moves[i].When.Minute() < moves[j].When.Minute()
	})

	result := model.ScenarioResult{BucketMinutes: p.BucketMinutes}

	eventIdx := 0
	moveIdx := 0
	hourCounts := map[int]int{}

	for bucket := 0; bucket < b; bucket++ {
		bucketEndMinute := (bucket + 1) * p.BucketMinutes
		bucketStartMinute := bucket * p.BucketMinutes

		for eventIdx < len(sortedEvents) && sortedEvents[eventIdx].Minute < bucketEndMinute {
			ev := sortedEvents[eventIdx]
			eventIdx++
			idx := reg.Index(ev.Station)
			if idx < 0 {
				continue
			}
			switch ev.Kind {
			case model.EventStart:
				if bikes[idx] > 0 {
					bikes[idx]--
				}
			case model.EventEnd:
				if bikes[idx] < caps[idx] {
					bikes[idx]++
				}
			}
		}

		for moveIdx < len(moves) && moves[moveIdx].When.IsScheduled() && moves[moveIdx].When.Minute() == bucketStartMinute {
			mv := moves[moveIdx]
			moveIdx++

			srcIdx := reg.Index(mv.From)
			snkIdx := reg.Index(mv.To)
			if srcIdx < 0 || snkIdx < 0 {
				continue
			}

			hour := bucketStartMinute / 60
			if p.MovesPerHour > 0 && hourCounts[hour] >= p.MovesPerHour {
				continue
			}

			moved := mv.Bikes
			if v := bikes[srcIdx]; v < moved {
				moved = v
			}
			if v := caps[snkIdx] - bikes[snkIdx]; v < moved {
				moved = v
			}
			if p.DonorMinBikesLeft > 0 {
				if v := bikes[srcIdx] - p.DonorMinBikesLeft; v < moved {
					moved = v
				}
			}
			if p.ReceiverMinEmptyDocksLeft > 0 {
				if v := (caps[snkIdx] - bikes[snkIdx]) - p.ReceiverMinEmptyDocksLeft; v < moved {
					moved = v
				}
			}
			if moved <= 0 {
				continue
			}

			bikes[srcIdx] -= moved
			bikes[snkIdx] += moved
			hourCounts[hour]++

			result.AppliedMoves = append(result.AppliedMoves, model.AppliedMove{
				TruckMove: model.TruckMove{
					From:       mv.From,
					To:         mv.To,
					Bikes:      moved,
					When:       mv.When,
					TruckID:    mv.TruckID,
					DistanceKm: mv.DistanceKm,
				},
				Requested: mv.Bikes,
			})
		}

		for i, s := range reg.Stations {
			result.Snapshots = append(result.Snapshots, model.Snapshot{
				StationID:   s.ID,
				MinuteOfDay: bucketStartMinute,
				Bikes:       bikes[i],
				EmptyDocks:  caps[i] - bikes[i],
				Capacity:    caps[i],
			})
		}
	}

	return result, nil
}

func clamp(x, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
