package planner

import "sort"

// OnlinePolicyParams configures GreedyThresholdPolicy, a reactive, single-step
// dispatch rule that reads live station levels and proposes moves from the
// fullest surplus station to the emptiest deficit station, repeatedly, until
// moves run out or no pair qualifies. It is a supplemental collaborator, not
// part of the day planner's core greedy optimization, grounded on
// rebalance3/trucks/policy.py's greedy_threshold_policy, and is never called
// by Plan.
type OnlinePolicyParams struct {
	EmptyThreshold  float64
	FullThreshold   float64
	TargetThreshold float64
	TruckCap        int
	MovesAvailable  int
}

// OnlineMove is one proposed move from GreedyThresholdPolicy; TMinute is the
// caller-supplied current time, repeated on every move since the policy acts
// instantaneously rather than scheduling ahead.
type OnlineMove struct {
	TMinute        int
	FromStation    string
	ToStation      string
	Bikes          int
}

// GreedyThresholdPolicy mutates bikes in place (station id -> current bike
// count) and returns the sequence of moves it committed to reach that state.
// Stations with capacity <= 0 are left out of the deficit/surplus
// classification, so they are never selected.
func GreedyThresholdPolicy(bikes map[string]int, capacity map[string]int, tMinute int, p OnlinePolicyParams) []OnlineMove {
	ratio := func(sid string) float64 {
		cap := capacity[sid]
		if cap <= 0 {
			return 0
		}
		return float64(bikes[sid]) / float64(cap)
	}

	var moves []OnlineMove
	for i := 0; i < p.MovesAvailable; i++ {
		deficit, surplus := classify(bikes, capacity, ratio, p.EmptyThreshold, p.FullThreshold)
		if len(deficit) == 0 || len(surplus) == 0 {
			break
		}

		toSid := deficit[0]
		fromSid := surplus[0]

		capFrom := capacity[fromSid]
		capTo := capacity[toSid]
		desiredTo := int(p.TargetThreshold * float64(capTo))
		availableFrom := bikes[fromSid] - int(p.TargetThreshold*float64(capFrom))

		b := p.TruckCap
		if v := max0(availableFrom); v < b {
			b = v
		}
		if v := max0(desiredTo - bikes[toSid]); v < b {
			b = v
		}
		if b <= 0 {
			break
		}

		bikes[fromSid] -= b
		bikes[toSid] += b
		moves = append(moves, OnlineMove{TMinute: tMinute, FromStation: fromSid, ToStation: toSid, Bikes: b})
	}
	return moves
}

func classify(bikes, capacity map[string]int, ratio func(string) float64, emptyThr, fullThr float64) (deficit, surplus []string) {
	for sid := range bikes {
		if capacity[sid] <= 0 {
			continue
		}
		r := ratio(sid)
		if r < emptyThr {
			deficit = append(deficit, sid)
		} else if r > fullThr {
			surplus = append(surplus, sid)
		}
	}
	sort.Slice(deficit, func(i, j int) bool { return ratio(deficit[i]) < ratio(deficit[j]) })
	sort.Slice(surplus, func(i, j int) bool { return ratio(surplus[i]) > ratio(surplus[j]) })
	return deficit, surplus
}

func max0(x int) int {
	if x < 0 {
		return 0
	}
	return x
}
