// Package cost computes a station's day cost from its trajectory, combining
// a threshold depth term (grounded on the original midnight/day-planner
// station cost) with a buffer-shortage term (this system's generalization,
// see SPEC_FULL.md component C) under configurable weights.
package cost

import "github.com/AndrewGordienko/rebalance3/internal/model"

// Weights bundles the cost kernel's tunable coefficients. Zero-value Weights
// disables the buffer-shortage term entirely (all its weights are 0), which
// is a legitimate configuration, not a foot-gun: callers that only want
// threshold cost can simply not set w_bike_need/w_dock_need.
type Weights struct {
	EmptyThreshold float64 // fraction of capacity below which a station is "empty"
	FullThreshold  float64 // fraction of capacity above which a station is "full"
	WEmpty         float64
	WFull          float64

	WBikeNeed float64
	WDockNeed float64

	PickupBufferMult  float64 // alpha_pu
	DropoffBufferMult float64 // alpha_do

	LookaheadBuckets int // L, in buckets (converted from lookahead_minutes by the caller)
}

// Multiplier supplies cluster-and-hour demand multipliers for the
// buffer-shortage term. A nil Multiplier is equivalent to always returning
// (1, 1): no zero-valued cluster is suppressed.
type Multiplier interface {
	BikeDockMultiplier(cluster, hour int) (bikeMult, dockMult float64)
}

// Kernel evaluates station day cost given bucketized trip signal for one
// station and a cost weighting configuration.
type Kernel struct {
	Weights    Weights
	Multiplier Multiplier
}

// Evaluate returns cost_thr + cost_buf for one station's trajectory,
// summed from bucket b0 to the end of day. The trajectory x must already
// reflect a starting count applied at or before b0 — Evaluate does not
// simulate, it only scores (see trajectory.Simulate/SimulateTail for that).
func (k Kernel) Evaluate(cap int, cluster int, x []int, pickups, dropoffs []int, b0 int) float64 {
	if cap <= 0 {
		return 0
	}
	w := k.Weights
	emptyThr := w.EmptyThreshold * float64(cap)
	fullThr := w.FullThreshold * float64(cap)

	total := 0.0
	bLen := len(x)
	for b := b0; b < bLen; b++ {
		xb := float64(x[b])
		if d := emptyThr - xb; d > 0 {
			total += w.WEmpty * d
		}
		if d := xb - fullThr; d > 0 {
			total += w.WFull * d
		}
	}

	if w.WBikeNeed == 0 && w.WDockNeed == 0 {
		return total
	}

	L := w.LookaheadBuckets
	if L <= 0 {
		return total
	}
	for b := b0; b < bLen; b++ {
		futPU, futDO := futureSums(pickups, dropoffs, b, L)
		xb := float64(x[b])
		bikeShort := w.PickupBufferMult*futPU - xb
		dockShort := w.DropoffBufferMult*futDO - (float64(cap) - xb)

		bikeMult, dockMult := 1.0, 1.0
		if k.Multiplier != nil {
			bikeMult, dockMult = k.Multiplier.BikeDockMultiplier(cluster, model.HourOf(b, 1440/bLen))
		}

		if bikeShort > 0 {
			total += w.WBikeNeed * bikeMult * bikeShort
		}
		if dockShort > 0 {
			total += w.WDockNeed * dockMult * dockShort
		}
	}
	return total
}

// futureSums computes fut_pu(b), fut_do(b): the sum of pickups/dropoffs over
// buckets [b, min(B, b+L)).
func futureSums(pickups, dropoffs []int, b, L int) (float64, float64) {
	end := b + L
	if end > len(pickups) {
		end = len(pickups)
	}
	var pu, do int
	for i := b; i < end; i++ {
		pu += pickups[i]
		do += dropoffs[i]
	}
	return float64(pu), float64(do)
}

// FutureSum is the exported single-series form used by the day planner's
// badness/risk scoring, which needs fut_pu/fut_do independently of a full
// Kernel.Evaluate call.
func FutureSum(series []int, b, L int) int {
	end := b + L
	if end > len(series) {
		end = len(series)
	}
	sum := 0
	for i := b; i < end; i++ {
		sum += series[i]
	}
	return sum
}
