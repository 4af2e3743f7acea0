// Package midnight chooses per-station starting bike counts minimizing total
// station day-cost subject to a fleet-size constraint, grounded on
// rebalance3/midnight/midnight_optimizer.py's optimize_midnight_greedy.
package midnight

import (
	"math"
	"sort"

	"github.com/AndrewGordienko/rebalance3/internal/cost"
	"github.com/AndrewGordienko/rebalance3/internal/model"
	"github.com/AndrewGordienko/rebalance3/internal/trajectory"
)

// epsilon is the minimum joint improvement the greedy swap loop will accept;
// below this the allocator considers itself converged.
const epsilon = 1e-9

// Params configures one allocation run.
type Params struct {
	TotalBikes int
	MaxMoves   int // 0 => default max(1000, TotalBikes)
	Kernel     cost.Kernel
}

// Clusters is an optional station_id -> cluster_id lookup; nil means every
// station is treated as cluster -1 (unweighted).
type Clusters = model.StationCluster

// PlanForDay allocates a midnight distribution from a single day's
// bucketized deltas. This is one of the two distinct entry points required
// in place of the original's day=/days= keyword overload; see
// PlanForDaysAveraged for the multi-day counterpart.
func PlanForDay(reg *model.Registry, arrays *model.StationArrays, clusters Clusters, p Params) model.MidnightAllocation {
	return allocate(reg, arrays, clusters, p)
}

// PlanForDaysAveraged builds each day's delta arrays independently (the
// caller supplies one *model.StationArrays per day, all built against the
// same registry/bucket width) and replaces each station's delta with the
// per-bucket mean across days before running the same greedy solver used by
// PlanForDay.
func PlanForDaysAveraged(reg *model.Registry, days []*model.StationArrays, clusters Clusters, p Params) model.MidnightAllocation {
	averaged := model.AverageDeltas(days)
	return allocate(reg, averaged, clusters, p)
}

func allocate(reg *model.Registry, arrays *model.StationArrays, clusters Clusters, p Params) model.MidnightAllocation {
	n := reg.Len()
	result := model.MidnightAllocation{
		BikesByStation:    map[string]int{},
		CapacityByStation: map[string]int{},
		TotalBikes:        p.TotalBikes,
	}
	if n == 0 || arrays == nil || arrays.B == 0 {
		return result
	}
	result.BucketMinutes = model.MinutesPerDay / arrays.B

	caps := make([]int, n)
	totalCap := 0
	for i, s := range reg.Stations {
		caps[i] = s.Capacity
		totalCap += s.Capacity
		result.CapacityByStation[s.ID] = s.Capacity
	}

	total := clampInt(p.TotalBikes, 0, totalCap)
	x0 := proportionalInit(caps, total)

	clusterOf := make([]int, n)
	for i, s := range reg.Stations {
		clusterOf[i] = clusters.ClusterOf(s.ID)
	}

	costOf := func(i, count int) float64 {
		if caps[i] <= 0 {
			return 0
		}
		x := trajectory.Simulate(count, caps[i], arrays.DeltaRow(i))
		return p.Kernel.Evaluate(caps[i], clusterOf[i], x, arrays.PickupRow(i), arrays.DropoffRow(i), 0)
	}

	stationCost := make([]float64, n)
	gainPlus := make([]float64, n)
	gainMinus := make([]float64, n)
	for i := 0; i < n; i++ {
		stationCost[i] = costOf(i, x0[i])
		gainPlus[i] = computeGainPlus(costOf, i, x0[i], caps[i], stationCost[i])
		gainMinus[i] = computeGainMinus(costOf, i, x0[i], stationCost[i])
	}

	result.InitialCost = sumCosts(stationCost)

	maxMoves := p.MaxMoves
	if maxMoves <= 0 {
		maxMoves = total
		if maxMoves < 1000 {
			maxMoves = 1000
		}
	}

	moves := 0
	for moves < maxMoves {
		receiver := argmax(gainPlus)
		donor := argmax(gainMinus)
		if receiver < 0 || donor < 0 {
			break
		}
		if gainPlus[receiver]+gainMinus[donor] <= epsilon {
			break
		}

		if receiver == donor {
			receiver, donor = resolveCollision(gainPlus, gainMinus, receiver, donor)
			if receiver < 0 || donor < 0 {
				break
			}
			if gainPlus[receiver]+gainMinus[donor] <= epsilon {
				break
			}
		}

		x0[receiver]++
		x0[donor]--
		moves++

		for _, i := range [2]int{receiver, donor} {
			stationCost[i] = costOf(i, x0[i])
			gainPlus[i] = computeGainPlus(costOf, i, x0[i], caps[i], stationCost[i])
			gainMinus[i] = computeGainMinus(costOf, i, x0[i], stationCost[i])
		}
	}

	result.FinalCost = sumCosts(stationCost)
	result.MovesCount = moves
	for i, s := range reg.Stations {
		result.BikesByStation[s.ID] = x0[i]
	}
	return result
}

// proportionalInit distributes total bikes proportional to capacity, then
// assigns the remainder by largest fractional part, clamped to [0, cap_s].
func proportionalInit(caps []int, total int) []int {
	n := len(caps)
	x0 := make([]int, n)
	if total == 0 {
		return x0
	}
	totalCap := 0
	for _, c := range caps {
		totalCap += c
	}
	if totalCap == 0 {
		return x0
	}

	type frac struct {
		idx  int
		frac float64
	}
	fracs := make([]frac, n)
	assigned := 0
	exact := make([]float64, n)
	for i, c := range caps {
		exact[i] = float64(c) * float64(total) / float64(totalCap)
		x0[i] = clampInt(int(math.Round(exact[i])), 0, c)
		assigned += x0[i]
	}

	// Largest-fractional-part remainder distribution, re-derived from the
	// rounding residual rather than exact[i]-floor(exact[i]) so it still
	// makes sense after the initial per-station clamp.
	for i := range caps {
		fracs[i] = frac{idx: i, frac: exact[i] - float64(x0[i])}
	}

	diff := total - assigned
	if diff > 0 {
		sort.Slice(fracs, func(a, b int) bool { return fracs[a].frac > fracs[b].frac })
		for _, f := range fracs {
			if diff == 0 {
				break
			}
			i := f.idx
			if x0[i] < caps[i] {
				x0[i]++
				diff--
			}
		}
	} else if diff < 0 {
		sort.Slice(fracs, func(a, b int) bool { return fracs[a].frac < fracs[b].frac })
		for _, f := range fracs {
			if diff == 0 {
				break
			}
			i := f.idx
			if x0[i] > 0 {
				x0[i]--
				diff++
			}
		}
	}
	return x0
}

func computeGainPlus(costOf func(int, int) float64, i, count, cap int, curCost float64) float64 {
	if count >= cap {
		return math.Inf(-1)
	}
	return curCost - costOf(i, count+1)
}

func computeGainMinus(costOf func(int, int) float64, i, count int, curCost float64) float64 {
	if count <= 0 {
		return math.Inf(-1)
	}
	return curCost - costOf(i, count-1)
}

func argmax(v []float64) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, x := range v {
		if x > bestVal {
			bestVal = x
			best = i
		}
	}
	return best
}

// resolveCollision handles receiver == donor: compare the second-best
// receiver paired with the original donor against the original receiver
// paired with the second-best donor, and take whichever yields higher total
// gain.
func resolveCollision(gainPlus, gainMinus []float64, collideIdx, _ int) (receiver, donor int) {
	altReceiver := argmaxExcluding(gainPlus, collideIdx)
	altDonor := argmaxExcluding(gainMinus, collideIdx)

	altReceiverGain := math.Inf(-1)
	if altReceiver >= 0 {
		altReceiverGain = gainPlus[altReceiver] + gainMinus[collideIdx]
	}
	altDonorGain := math.Inf(-1)
	if altDonor >= 0 {
		altDonorGain = gainPlus[collideIdx] + gainMinus[altDonor]
	}

	if altReceiverGain <= math.Inf(-1) && altDonorGain <= math.Inf(-1) {
		return -1, -1
	}
	if altReceiverGain >= altDonorGain {
		return altReceiver, collideIdx
	}
	return collideIdx, altDonor
}

func argmaxExcluding(v []float64, exclude int) int {
	best := -1
	bestVal := math.Inf(-1)
	for i, x := range v {
		if i == exclude {
			continue
		}
		if x > bestVal {
			bestVal = x
			best = i
		}
	}
	return best
}

func sumCosts(c []float64) float64 {
	total := 0.0
	for _, v := range c {
		total += v
	}
	return total
}

func clampInt(x, lo, hi int) int {
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
