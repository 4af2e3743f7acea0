// Package planner greedily selects up to K timed truck moves within a
// service window to reduce total station cost, grounded on
// rebalance3/trucks/day_planner.py's plan_truck_moves_for_day.
package planner

import (
	"math"
	"sort"

	"github.com/AndrewGordienko/rebalance3/internal/cost"
	"github.com/AndrewGordienko/rebalance3/internal/geo"
	"github.com/AndrewGordienko/rebalance3/internal/model"
	"github.com/AndrewGordienko/rebalance3/internal/trajectory"
)

const epsilon = 1e-9

// Params configures one planning run. ServiceStartHour/ServiceEndHour are in
// [0,24] with End > Start; a violation is a fatal configuration error
// (see ErrBadServiceWindow).
type Params struct {
	MovesBudget                int
	TruckCap                   int
	DonorMinBikesLeft          int
	ReceiverMinEmptyDocksLeft  int
	ServiceStartHour           int
	ServiceEndHour             int
	CandidateTimeTopK          int
	TopKSources                int
	TopKSinks                  int
	UseDistancePenalty         bool
	DistancePenaltyPerKm       float64
	MaxPairKm                  float64
	Kernel                     cost.Kernel
}

// ErrBadServiceWindow reports an invalid [ServiceStartHour, ServiceEndHour).
type ErrBadServiceWindow struct {
	Start, End int
}

func (e *ErrBadServiceWindow) Error() string {
	return "planner: service window invalid (need 0<=start<end<=24)"
}

// Plan runs the greedy day planner. arrays holds the bucketized trip signal
// for the day, x0 the midnight starting counts (by dense station index,
// aligned to reg), and clusters an optional cluster map. The distance
// guard/penalty uses the registry's station coordinates and applies only
// when p.UseDistancePenalty is set.
func Plan(reg *model.Registry, arrays *model.StationArrays, x0 []int, clusters model.StationCluster, p Params) (model.Plan, error) {
	if p.ServiceEndHour <= p.ServiceStartHour || p.ServiceStartHour < 0 || p.ServiceEndHour > 24 {
		return model.Plan{}, &ErrBadServiceWindow{p.ServiceStartHour, p.ServiceEndHour}
	}
	n := reg.Len()
	if n == 0 || p.MovesBudget <= 0 {
		return model.Plan{}, nil
	}

	caps := make([]int, n)
	clusterOf := make([]int, n)
	for i, s := range reg.Stations {
		caps[i] = s.Capacity
		clusterOf[i] = clusters.ClusterOf(s.ID)
	}

	B := arrays.B
	bucketMinutes := model.MinutesPerDay / B
	windowStartBucket := (p.ServiceStartHour * 60) / bucketMinutes
	windowEndBucket := (p.ServiceEndHour * 60) / bucketMinutes

	// Live trajectories for every station, rebuilt as the plan evolves.
	traj := make([][]int, n)
	for i := 0; i < n; i++ {
		traj[i] = trajectory.Simulate(x0[i], caps[i], arrays.DeltaRow(i))
	}
	stationCostFrom := func(i, b0 int) float64 {
		return p.Kernel.Evaluate(caps[i], clusterOf[i], traj[i], arrays.PickupRow(i), arrays.DropoffRow(i), b0)
	}

	var moves []model.TruckMove
	alpha := p.Kernel.Weights

	for len(moves) < p.MovesBudget {
		candidateTimes := candidateTimes(n, B, windowStartBucket, windowEndBucket, bucketMinutes,
			caps, traj, arrays, alpha.PickupBufferMult, alpha.DropoffBufferMult, alpha.LookaheadBuckets, p.CandidateTimeTopK)

		best := bestMove(reg, caps, traj, arrays, clusterOf, alpha, p, candidateTimes, stationCostFrom)
		if best == nil || best.delta <= epsilon {
			break
		}

		applyMove(traj, caps, arrays, best.src, best.snk, best.b0, best.moved)

		moves = append(moves, model.TruckMove{
			From:       reg.Station(best.src).ID,
			To:         reg.Station(best.snk).ID,
			Bikes:      best.moved,
			When:       model.At(best.b0 * bucketMinutes),
			DistanceKm: best.distanceKm,
		})
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].When.Minute() < moves[j].When.Minute()
	})
	return model.Plan{Moves: moves}, nil
}

func applyMove(traj [][]int, caps []int, arrays *model.StationArrays, src, snk, b0, moved int) {
	xSrcAtB0 := traj[src][b0] - moved
	xSnkAtB0 := traj[snk][b0] + moved
	trajectory.SimulateTail(traj[src], b0, xSrcAtB0, caps[src], arrays.DeltaRow(src))
	trajectory.SimulateTail(traj[snk], b0, xSnkAtB0, caps[snk], arrays.DeltaRow(snk))
}

// candidateTimes computes the badness series over the service window, takes
// the top-k buckets by badness, unions with an hourly-spaced grid across the
// window, deduplicates and sorts.
func candidateTimes(n, B, start, end, bucketMinutes int, caps []int, traj [][]int, arrays *model.StationArrays, alphaPU, alphaDO float64, lookaheadBuckets, topK int) []int {
	type scored struct {
		b    int
		score float64
	}
	scores := make([]scored, 0, end-start)
	for b := start; b < end && b < B; b++ {
		badness := 0.0
		for s := 0; s < n; s++ {
			if caps[s] <= 0 {
				continue
			}
			futPU := float64(cost.FutureSum(arrays.PickupRow(s), b, lookaheadBuckets))
			futDO := float64(cost.FutureSum(arrays.DropoffRow(s), b, lookaheadBuckets))
			xb := float64(traj[s][b])
			if d := alphaPU*futPU - xb; d > 0 {
				badness += d
			}
			if d := alphaDO*futDO - (float64(caps[s]) - xb); d > 0 {
				badness += d
			}
		}
		scores = append(scores, scored{b, badness})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}

	set := map[int]bool{}
	for i := 0; i < topK; i++ {
		set[scores[i].b] = true
	}
	hourBuckets := 60 / bucketMinutes
	if hourBuckets < 1 {
		hourBuckets = 1
	}
	for b := start; b < end && b < B; b += hourBuckets {
		set[b] = true
	}

	out := make([]int, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

type moveCandidate struct {
	b0, src, snk, moved int
	delta               float64
	distanceKm          float64
}

func bestMove(reg *model.Registry, caps []int, traj [][]int, arrays *model.StationArrays, clusterOf []int, alpha cost.Weights, p Params, times []int, stationCostFrom func(int, int) float64) *moveCandidate {
	n := reg.Len()
	var best *moveCandidate

	lookaheadBuckets := alpha.LookaheadBuckets

	for _, b0 := range times {
		sinkRisk := make([]float64, n)
		sourceRisk := make([]float64, n)
		for s := 0; s < n; s++ {
			if caps[s] <= 0 {
				continue
			}
			touches := float64(arrays.TouchTotal[s])
			logTouch := math.Log1p(touches)
			futPU := float64(cost.FutureSum(arrays.PickupRow(s), b0, lookaheadBuckets))
			futDO := float64(cost.FutureSum(arrays.DropoffRow(s), b0, lookaheadBuckets))
			xb := float64(traj[s][b0])

			if d := alpha.PickupBufferMult*futPU - xb; d > 0 {
				sinkRisk[s] = d * logTouch
			}
			if d := alpha.DropoffBufferMult*futDO - (float64(caps[s]) - xb); d > 0 {
				sourceRisk[s] = d * logTouch
			}
		}

		sources := topIndices(sourceRisk, p.TopKSources)
		sinks := topIndices(sinkRisk, p.TopKSinks)

		for _, src := range sources {
			for _, snk := range sinks {
				if src == snk {
					continue
				}
				moved := p.TruckCap
				if v := traj[src][b0] - p.DonorMinBikesLeft; v < moved {
					moved = v
				}
				if v := (caps[snk] - traj[snk][b0]) - p.ReceiverMinEmptyDocksLeft; v < moved {
					moved = v
				}
				if moved <= 0 {
					continue
				}

				var distanceKm float64
				if p.UseDistancePenalty {
					distanceKm = geo.HaversineKm(
						reg.Station(src).Lat, reg.Station(src).Lon,
						reg.Station(snk).Lat, reg.Station(snk).Lon,
					)
					if distanceKm > p.MaxPairKm {
						continue
					}
				}

				baseSrc := stationCostFrom(src, b0)
				baseSnk := stationCostFrom(snk, b0)

				withMoveCost := evaluateWithMove(traj, caps, arrays, clusterOf, p.Kernel, src, snk, b0, moved)

				delta := (baseSrc + baseSnk) - withMoveCost
				if p.UseDistancePenalty {
					delta -= p.DistancePenaltyPerKm * distanceKm
				}

				if delta <= epsilon {
					continue
				}
				if best == nil || delta > best.delta || (delta == best.delta && lexLess(b0, src, snk, best)) {
					best = &moveCandidate{b0: b0, src: src, snk: snk, moved: moved, delta: delta, distanceKm: distanceKm}
				}
			}
		}
	}
	return best
}

// evaluateWithMove computes cost_src(b0, x_src-moved) + cost_snk(b0, x_snk+moved)
// by resimulating both tails into scratch copies of traj[src]/traj[snk], so
// the evaluation never mutates the caller's live trajectories; applyMove is
// what actually commits a move once bestMove has picked it.
func evaluateWithMove(traj [][]int, caps []int, arrays *model.StationArrays, clusterOf []int, kernel cost.Kernel, src, snk, b0, moved int) float64 {
	srcTail := append([]int(nil), traj[src]...)
	snkTail := append([]int(nil), traj[snk]...)
	trajectory.SimulateTail(srcTail, b0, traj[src][b0]-moved, caps[src], arrays.DeltaRow(src))
	trajectory.SimulateTail(snkTail, b0, traj[snk][b0]+moved, caps[snk], arrays.DeltaRow(snk))

	cSrc := kernel.Evaluate(caps[src], clusterOf[src], srcTail, arrays.PickupRow(src), arrays.DropoffRow(src), b0)
	cSnk := kernel.Evaluate(caps[snk], clusterOf[snk], snkTail, arrays.PickupRow(snk), arrays.DropoffRow(snk), b0)
	return cSrc + cSnk
}

func lexLess(b0, src, snk int, cur *moveCandidate) bool {
	if b0 != cur.b0 {
		return b0 < cur.b0
	}
	if src != cur.src {
		return src < cur.src
	}
	return snk < cur.snk
}

func topIndices(risk []float64, k int) []int {
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(risk))
	for i, r := range risk {
		scores = append(scores, scored{i, r})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if k > len(scores) {
		k = len(scores)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = scores[i].idx
	}
	return out
}
