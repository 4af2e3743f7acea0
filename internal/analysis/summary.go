// Package analysis computes simple plan/trajectory diagnostics: empty and
// full bucket counts, total moved bikes, and applied/dropped move counts (it
// does not compute costs; those come from the allocator), adapted from
// the teacher's percentile/sort-by-metric idiom repurposed onto rebalancing
// output instead of oracle-profit ranking.
package analysis

import (
	"sort"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// PlanSummary aggregates diagnostics over one day's replay/plan output.
type PlanSummary struct {
	TotalMovedBikes   int
	MovesApplied      int
	MovesDropped      int
	EmptyBucketCount  map[string]int // station_id -> count of buckets at 0 bikes
	FullBucketCount   map[string]int // station_id -> count of buckets at capacity
}

// Summarize builds a PlanSummary from a plan and the resulting scenario.
func Summarize(plan model.Plan, result model.ScenarioResult) PlanSummary {
	s := PlanSummary{
		EmptyBucketCount: map[string]int{},
		FullBucketCount:  map[string]int{},
	}
	s.MovesApplied = len(result.AppliedMoves)
	s.MovesDropped = len(plan.Moves) - s.MovesApplied
	if s.MovesDropped < 0 {
		s.MovesDropped = 0
	}
	for _, m := range result.AppliedMoves {
		s.TotalMovedBikes += m.Bikes
	}
	for _, snap := range result.Snapshots {
		if snap.Bikes == 0 {
			s.EmptyBucketCount[snap.StationID]++
		}
		if snap.Capacity > 0 && snap.Bikes >= snap.Capacity {
			s.FullBucketCount[snap.StationID]++
		}
	}
	return s
}

// StationRisk ranks stations by a caller-supplied risk metric (e.g. empty
// bucket count), descending, returning the top n station ids.
func StationRisk(counts map[string]int, n int) []string {
	type row struct {
		id    string
		count int
	}
	rows := make([]row, 0, len(counts))
	for id, c := range counts {
		rows = append(rows, row{id, c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].id < rows[j].id
	})
	if n > len(rows) {
		n = len(rows)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = rows[i].id
	}
	return out
}

// Percentile returns the p-th percentile (0..100) of a slice of values using
// linear interpolation between the two closest ranks. Returns 0 for an
// empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
