package analysis

import (
	"math"
	"testing"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

func TestSummarizeCountsMovedBikesAndDroppedMoves(t *testing.T) {
	plan := model.Plan{Moves: []model.TruckMove{
		{From: "A", To: "B", Bikes: 5, When: model.At(0)},
		{From: "A", To: "C", Bikes: 3, When: model.At(60)},
	}}
	result := model.ScenarioResult{
		AppliedMoves: []model.AppliedMove{
			{TruckMove: model.TruckMove{From: "A", To: "B", Bikes: 5}, Requested: 5},
		},
	}
	s := Summarize(plan, result)
	if s.TotalMovedBikes != 5 {
		t.Fatalf("TotalMovedBikes = %d, want 5", s.TotalMovedBikes)
	}
	if s.MovesApplied != 1 {
		t.Fatalf("MovesApplied = %d, want 1", s.MovesApplied)
	}
	if s.MovesDropped != 1 {
		t.Fatalf("MovesDropped = %d, want 1", s.MovesDropped)
	}
}

func TestSummarizeCountsEmptyAndFullBuckets(t *testing.T) {
	result := model.ScenarioResult{
		Snapshots: []model.Snapshot{
			{StationID: "A", Bikes: 0, Capacity: 10},
			{StationID: "A", Bikes: 10, Capacity: 10},
			{StationID: "B", Bikes: 5, Capacity: 10},
		},
	}
	s := Summarize(model.Plan{}, result)
	if s.EmptyBucketCount["A"] != 1 {
		t.Fatalf("EmptyBucketCount[A] = %d, want 1", s.EmptyBucketCount["A"])
	}
	if s.FullBucketCount["A"] != 1 {
		t.Fatalf("FullBucketCount[A] = %d, want 1", s.FullBucketCount["A"])
	}
	if s.EmptyBucketCount["B"] != 0 || s.FullBucketCount["B"] != 0 {
		t.Fatalf("station B should have no empty/full buckets, got %+v / %+v", s.EmptyBucketCount, s.FullBucketCount)
	}
}

func TestStationRiskOrdersDescendingWithIDTiebreak(t *testing.T) {
	counts := map[string]int{"C": 3, "A": 5, "B": 5, "D": 1}
	got := StationRisk(counts, 3)
	want := []string{"A", "B", "C"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("StationRisk = %v, want %v", got, want)
		}
	}
}

func TestStationRiskClampsNToAvailableRows(t *testing.T) {
	counts := map[string]int{"A": 1}
	got := StationRisk(counts, 10)
	if len(got) != 1 {
		t.Fatalf("len(StationRisk) = %d, want 1", len(got))
	}
}

func TestPercentileEmptyIsZero(t *testing.T) {
	if got := Percentile(nil, 50); got != 0 {
		t.Fatalf("Percentile(nil) = %v, want 0", got)
	}
}

func TestPercentileMedianOfOddSeries(t *testing.T) {
	got := Percentile([]float64{1, 3, 2}, 50)
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("Percentile(50) = %v, want 2", got)
	}
}

func TestPercentileMaxIsHundredth(t *testing.T) {
	got := Percentile([]float64{1, 5, 9, 2}, 100)
	if got != 9 {
		t.Fatalf("Percentile(100) = %v, want 9", got)
	}
}
