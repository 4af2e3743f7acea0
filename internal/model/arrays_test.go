package model

import "testing"

func TestStationArraysAddPickupDropoff(t *testing.T) {
	a := NewStationArrays(2, 4)
	a.AddPickup(0, 1)
	a.AddDropoff(0, 1)
	a.AddDropoff(1, 3)

	if got := a.PickupRow(0)[1]; got != 1 {
		t.Fatalf("PickupRow(0)[1] = %d, want 1", got)
	}
	if got := a.DropoffRow(0)[1]; got != 1 {
		t.Fatalf("DropoffRow(0)[1] = %d, want 1", got)
	}
	if got := a.DeltaRow(0)[1]; got != 0 {
		t.Fatalf("DeltaRow(0)[1] = %d, want 0 (one pickup, one dropoff cancel)", got)
	}
	if got := a.DeltaRow(1)[3]; got != 1 {
		t.Fatalf("DeltaRow(1)[3] = %d, want 1", got)
	}
	if got := a.TouchTotal[0]; got != 2 {
		t.Fatalf("TouchTotal[0] = %d, want 2", got)
	}
	if got := a.TouchTotal[1]; got != 1 {
		t.Fatalf("TouchTotal[1] = %d, want 1", got)
	}
}

func TestAverageDeltasMeansDeltaSumsCounts(t *testing.T) {
	day1 := NewStationArrays(1, 2)
	day1.AddDropoff(0, 0) // delta[0] = 1
	day1.AddPickup(0, 1)  // delta[1] = -1

	day2 := NewStationArrays(1, 2)
	day2.AddDropoff(0, 0)
	day2.AddDropoff(0, 0) // delta[0] = 2

	avg := AverageDeltas([]*StationArrays{day1, day2})
	if got := avg.Delta[0]; got != 2 {
		t.Fatalf("averaged delta[0] = %d, want round((1+2)/2)=2", got)
	}
	if got := avg.Delta[1]; got != 0 {
		t.Fatalf("averaged delta[1] = %d, want round((-1+0)/2)=0", got)
	}
	if got := avg.Dropoffs[0]; got != 3 {
		t.Fatalf("summed dropoffs[0] = %d, want 3 (not averaged)", got)
	}
}

func TestAverageDeltasEmptyReturnsNil(t *testing.T) {
	if got := AverageDeltas(nil); got != nil {
		t.Fatalf("AverageDeltas(nil) = %v, want nil", got)
	}
}
