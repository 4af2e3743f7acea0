package model

import "math"

// StationArrays is the flat arena holding per-station, per-bucket trip
// signal for every station in a registry. Rows are contiguous: station idx's
// bucket b lives at index idx*B+b. This replaces a dict-of-lists keyed by
// station id with dense integer indexing, assigned once at load.
type StationArrays struct {
	NumStations int
	B           int

	Pickups  []int // length NumStations*B
	Dropoffs []int // length NumStations*B
	Delta    []int // length NumStations*B, Delta[i] = Dropoffs[i] - Pickups[i]

	// TouchTotal[s] = sum over b of Pickups + Dropoffs for station s.
	TouchTotal []int
}

func NewStationArrays(numStations, b int) *StationArrays {
	n := numStations * b
	return &StationArrays{
		NumStations: numStations,
		B:           b,
		Pickups:     make([]int, n),
		Dropoffs:    make([]int, n),
		Delta:       make([]int, n),
		TouchTotal:  make([]int, numStations),
	}
}

func (a *StationArrays) idx(station, bucket int) int {
	return station*a.B + bucket
}

func (a *StationArrays) AddPickup(station, bucket int) {
	i := a.idx(station, bucket)
	a.Pickups[i]++
	a.Delta[i]--
	a.TouchTotal[station]++
}

func (a *StationArrays) AddDropoff(station, bucket int) {
	i := a.idx(station, bucket)
	a.Dropoffs[i]++
	a.Delta[i]++
	a.TouchTotal[station]++
}

// DeltaRow returns the bucket-length delta slice for one station, a view into the
// flat arena (no copy).
func (a *StationArrays) DeltaRow(station int) []int {
	start := station * a.B
	return a.Delta[start : start+a.B]
}

func (a *StationArrays) PickupRow(station int) []int {
	start := station * a.B
	return a.Pickups[start : start+a.B]
}

func (a *StationArrays) DropoffRow(station int) []int {
	start := station * a.B
	return a.Dropoffs[start : start+a.B]
}

// AverageDeltas returns a new StationArrays-shaped delta matrix holding the
// per-bucket mean of Delta across multiple days' arrays (all must share the
// same NumStations/B), rounded to the nearest integer with halves going to
// the even neighbour (so a mean of -0.5 becomes 0). Pickups/Dropoffs/TouchTotal are summed, not averaged,
// since they feed lookahead buffers that should reflect total observed
// demand, not a diluted daily mean.
func AverageDeltas(days []*StationArrays) *StationArrays {
	if len(days) == 0 {
		return nil
	}
	numStations, b := days[0].NumStations, days[0].B
	out := NewStationArrays(numStations, b)
	sum := make([]float64, numStations*b)
	for _, d := range days {
		for i, v := range d.Delta {
			sum[i] += float64(v)
		}
		for i, v := range d.Pickups {
			out.Pickups[i] += v
		}
		for i, v := range d.Dropoffs {
			out.Dropoffs[i] += v
		}
		for s, v := range d.TouchTotal {
			out.TouchTotal[s] += v
		}
	}
	n := float64(len(days))
	for i, v := range sum {
		out.Delta[i] = int(math.RoundToEven(v / n))
	}
	return out
}
