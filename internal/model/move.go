package model

// MoveTime is a tagged variant distinguishing an unscheduled move from one
// scheduled at a specific bucket-aligned minute of day. This replaces a
// nullable t_min field with an explicit sum type per the source's optional
// scalar idiom.
type MoveTime struct {
	scheduled bool
	minute    int
}

// Unscheduled returns a MoveTime carrying no time commitment yet.
func Unscheduled() MoveTime { return MoveTime{} }

// At returns a MoveTime scheduled at the given bucket-aligned minute of day.
func At(minute int) MoveTime { return MoveTime{scheduled: true, minute: minute} }

func (t MoveTime) IsScheduled() bool { return t.scheduled }

// Minute panics if the move is unscheduled; callers must check IsScheduled
// first, matching the tagged-variant contract (there is no meaningful
// "zero value" minute to fall back to).
func (t MoveTime) Minute() int {
	if !t.scheduled {
		panic("model: Minute() called on an unscheduled MoveTime")
	}
	return t.minute
}

// TruckMove is a planned bike transfer from one station to another.
// DistanceKm and TruckID are optional annotations.
type TruckMove struct {
	From       string
	To         string
	Bikes      int
	When       MoveTime
	TruckID    string
	DistanceKm float64
}

// Plan is an ordered sequence of TruckMoves sorted by scheduled time
// ascending. All moves in a Plan returned by the day planner are scheduled.
type Plan struct {
	Moves []TruckMove
}

// AppliedMove is what the replay simulator actually committed for a planned
// move: Bikes may be less than Requested if feasibility clamping reduced it,
// and a planned move with Bikes == 0 is dropped entirely (never appended).
type AppliedMove struct {
	TruckMove
	Requested int
}
