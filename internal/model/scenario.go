package model

// Snapshot is one station's state once a bucket's trip events and moves have
// been applied, keyed by that bucket's start minute.
type Snapshot struct {
	StationID  string
	MinuteOfDay int
	Bikes      int
	EmptyDocks int
	Capacity   int
}

// OutputMode is a tagged variant selecting how the replay output keys its
// time column: by wall-clock hour (only sensible when bucket_minutes==60)
// or by raw sub-hour minute-of-day. This is purely a formatting concern,
// never read by the simulation loop itself.
type OutputMode struct {
	hourly        bool
	bucketMinutes int
}

func HourlyOutput() OutputMode { return OutputMode{hourly: true} }

func SubHourOutput(bucketMinutes int) OutputMode {
	return OutputMode{bucketMinutes: bucketMinutes}
}

func (m OutputMode) IsHourly() bool { return m.hourly }

// TimeColumn renders a snapshot's time key under this mode: the wall-clock
// hour when hourly, otherwise the raw minute-of-day.
func (m OutputMode) TimeColumn(minuteOfDay int) int {
	if m.hourly {
		return minuteOfDay / 60
	}
	return minuteOfDay
}

// ScenarioResult is the full output of one day's simulation run: the name of
// the scenario, the bucket resolution it was computed at, every station's
// per-bucket snapshot, and the moves that were actually applied (a subset,
// possibly with reduced bike counts, of what was planned).
type ScenarioResult struct {
	Name          string
	BucketMinutes int
	Snapshots     []Snapshot
	AppliedMoves  []AppliedMove
}
