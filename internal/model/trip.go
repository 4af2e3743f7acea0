package model

import "time"

// Trip is one rider rental record: a departure from StartStation and an
// arrival at EndStation. Timestamps are local to the operating day.
type Trip struct {
	StartTime    time.Time
	EndTime      time.Time
	StartStation string
	EndStation   string
}

// EventKind distinguishes the two halves of a trip as they are consumed by
// the replay simulator.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
)

func (k EventKind) String() string {
	if k == EventStart {
		return "start"
	}
	return "end"
}

// TripEvent is one half of a trip (a departure or an arrival), the unit the
// day simulator consumes in timestamp order.
type TripEvent struct {
	Minute  int // minute-of-day, for ordering and bucket assignment
	Kind    EventKind
	Station string
}

// SplitEvents decomposes a trip into its start/end events, with Minute
// computed as minutes elapsed since dayStart. Events outside the day window
// are still produced here (with a Minute that may be negative or >= 1440);
// filtering them out is the caller's responsibility (see bucketize.Bucketize
// and the replay event-stream builder).
func (t Trip) SplitEvents(dayStart time.Time) (start, end TripEvent) {
	start = TripEvent{
		Minute:  int(t.StartTime.Sub(dayStart).Minutes()),
		Kind:    EventStart,
		Station: t.StartStation,
	}
	end = TripEvent{
		Minute:  int(t.EndTime.Sub(dayStart).Minutes()),
		Kind:    EventEnd,
		Station: t.EndStation,
	}
	return start, end
}
