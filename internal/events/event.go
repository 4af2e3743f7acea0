// Package events adapts a proximity-to-venue-event signal into the cost
// kernel's bike/dock demand multiplier slot, grounded on
// rebalance3/events/event_impacts.py and station_need_from_event.py. The
// attendance/decay heuristics there are kept as an external collaborator per
// spec.md; this package implements only the small glue: loading the overlay
// file and turning venue proximity into an hourly multiplier.
package events

import (
	"encoding/json"
	"os"
	"time"
)

// Event is one ticketed venue event occurring on the day being planned.
type Event struct {
	StartUTC       time.Time `json:"start_utc"`
	VenueLat       float64   `json:"venue_lat"`
	VenueLon       float64   `json:"venue_lon"`
	VenueName      string    `json:"venue_name"`
	Name           string    `json:"name"`
	Segment        string    `json:"segment"`
	Classification string    `json:"classification"`
}

type eventsFile struct {
	Events []Event `json:"events"`
}

// Load reads an event-impact overlay file in the `{"events": [...]}` shape.
func Load(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc eventsFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}
