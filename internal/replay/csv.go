package replay

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// WriteSnapshotsCSV writes the per-bucket station snapshot table, grounded on
// the teacher's WriteLedgerCSV idiom. The time column header and values
// follow mode: "hour" when mode.IsHourly(), else "t_min".
func WriteSnapshotsCSV(path string, snapshots []model.Snapshot, mode model.OutputMode) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	timeCol := "t_min"
	if mode.IsHourly() {
		timeCol = "hour"
	}
	if err := w.Write([]string{"station_id", timeCol, "bikes", "empty_docks", "capacity"}); err != nil {
		return err
	}

	for _, s := range snapshots {
		row := []string{
			s.StationID,
			strconv.Itoa(mode.TimeColumn(s.MinuteOfDay)),
			strconv.Itoa(s.Bikes),
			strconv.Itoa(s.EmptyDocks),
			strconv.Itoa(s.Capacity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteAppliedMovesCSV writes the list of moves the replay actually
// committed, including the originally requested count for diff-ability
// against the planned list.
func WriteAppliedMovesCSV(path string, moves []model.AppliedMove) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"t_min", "from_station", "to_station", "bikes", "requested_bikes", "distance_km"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range moves {
		tMin := 0
		if m.When.IsScheduled() {
			tMin = m.When.Minute()
		}
		row := []string{
			strconv.Itoa(tMin),
			m.From,
			m.To,
			strconv.Itoa(m.Bikes),
			strconv.Itoa(m.Requested),
			strconv.FormatFloat(m.DistanceKm, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
