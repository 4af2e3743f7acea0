package midnight

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// WriteAllocationCSV writes one row per station: its midnight bike count and
// capacity, grounded on the teacher's WriteLedgerCSV idiom.
func WriteAllocationCSV(path string, alloc model.MidnightAllocation, reg *model.Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"station_id", "bikes", "capacity"}); err != nil {
		return err
	}

	for _, s := range reg.Stations {
		row := []string{
			s.ID,
			strconv.Itoa(alloc.BikesByStation[s.ID]),
			strconv.Itoa(alloc.CapacityByStation[s.ID]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}
