// Package data loads trips, station registries, cluster assignments, and
// optional remote registry/event overlays from the filesystem or network,
// grounded on the teacher's internal/data package (JSON/CSV loaders,
// HTTP client with typed errors, TTL response cache).
package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// TimestampParser parses one trip timestamp field. Injectable so callers can
// match whatever format their export uses (Divvy/Citi Bike's
// "01/02/2006 15:04" vs an ISO export).
type TimestampParser func(string) (time.Time, error)

// DefaultTimestampParser parses "01/02/2006 15:04", the format the original
// Divvy/Citi-Bike-style trip export uses.
func DefaultTimestampParser(s string) (time.Time, error) {
	return time.Parse("01/02/2006 15:04", s)
}

// TripCSVLoader reads a trips CSV with columns
// "Start Time, End Time, Start Station Id, End Station Id" (header required,
// column order irrelevant).
type TripCSVLoader struct {
	ParseTimestamp TimestampParser
}

// TripLoadResult pairs the parsed trips with a count of rows skipped for
// malformed timestamps — a diagnostic counter, not a silently swallowed
// exception.
type TripLoadResult struct {
	Trips       []model.Trip
	SkippedRows int
}

func (l TripCSVLoader) parser() TimestampParser {
	if l.ParseTimestamp != nil {
		return l.ParseTimestamp
	}
	return DefaultTimestampParser
}

// Load reads every data row from path into Trips, incrementing SkippedRows
// for any row whose timestamps fail to parse.
func (l TripCSVLoader) Load(path string) (TripLoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return TripLoadResult{}, err
	}
	defer f.Close()
	return l.LoadFrom(f)
}

// LoadFrom reads trips from an already-open reader (a CSV body), useful for
// tests and for piping an HTTP response body directly.
func (l TripCSVLoader) LoadFrom(r io.Reader) (TripLoadResult, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return TripLoadResult{}, fmt.Errorf("data: reading trip csv header: %w", err)
	}
	col := columnIndex(header)

	startCol, ok := col["Start Time"]
	if !ok {
		return TripLoadResult{}, fmt.Errorf("data: trip csv missing \"Start Time\" column")
	}
	endCol, ok := col["End Time"]
	if !ok {
		return TripLoadResult{}, fmt.Errorf("data: trip csv missing \"End Time\" column")
	}
	startSidCol, ok := col["Start Station Id"]
	if !ok {
		return TripLoadResult{}, fmt.Errorf("data: trip csv missing \"Start Station Id\" column")
	}
	endSidCol, ok := col["End Station Id"]
	if !ok {
		return TripLoadResult{}, fmt.Errorf("data: trip csv missing \"End Station Id\" column")
	}

	parse := l.parser()
	var result TripLoadResult
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return TripLoadResult{}, fmt.Errorf("data: reading trip csv row: %w", err)
		}

		startTime, errA := parse(row[startCol])
		endTime, errB := parse(row[endCol])
		if errA != nil || errB != nil {
			result.SkippedRows++
			continue
		}

		result.Trips = append(result.Trips, model.Trip{
			StartTime:    startTime,
			EndTime:      endTime,
			StartStation: row[startSidCol],
			EndStation:   row[endSidCol],
		})
	}
	return result, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return idx
}
