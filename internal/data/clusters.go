package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// LoadClusters reads a "station_id,cluster_id" CSV (header required) into a
// model.StationCluster. Cluster assignment itself (k-means over hourly
// departure/arrival signatures) is an external collaborator; this loader
// only consumes its output.
func LoadClusters(path string) (model.StationCluster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("data: reading cluster csv header: %w", err)
	}

	out := model.StationCluster{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("data: reading cluster csv row: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		clusterID, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		out[row[0]] = clusterID
	}
	return out, nil
}
