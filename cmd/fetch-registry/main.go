package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/data"
	"github.com/AndrewGordienko/rebalance3/internal/model"
)

// registryDoc mirrors the {"data":{"stations":[...]}} shape internal/data
// parses, so a fetched registry can be written back out and reloaded with
// data.LoadRegistry.
type registryDoc struct {
	Data struct {
		Stations []stationRecord `json:"stations"`
	} `json:"data"`
}

type stationRecord struct {
	StationID string  `json:"station_id"`
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

func toDoc(reg *model.Registry) registryDoc {
	var doc registryDoc
	doc.Data.Stations = make([]stationRecord, 0, reg.Len())
	for _, s := range reg.Stations {
		doc.Data.Stations = append(doc.Data.Stations, stationRecord{
			StationID: s.ID, Name: s.Name, Capacity: s.Capacity, Lat: s.Lat, Lon: s.Lon,
		})
	}
	return doc
}

// fetch-registry pulls a station registry document from a remote GBFS-style
// provider and writes it to disk, so later plan/rank runs can point
// --registry at a local, versioned snapshot instead of hitting the network
// each time.
func main() {
	var (
		baseURL = flag.String("base-url", "", "Registry provider base URL, e.g. https://gbfs.example.com")
		path    = flag.String("path", "/station_information.json", "Path appended to base-url")
		output  = flag.String("output", "stations.json", "Output file path")
		timeout = flag.Duration("timeout", 30*time.Second, "Request timeout")
	)
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("--base-url is required")
	}

	client := data.NewRegistryClient(*baseURL)
	client.Client.Timeout = *timeout

	fmt.Printf("Fetching registry from %s%s\n", *baseURL, *path)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	reg, err := client.FetchRegistry(ctx, *path)
	if err != nil {
		log.Fatalf("Failed to fetch registry: %v", err)
	}
	fmt.Printf("Fetched %d stations\n", reg.Len())

	raw, err := json.MarshalIndent(toDoc(reg), "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal registry: %v", err)
	}
	if err := os.WriteFile(*output, raw, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	fmt.Printf("Saved registry to %s\n", *output)
}
