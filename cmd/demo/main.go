package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/analysis"
	"github.com/AndrewGordienko/rebalance3/internal/bucketize"
	"github.com/AndrewGordienko/rebalance3/internal/config"
	"github.com/AndrewGordienko/rebalance3/internal/cost"
	"github.com/AndrewGordienko/rebalance3/internal/data"
	"github.com/AndrewGordienko/rebalance3/internal/midnight"
	"github.com/AndrewGordienko/rebalance3/internal/model"
	"github.com/AndrewGordienko/rebalance3/internal/planner"
	"github.com/AndrewGordienko/rebalance3/internal/replay"
)

// Demo:
// - Load a station registry and a day's trip CSV
// - Run the midnight allocator to pick starting bike counts
// - Run the day planner to schedule truck moves
// - Replay the day against the plan and print a short narrated summary
func main() {
	registryPath := flag.String("registry", "sample_data/stations.json", "Path to station registry JSON")
	tripsPath := flag.String("trips", "sample_data/trips.csv", "Path to trip CSV")
	day := flag.String("day", "2024-06-01", "Operating day, YYYY-MM-DD")
	cfgPath := flag.String("config", "", "Path to YAML scenario config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	}

	reg, err := data.LoadRegistry(*registryPath)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Loaded %d stations, %d total docks\n", reg.Len(), reg.TotalCapacity())

	tripResult, err := (data.TripCSVLoader{}).Load(*tripsPath)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Loaded %d trips (%d skipped rows)\n", len(tripResult.Trips), tripResult.SkippedRows)

	dayStart, err := time.ParseInLocation("2006-01-02", *day, time.UTC)
	if err != nil {
		panic(err)
	}
	window := bucketize.DayWindow{Start: dayStart}

	bktResult, err := bucketize.Bucketize(tripResult.Trips, reg, window, cfg.Fleet.BucketMinutes)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Bucketized into %d-minute buckets (%d unknown-station, %d self-loop trips dropped)\n",
		cfg.Fleet.BucketMinutes, bktResult.UnknownStation, bktResult.SelfLoopSkipped)

	kernel := cost.Kernel{Weights: cost.Weights{
		EmptyThreshold:    cfg.Cost.EmptyThreshold,
		FullThreshold:     cfg.Cost.FullThreshold,
		WEmpty:            cfg.Cost.WEmpty,
		WFull:             cfg.Cost.WFull,
		WBikeNeed:         cfg.Cost.WBikeNeed,
		WDockNeed:         cfg.Cost.WDockNeed,
		PickupBufferMult:  cfg.Cost.PickupBufferMult,
		DropoffBufferMult: cfg.Cost.DropoffBufferMult,
		LookaheadBuckets:  cfg.Cost.LookaheadMinutes / cfg.Fleet.BucketMinutes,
	}}

	totalBikes := int(float64(reg.TotalCapacity()) * cfg.Fleet.TotalBikesRatio)
	if cfg.Fleet.TotalBikes > 0 {
		totalBikes = cfg.Fleet.TotalBikes
	}

	fmt.Printf("\n--- midnight allocation (%d bikes) ---\n", totalBikes)
	alloc := midnight.PlanForDay(reg, bktResult.Arrays, nil, midnight.Params{
		TotalBikes: totalBikes,
		Kernel:     kernel,
	})
	fmt.Printf("cost %.2f -> %.2f over %d swap moves\n", alloc.InitialCost, alloc.FinalCost, alloc.MovesCount)

	fmt.Printf("\n--- day planner ---\n")
	plan, err := planner.Plan(reg, bktResult.Arrays, alloc.StartingCounts(reg), nil, planner.Params{
		MovesBudget:               cfg.Planner.MovesBudget,
		TruckCap:                  cfg.Planner.TruckCap,
		DonorMinBikesLeft:         cfg.Planner.DonorMinBikesLeft,
		ReceiverMinEmptyDocksLeft: cfg.Planner.ReceiverMinEmptyDocksLeft,
		ServiceStartHour:          cfg.Planner.ServiceStartHour,
		ServiceEndHour:            cfg.Planner.ServiceEndHour,
		CandidateTimeTopK:         cfg.Planner.CandidateTimeTopK,
		TopKSources:               cfg.Planner.TopKSources,
		TopKSinks:                 cfg.Planner.TopKSinks,
		UseDistancePenalty:        cfg.Planner.UseDistancePenalty,
		DistancePenaltyPerKm:      cfg.Planner.DistancePenaltyPerKm,
		MaxPairKm:                 cfg.Planner.MaxPairKm,
		Kernel:                    kernel,
	})
	if err != nil {
		panic(err)
	}
	fmt.Printf("planned %d truck moves\n", len(plan.Moves))
	for i, m := range plan.Moves {
		if i >= 10 {
			fmt.Printf("... and %d more\n", len(plan.Moves)-10)
			break
		}
		tMin := 0
		if m.When.IsScheduled() {
			tMin = m.When.Minute()
		}
		fmt.Printf("  t=%4d  %s -> %s  (%d bikes, %.2f km)\n", tMin, m.From, m.To, m.Bikes, m.DistanceKm)
	}

	fmt.Printf("\n--- replay ---\n")
	tripEvents := make([]model.TripEvent, 0, len(tripResult.Trips)*2)
	for _, t := range tripResult.Trips {
		start, end := t.SplitEvents(window.Start)
		if !t.StartTime.Before(window.Start) && t.StartTime.Before(window.End()) {
			tripEvents = append(tripEvents, start)
		}
		if !t.EndTime.Before(window.Start) && t.EndTime.Before(window.End()) {
			tripEvents = append(tripEvents, end)
		}
	}

	result, err := replay.Replay(reg, alloc.StartingCounts(reg), tripEvents, plan, replay.Params{
		BucketMinutes:             cfg.Fleet.BucketMinutes,
		DonorMinBikesLeft:         cfg.Planner.DonorMinBikesLeft,
		ReceiverMinEmptyDocksLeft: cfg.Planner.ReceiverMinEmptyDocksLeft,
		MovesPerHour:              cfg.Planner.MovesPerHour,
	})
	if err != nil {
		panic(err)
	}

	summary := analysis.Summarize(plan, result)
	fmt.Printf("%d/%d planned moves applied, %d bikes actually moved\n", summary.MovesApplied, len(plan.Moves), summary.TotalMovedBikes)

	risk := analysis.StationRisk(summary.EmptyBucketCount, 5)
	fmt.Printf("\nstations that spent the most buckets empty:\n")
	for i, sid := range risk {
		fmt.Printf("  %d. %s (%d empty buckets)\n", i+1, sid, summary.EmptyBucketCount[sid])
	}

	fmt.Printf("\nDone.\n")
}
