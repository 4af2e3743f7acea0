package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/analysis"
	"github.com/AndrewGordienko/rebalance3/internal/bucketize"
	"github.com/AndrewGordienko/rebalance3/internal/config"
	"github.com/AndrewGordienko/rebalance3/internal/cost"
	"github.com/AndrewGordienko/rebalance3/internal/data"
	"github.com/AndrewGordienko/rebalance3/internal/events"
	"github.com/AndrewGordienko/rebalance3/internal/midnight"
	"github.com/AndrewGordienko/rebalance3/internal/model"
	"github.com/AndrewGordienko/rebalance3/internal/planner"
	"github.com/AndrewGordienko/rebalance3/internal/replay"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plan":
		cmdPlan(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli plan --trips trips.csv --registry stations.json --day 2024-06-01 --config scenario.yaml --out-dir results")
	fmt.Println("  cli rank --trips trips.csv --registry stations.json --day 2024-06-01 --limit 10")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - plan runs midnight allocation, day planning, and replay, writing")
	fmt.Println("    alloc.csv, moves.csv, and snapshots.csv into --out-dir")
	fmt.Println("  - rank ranks stations by bucketized touch count, a quick risk proxy")
	fmt.Println("    that does not run the full allocator/planner pipeline")
}

func cmdPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	tripsPath := fs.String("trips", "", "Path to trip CSV")
	registryPath := fs.String("registry", "", "Path to station registry JSON")
	clustersPath := fs.String("clusters", "", "Optional path to station cluster CSV")
	eventsPath := fs.String("events", "", "Optional path to local-events JSON")
	day := fs.String("day", "", "Operating day, YYYY-MM-DD")
	cfgPath := fs.String("config", "", "Path to YAML scenario config")
	outDir := fs.String("out-dir", "results", "Directory to write alloc.csv/moves.csv/snapshots.csv into")
	_ = fs.Parse(args)

	if *tripsPath == "" || *registryPath == "" || *day == "" {
		fmt.Println("--trips, --registry, and --day are required")
		os.Exit(2)
	}

	var cfg config.Config
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	} else {
		cfg = config.Default()
	}

	reg, err := data.LoadRegistry(*registryPath)
	if err != nil {
		panic(err)
	}

	var clusters model.StationCluster
	if *clustersPath != "" {
		clusters, err = data.LoadClusters(*clustersPath)
		if err != nil {
			panic(err)
		}
	}

	tripResult, err := (data.TripCSVLoader{}).Load(*tripsPath)
	if err != nil {
		panic(err)
	}
	if tripResult.SkippedRows > 0 {
		fmt.Printf("Skipped %d unparseable trip rows\n", tripResult.SkippedRows)
	}

	dayStart, err := time.ParseInLocation("2006-01-02", *day, time.UTC)
	if err != nil {
		panic(fmt.Errorf("invalid --day %q: %w", *day, err))
	}
	window := bucketize.DayWindow{Start: dayStart}

	var multiplier cost.Multiplier
	eventClusters := clusters
	if *eventsPath != "" {
		evs, err := events.Load(*eventsPath)
		if err != nil {
			panic(err)
		}
		// StationAdapter reads event proximity per station, not per cluster,
		// so it needs each station's own dense index in place of a real
		// cluster id (see internal/events/multiplier.go).
		identity := model.StationCluster{}
		for i, s := range reg.Stations {
			identity[s.ID] = i
		}
		eventClusters = identity
		multiplier = events.StationAdapter{Events: evs, Stations: reg.Stations, DecayKm: 0}
	}

	bktResult, err := bucketize.Bucketize(tripResult.Trips, reg, window, cfg.Fleet.BucketMinutes)
	if err != nil {
		panic(err)
	}
	if bktResult.UnknownStation > 0 || bktResult.SelfLoopSkipped > 0 || bktResult.OutsideDayWindow > 0 {
		fmt.Printf("Bucketize: %d unknown-station, %d self-loop, %d outside-window trips skipped\n",
			bktResult.UnknownStation, bktResult.SelfLoopSkipped, bktResult.OutsideDayWindow)
	}

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
	}, Multiplier: multiplier}

	totalBikes := cfg.Fleet.TotalBikes
	if totalBikes == 0 {
		totalBikes = int(float64(reg.TotalCapacity()) * cfg.Fleet.TotalBikesRatio)
	}

	alloc := midnight.PlanForDay(reg, bktResult.Arrays, eventClusters, midnight.Params{
		TotalBikes: totalBikes,
		Kernel:     kernel,
	})
	fmt.Printf("Midnight allocation: %d bikes across %d stations, cost %.2f -> %.2f (%d moves)\n",
		totalBikes, reg.Len(), alloc.InitialCost, alloc.FinalCost, alloc.MovesCount)

	plan, err := planner.Plan(reg, bktResult.Arrays, alloc.StartingCounts(reg), eventClusters, planner.Params{
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
	fmt.Printf("Planned %d truck moves\n", len(plan.Moves))

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
	fmt.Printf("Replay: %d/%d moves applied, %d bikes moved\n", summary.MovesApplied, len(plan.Moves), summary.TotalMovedBikes)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	if err := midnight.WriteAllocationCSV(filepath.Join(*outDir, "alloc.csv"), alloc, reg); err != nil {
		panic(err)
	}
	if err := replay.WriteAppliedMovesCSV(filepath.Join(*outDir, "moves.csv"), result.AppliedMoves); err != nil {
		panic(err)
	}
	mode := model.SubHourOutput(cfg.Fleet.BucketMinutes)
	if cfg.Fleet.BucketMinutes == 60 {
		mode = model.HourlyOutput()
	}
	if err := replay.WriteSnapshotsCSV(filepath.Join(*outDir, "snapshots.csv"), result.Snapshots, mode); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote alloc.csv, moves.csv, snapshots.csv to %s\n", *outDir)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	tripsPath := fs.String("trips", "", "Path to trip CSV")
	registryPath := fs.String("registry", "", "Path to station registry JSON")
	day := fs.String("day", "", "Operating day, YYYY-MM-DD")
	limit := fs.Int("limit", 10, "Number of stations to print")
	bucketMinutes := fs.Int("bucket-minutes", 15, "Bucket width for the touch-count risk proxy")
	_ = fs.Parse(args)

	if *tripsPath == "" || *registryPath == "" || *day == "" {
		fmt.Println("--trips, --registry, and --day are required")
		os.Exit(2)
	}

	reg, err := data.LoadRegistry(*registryPath)
	if err != nil {
		panic(err)
	}
	tripResult, err := (data.TripCSVLoader{}).Load(*tripsPath)
	if err != nil {
		panic(err)
	}
	dayStart, err := time.ParseInLocation("2006-01-02", *day, time.UTC)
	if err != nil {
		panic(fmt.Errorf("invalid --day %q: %w", *day, err))
	}

	bktResult, err := bucketize.Bucketize(tripResult.Trips, reg, bucketize.DayWindow{Start: dayStart}, *bucketMinutes)
	if err != nil {
		panic(err)
	}

	touches := map[string]int{}
	for i, s := range reg.Stations {
		if t := bktResult.Arrays.TouchTotal[i]; t > 0 {
			touches[s.ID] = t
		}
	}

	ranked := analysis.StationRisk(touches, *limit)
	fmt.Printf("%-4s %-24s %-8s %-10s\n", "rank", "station", "touches", "capacity")
	for i, sid := range ranked {
		idx := reg.Index(sid)
		cap := 0
		if idx >= 0 {
			cap = reg.Station(idx).Capacity
		}
		fmt.Printf("%-4d %-24s %-8d %-10d\n", i+1, sid, touches[sid], cap)
	}
}
