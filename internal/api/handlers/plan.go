package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/analysis"
	"github.com/AndrewGordienko/rebalance3/internal/api/models"
	"github.com/AndrewGordienko/rebalance3/internal/bucketize"
	"github.com/AndrewGordienko/rebalance3/internal/cost"
	"github.com/AndrewGordienko/rebalance3/internal/data"
	"github.com/AndrewGordienko/rebalance3/internal/midnight"
	"github.com/AndrewGordienko/rebalance3/internal/model"
	"github.com/AndrewGordienko/rebalance3/internal/planner"
	"github.com/AndrewGordienko/rebalance3/internal/replay"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the full midnight-allocation + day-planner + replay
// pipeline over HTTP.
type PlanHandler struct{}

func NewPlanHandler() *PlanHandler { return &PlanHandler{} }

// RunPlan handles POST /api/v1/plan.
func (h *PlanHandler) RunPlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	resp, err := runPipeline(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PIPELINE_FAILED", Message: err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func runPipeline(req models.PlanRequest) (models.PlanResponse, error) {
	reg, err := data.LoadRegistry(req.DataSource.RegistryPath)
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("loading registry: %w", err)
	}

	var clusters model.StationCluster
	if req.DataSource.ClustersPath != "" {
		clusters, err = data.LoadClusters(req.DataSource.ClustersPath)
		if err != nil {
			return models.PlanResponse{}, fmt.Errorf("loading clusters: %w", err)
		}
	}

	tripResult, err := (data.TripCSVLoader{}).Load(req.DataSource.TripsCSVPath)
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("loading trips: %w", err)
	}

	day, err := time.ParseInLocation("2006-01-02", req.DataSource.Day, time.UTC)
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("invalid day %q: %w", req.DataSource.Day, err)
	}
	window := bucketize.DayWindow{Start: day}

	cfg := req.Config
	bucketMinutes := cfg.Fleet.BucketMinutes
	if bucketMinutes == 0 {
		bucketMinutes = 15
	}

	arrays, err := bucketizeCached(req.DataSource.TripsCSVPath, req.DataSource.Day, bucketMinutes, tripResult.Trips, reg, window)
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("bucketizing trips: %w", err)
	}

	kernel := cost.Kernel{Weights: cost.Weights{
		EmptyThreshold:    orDefault(cfg.Cost.EmptyThreshold, 0.10),
		FullThreshold:     orDefault(cfg.Cost.FullThreshold, 0.90),
		WEmpty:            orDefault(cfg.Cost.WEmpty, 1.0),
		WFull:             orDefault(cfg.Cost.WFull, 1.0),
		WBikeNeed:         orDefault(cfg.Cost.WBikeNeed, 1.0),
		WDockNeed:         orDefault(cfg.Cost.WDockNeed, 1.4),
		PickupBufferMult:  orDefault(cfg.Cost.PickupBufferMult, 1.0),
		DropoffBufferMult: orDefault(cfg.Cost.DropoffBufferMult, 1.0),
		LookaheadBuckets:  orDefaultInt(cfg.Cost.LookaheadMinutes, 180) / bucketMinutes,
	}}

	totalBikes := cfg.Fleet.TotalBikes
	if totalBikes == 0 {
		ratio := cfg.Fleet.TotalBikesRatio
		if ratio == 0 {
			ratio = 0.60
		}
		totalBikes = int(float64(reg.TotalCapacity()) * ratio)
	}

	alloc := midnight.PlanForDay(reg, arrays, clusters, midnight.Params{
		TotalBikes: totalBikes,
		Kernel:     kernel,
	})

	plan, err := planner.Plan(reg, arrays, alloc.StartingCounts(reg), clusters, planner.Params{
		MovesBudget:               orDefaultInt(cfg.Planner.MovesBudget, 50),
		TruckCap:                  orDefaultInt(cfg.Planner.TruckCap, 20),
		DonorMinBikesLeft:         orDefaultInt(cfg.Planner.DonorMinBikesLeft, 3),
		ReceiverMinEmptyDocksLeft: orDefaultInt(cfg.Planner.ReceiverMinEmptyDocksLeft, 2),
		ServiceStartHour:          orDefaultInt(cfg.Planner.ServiceStartHour, 8),
		ServiceEndHour:            orDefaultInt(cfg.Planner.ServiceEndHour, 20),
		CandidateTimeTopK:         orDefaultInt(cfg.Planner.CandidateTimeTopK, 8),
		TopKSources:               orDefaultInt(cfg.Planner.TopKSources, 10),
		TopKSinks:                 orDefaultInt(cfg.Planner.TopKSinks, 10),
		UseDistancePenalty:        cfg.Planner.UseDistancePenalty,
		DistancePenaltyPerKm:      cfg.Planner.DistancePenaltyPerKm,
		MaxPairKm:                 orDefault(cfg.Planner.MaxPairKm, 10.0),
		Kernel:                    kernel,
	})
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("planning day: %w", err)
	}

	events := tripEvents(tripResult.Trips, window)
	result, err := replay.Replay(reg, alloc.StartingCounts(reg), events, plan, replay.Params{
		BucketMinutes: bucketMinutes,
		MovesPerHour:  cfg.Planner.MovesPerHour,
	})
	if err != nil {
		return models.PlanResponse{}, fmt.Errorf("replaying day: %w", err)
	}

	summary := analysis.Summarize(plan, result)

	resp := models.PlanResponse{
		Status: "ok",
		Summary: models.PlanSummary{
			Day:                 req.DataSource.Day,
			BucketMinutes:       bucketMinutes,
			TotalBikes:          totalBikes,
			MidnightInitialCost: alloc.InitialCost,
			MidnightFinalCost:   alloc.FinalCost,
			MidnightMoves:       alloc.MovesCount,
			MovesPlanned:        len(plan.Moves),
			MovesApplied:        summary.MovesApplied,
			MovesDropped:        summary.MovesDropped,
			TotalMovedBikes:     summary.TotalMovedBikes,
		},
	}
	for _, m := range plan.Moves {
		tMin := 0
		if m.When.IsScheduled() {
			tMin = m.When.Minute()
		}
		resp.Moves = append(resp.Moves, models.TruckMoveOut{
			TMinute: tMin, From: m.From, To: m.To, Bikes: m.Bikes, DistanceKm: m.DistanceKm,
		})
	}
	if req.Options.IncludeSnapshots {
		for _, s := range result.Snapshots {
			resp.Snapshots = append(resp.Snapshots, models.SnapshotOut{
				StationID: s.StationID, TMinute: s.MinuteOfDay, Bikes: s.Bikes,
				EmptyDocks: s.EmptyDocks, Capacity: s.Capacity,
			})
		}
	}
	return resp, nil
}

// bucketizeCached wraps bucketize.Bucketize with the package-level
// BucketizationCache, keyed on exactly the inputs that determine the
// result. Caching is a no-op (always misses, never stores) unless
// ENABLE_BUCKETIZE_CACHE=true.
func bucketizeCached(tripsPath, day string, bucketMinutes int, trips []model.Trip, reg *model.Registry, window bucketize.DayWindow) (*model.StationArrays, error) {
	cache := data.GetBucketizationCache()
	key := data.BucketizationCacheKey(tripsPath, day, bucketMinutes)
	if arrays, ok := cache.Get(key); ok {
		return arrays, nil
	}

	result, err := bucketize.Bucketize(trips, reg, window, bucketMinutes)
	if err != nil {
		return nil, err
	}
	cache.Set(key, result.Arrays)
	return result.Arrays, nil
}

func tripEvents(trips []model.Trip, window bucketize.DayWindow) []model.TripEvent {
	var events []model.TripEvent
	for _, t := range trips {
		start, end := t.SplitEvents(window.Start)
		if !t.StartTime.Before(window.Start) && t.StartTime.Before(window.End()) {
			events = append(events, start)
		}
		if !t.EndTime.Before(window.Start) && t.EndTime.Before(window.End()) {
			events = append(events, end)
		}
	}
	return events
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
