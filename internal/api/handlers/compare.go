package handlers

import (
	"fmt"
	"net/http"

	"github.com/AndrewGordienko/rebalance3/internal/api/models"

	"github.com/gin-gonic/gin"
)

// CompareHandler runs the same day under several planner/cost variations so
// callers can compare the resulting plan summaries side by side.
type CompareHandler struct{}

func NewCompareHandler() *CompareHandler { return &CompareHandler{} }

// RunCompare handles POST /api/v1/compare.
func (h *CompareHandler) RunCompare(c *gin.Context) {
	var req models.CompareScenariosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	if len(req.Variations) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_VARIATIONS", Message: "at least one variation is required"},
		})
		return
	}

	results := make([]models.ScenarioComparisonResult, 0, len(req.Variations))
	for _, v := range req.Variations {
		cfg := mergeVariation(req.BaseConfig, v.Config)
		resp, err := runPipeline(models.PlanRequest{
			DataSource: req.DataSource,
			Config:     cfg,
		})
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "PIPELINE_FAILED",
					Message: fmt.Sprintf("variation %q: %v", v.Name, err),
				},
			})
			return
		}
		results = append(results, models.ScenarioComparisonResult{
			Name:    v.Name,
			Summary: resp.Summary,
		})
	}

	c.JSON(http.StatusOK, models.CompareScenariosResponse{Comparison: results})
}

// mergeVariation overlays the non-zero fields of a variation's config onto
// the request's base config, so variations only need to spell out what they
// change relative to the baseline run.
func mergeVariation(base, override models.PlanConfig) models.PlanConfig {
	out := base

	if override.ScenarioFile != "" {
		out.ScenarioFile = override.ScenarioFile
	}
	if override.Fleet.BucketMinutes != 0 {
		out.Fleet.BucketMinutes = override.Fleet.BucketMinutes
	}
	if override.Fleet.TotalBikesRatio != 0 {
		out.Fleet.TotalBikesRatio = override.Fleet.TotalBikesRatio
	}
	if override.Fleet.TotalBikes != 0 {
		out.Fleet.TotalBikes = override.Fleet.TotalBikes
	}

	if override.Cost.EmptyThreshold != 0 {
		out.Cost.EmptyThreshold = override.Cost.EmptyThreshold
	}
	if override.Cost.FullThreshold != 0 {
		out.Cost.FullThreshold = override.Cost.FullThreshold
	}
	if override.Cost.WEmpty != 0 {
		out.Cost.WEmpty = override.Cost.WEmpty
	}
	if override.Cost.WFull != 0 {
		out.Cost.WFull = override.Cost.WFull
	}
	if override.Cost.WBikeNeed != 0 {
		out.Cost.WBikeNeed = override.Cost.WBikeNeed
	}
	if override.Cost.WDockNeed != 0 {
		out.Cost.WDockNeed = override.Cost.WDockNeed
	}
	if override.Cost.PickupBufferMult != 0 {
		out.Cost.PickupBufferMult = override.Cost.PickupBufferMult
	}
	if override.Cost.DropoffBufferMult != 0 {
		out.Cost.DropoffBufferMult = override.Cost.DropoffBufferMult
	}
	if override.Cost.LookaheadMinutes != 0 {
		out.Cost.LookaheadMinutes = override.Cost.LookaheadMinutes
	}

	if override.Planner.MovesBudget != 0 {
		out.Planner.MovesBudget = override.Planner.MovesBudget
	}
	if override.Planner.TruckCap != 0 {
		out.Planner.TruckCap = override.Planner.TruckCap
	}
	if override.Planner.DonorMinBikesLeft != 0 {
		out.Planner.DonorMinBikesLeft = override.Planner.DonorMinBikesLeft
	}
	if override.Planner.ReceiverMinEmptyDocksLeft != 0 {
		out.Planner.ReceiverMinEmptyDocksLeft = override.Planner.ReceiverMinEmptyDocksLeft
	}
	if override.Planner.ServiceStartHour != 0 {
		out.Planner.ServiceStartHour = override.Planner.ServiceStartHour
	}
	if override.Planner.ServiceEndHour != 0 {
		out.Planner.ServiceEndHour = override.Planner.ServiceEndHour
	}
	if override.Planner.CandidateTimeTopK != 0 {
		out.Planner.CandidateTimeTopK = override.Planner.CandidateTimeTopK
	}
	if override.Planner.TopKSources != 0 {
		out.Planner.TopKSources = override.Planner.TopKSources
	}
	if override.Planner.TopKSinks != 0 {
		out.Planner.TopKSinks = override.Planner.TopKSinks
	}
	if override.Planner.UseDistancePenalty {
		out.Planner.UseDistancePenalty = true
	}
	if override.Planner.DistancePenaltyPerKm != 0 {
		out.Planner.DistancePenaltyPerKm = override.Planner.DistancePenaltyPerKm
	}
	if override.Planner.MaxPairKm != 0 {
		out.Planner.MaxPairKm = override.Planner.MaxPairKm
	}
	if override.Planner.MovesPerHour != 0 {
		out.Planner.MovesPerHour = override.Planner.MovesPerHour
	}

	return out
}
