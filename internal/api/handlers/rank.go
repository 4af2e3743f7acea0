package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/AndrewGordienko/rebalance3/internal/analysis"
	"github.com/AndrewGordienko/rebalance3/internal/api/models"
	"github.com/AndrewGordienko/rebalance3/internal/bucketize"
	"github.com/AndrewGordienko/rebalance3/internal/data"

	"github.com/gin-gonic/gin"
)

// RankStations handles GET /api/v1/rank: ranks stations by their day's total
// bucketized touch count (pickups + dropoffs), a quick risk proxy; no
// allocation, planning or replay is run, so no empty buckets are counted.
// Each ranking's EmptyBucketCount field carries that touch count, and
// FullBucketCount is left at 0.
func RankStations(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	reg, err := data.LoadRegistry(req.RegistryPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "REGISTRY_LOAD_ERROR", Message: fmt.Sprintf("failed to load registry: %v", err)},
		})
		return
	}

	tripResult, err := (data.TripCSVLoader{}).Load(req.TripsCSVPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "TRIPS_LOAD_ERROR", Message: fmt.Sprintf("failed to load trips: %v", err)},
		})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Day, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_DAY", Message: err.Error()},
		})
		return
	}

	bktResult, err := bucketize.Bucketize(tripResult.Trips, reg, bucketize.DayWindow{Start: day}, 15)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "BUCKETIZE_ERROR", Message: err.Error()},
		})
		return
	}

	emptyCounts := map[string]int{}
	fullCounts := map[string]int{}
	for i, s := range reg.Stations {
		touches := bktResult.Arrays.TouchTotal[i]
		if touches == 0 {
			continue
		}
		emptyCounts[s.ID] = touches
		_ = fullCounts
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	top := analysis.StationRisk(emptyCounts, limit)

	var rankings []models.StationRanking
	for i, sid := range top {
		idx := reg.Index(sid)
		cap := 0
		if idx >= 0 {
			cap = reg.Station(idx).Capacity
		}
		rankings = append(rankings, models.StationRanking{
			Rank:             i + 1,
			StationID:        sid,
			EmptyBucketCount: emptyCounts[sid],
			Capacity:         cap,
		})
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}
