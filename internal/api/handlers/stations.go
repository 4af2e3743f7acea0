package handlers

import (
	"fmt"
	"net/http"

	"github.com/AndrewGordienko/rebalance3/internal/api/models"
	"github.com/AndrewGordienko/rebalance3/internal/data"

	"github.com/gin-gonic/gin"
)

// ListStations handles GET /api/v1/stations?registry_path=...
func ListStations(c *gin.Context) {
	registryPath := c.Query("registry_path")
	if registryPath == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "MISSING_PARAM", Message: "registry_path query parameter is required"},
		})
		return
	}

	reg, err := data.LoadRegistry(registryPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "REGISTRY_LOAD_ERROR", Message: fmt.Sprintf("failed to load registry: %v", err)},
		})
		return
	}

	stations := make([]models.StationInfo, 0, reg.Len())
	for _, s := range reg.Stations {
		stations = append(stations, models.StationInfo{
			ID: s.ID, Name: s.Name, Capacity: s.Capacity, Lat: s.Lat, Lon: s.Lon,
		})
	}

	c.JSON(http.StatusOK, gin.H{"stations": stations, "count": len(stations)})
}
