package api

import (
	"net/http"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the derived daily statistics.
type StatsHandler struct {
	statsService    service.StatsService
	containerLiters float64
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService, containerLiters float64) *StatsHandler {
	return &StatsHandler{
		statsService:    statsService,
		containerLiters: containerLiters,
	}
}

// DailyStatsResponse bundles the day's stats with the water container view.
type DailyStatsResponse struct {
	domain.DailyStats
	Water service.WaterProgress `json:"water"`
}

// GetDailyStats returns the full derived snapshot for one calendar day.
// The date query parameter is YYYY-MM-DD and defaults to today.
func (h *StatsHandler) GetDailyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	stats, err := h.statsService.GetDailyStats(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute daily stats")
		return
	}

	c.JSON(http.StatusOK, DailyStatsResponse{
		DailyStats: stats,
		Water:      service.ComputeWaterProgress(stats.ConsumedWater, stats.TargetWater, h.containerLiters),
	})
}
