package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler serves daily log and water intake endpoints.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs ---

// AddLogRequest carries one food or exercise entry. Calories and macros
// accept numbers or macro-strings, matching what clients have always sent.
type AddLogRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Calories any    `json:"calories" binding:"required"`
	Date     string `json:"date"` // YYYY-MM-DD, defaults to today

	// Food only.
	Protein any `json:"protein"`
	Fats    any `json:"fats"`
	Carbs   any `json:"carbs"`

	// Exercise only.
	Intensity  string `json:"intensity"`
	Duration   string `json:"duration"`
	ExerciseID string `json:"exerciseId"`
}

type AddLogResponse struct {
	Entry domain.LogEntry `json:"entry"`
	Date  string          `json:"date"`
}

type AddWaterRequest struct {
	Liters float64 `json:"liters" binding:"required"`
	Date   string  `json:"date"` // YYYY-MM-DD, defaults to today
}

// --- Handler Methods ---

// AddLog appends a food or exercise entry to the day's log.
func (h *LogHandler) AddLog(c *gin.Context) {
	var req AddLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	var entry domain.LogEntry
	switch domain.LogKind(req.Kind) {
	case domain.KindFood:
		entry = domain.NewFoodEntry(req.Name, req.Calories, req.Protein, req.Fats, req.Carbs, req.Date)
	case domain.KindExercise:
		entry = domain.NewExerciseEntry(req.Name, req.Calories, req.Intensity, req.Duration, req.ExerciseID, req.Date)
	default:
		abortWithError(c, http.StatusBadRequest, service.ErrInvalidLogKind.Error())
		return
	}

	stored, dateKey, err := h.logService.AddEntry(c.Request.Context(), userID, entry)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogKind) || errors.Is(err, service.ErrEntryNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to add log entry")
		return
	}

	c.JSON(http.StatusCreated, AddLogResponse{Entry: stored, Date: dateKey})
}

// GetLogs returns the merged entry list for one day.
func (h *LogHandler) GetLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	entries, err := h.logService.GetEntries(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": entries})
}

// AddWater accumulates a delta onto the day's water intake.
func (h *LogHandler) AddWater(c *gin.Context) {
	var req AddWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	if err := h.logService.AddWater(c.Request.Context(), userID, date, req.Liters); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update water intake")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// parseDateParam reads the optional ?date=YYYY-MM-DD query parameter,
// defaulting to today. Returns false after writing the error response.
func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return parsed, true
}
