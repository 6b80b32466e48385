package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves daily-log export requests.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type ExportRequest struct {
	From string `json:"from" binding:"required"` // YYYY-MM-DD
	To   string `json:"to" binding:"required"`   // YYYY-MM-DD
}

// CreateExport snapshots the requested range to object storage and returns
// a temporary download URL.
func (h *ExportHandler) CreateExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	result, err := h.exportService.ExportDailyLogs(c.Request.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrExportRangeInvalid) || errors.Is(err, service.ErrExportRangeTooWide) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Export failed")
		return
	}

	c.JSON(http.StatusCreated, result)
}
