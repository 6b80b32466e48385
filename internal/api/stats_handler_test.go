package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStatsService struct {
	stats domain.DailyStats
	err   error
}

func (f *fakeStatsService) GetDailyStats(ctx context.Context, userID primitive.ObjectID, date time.Time) (domain.DailyStats, error) {
	if f.err != nil {
		return domain.DailyStats{}, f.err
	}
	return f.stats, nil
}

func (f *fakeStatsService) NewTracker(ctx context.Context, userID primitive.ObjectID, date time.Time) *service.StatsTracker {
	return nil
}

// testAuth injects a fixed user ID, bypassing JWT parsing.
func testAuth(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Next()
	}
}

func newStatsRouter(svc service.StatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewStatsHandler(svc, 0.25)
	router.GET("/stats/daily", testAuth(primitive.NewObjectID()), handler.GetDailyStats)
	return router
}

func TestGetDailyStats(t *testing.T) {
	svc := &fakeStatsService{
		stats: domain.DailyStats{
			Date:              "2025-05-01",
			TargetCalories:    2000,
			ConsumedCalories:  500,
			BurnedCalories:    300,
			RemainingCalories: 1800,
			TargetWater:       2.0,
			ConsumedWater:     1.0,
			Logs:              []domain.LogEntry{},
		},
	}
	router := newStatsRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats/daily?date=2025-05-01", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RemainingCalories int `json:"remainingCalories"`
		Water             struct {
			RemainingContainers float64  `json:"remainingContainers"`
			Containers          []string `json:"containers"`
		} `json:"water"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1800, resp.RemainingCalories)
	assert.Equal(t, 4.0, resp.Water.RemainingContainers)
	assert.Len(t, resp.Water.Containers, 8)
}

func TestGetDailyStatsRejectsBadDate(t *testing.T) {
	router := newStatsRouter(&fakeStatsService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats/daily?date=05/01/2025", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddLogRejectsUnknownKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logRepo := &stubLogRepo{}
	logService, err := service.NewLogService(logRepo, zapNop())
	require.NoError(t, err)
	handler := NewLogHandler(logService)
	router.POST("/logs", testAuth(primitive.NewObjectID()), handler.AddLog)

	body := `{"kind":"snack","name":"Mystery","calories":100}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
