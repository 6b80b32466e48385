package api

import (
	"context"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func zapNop() *zap.Logger {
	return zap.NewNop()
}

// stubLogRepo is an in-memory DailyLogRepository for handler tests.
type stubLogRepo struct {
	entries []domain.LogEntry
	water   float64
}

func (s *stubLogRepo) GetDailyLogs(ctx context.Context, userID primitive.ObjectID, dateKey string) ([]domain.LogEntry, error) {
	return s.entries, nil
}

func (s *stubLogRepo) AddDailyLog(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (string, error) {
	s.entries = append(s.entries, entry)
	return entry.Date, nil
}

func (s *stubLogRepo) GetWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string) (float64, error) {
	return s.water, nil
}

func (s *stubLogRepo) UpdateWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string, liters float64) error {
	s.water += liters
	return nil
}

func (s *stubLogRepo) WaterUpdateMode() repository.WaterUpdateMode {
	return repository.WaterUpdateIncrement
}
