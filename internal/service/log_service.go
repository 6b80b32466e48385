package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrInvalidLogKind       = errors.New("log entry kind must be \"food\" or \"exercise\"")
	ErrEntryNameRequired    = errors.New("log entry name is required")
	ErrWaterModeUnsupported = errors.New("daily log adapter must support incremental water updates")
)

// LogService validates and appends daily log entries and water updates.
type LogService interface {
	AddEntry(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (domain.LogEntry, string, error)
	GetEntries(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.LogEntry, error)
	AddWater(ctx context.Context, userID primitive.ObjectID, date time.Time, liters float64) error
	GetWater(ctx context.Context, userID primitive.ObjectID, date time.Time) (float64, error)
}

type logService struct {
	logRepo repository.DailyLogRepository
	logger  *zap.Logger
}

// NewLogService creates a new LogService. The add-water flow sends deltas,
// so an adapter declaring absolute-overwrite semantics is refused outright
// rather than left to silently lose concurrent updates.
func NewLogService(logRepo repository.DailyLogRepository, logger *zap.Logger) (LogService, error) {
	if logRepo.WaterUpdateMode() != repository.WaterUpdateIncrement {
		return nil, ErrWaterModeUnsupported
	}
	return &logService{
		logRepo: logRepo,
		logger:  logger,
	}, nil
}

// AddEntry validates and appends one entry. Entries with an unrecognized
// kind are rejected here, at write time, so the stored log stays clean.
// Returns the stored entry (with its assigned id) and the date key it was
// filed under.
func (s *logService) AddEntry(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (domain.LogEntry, string, error) {
	if !entry.Kind.Valid() {
		return domain.LogEntry{}, "", ErrInvalidLogKind
	}
	if entry.Name == "" {
		return domain.LogEntry{}, "", ErrEntryNameRequired
	}

	if entry.Date == "" {
		entry.Date = domain.DateKey(time.Now())
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.ID == "" {
		prefix := "meal"
		if entry.Kind == domain.KindExercise {
			prefix = "ex"
		}
		entry.ID = fmt.Sprintf("%s-%s", prefix, uuid.NewString())
	}

	dateKey, err := s.logRepo.AddDailyLog(ctx, userID, entry)
	if err != nil {
		return domain.LogEntry{}, "", err
	}

	s.logger.Info("daily log entry added",
		zap.String("userId", userID.Hex()),
		zap.String("date", dateKey),
		zap.String("kind", string(entry.Kind)),
	)
	return entry, dateKey, nil
}

// GetEntries returns the merged food+exercise list for the day.
func (s *logService) GetEntries(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.LogEntry, error) {
	return s.logRepo.GetDailyLogs(ctx, userID, domain.DateKey(date))
}

// AddWater accumulates a delta (liters) onto the day's water intake.
// Negative deltas are allowed so a mistaken tap can be undone.
func (s *logService) AddWater(ctx context.Context, userID primitive.ObjectID, date time.Time, liters float64) error {
	if liters == 0 {
		return nil
	}
	return s.logRepo.UpdateWaterIntake(ctx, userID, domain.DateKey(date), liters)
}

// GetWater returns the liters consumed on the given day.
func (s *logService) GetWater(ctx context.Context, userID primitive.ObjectID, date time.Time) (float64, error) {
	return s.logRepo.GetWaterIntake(ctx, userID, domain.DateKey(date))
}
