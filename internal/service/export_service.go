package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"
	"github.com/DenGolivets/tracker-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrExportRangeInvalid = errors.New("export range is invalid")
	ErrExportRangeTooWide = errors.New("export range exceeds the maximum of 92 days")
)

const maxExportDays = 92

// ExportResult describes a completed export snapshot.
type ExportResult struct {
	ObjectKey   string `json:"objectKey"`
	DownloadURL string `json:"downloadUrl"`
	Days        int    `json:"days"`
	Entries     int    `json:"entries"`
}

// exportDay is one day's slice of the snapshot file.
type exportDay struct {
	Date        string            `json:"date"`
	Entries     []domain.LogEntry `json:"entries"`
	WaterLiters float64           `json:"waterLiters"`
}

// exportSnapshot is the JSON document uploaded to object storage.
type exportSnapshot struct {
	UserID     string      `json:"userId"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	ExportedAt time.Time   `json:"exportedAt"`
	Days       []exportDay `json:"days"`
}

// ExportService snapshots a date range of a user's daily logs to object
// storage and hands back a temporary download URL.
type ExportService interface {
	ExportDailyLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*ExportResult, error)
}

type exportService struct {
	logRepo     repository.DailyLogRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(logRepo repository.DailyLogRepository, fileStorage storage.FileStorage, logger *zap.Logger) ExportService {
	return &exportService{
		logRepo:     logRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// ExportDailyLogs walks the range day by day, gathers entries and water,
// uploads one JSON snapshot and returns a presigned download URL.
func (s *exportService) ExportDailyLogs(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (*ExportResult, error) {
	from = from.UTC().Truncate(24 * time.Hour)
	to = to.UTC().Truncate(24 * time.Hour)
	if to.Before(from) {
		return nil, ErrExportRangeInvalid
	}
	if int(to.Sub(from).Hours()/24)+1 > maxExportDays {
		return nil, ErrExportRangeTooWide
	}

	snapshot := exportSnapshot{
		UserID:     userID.Hex(),
		From:       domain.DateKey(from),
		To:         domain.DateKey(to),
		ExportedAt: time.Now().UTC(),
	}

	entryCount := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dateKey := domain.DateKey(day)

		entries, err := s.logRepo.GetDailyLogs(ctx, userID, dateKey)
		if err != nil {
			return nil, err
		}
		water, err := s.logRepo.GetWaterIntake(ctx, userID, dateKey)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 && water == 0 {
			continue
		}

		snapshot.Days = append(snapshot.Days, exportDay{
			Date:        dateKey,
			Entries:     entries,
			WaterLiters: water,
		})
		entryCount += len(entries)
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}

	objectKey := path.Join(
		"exports",
		userID.Hex(),
		fmt.Sprintf("%s-%s.json", time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8]),
	)

	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	s.logger.Info("daily logs exported",
		zap.String("userId", userID.Hex()),
		zap.String("key", objectKey),
		zap.Int("days", len(snapshot.Days)),
		zap.Int("entries", entryCount),
	)

	return &ExportResult{
		ObjectKey:   objectKey,
		DownloadURL: downloadURL,
		Days:        len(snapshot.Days),
		Entries:     entryCount,
	}, nil
}
