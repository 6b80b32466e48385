package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

type fakeFileStorage struct {
	putKey  string
	putBody []byte
	putType string
}

func (f *fakeFileStorage) PutObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	f.putKey = objectKey
	f.putBody = body
	f.putType = contentType
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return nil
}

func TestExportDailyLogs(t *testing.T) {
	logRepo := &fakeLogRepo{
		logs: []domain.LogEntry{
			domain.NewFoodEntry("Oatmeal", 350, "12г", 6, 60, "2025-05-01"),
			domain.NewExerciseEntry("Run", 300, "high", "30 min", domain.ExerciseRun, "2025-05-01"),
		},
		water: 1.5,
	}
	fs := &fakeFileStorage{}
	svc := NewExportService(logRepo, fs, zaptest.NewLogger(t))

	result, err := svc.ExportDailyLogs(
		context.Background(),
		primitive.NewObjectID(),
		mustDate(t, "2025-05-01"),
		mustDate(t, "2025-05-03"),
	)
	require.NoError(t, err)

	// The fake returns the same entries for every day in the range.
	assert.Equal(t, 3, result.Days)
	assert.Equal(t, 6, result.Entries)
	assert.Equal(t, fs.putKey, result.ObjectKey)
	assert.Contains(t, result.DownloadURL, result.ObjectKey)
	assert.Equal(t, "application/json", fs.putType)

	var snapshot struct {
		Days []struct {
			Date        string  `json:"date"`
			WaterLiters float64 `json:"waterLiters"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(fs.putBody, &snapshot))
	require.Len(t, snapshot.Days, 3)
	assert.Equal(t, "2025-05-01", snapshot.Days[0].Date)
	assert.Equal(t, 1.5, snapshot.Days[0].WaterLiters)
}

func TestExportDailyLogsRangeValidation(t *testing.T) {
	svc := NewExportService(&fakeLogRepo{}, &fakeFileStorage{}, zaptest.NewLogger(t))
	userID := primitive.NewObjectID()

	_, err := svc.ExportDailyLogs(context.Background(), userID, mustDate(t, "2025-05-02"), mustDate(t, "2025-05-01"))
	assert.ErrorIs(t, err, ErrExportRangeInvalid)

	_, err = svc.ExportDailyLogs(context.Background(), userID, mustDate(t, "2025-01-01"), mustDate(t, "2025-12-31"))
	assert.ErrorIs(t, err, ErrExportRangeTooWide)
}

func TestExportDailyLogsSkipsEmptyDays(t *testing.T) {
	svc := NewExportService(&fakeLogRepo{}, &fakeFileStorage{}, zaptest.NewLogger(t))

	result, err := svc.ExportDailyLogs(
		context.Background(),
		primitive.NewObjectID(),
		mustDate(t, "2025-05-01"),
		mustDate(t, "2025-05-07"),
	)
	require.NoError(t, err)
	assert.Zero(t, result.Days)
	assert.Zero(t, result.Entries)
}
