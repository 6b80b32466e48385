package repository

import (
	"context"

	"github.com/DenGolivets/tracker-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WaterUpdateMode declares how an adapter applies water-intake updates.
// Two generations of adapters exist in the wild: one accumulates deltas,
// the other overwrites with an absolute value. Callers must check the
// declared mode instead of inferring it, or "add 0.25L" flows silently
// double-count or lose data against the wrong adapter.
type WaterUpdateMode int

const (
	WaterUpdateIncrement WaterUpdateMode = iota
	WaterUpdateAbsolute
)

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SaveProfile(ctx context.Context, id primitive.ObjectID, profile *domain.Profile, completed bool) error
	SaveNutritionPlan(ctx context.Context, id primitive.ObjectID, plan *domain.NutritionPlan) error
	CompleteOnboarding(ctx context.Context, id primitive.ObjectID) error
}

// DailyLogRepository defines the interface for the per-day log documents.
// One storage unit per user per calendar day holds every entry for that day
// plus the day's water-intake scalar.
type DailyLogRepository interface {
	// GetDailyLogs returns the merged food+exercise entries for the day,
	// each with a stable id and a kind discriminator.
	GetDailyLogs(ctx context.Context, userID primitive.ObjectID, dateKey string) ([]domain.LogEntry, error)

	// AddDailyLog appends one entry (append-only; no edit or delete) and
	// returns the date key of the document it landed in.
	AddDailyLog(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (string, error)

	GetWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string) (float64, error)

	// UpdateWaterIntake applies liters according to WaterUpdateMode.
	UpdateWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string, liters float64) error

	// WaterUpdateMode reports which semantic UpdateWaterIntake implements.
	WaterUpdateMode() WaterUpdateMode
}
