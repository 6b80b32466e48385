package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

// --- Fakes ---

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil {
		return nil, repository.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) SaveProfile(ctx context.Context, id primitive.ObjectID, profile *domain.Profile, completed bool) error {
	return nil
}

func (f *fakeUserRepo) SaveNutritionPlan(ctx context.Context, id primitive.ObjectID, plan *domain.NutritionPlan) error {
	return nil
}

func (f *fakeUserRepo) CompleteOnboarding(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

type fakeLogRepo struct {
	logs     []domain.LogEntry
	water    float64
	logsErr  error
	waterErr error
	mode     repository.WaterUpdateMode

	added      []domain.LogEntry
	waterAdded float64
}

func (f *fakeLogRepo) GetDailyLogs(ctx context.Context, userID primitive.ObjectID, dateKey string) ([]domain.LogEntry, error) {
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	return f.logs, nil
}

func (f *fakeLogRepo) AddDailyLog(ctx context.Context, userID primitive.ObjectID, entry domain.LogEntry) (string, error) {
	f.added = append(f.added, entry)
	return entry.Date, nil
}

func (f *fakeLogRepo) GetWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string) (float64, error) {
	if f.waterErr != nil {
		return 0, f.waterErr
	}
	return f.water, nil
}

func (f *fakeLogRepo) UpdateWaterIntake(ctx context.Context, userID primitive.ObjectID, dateKey string, liters float64) error {
	f.waterAdded += liters
	return nil
}

func (f *fakeLogRepo) WaterUpdateMode() repository.WaterUpdateMode {
	return f.mode
}

func userWithPlan(plan *domain.NutritionPlan) *domain.User {
	return &domain.User{
		ID:            primitive.NewObjectID(),
		Email:         "test@example.com",
		NutritionPlan: plan,
	}
}

// --- ResolveTargets ---

func TestResolveTargets(t *testing.T) {
	t.Run("nil user falls back to defaults", func(t *testing.T) {
		targets := ResolveTargets(nil)
		assert.Equal(t, 2000, targets.Calories)
		assert.Zero(t, targets.Protein)
		assert.Zero(t, targets.Water)
	})

	t.Run("missing plan falls back to defaults", func(t *testing.T) {
		targets := ResolveTargets(userWithPlan(nil))
		assert.Equal(t, 2000, targets.Calories)
	})

	t.Run("zero calories falls back to default", func(t *testing.T) {
		targets := ResolveTargets(userWithPlan(&domain.NutritionPlan{}))
		assert.Equal(t, 2000, targets.Calories)
	})

	t.Run("macro-strings are parsed", func(t *testing.T) {
		targets := ResolveTargets(userWithPlan(&domain.NutritionPlan{
			DailyCalories: 2200,
			Macros: domain.PlanMacros{
				Protein: "150г",
				Carbs:   "200г",
				Fats:    "70г",
			},
			WaterIntake: "2,5 літри",
		}))

		assert.Equal(t, 2200, targets.Calories)
		assert.Equal(t, 150.0, targets.Protein)
		assert.Equal(t, 200.0, targets.Carbs)
		assert.Equal(t, 70.0, targets.Fats)
		assert.Equal(t, 2.5, targets.Water)
	})
}

// --- AggregateLogs ---

func TestAggregateLogs(t *testing.T) {
	logs := []domain.LogEntry{
		domain.NewFoodEntry("Oatmeal", 350, "12г", 6, 60, "2025-05-01"),
		domain.NewFoodEntry("Chicken", "450", 40, 15, 5, "2025-05-01"),
		domain.NewExerciseEntry("Run", 300, "high", "30 min", domain.ExerciseRun, "2025-05-01"),
	}

	agg := AggregateLogs(logs)
	assert.Equal(t, 800.0, agg.Consumed)
	assert.Equal(t, 300.0, agg.Burned)
	assert.Equal(t, 52.0, agg.Protein)
	assert.Equal(t, 21.0, agg.Fats)
	assert.Equal(t, 65.0, agg.Carbs)
}

func TestAggregateLogsOrderIndependent(t *testing.T) {
	logs := []domain.LogEntry{
		domain.NewFoodEntry("a", 100, 1, 2, 3, "2025-05-01"),
		domain.NewFoodEntry("b", "250", "10г", "5", "40", "2025-05-01"),
		domain.NewExerciseEntry("c", 120, "", "", domain.ExerciseManual, "2025-05-01"),
		domain.NewFoodEntry("d", 99.5, nil, nil, nil, "2025-05-01"),
		domain.NewExerciseEntry("e", "80", "", "", domain.ExerciseOther, "2025-05-01"),
	}
	want := AggregateLogs(logs)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.LogEntry, len(logs))
		copy(shuffled, logs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, AggregateLogs(shuffled))
	}
}

func TestAggregateLogsExerciseNeverFeedsMacros(t *testing.T) {
	// Even if an exercise entry happens to carry macro fields they are ignored.
	entry := domain.NewExerciseEntry("Row", 200, "low", "20 min", domain.ExerciseLifting, "2025-05-01")
	entry.Protein = 30

	agg := AggregateLogs([]domain.LogEntry{entry})
	assert.Equal(t, 200.0, agg.Burned)
	assert.Zero(t, agg.Consumed)
	assert.Zero(t, agg.Protein)
}

func TestAggregateLogsUnknownKindCountsAsFood(t *testing.T) {
	legacy := domain.LogEntry{Kind: "snack", Name: "old entry", Calories: 120}
	agg := AggregateLogs([]domain.LogEntry{legacy})
	assert.Equal(t, 120.0, agg.Consumed)
	assert.Zero(t, agg.Burned)
}

// --- BuildDailyStats ---

func TestBuildDailyStatsExerciseCreditsBudget(t *testing.T) {
	user := userWithPlan(&domain.NutritionPlan{
		DailyCalories: 2000,
		Macros:        domain.PlanMacros{Protein: "150г", Carbs: "200г", Fats: "70г"},
		WaterIntake:   "2 літри",
	})
	logs := []domain.LogEntry{
		domain.NewFoodEntry("Lunch", 500, 20, 10, 60, "2025-05-01"),
		domain.NewExerciseEntry("Run", 300, "high", "30 min", domain.ExerciseRun, "2025-05-01"),
	}

	stats := BuildDailyStats("2025-05-01", user, logs, 1.0)

	assert.Equal(t, 500, stats.ConsumedCalories)
	assert.Equal(t, 300, stats.BurnedCalories)
	// Burned calories credit back into the budget: 2000 + 300 - 500.
	assert.Equal(t, 1800, stats.RemainingCalories)
	assert.Equal(t, 2.0, stats.TargetWater)
	assert.Equal(t, 1.0, stats.ConsumedWater)
	assert.Equal(t, domain.MacroSet{Protein: 130, Fats: 60, Carbs: 140}, stats.Remaining)
	assert.Equal(t, logs, stats.Logs)
}

func TestBuildDailyStatsClampsAtZero(t *testing.T) {
	user := userWithPlan(&domain.NutritionPlan{
		DailyCalories: 1500,
		Macros:        domain.PlanMacros{Protein: "50г"},
	})
	logs := []domain.LogEntry{
		domain.NewFoodEntry("Feast", 4000, 120, 0, 0, "2025-05-01"),
	}

	stats := BuildDailyStats("2025-05-01", user, logs, 0)
	assert.Equal(t, 0, stats.RemainingCalories)
	assert.Zero(t, stats.Remaining.Protein)
}

func TestBuildDailyStatsUnsetProfile(t *testing.T) {
	stats := BuildDailyStats("2025-05-01", nil, nil, 0)

	assert.Equal(t, 2000, stats.TargetCalories)
	assert.Equal(t, 0, stats.ConsumedCalories)
	assert.Equal(t, 2000, stats.RemainingCalories)
	// Display default applied when the plan has no water target.
	assert.Equal(t, 2.0, stats.TargetWater)
}

// --- StatsTracker ---

func TestStatsTrackerRefreshIdempotent(t *testing.T) {
	userRepo := &fakeUserRepo{user: userWithPlan(&domain.NutritionPlan{DailyCalories: 2100})}
	logRepo := &fakeLogRepo{
		logs: []domain.LogEntry{
			domain.NewFoodEntry("Toast", 200, 5, 4, 30, "2025-05-01"),
		},
		water: 0.5,
	}

	svc := NewStatsService(userRepo, logRepo, zaptest.NewLogger(t))
	tracker := svc.NewTracker(context.Background(), primitive.NewObjectID(), mustDate(t, "2025-05-01"))

	first := tracker.Stats()
	tracker.Refresh(context.Background())
	second := tracker.Stats()

	assert.False(t, tracker.Loading())
	assert.Equal(t, first, second)
	assert.Equal(t, 1900, first.RemainingCalories)
}

func TestStatsTrackerKeepsSnapshotOnFailure(t *testing.T) {
	userRepo := &fakeUserRepo{user: userWithPlan(&domain.NutritionPlan{DailyCalories: 2000})}
	logRepo := &fakeLogRepo{
		logs: []domain.LogEntry{
			domain.NewFoodEntry("Soup", 300, 10, 8, 20, "2025-05-01"),
		},
	}

	svc := NewStatsService(userRepo, logRepo, zaptest.NewLogger(t))
	tracker := svc.NewTracker(context.Background(), primitive.NewObjectID(), mustDate(t, "2025-05-01"))
	before := tracker.Stats()
	require.Equal(t, 300, before.ConsumedCalories)

	// The next cycle fails on the log fetch; the previous snapshot survives.
	logRepo.logsErr = errors.New("store unavailable")
	tracker.Refresh(context.Background())

	assert.False(t, tracker.Loading())
	assert.Equal(t, before, tracker.Stats())
}

func TestStatsTrackerSetDateRefreshes(t *testing.T) {
	userRepo := &fakeUserRepo{}
	logRepo := &fakeLogRepo{}

	svc := NewStatsService(userRepo, logRepo, zaptest.NewLogger(t))
	tracker := svc.NewTracker(context.Background(), primitive.NewObjectID(), mustDate(t, "2025-05-01"))
	require.Equal(t, "2025-05-01", tracker.Date())

	tracker.SetDate(context.Background(), mustDate(t, "2025-05-02"))

	assert.Equal(t, "2025-05-02", tracker.Date())
	assert.Equal(t, "2025-05-02", tracker.Stats().Date)
}

func TestStatsServiceGetDailyStatsPropagatesErrors(t *testing.T) {
	userRepo := &fakeUserRepo{}
	logRepo := &fakeLogRepo{waterErr: errors.New("store unavailable")}

	svc := NewStatsService(userRepo, logRepo, zaptest.NewLogger(t))
	_, err := svc.GetDailyStats(context.Background(), primitive.NewObjectID(), mustDate(t, "2025-05-01"))
	assert.Error(t, err)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}
