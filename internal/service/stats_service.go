package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/macro"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDailyCalories = 2000

	// Display default applied when a plan has no parseable water target.
	defaultWaterTargetLiters = 2.0
)

// ResolveTargets extracts goal figures from a user's stored nutrition plan.
// A missing user, plan or field falls back to the documented defaults:
// 2000 kcal and zero macros. Water resolves to the raw parsed value (0 when
// absent); the 2.0L display default is applied when the snapshot is built,
// not here.
func ResolveTargets(user *domain.User) domain.Targets {
	targets := domain.Targets{Calories: defaultDailyCalories}
	if user == nil || user.NutritionPlan == nil {
		return targets
	}

	plan := user.NutritionPlan
	if plan.DailyCalories > 0 {
		targets.Calories = plan.DailyCalories
	}
	targets.Protein = macro.Parse(plan.Macros.Protein)
	targets.Fats = macro.Parse(plan.Macros.Fats)
	targets.Carbs = macro.Parse(plan.Macros.Carbs)
	targets.Water = macro.Parse(plan.WaterIntake)
	return targets
}

// Aggregate holds one day's totals split by entry kind. Exercise calories
// land in Burned and never touch the macro accumulators; everything else
// feeds Consumed and the macros. Addition is commutative and associative,
// so entry order never affects the result.
type Aggregate struct {
	Consumed float64
	Burned   float64
	Protein  float64
	Fats     float64
	Carbs    float64
}

// AggregateLogs reduces a day's entries into totals.
func AggregateLogs(entries []domain.LogEntry) Aggregate {
	var agg Aggregate
	for _, entry := range entries {
		if entry.Kind == domain.KindExercise {
			agg.Burned += macro.Parse(entry.Calories)
			continue
		}
		// Unknown kinds count as food here: documents written before
		// write-time validation existed must keep displaying.
		agg.Consumed += macro.Parse(entry.Calories)
		agg.Protein += macro.Parse(entry.Protein)
		agg.Fats += macro.Parse(entry.Fats)
		agg.Carbs += macro.Parse(entry.Carbs)
	}
	return agg
}

// BuildDailyStats merges resolved targets with the day's aggregate into the
// derived snapshot. Remaining figures are clamped to zero: exercise credits
// back into the calorie budget, but the UI never sees a negative remainder.
func BuildDailyStats(dateKey string, user *domain.User, logs []domain.LogEntry, waterLiters float64) domain.DailyStats {
	targets := ResolveTargets(user)
	agg := AggregateLogs(logs)

	targetWater := targets.Water
	if targetWater <= 0 {
		targetWater = defaultWaterTargetLiters
	}

	consumed := int(math.Round(agg.Consumed))
	burned := int(math.Round(agg.Burned))

	return domain.DailyStats{
		Date:              dateKey,
		TargetCalories:    targets.Calories,
		ConsumedCalories:  consumed,
		BurnedCalories:    burned,
		RemainingCalories: max(0, targets.Calories+burned-consumed),
		TargetWater:       targetWater,
		ConsumedWater:     waterLiters,
		Targets: domain.MacroSet{
			Protein: targets.Protein,
			Fats:    targets.Fats,
			Carbs:   targets.Carbs,
		},
		Consumed: domain.MacroSet{
			Protein: agg.Protein,
			Fats:    agg.Fats,
			Carbs:   agg.Carbs,
		},
		Remaining: domain.MacroSet{
			Protein: max(0, targets.Protein-agg.Protein),
			Fats:    max(0, targets.Fats-agg.Fats),
			Carbs:   max(0, targets.Carbs-agg.Carbs),
		},
		Logs: logs,
	}
}

// StatsService computes daily stats on demand and hands out trackers for
// callers that want the reactive refresh contract.
type StatsService interface {
	GetDailyStats(ctx context.Context, userID primitive.ObjectID, date time.Time) (domain.DailyStats, error)
	NewTracker(ctx context.Context, userID primitive.ObjectID, date time.Time) *StatsTracker
}

type statsService struct {
	userRepo repository.UserRepository
	logRepo  repository.DailyLogRepository
	logger   *zap.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(userRepo repository.UserRepository, logRepo repository.DailyLogRepository, logger *zap.Logger) StatsService {
	return &statsService{
		userRepo: userRepo,
		logRepo:  logRepo,
		logger:   logger,
	}
}

// GetDailyStats runs one fetch cycle and returns the snapshot. Unlike the
// tracker it propagates fetch errors to the caller.
func (s *statsService) GetDailyStats(ctx context.Context, userID primitive.ObjectID, date time.Time) (domain.DailyStats, error) {
	return fetchDailyStats(ctx, s.userRepo, s.logRepo, userID, domain.DateKey(date))
}

// NewTracker builds a tracker bound to user+date and runs its initial
// refresh before returning it.
func (s *statsService) NewTracker(ctx context.Context, userID primitive.ObjectID, date time.Time) *StatsTracker {
	tracker := &StatsTracker{
		userRepo: s.userRepo,
		logRepo:  s.logRepo,
		logger:   s.logger,
		userID:   userID,
		date:     domain.DateKey(date),
	}
	tracker.stats = domain.DailyStats{
		Date:              tracker.date,
		TargetCalories:    defaultDailyCalories,
		RemainingCalories: defaultDailyCalories,
		TargetWater:       defaultWaterTargetLiters,
		Logs:              []domain.LogEntry{},
	}
	tracker.Refresh(ctx)
	return tracker
}

// fetchDailyStats is one full fetch cycle: profile, logs and water are
// fetched concurrently, then reduced into a snapshot. A missing profile is
// not an error (targets fall back to defaults); any other failure fails the
// whole cycle.
func fetchDailyStats(
	ctx context.Context,
	userRepo repository.UserRepository,
	logRepo repository.DailyLogRepository,
	userID primitive.ObjectID,
	dateKey string,
) (domain.DailyStats, error) {
	var (
		user  *domain.User
		logs  []domain.LogEntry
		water float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := userRepo.GetByID(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = logRepo.GetDailyLogs(gctx, userID, dateKey)
		return err
	})
	g.Go(func() error {
		var err error
		water, err = logRepo.GetWaterIntake(gctx, userID, dateKey)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.DailyStats{}, err
	}

	return BuildDailyStats(dateKey, user, logs, water), nil
}

// StatsTracker is the reactive view model behind the daily stats screen.
// It is bound to one user, parameterized by a mutable date, and has exactly
// two states: idle (Loading() == false, snapshot available) and refreshing.
// A failed refresh logs the error and folds back to idle with the previous
// snapshot intact; errors never propagate to consumers.
type StatsTracker struct {
	userRepo repository.UserRepository
	logRepo  repository.DailyLogRepository
	logger   *zap.Logger
	userID   primitive.ObjectID

	mu      sync.Mutex
	date    string
	loading bool
	stats   domain.DailyStats
}

// Stats returns the last committed snapshot. During a refresh this is the
// previous snapshot; the new one replaces it atomically, never field by field.
func (t *StatsTracker) Stats() domain.DailyStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Loading reports whether a fetch cycle is in flight.
func (t *StatsTracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Date returns the calendar day the tracker is currently bound to.
func (t *StatsTracker) Date() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date
}

// SetDate rebinds the tracker to another day and refreshes immediately.
func (t *StatsTracker) SetDate(ctx context.Context, date time.Time) {
	t.mu.Lock()
	t.date = domain.DateKey(date)
	t.mu.Unlock()
	t.Refresh(ctx)
}

// Refresh runs one full fetch cycle and commits the result. The commit is
// skipped when the bound date changed while the fetch was in flight, so a
// stale cycle can never overwrite a newer day's snapshot.
func (t *StatsTracker) Refresh(ctx context.Context) {
	t.mu.Lock()
	t.loading = true
	dateKey := t.date
	t.mu.Unlock()

	snapshot, err := fetchDailyStats(ctx, t.userRepo, t.logRepo, t.userID, dateKey)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
	if err != nil {
		t.logger.Error("daily stats refresh failed",
			zap.String("userId", t.userID.Hex()),
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return
	}
	if dateKey != t.date {
		return
	}
	t.stats = snapshot
}
