package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/DenGolivets/tracker-api/internal/config"
	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// --- Error Definitions ---
var (
	ErrProfileRequired = errors.New("user must complete onboarding before a plan can be generated")
	ErrPlanGeneration  = errors.New("failed to generate nutrition plan")
)

// PlanService generates and persists a personalized nutrition plan from the
// user's onboarding profile via an OpenAI-compatible chat-completions API.
type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*domain.NutritionPlan, error)
}

type planService struct {
	userRepo repository.UserRepository
	llm      *openai.LLM
	logger   *zap.Logger
}

// NewPlanService creates a new PlanService against the configured endpoint.
func NewPlanService(userRepo repository.UserRepository, cfg config.AIConfig, logger *zap.Logger) (PlanService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai api key is not configured")
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, err
	}

	return &planService{
		userRepo: userRepo,
		llm:      llm,
		logger:   logger,
	}, nil
}

// planPrompt demands raw JSON in exactly the shape NutritionPlan decodes.
// Macro values stay free-form strings ("150г"); macro.Parse handles them on
// the read side.
const planPrompt = `Generate a personalized nutrition plan for this user:
- Gender: %s
- Goal: %s
- Workout frequency: %d days per week
- Height: %dft %din
- Weight: %.1fkg
- Birthdate: %s

Respond with a valid JSON object only, no markdown fences, no commentary:
{
  "dailyCalories": number,
  "macros": {
    "protein": "string (e.g. 150г)",
    "carbs": "string (e.g. 200г)",
    "fats": "string (e.g. 70г)"
  },
  "waterIntake": "string (e.g. 2 liters)",
  "advice": "string (one short tip based on the goal)"
}`

// GeneratePlan builds the prompt from the stored profile, calls the model
// in JSON mode and persists the decoded plan.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID) (*domain.NutritionPlan, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, ErrProfileRequired
	}

	p := user.Profile
	prompt := fmt.Sprintf(planPrompt,
		p.Gender, p.Goal, p.WorkoutFrequency,
		p.HeightFeet, p.HeightInches, p.WeightKg, p.Birthdate,
	)

	response, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithTemperature(0.7),
		llms.WithJSONMode(),
	)
	if err != nil {
		s.logger.Error("plan generation call failed", zap.String("userId", userID.Hex()), zap.Error(err))
		return nil, ErrPlanGeneration
	}

	var plan domain.NutritionPlan
	if err := json.Unmarshal([]byte(stripFences(response)), &plan); err != nil {
		s.logger.Error("plan response was not valid JSON", zap.String("userId", userID.Hex()), zap.Error(err))
		return nil, ErrPlanGeneration
	}
	if plan.DailyCalories <= 0 {
		return nil, ErrPlanGeneration
	}

	if err := s.userRepo.SaveNutritionPlan(ctx, userID, &plan); err != nil {
		return nil, err
	}

	s.logger.Info("nutrition plan generated",
		zap.String("userId", userID.Hex()),
		zap.Int("dailyCalories", plan.DailyCalories),
	)
	return &plan, nil
}

// stripFences removes markdown code fences some models wrap around JSON
// despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
