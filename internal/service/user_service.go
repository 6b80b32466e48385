package service

import (
	"context"
	"errors"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OnboardingStatus is the explicit tri-state answer to "has this user
// finished onboarding". Checked is true once the lookup actually resolved;
// while a request is in flight the client shows its own loading state, so
// no implicit shared flag is needed anywhere.
type OnboardingStatus struct {
	Checked    bool `json:"checked"`
	HasProfile bool `json:"hasProfile"`
}

// UserService exposes profile and onboarding operations.
type UserService interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SaveProfile(ctx context.Context, id primitive.ObjectID, profile *domain.Profile, completed bool) error
	CompleteOnboarding(ctx context.Context, id primitive.ObjectID) error
	OnboardingStatus(ctx context.Context, id primitive.ObjectID) (OnboardingStatus, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetUser fetches the stored user, nutrition plan included.
func (s *userService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// SaveProfile stores onboarding answers; completed marks onboarding done in
// the same write.
func (s *userService) SaveProfile(ctx context.Context, id primitive.ObjectID, profile *domain.Profile, completed bool) error {
	if profile == nil {
		return errors.New("profile cannot be nil")
	}
	return s.userRepo.SaveProfile(ctx, id, profile, completed)
}

// CompleteOnboarding flips the flag without touching the profile.
func (s *userService) CompleteOnboarding(ctx context.Context, id primitive.ObjectID) error {
	return s.userRepo.CompleteOnboarding(ctx, id)
}

// OnboardingStatus resolves the tri-state. A missing user is a resolved
// check with no profile, not an error.
func (s *userService) OnboardingStatus(ctx context.Context, id primitive.ObjectID) (OnboardingStatus, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OnboardingStatus{Checked: true, HasProfile: false}, nil
		}
		return OnboardingStatus{}, err
	}
	return OnboardingStatus{Checked: true, HasProfile: user.OnboardingCompleted}, nil
}
