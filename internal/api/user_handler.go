package api

import (
	"errors"
	"net/http"

	"github.com/DenGolivets/tracker-api/internal/domain"
	"github.com/DenGolivets/tracker-api/internal/repository"
	"github.com/DenGolivets/tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and onboarding endpoints.
type UserHandler struct {
	userService service.UserService
	planService service.PlanService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, planService service.PlanService) *UserHandler {
	return &UserHandler{
		userService: userService,
		planService: planService,
	}
}

// --- DTOs ---

type SaveProfileRequest struct {
	Gender           string  `json:"gender" binding:"required"`
	Goal             string  `json:"goal" binding:"required"`
	WorkoutFrequency int     `json:"workoutFrequency" binding:"min=0,max=7"`
	HeightFeet       int     `json:"heightFeet" binding:"required"`
	HeightInches     int     `json:"heightInches" binding:"min=0,max=11"`
	WeightKg         float64 `json:"weightKg" binding:"required,gt=0"`
	Birthdate        string  `json:"birthdate" binding:"required"`
	Completed        *bool   `json:"completed"` // defaults to true
}

// --- Handler Methods ---

// GetMe returns the stored user, nutrition plan included.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// SaveProfile stores onboarding answers.
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	profile := &domain.Profile{
		Gender:           req.Gender,
		Goal:             req.Goal,
		WorkoutFrequency: req.WorkoutFrequency,
		HeightFeet:       req.HeightFeet,
		HeightInches:     req.HeightInches,
		WeightKg:         req.WeightKg,
		Birthdate:        req.Birthdate,
	}

	if err := h.userService.SaveProfile(c.Request.Context(), userID, profile, completed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true, "onboardingCompleted": completed})
}

// OnboardingStatus returns the explicit checked/hasProfile pair the
// navigation layer routes on.
func (h *UserHandler) OnboardingStatus(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	status, err := h.userService.OnboardingStatus(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to check onboarding status")
		return
	}

	c.JSON(http.StatusOK, status)
}

// GeneratePlan creates and persists a nutrition plan from the profile.
func (h *UserHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	plan, err := h.planService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileRequired):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		default:
			abortWithError(c, http.StatusBadGateway, "Plan generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}
