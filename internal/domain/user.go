package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account together with its onboarding profile and the
// AI-generated nutrition plan. Both are optional: a freshly registered user
// has neither, and every consumer must tolerate their absence.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"` // Should be unique
	FullName            string             `bson:"fullName" json:"fullName"`
	PasswordHash        string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	ImageURL            string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	Profile             *Profile           `bson:"profile,omitempty" json:"profile,omitempty"`
	NutritionPlan       *NutritionPlan     `bson:"nutritionPlan,omitempty" json:"nutritionPlan,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Profile holds the onboarding answers the plan generator works from.
type Profile struct {
	Gender           string  `bson:"gender" json:"gender"`
	Goal             string  `bson:"goal" json:"goal"`                         // e.g. "lose_weight", "gain_muscle"
	WorkoutFrequency int     `bson:"workoutFrequency" json:"workoutFrequency"` // days per week
	HeightFeet       int     `bson:"heightFeet" json:"heightFeet"`
	HeightInches     int     `bson:"heightInches" json:"heightInches"`
	WeightKg         float64 `bson:"weightKg" json:"weightKg"`
	Birthdate        string  `bson:"birthdate" json:"birthdate"`
}

// NutritionPlan is the user's goal configuration. Macro values and the water
// target are stored as free-form text exactly as the plan generator returned
// them (e.g. "150г", "2 літри") and are parsed with macro.Parse at read time.
type NutritionPlan struct {
	DailyCalories int        `bson:"dailyCalories" json:"dailyCalories"`
	Macros        PlanMacros `bson:"macros" json:"macros"`
	WaterIntake   string     `bson:"waterIntake,omitempty" json:"waterIntake,omitempty"`
	Advice        string     `bson:"advice,omitempty" json:"advice,omitempty"`
}

// PlanMacros are the per-nutrient targets as macro-strings.
type PlanMacros struct {
	Protein string `bson:"protein,omitempty" json:"protein,omitempty"`
	Carbs   string `bson:"carbs,omitempty" json:"carbs,omitempty"`
	Fats    string `bson:"fats,omitempty" json:"fats,omitempty"`
}
