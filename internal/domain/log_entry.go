package domain

import "time"

// LogKind discriminates the two entry variants in a daily log.
type LogKind string

const (
	KindFood     LogKind = "food"
	KindExercise LogKind = "exercise"
)

// Valid reports whether k is one of the two known kinds.
func (k LogKind) Valid() bool {
	return k == KindFood || k == KindExercise
}

// Exercise classification tags, used by clients for icon selection only.
const (
	ExerciseRun     = "run"
	ExerciseLifting = "lifting"
	ExerciseManual  = "manual"
	ExerciseOther   = "other"
)

// LogEntry is one food or exercise record for a calendar day. Nutritional
// values are heterogeneous on the wire and in storage: older clients wrote
// raw numbers, newer ones macro-strings like "12,5 g". They are normalized
// with macro.Parse at aggregation time, never at rest.
//
// Entries are append-only; there is no in-place edit or delete.
type LogEntry struct {
	ID        string    `bson:"id" json:"id"`
	Kind      LogKind   `bson:"kind" json:"kind"`
	Name      string    `bson:"name" json:"name"`
	Calories  any       `bson:"calories" json:"calories"`
	Date      string    `bson:"date" json:"date"` // YYYY-MM-DD, the partition key
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"` // display ordering only

	// Food only. Absent fields aggregate as 0.
	Protein any `bson:"protein,omitempty" json:"protein,omitempty"`
	Fats    any `bson:"fats,omitempty" json:"fats,omitempty"`
	Carbs   any `bson:"carbs,omitempty" json:"carbs,omitempty"`

	// Exercise only, purely presentational.
	Intensity  string `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Duration   string `bson:"duration,omitempty" json:"duration,omitempty"`
	ExerciseID string `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
}

// NewFoodEntry builds a food record. The caller may leave macro fields nil.
func NewFoodEntry(name string, calories, protein, fats, carbs any, date string) LogEntry {
	return LogEntry{
		Kind:     KindFood,
		Name:     name,
		Calories: calories,
		Protein:  protein,
		Fats:     fats,
		Carbs:    carbs,
		Date:     date,
	}
}

// NewExerciseEntry builds an exercise record. Exercise entries never carry
// macro fields; their calories count as burned, not consumed.
func NewExerciseEntry(name string, calories any, intensity, duration, exerciseID, date string) LogEntry {
	return LogEntry{
		Kind:       KindExercise,
		Name:       name,
		Calories:   calories,
		Intensity:  intensity,
		Duration:   duration,
		ExerciseID: exerciseID,
		Date:       date,
	}
}

// DateKey formats a point in time as the calendar-day partition key.
// Days are bucketed in UTC, matching how clients have always written them.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
