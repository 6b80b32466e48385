package domain

// Targets are the goal figures resolved from a user's nutrition plan,
// with defaults already applied for missing pieces.
type Targets struct {
	Calories int
	Protein  float64
	Fats     float64
	Carbs    float64
	Water    float64 // liters; 0 when the plan has no water target
}

// MacroSet groups protein/fat/carbohydrate figures in grams.
type MacroSet struct {
	Protein float64 `json:"protein"`
	Fats    float64 `json:"fats"`
	Carbs   float64 `json:"carbs"`
}

// DailyStats is the derived view of one calendar day: resolved targets
// merged with the day's aggregated log. It is recomputed whole on every
// refresh and never persisted or mutated incrementally.
type DailyStats struct {
	Date              string     `json:"date"`
	TargetCalories    int        `json:"targetCalories"`
	ConsumedCalories  int        `json:"consumedCalories"`
	BurnedCalories    int        `json:"burnedCalories"`
	RemainingCalories int        `json:"remainingCalories"` // clamped, never negative
	TargetWater       float64    `json:"targetWater"`       // liters
	ConsumedWater     float64    `json:"consumedWater"`     // liters
	Targets           MacroSet   `json:"targets"`
	Consumed          MacroSet   `json:"consumed"`
	Remaining         MacroSet   `json:"remaining"` // clamped per nutrient
	Logs              []LogEntry `json:"logs"`
}
