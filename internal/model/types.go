package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCalorieGoal   = 2200
	DefaultProteinGoal   = 150
	DefaultHydrationGoal = 8

	// Carbs and fat are fixed reference targets and are not user-editable.
	CarbsGoalG = 275
	FatGoalG   = 78

	ManualConfidence = 100
	ManualHealthTip  = "Manually logged entry"
)

type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
	}
}

// Analysis is a nutrition estimate for one food item, as returned by the
// analysis service or assembled from manual input.
type Analysis struct {
	FoodName        string   `json:"foodName"`
	Calories        int      `json:"calories"`
	Macros          Macros   `json:"macros"`
	Ingredients     []string `json:"ingredients"`
	HealthTip       string   `json:"healthTip"`
	ConfidenceScore int      `json:"confidenceScore"`
}

// PartialAnalysis is the result of a recalculation. Each field is independently
// optional; nil means the previous value must be kept.
type PartialAnalysis struct {
	Calories  *int    `json:"calories,omitempty"`
	Macros    *Macros `json:"macros,omitempty"`
	HealthTip *string `json:"healthTip,omitempty"`
}

type FoodEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Analysis
	ImageURL string `json:"imageUrl,omitempty"`
}

// NewFoodEntry stamps an analysis with a fresh id and the creation instant.
func NewFoodEntry(a Analysis, imageURL string, at time.Time) FoodEntry {
	ingredients := make([]string, len(a.Ingredients))
	copy(ingredients, a.Ingredients)
	a.Ingredients = ingredients
	return FoodEntry{
		ID:        uuid.NewString(),
		Timestamp: at.UnixMilli(),
		Analysis:  a,
		ImageURL:  imageURL,
	}
}

func (e FoodEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

type Goals struct {
	DailyCalorieGoal int `json:"dailyCalorieGoal"`
	DailyProteinGoal int `json:"dailyProteinGoal"`
	HydrationGoal    int `json:"hydrationGoal"`
}

func DefaultGoals() Goals {
	return Goals{
		DailyCalorieGoal: DefaultCalorieGoal,
		DailyProteinGoal: DefaultProteinGoal,
		HydrationGoal:    DefaultHydrationGoal,
	}
}

// Normalized replaces every non-positive goal with its default.
func (g Goals) Normalized() Goals {
	out := DefaultGoals()
	if g.DailyCalorieGoal > 0 {
		out.DailyCalorieGoal = g.DailyCalorieGoal
	}
	if g.DailyProteinGoal > 0 {
		out.DailyProteinGoal = g.DailyProteinGoal
	}
	if g.HydrationGoal > 0 {
		out.HydrationGoal = g.HydrationGoal
	}
	return out
}

type StreakState struct {
	Count          int    `json:"count"`
	LastActiveDate string `json:"lastActiveDate"`
}

// DayTotals sums a single calendar day of entries.
type DayTotals struct {
	Calories int    `json:"calories"`
	Macros   Macros `json:"macros"`
	Count    int    `json:"count"`
}

// CachedAdvice is one coaching answer kept across runs. ExpiresAt is in Unix
// nanoseconds.
type CachedAdvice struct {
	Prompt    string `json:"prompt"`
	Text      string `json:"text"`
	ExpiresAt int64  `json:"expiresAt"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)
