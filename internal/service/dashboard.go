package service

import (
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

type MacroProgress struct {
	Consumed int `json:"consumed"`
	Goal     int `json:"goal"`
	Percent  int `json:"percent"`
}

// Snapshot is everything the daily dashboard renders for one day.
type Snapshot struct {
	Date        string            `json:"date"`
	Totals      model.DayTotals   `json:"totals"`
	Goals       model.Goals       `json:"goals"`
	Calories    MacroProgress     `json:"calories"`
	Protein     MacroProgress     `json:"protein"`
	Carbs       MacroProgress     `json:"carbs"`
	Fat         MacroProgress     `json:"fat"`
	Water       MacroProgress     `json:"water"`
	HealthScore int               `json:"health_score"`
	HealthLabel string            `json:"health_label"`
	Streak      int               `json:"streak"`
	Tip         string            `json:"tip"`
	Entries     []model.FoodEntry `json:"entries"`
}

func Dashboard(st *store.Store, day time.Time) (*Snapshot, error) {
	goals, err := st.Goals()
	if err != nil {
		return nil, err
	}
	water, err := WaterFor(st, day)
	if err != nil {
		return nil, err
	}
	streak, err := CurrentStreak(st)
	if err != nil {
		return nil, err
	}

	all := st.All()
	totals := TotalsForDay(all, day)
	score := HealthScore(totals, goals, water, goals.HydrationGoal)

	return &Snapshot{
		Date:        DayKey(day),
		Totals:      totals,
		Goals:       goals,
		Calories:    progress(totals.Calories, goals.DailyCalorieGoal),
		Protein:     progress(totals.Macros.Protein, goals.DailyProteinGoal),
		Carbs:       progress(totals.Macros.Carbs, model.CarbsGoalG),
		Fat:         progress(totals.Macros.Fat, model.FatGoalG),
		Water:       progress(water, goals.HydrationGoal),
		HealthScore: score,
		HealthLabel: ScoreLabel(score),
		Streak:      streak.Count,
		Tip:         DailyTip(day),
		Entries:     EntriesForDay(all, day),
	}, nil
}

func progress(consumed, goal int) MacroProgress {
	return MacroProgress{Consumed: consumed, Goal: goal, Percent: ProgressPercent(consumed, goal)}
}
