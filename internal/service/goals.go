package service

import (
	"errors"
	"math"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

// ErrInvalidGoal is returned when a goal edit is not a positive integer. The
// stored goals are left unchanged.
var ErrInvalidGoal = errors.New("goal must be a positive integer")

func SetCalorieGoal(st *store.Store, v int) (model.Goals, error) {
	return updateGoals(st, v, func(g *model.Goals) { g.DailyCalorieGoal = v })
}

func SetProteinGoal(st *store.Store, v int) (model.Goals, error) {
	return updateGoals(st, v, func(g *model.Goals) { g.DailyProteinGoal = v })
}

func SetHydrationGoal(st *store.Store, v int) (model.Goals, error) {
	return updateGoals(st, v, func(g *model.Goals) { g.HydrationGoal = v })
}

func updateGoals(st *store.Store, v int, apply func(*model.Goals)) (model.Goals, error) {
	goals, err := st.Goals()
	if err != nil {
		return goals, err
	}
	if v <= 0 {
		return goals, ErrInvalidGoal
	}
	apply(&goals)
	if err := st.SaveGoals(goals); err != nil {
		return goals, err
	}
	return goals, nil
}

// ProgressPercent is min(100, round(100*consumed/goal)). A missing goal shows
// no progress.
func ProgressPercent(consumed, goal int) int {
	if goal <= 0 || consumed <= 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(consumed) / float64(goal)))
	if pct > 100 {
		return 100
	}
	return pct
}
