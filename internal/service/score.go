package service

import "github.com/Jayparmar2411/Nutrivision/internal/model"

const (
	fallbackCalorieGoal = 2000
	fallbackProteinGoal = 150
)

// HealthScore rates a day from 0 to 100 as the sum of four capped parts:
// calorie adherence (40), protein goal (30), hydration (20) and logging
// consistency (10).
func HealthScore(totals model.DayTotals, goals model.Goals, waterGlasses, waterGoal int) int {
	score := calorieScore(totals.Calories, goals.DailyCalorieGoal) +
		proteinScore(totals.Macros.Protein, goals.DailyProteinGoal) +
		hydrationScore(waterGlasses, waterGoal) +
		consistencyScore(totals.Count)
	if score > 100 {
		return 100
	}
	return score
}

func calorieScore(calories, goal int) int {
	if calories == 0 {
		return 0
	}
	if goal <= 0 {
		goal = fallbackCalorieGoal
	}
	r := float64(calories) / float64(goal)
	switch {
	case r >= 0.85 && r <= 1.15:
		return 40
	case r >= 0.70 && r <= 1.30:
		return 20
	default:
		return 10
	}
}

func proteinScore(protein, goal int) int {
	if goal <= 0 {
		goal = fallbackProteinGoal
	}
	p := float64(protein) / float64(goal)
	switch {
	case p >= 1.0:
		return 30
	case p >= 0.75:
		return 20
	case p >= 0.50:
		return 10
	default:
		return 0
	}
}

func hydrationScore(glasses, goal int) int {
	switch {
	case glasses >= goal:
		return 20
	case 2*glasses >= goal:
		return 15
	case glasses >= 2:
		return 5
	default:
		return 0
	}
}

func consistencyScore(count int) int {
	switch {
	case count >= 3:
		return 10
	case count >= 1:
		return 5
	default:
		return 0
	}
}

func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	default:
		return "Needs Work"
	}
}
