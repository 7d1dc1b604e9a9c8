package service

import (
	"slices"
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

// EntriesForDay keeps the entries logged on the local calendar day of day,
// in log order.
func EntriesForDay(entries []model.FoodEntry, day time.Time) []model.FoodEntry {
	key := DayKey(day)
	out := make([]model.FoodEntry, 0)
	for _, e := range entries {
		if DayKey(e.Time()) == key {
			out = append(out, e)
		}
	}
	return out
}

func TotalsForDay(entries []model.FoodEntry, day time.Time) model.DayTotals {
	var totals model.DayTotals
	for _, e := range EntriesForDay(entries, day) {
		totals.Calories += e.Calories
		totals.Macros = totals.Macros.Add(e.Macros)
		totals.Count++
	}
	return totals
}

type ChartPoint struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
}

// RecentEntries returns the last n entries labelled by weekday, oldest first.
func RecentEntries(entries []model.FoodEntry, n int) []ChartPoint {
	if n <= 0 {
		return []ChartPoint{}
	}
	start := 0
	if len(entries) > n {
		start = len(entries) - n
	}
	out := make([]ChartPoint, 0, len(entries)-start)
	for _, e := range entries[start:] {
		out = append(out, ChartPoint{
			ID:       e.ID,
			Label:    e.Time().In(time.Local).Format("Mon"),
			Calories: e.Calories,
			Protein:  e.Macros.Protein,
		})
	}
	return out
}

// HistoryLimit is how many entries the history view shows by default.
const HistoryLimit = 20

// HistoryView keeps the newest limit entries (all of them when limit <= 0)
// and orders them newest first or oldest first.
func HistoryView(entries []model.FoodEntry, limit int, newestFirst bool) []model.FoodEntry {
	start := 0
	if limit > 0 && len(entries) > limit {
		start = len(entries) - limit
	}
	out := append([]model.FoodEntry(nil), entries[start:]...)
	if out == nil {
		out = []model.FoodEntry{}
	}
	if newestFirst {
		slices.Reverse(out)
	}
	return out
}
