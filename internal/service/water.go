package service

import (
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

// AdjustWater adds delta glasses to the count for the day of now, never going
// below zero, and persists the result immediately.
func AdjustWater(st *store.Store, now time.Time, delta int) (int, error) {
	day := DayKey(now)
	current, err := st.Water(day)
	if err != nil {
		return 0, err
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if err := st.SaveWater(day, next); err != nil {
		return current, err
	}
	return next, nil
}

func WaterFor(st *store.Store, day time.Time) (int, error) {
	return st.Water(DayKey(day))
}
