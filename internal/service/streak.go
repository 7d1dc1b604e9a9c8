package service

import (
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

// NextStreak applies one session start on today to the previous streak state.
// A session on the same day changes nothing, one on the following day extends
// the streak, and any other gap restarts it at 1.
func NextStreak(prev model.StreakState, found bool, today time.Time) model.StreakState {
	todayKey := DayKey(today)
	if !found || prev.Count < 1 {
		return model.StreakState{Count: 1, LastActiveDate: todayKey}
	}
	switch prev.LastActiveDate {
	case todayKey:
		return prev
	case DayKey(beginningOfDay(today).AddDate(0, 0, -1)):
		return model.StreakState{Count: prev.Count + 1, LastActiveDate: todayKey}
	default:
		return model.StreakState{Count: 1, LastActiveDate: todayKey}
	}
}

// TouchStreak records a session start. It is meant to run once per session.
func TouchStreak(st *store.Store, now time.Time) (model.StreakState, error) {
	prev, found, err := st.Streak()
	if err != nil {
		return model.StreakState{}, err
	}
	next := NextStreak(prev, found, now)
	if found && next == prev {
		return next, nil
	}
	if err := st.SaveStreak(next); err != nil {
		return prev, err
	}
	return next, nil
}

func CurrentStreak(st *store.Store) (model.StreakState, error) {
	s, found, err := st.Streak()
	if err != nil {
		return model.StreakState{}, err
	}
	if !found {
		return model.StreakState{Count: 1}, nil
	}
	return s, nil
}
