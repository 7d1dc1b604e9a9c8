package service_test

import (
	"testing"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
)

func TestNextStreak(t *testing.T) {
	t.Parallel()
	today := localTime(2026, 3, 10, 9, 0)

	cases := []struct {
		name  string
		prev  model.StreakState
		found bool
		want  model.StreakState
	}{
		{"first session", model.StreakState{}, false, model.StreakState{Count: 1, LastActiveDate: "2026-03-10"}},
		{"same day", model.StreakState{Count: 4, LastActiveDate: "2026-03-10"}, true, model.StreakState{Count: 4, LastActiveDate: "2026-03-10"}},
		{"yesterday", model.StreakState{Count: 4, LastActiveDate: "2026-03-09"}, true, model.StreakState{Count: 5, LastActiveDate: "2026-03-10"}},
		{"three days ago", model.StreakState{Count: 4, LastActiveDate: "2026-03-07"}, true, model.StreakState{Count: 1, LastActiveDate: "2026-03-10"}},
		{"future date", model.StreakState{Count: 4, LastActiveDate: "2026-03-12"}, true, model.StreakState{Count: 1, LastActiveDate: "2026-03-10"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := service.NextStreak(tc.prev, tc.found, today); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	t.Parallel()
	got := service.NextStreak(model.StreakState{Count: 2, LastActiveDate: "2026-02-28"}, true, localTime(2026, 3, 1, 0, 5))
	if got.Count != 3 {
		t.Fatalf("expected streak to continue across month end, got %+v", got)
	}
}

func TestTouchStreakPersists(t *testing.T) {
	t.Parallel()
	st := newTestStore(t)

	if _, err := service.TouchStreak(st, localTime(2026, 3, 9, 20, 0)); err != nil {
		t.Fatalf("first touch: %v", err)
	}
	if _, err := service.TouchStreak(st, localTime(2026, 3, 9, 22, 0)); err != nil {
		t.Fatalf("same day touch: %v", err)
	}
	got, err := service.TouchStreak(st, localTime(2026, 3, 10, 7, 0))
	if err != nil {
		t.Fatalf("next day touch: %v", err)
	}
	if got.Count != 2 || got.LastActiveDate != "2026-03-10" {
		t.Fatalf("unexpected streak %+v", got)
	}
	current, err := service.CurrentStreak(st)
	if err != nil || current != got {
		t.Fatalf("expected persisted streak %+v, got %+v err=%v", got, current, err)
	}
}
