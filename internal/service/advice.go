package service

import (
	"context"
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

// Advisor turns today's log into coaching prose. Implementations never fail;
// they return fallback text instead.
type Advisor interface {
	Advise(ctx context.Context, todays []model.FoodEntry, goals model.Goals) string
}

func TodaysAdvice(ctx context.Context, st *store.Store, advisor Advisor, now time.Time) (string, error) {
	goals, err := st.Goals()
	if err != nil {
		return "", err
	}
	return advisor.Advise(ctx, EntriesForDay(st.All(), now), goals), nil
}
