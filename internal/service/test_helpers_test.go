package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jayparmar2411/Nutrivision/internal/db"
	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(store.NewKV(newTestDB(t)), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrivision.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func entryAt(name string, at time.Time, calories int, m model.Macros) model.FoodEntry {
	return model.NewFoodEntry(model.Analysis{
		FoodName:        name,
		Calories:        calories,
		Macros:          m,
		Ingredients:     []string{},
		ConfidenceScore: 90,
	}, "", at)
}

func localTime(y int, mon time.Month, d, h, min int) time.Time {
	return time.Date(y, mon, d, h, min, 0, 0, time.Local)
}
