package service_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jayparmar2411/Nutrivision/internal/db"
	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/service"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

func TestRunDoctorCleanProfile(t *testing.T) {
	sqldb := newTestDB(t)
	kv := store.NewKV(sqldb)
	st, err := store.Open(kv, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := service.AddManualEntry(st, service.ManualEntryInput{Name: "Toast", Calories: 120}, time.Now()); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if _, err := service.AdjustWater(st, time.Now(), 2); err != nil {
		t.Fatalf("adjust water: %v", err)
	}

	report, err := service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if !report.Healthy() || report.Entries != 1 {
		t.Fatalf("expected healthy report with one entry, got %+v", report)
	}
}

func TestRunDoctorFindsAndFixesProblems(t *testing.T) {
	sqldb := newTestDB(t)
	kv := store.NewKV(sqldb)

	good := entryAt("Rice", localTime(2026, 2, 1, 12, 0), 200, model.Macros{Protein: 4, Carbs: 44})
	invalid := entryAt("Broken", localTime(2026, 2, 1, 13, 0), 100, model.Macros{})
	invalid.ConfidenceScore = 150
	history, err := json.Marshal([]model.FoodEntry{good, invalid, good})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for key, value := range map[string]string{
		store.KeyHistory:                    string(history),
		store.KeyGoals:                      "{broken",
		store.WaterKeyPrefix + "2026-02-01": "three",
		store.WaterKeyPrefix + "2026-02-02": "3",
	} {
		if err := kv.Put(key, value); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	report, err := service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.Entries != 3 || report.InvalidEntries != 1 || report.DuplicateEntries != 1 || len(report.UnreadableRecords) != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(kv, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedRecords != 3 {
		t.Fatalf("expected 3 fixed records, got %+v", report)
	}

	report, err = service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if !report.Healthy() || report.Entries != 1 {
		t.Fatalf("expected healthy report after fix, got %+v", report)
	}
	st, err := store.Open(kv, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if all := st.All(); len(all) != 1 || all[0].ID != good.ID {
		t.Fatalf("unexpected history after fix: %+v", all)
	}
	if n, _ := st.Water("2026-02-02"); n != 3 {
		t.Fatalf("readable water record should survive, got %d", n)
	}
}

func TestBackupCreateListRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nutrivision.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st, err := store.Open(store.NewKV(sqldb), zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := service.AddManualEntry(st, service.ManualEntryInput{Name: "Soup", Calories: 180}, time.Now()); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	info, err := service.CreateBackup(sqldb, filepath.Join(backupDir, "one.db"))
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info: %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, info.Path); err == nil {
		t.Fatalf("expected existing backup file to be rejected")
	}
	_ = sqldb.Close()

	items, err := service.ListBackups(backupDir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 || items[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backup list: %+v", items)
	}

	if err := service.RestoreBackup(info.Path, dbPath, false); err == nil {
		t.Fatalf("expected restore without --force to refuse existing db")
	}
	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(info.Path, restored, false); err != nil {
		t.Fatalf("restore: %v", err)
	}
	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer rdb.Close()
	rst, err := store.Open(store.NewKV(rdb), zerolog.Nop())
	if err != nil {
		t.Fatalf("open restored store: %v", err)
	}
	if all := rst.All(); len(all) != 1 || all[0].FoodName != "Soup" {
		t.Fatalf("unexpected restored history: %+v", all)
	}

	if err := os.WriteFile(info.Path+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	if err := service.RestoreBackup(info.Path, filepath.Join(dir, "again.db"), false); err == nil {
		t.Fatalf("expected checksum mismatch")
	}
}

func TestRunDoctorFlagsOutOfRangeRecords(t *testing.T) {
	sqldb := newTestDB(t)
	kv := store.NewKV(sqldb)
	for key, value := range map[string]string{
		store.KeyGoals:                      `{"dailyCalorieGoal":1800,"dailyProteinGoal":-5,"hydrationGoal":0}`,
		store.KeyStreak:                     `{"count":0,"lastActiveDate":"2026-02-01"}`,
		store.KeyTheme:                      `"sepia"`,
		store.WaterKeyPrefix + "2026-02-01": "-2",
		store.WaterKeyPrefix + "2026-02-02": "4",
	} {
		if err := kv.Put(key, value); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	report, err := service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	wantInvalid := []string{store.KeyGoals, store.KeyStreak, store.KeyTheme, store.WaterKeyPrefix + "2026-02-01"}
	if report.Healthy() || len(report.UnreadableRecords) != 0 || !reflect.DeepEqual(report.InvalidRecords, wantInvalid) {
		t.Fatalf("unexpected report: %+v", report)
	}

	report, err = service.RunDoctor(kv, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.FixedRecords != 4 {
		t.Fatalf("expected 4 fixed records, got %+v", report)
	}
	report, err = service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if !report.Healthy() {
		t.Fatalf("expected healthy report after fix, got %+v", report)
	}

	raw, ok, err := kv.Get(store.KeyGoals)
	if err != nil || !ok {
		t.Fatalf("goals should be rewritten, ok=%v err=%v", ok, err)
	}
	var goals model.Goals
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		t.Fatalf("decode goals: %v", err)
	}
	want := model.Goals{DailyCalorieGoal: 1800, DailyProteinGoal: model.DefaultProteinGoal, HydrationGoal: model.DefaultHydrationGoal}
	if goals != want {
		t.Fatalf("goals = %+v, want %+v", goals, want)
	}
	for _, key := range []string{store.KeyStreak, store.KeyTheme, store.WaterKeyPrefix + "2026-02-01"} {
		if _, ok, _ := kv.Get(key); ok {
			t.Fatalf("%s should be deleted", key)
		}
	}
	if _, ok, _ := kv.Get(store.WaterKeyPrefix + "2026-02-02"); !ok {
		t.Fatalf("valid water record should survive")
	}
}

func TestRunDoctorReportsLastWrite(t *testing.T) {
	sqldb := newTestDB(t)
	kv := store.NewKV(sqldb)

	report, err := service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.LastWrite != nil {
		t.Fatalf("empty profile should have no last write, got %v", report.LastWrite)
	}

	if err := kv.Put(store.KeyTheme, `"light"`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := sqldb.Exec(`UPDATE kv_state SET updated_at = '2026-02-01 08:30:00'`); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	report, err = service.RunDoctor(kv, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	want := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	if report.LastWrite == nil || !report.LastWrite.Equal(want) {
		t.Fatalf("last write = %v, want %v", report.LastWrite, want)
	}
}
