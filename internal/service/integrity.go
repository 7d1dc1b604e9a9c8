package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	Entries           int        `json:"entries"`
	UnreadableRecords []string   `json:"unreadable_records,omitempty"`
	InvalidRecords    []string   `json:"invalid_records,omitempty"`
	InvalidEntries    int        `json:"invalid_entries"`
	DuplicateEntries  int        `json:"duplicate_entries"`
	FixedRecords      int        `json:"fixed_records,omitempty"`
	LastWrite         *time.Time `json:"last_write,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return len(r.UnreadableRecords) == 0 && len(r.InvalidRecords) == 0 &&
		r.InvalidEntries == 0 && r.DuplicateEntries == 0
}

// CreateBackup writes a consistent copy of the open database to outPath with
// a .sha256 checksum file next to it.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup copies a backup over dbPath. The database must not be open.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	// Stale WAL files would be replayed on top of the restored file.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", dbPath+suffix, err)
		}
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor inspects the raw state records. The store itself silently falls
// back to defaults for unreadable or out-of-range records; this surfaces them.
// With fix, goals are rewritten with defaults in place of bad fields, other
// unreadable or invalid records are deleted, and the history is rewritten
// without invalid or duplicate entries.
func RunDoctor(kv *store.KV, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	entries, readable, err := inspectHistory(kv)
	if err != nil {
		return report, err
	}
	if !readable {
		report.UnreadableRecords = append(report.UnreadableRecords, store.KeyHistory)
	}
	report.Entries = len(entries)

	kept := make([]model.FoodEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		switch {
		case !validEntry(e):
			report.InvalidEntries++
		case seen[e.ID]:
			report.DuplicateEntries++
		default:
			seen[e.ID] = true
			kept = append(kept, e)
		}
	}

	records, err := stateRecords(kv)
	if err != nil {
		return report, err
	}
	unreadable := make([]string, 0)
	invalid := make([]stateRecord, 0)
	for _, rec := range records {
		raw, found, err := kv.Get(rec.key)
		if err != nil {
			return report, err
		}
		if !found {
			continue
		}
		value, err := rec.decode(raw)
		switch {
		case err != nil:
			unreadable = append(unreadable, rec.key)
		case rec.valid != nil && !rec.valid(value):
			rec.value = value
			invalid = append(invalid, rec)
			report.InvalidRecords = append(report.InvalidRecords, rec.key)
		}
	}
	report.UnreadableRecords = append(report.UnreadableRecords, unreadable...)

	if t, ok, err := kv.LastWrite(); err != nil {
		return report, err
	} else if ok {
		report.LastWrite = &t
	}

	if !fix {
		return report, nil
	}
	if !readable || len(kept) != len(entries) {
		if err := putJSON(kv, store.KeyHistory, kept); err != nil {
			return report, err
		}
		report.FixedRecords++
	}
	for _, key := range unreadable {
		if err := kv.Delete(key); err != nil {
			return report, err
		}
		report.FixedRecords++
	}
	for _, rec := range invalid {
		var err error
		if rec.repair != nil {
			err = putJSON(kv, rec.key, rec.repair(rec.value))
		} else {
			err = kv.Delete(rec.key)
		}
		if err != nil {
			return report, err
		}
		report.FixedRecords++
	}
	return report, nil
}

// stateRecord describes one non-history record: how to decode it, what a
// usable value looks like and, optionally, how to salvage a bad one.
type stateRecord struct {
	key    string
	decode func(raw string) (any, error)
	valid  func(v any) bool
	repair func(v any) any
	value  any
}

func stateRecords(kv *store.KV) ([]stateRecord, error) {
	records := []stateRecord{
		{
			key:    store.KeyGoals,
			decode: decodeAs[model.Goals],
			valid: func(v any) bool {
				g := v.(model.Goals)
				return g == g.Normalized()
			},
			repair: func(v any) any { return v.(model.Goals).Normalized() },
		},
		{
			key:    store.KeyStreak,
			decode: decodeAs[model.StreakState],
			valid: func(v any) bool {
				st := v.(model.StreakState)
				if st.Count < 1 {
					return false
				}
				_, err := time.Parse(dayLayout, st.LastActiveDate)
				return err == nil
			},
		},
		{
			key:    store.KeyTheme,
			decode: decodeAs[model.Theme],
			valid: func(v any) bool {
				t := v.(model.Theme)
				return t == model.ThemeDark || t == model.ThemeLight
			},
		},
		{key: store.KeyAdvice, decode: decodeAs[[]model.CachedAdvice]},
	}
	waterKeys, err := kv.Keys(store.WaterKeyPrefix)
	if err != nil {
		return nil, err
	}
	for _, key := range waterKeys {
		records = append(records, stateRecord{
			key:    key,
			decode: decodeAs[int],
			valid:  func(v any) bool { return v.(int) >= 0 },
		})
	}
	return records, nil
}

func decodeAs[T any](raw string) (any, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func putJSON(kv *store.KV, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Put(key, string(payload))
}

func inspectHistory(kv *store.KV) ([]model.FoodEntry, bool, error) {
	raw, found, err := kv.Get(store.KeyHistory)
	if err != nil || !found {
		return nil, true, err
	}
	var entries []model.FoodEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, nil
	}
	return entries, true, nil
}

func validEntry(e model.FoodEntry) bool {
	if _, err := uuid.Parse(e.ID); err != nil {
		return false
	}
	if strings.TrimSpace(e.FoodName) == "" || e.Timestamp <= 0 {
		return false
	}
	if e.Calories < 0 || e.Macros.Protein < 0 || e.Macros.Carbs < 0 || e.Macros.Fat < 0 {
		return false
	}
	return e.ConfidenceScore >= 0 && e.ConfidenceScore <= 100
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
