// Package store owns the local profile state: the food history log, goals,
// streak, per-day water counts and the theme preference. Every mutation
// rewrites the affected record as a whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

// Record keys in the state table. Water counts use one key per local day.
const (
	KeyHistory     = "history"
	KeyGoals       = "goals"
	KeyStreak      = "streak"
	KeyTheme       = "theme"
	KeyAdvice      = "advice_cache"
	WaterKeyPrefix = "water:"
)

var ErrNegativeCalories = errors.New("calories must be >= 0")

type Store struct {
	kv      *KV
	log     zerolog.Logger
	entries []model.FoodEntry
}

// Open loads the history log. A missing or unreadable log yields an empty
// store; the corruption is logged and otherwise ignored.
func Open(kv *KV, log zerolog.Logger) (*Store, error) {
	s := &Store{kv: kv, log: log.With().Str("component", "store").Logger()}
	var entries []model.FoodEntry
	ok, err := s.loadJSON(KeyHistory, &entries)
	if err != nil {
		return nil, err
	}
	if !ok || entries == nil {
		entries = make([]model.FoodEntry, 0)
	}
	s.entries = entries
	return s, nil
}

func (s *Store) Append(e model.FoodEntry) error {
	next := make([]model.FoodEntry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, e)
	return s.commit(next)
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := make([]model.FoodEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)
	return s.commit(next)
}

// PatchCalories replaces only the calories of the matching entry. Negative
// values are rejected and unknown ids are ignored; neither changes the store.
func (s *Store) PatchCalories(id string, calories int) error {
	if calories < 0 {
		return ErrNegativeCalories
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	next := s.All()
	next[idx].Calories = calories
	return s.commit(next)
}

// All returns a copy of the log, oldest first.
func (s *Store) All() []model.FoodEntry {
	out := make([]model.FoodEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) Get(id string) (model.FoodEntry, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.FoodEntry{}, false
	}
	return s.entries[idx], true
}

func (s *Store) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) commit(next []model.FoodEntry) error {
	if err := s.saveJSON(KeyHistory, next); err != nil {
		return err
	}
	s.entries = next
	return nil
}

// Goals returns the persisted goals, falling back to defaults for a missing
// record and for any non-positive field.
func (s *Store) Goals() (model.Goals, error) {
	var stored model.Goals
	ok, err := s.loadJSON(KeyGoals, &stored)
	if err != nil || !ok {
		return model.DefaultGoals(), err
	}
	return stored.Normalized(), nil
}

func (s *Store) SaveGoals(g model.Goals) error {
	return s.saveJSON(KeyGoals, g)
}

// Streak returns the stored streak; ok is false when none is recorded yet.
func (s *Store) Streak() (model.StreakState, bool, error) {
	var st model.StreakState
	ok, err := s.loadJSON(KeyStreak, &st)
	if err != nil || !ok {
		return model.StreakState{}, false, err
	}
	if st.Count < 1 || st.LastActiveDate == "" {
		s.log.Warn().Str("key", KeyStreak).Msg("discarding invalid streak record")
		return model.StreakState{}, false, nil
	}
	return st, true, nil
}

func (s *Store) SaveStreak(st model.StreakState) error {
	return s.saveJSON(KeyStreak, st)
}

// Water returns the hydration count recorded for day (YYYY-MM-DD).
func (s *Store) Water(day string) (int, error) {
	var n int
	ok, err := s.loadJSON(WaterKeyPrefix+day, &n)
	if err != nil {
		return 0, err
	}
	if !ok || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (s *Store) SaveWater(day string, n int) error {
	return s.saveJSON(WaterKeyPrefix+day, n)
}

func (s *Store) Theme() (model.Theme, error) {
	var t model.Theme
	ok, err := s.loadJSON(KeyTheme, &t)
	if err != nil || !ok {
		return model.ThemeDark, err
	}
	switch t {
	case model.ThemeDark, model.ThemeLight:
		return t, nil
	default:
		return model.ThemeDark, nil
	}
}

func (s *Store) SetTheme(t model.Theme) error {
	switch t {
	case model.ThemeDark, model.ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (expected dark or light)", t)
	}
	return s.saveJSON(KeyTheme, t)
}

// AdviceCache returns the saved coaching answers. Unreadable records yield
// none.
func (s *Store) AdviceCache() ([]model.CachedAdvice, error) {
	var items []model.CachedAdvice
	ok, err := s.loadJSON(KeyAdvice, &items)
	if err != nil || !ok || items == nil {
		return []model.CachedAdvice{}, err
	}
	return items, nil
}

func (s *Store) SaveAdviceCache(items []model.CachedAdvice) error {
	if items == nil {
		items = []model.CachedAdvice{}
	}
	return s.saveJSON(KeyAdvice, items)
}

// loadJSON decodes the record stored under key into out. ok reports whether a
// readable record was found; out must be ignored when it is false.
func (s *Store) loadJSON(key string, out any) (bool, error) {
	raw, found, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("persisted state unreadable, using default")
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSON(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Put(key, string(payload))
}
