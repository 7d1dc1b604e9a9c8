// Package session holds the single pending edit between an analysis and the
// moment it is saved to the log.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
	"github.com/Jayparmar2411/Nutrivision/internal/model"
)

var (
	ErrNoPendingEdit         = errors.New("no pending edit")
	ErrRecalculationInFlight = errors.New("a recalculation is already running for this edit")
	ErrStaleResult           = errors.New("the edit changed while recalculating; result discarded")
	ErrInvalidIngredient     = errors.New("ingredient must not be empty")
	ErrIngredientIndex       = errors.New("ingredient index out of range")
)

// Recalculator re-estimates nutrition for a confirmed ingredient list.
type Recalculator interface {
	Recalculate(ctx context.Context, foodName string, ingredients []string, img *gateway.Image) (model.PartialAnalysis, error)
}

// Appender is the part of the entry store a session commits to.
type Appender interface {
	Append(e model.FoodEntry) error
}

// pending is one edit. revision counts ingredient edits so a result computed
// for an older ingredient list is never merged into a newer one.
type pending struct {
	generation uint64
	revision   uint64
	analysis   model.Analysis
	imagePath  string
	image      *gateway.Image
	inFlight   bool
}

type Session struct {
	mu   sync.Mutex
	calc Recalculator
	gen  uint64
	edit *pending
}

func New(calc Recalculator) *Session {
	return &Session{calc: calc}
}

// Begin opens a pending edit for a fresh analysis, superseding any previous
// one. img may be nil; it is sent along with recalculations when present.
func (s *Session) Begin(a model.Analysis, imagePath string, img *gateway.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.edit = &pending{
		generation: s.gen,
		analysis:   cloneAnalysis(a),
		imagePath:  imagePath,
		image:      img,
	}
}

// Current returns a copy of the edited analysis.
func (s *Session) Current() (model.Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return model.Analysis{}, false
	}
	return cloneAnalysis(s.edit.analysis), true
}

func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edit = nil
}

// AddIngredient appends to the edited ingredient list. Nutrition values are
// not touched until the next recalculation.
func (s *Session) AddIngredient(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidIngredient
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return ErrNoPendingEdit
	}
	s.edit.analysis.Ingredients = append(s.edit.analysis.Ingredients, name)
	s.edit.revision++
	return nil
}

func (s *Session) RemoveIngredient(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return ErrNoPendingEdit
	}
	list := s.edit.analysis.Ingredients
	if idx < 0 || idx >= len(list) {
		return ErrIngredientIndex
	}
	next := make([]string, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	s.edit.analysis.Ingredients = next
	s.edit.revision++
	return nil
}

// Recalculate asks for new values for the current ingredient list and merges
// every field that comes back. On failure the edited values stay as they were.
// A result that arrives after the edit was superseded, discarded or had its
// ingredient list changed is dropped with ErrStaleResult.
func (s *Session) Recalculate(ctx context.Context) (model.Analysis, error) {
	s.mu.Lock()
	if s.edit == nil {
		s.mu.Unlock()
		return model.Analysis{}, ErrNoPendingEdit
	}
	if s.edit.inFlight {
		s.mu.Unlock()
		return model.Analysis{}, ErrRecalculationInFlight
	}
	edit := s.edit
	edit.inFlight = true
	revision := edit.revision
	foodName := edit.analysis.FoodName
	ingredients := append([]string(nil), edit.analysis.Ingredients...)
	img := edit.image
	s.mu.Unlock()

	partial, err := s.calc.Recalculate(ctx, foodName, ingredients, img)

	s.mu.Lock()
	defer s.mu.Unlock()
	edit.inFlight = false
	if s.edit == nil || s.edit.generation != edit.generation || edit.revision != revision {
		return model.Analysis{}, ErrStaleResult
	}
	if err != nil {
		return cloneAnalysis(edit.analysis), err
	}
	if partial.Calories != nil {
		edit.analysis.Calories = *partial.Calories
	}
	if partial.Macros != nil {
		edit.analysis.Macros = *partial.Macros
	}
	if partial.HealthTip != nil {
		edit.analysis.HealthTip = *partial.HealthTip
	}
	return cloneAnalysis(edit.analysis), nil
}

// Save commits the edited analysis as a new log entry and clears the edit.
// A recalculation still running at that point finishes as stale.
func (s *Session) Save(st Appender, now time.Time) (model.FoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return model.FoodEntry{}, ErrNoPendingEdit
	}
	entry := model.NewFoodEntry(s.edit.analysis, s.edit.imagePath, now)
	if err := st.Append(entry); err != nil {
		return model.FoodEntry{}, err
	}
	s.edit = nil
	return entry, nil
}

func cloneAnalysis(a model.Analysis) model.Analysis {
	a.Ingredients = append([]string(nil), a.Ingredients...)
	return a
}
