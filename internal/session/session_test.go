package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayparmar2411/Nutrivision/internal/gateway"
	"github.com/Jayparmar2411/Nutrivision/internal/model"
	"github.com/Jayparmar2411/Nutrivision/internal/session"
)

// stubCalc returns a fixed result, optionally blocking until released.
type stubCalc struct {
	mu      sync.Mutex
	result  model.PartialAnalysis
	err     error
	started chan struct{}
	release chan struct{}
	lastIng []string
}

func (c *stubCalc) Recalculate(ctx context.Context, foodName string, ingredients []string, img *gateway.Image) (model.PartialAnalysis, error) {
	c.mu.Lock()
	c.lastIng = ingredients
	c.mu.Unlock()
	if c.started != nil {
		close(c.started)
	}
	if c.release != nil {
		<-c.release
	}
	return c.result, c.err
}

type memStore struct {
	entries []model.FoodEntry
	err     error
}

func (m *memStore) Append(e model.FoodEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func ptr[T any](v T) *T { return &v }

func burger() model.Analysis {
	return model.Analysis{
		FoodName:        "Burger",
		Calories:        700,
		Macros:          model.Macros{Protein: 35, Carbs: 50, Fat: 38},
		Ingredients:     []string{"beef patty", "bun", "cheese"},
		HealthTip:       "Skip the extra cheese.",
		ConfidenceScore: 82,
	}
}

func TestIngredientEditsDoNotChangeNutrition(t *testing.T) {
	s := session.New(&stubCalc{})
	s.Begin(burger(), "burger.jpg", nil)

	require.NoError(t, s.AddIngredient("  lettuce "))
	require.NoError(t, s.RemoveIngredient(2))
	assert.ErrorIs(t, s.AddIngredient("  "), session.ErrInvalidIngredient)
	assert.ErrorIs(t, s.RemoveIngredient(9), session.ErrIngredientIndex)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, []string{"beef patty", "bun", "lettuce"}, cur.Ingredients)
	assert.Equal(t, 700, cur.Calories)
}

func TestRecalculateMergesPresentFields(t *testing.T) {
	calc := &stubCalc{result: model.PartialAnalysis{Calories: ptr(520), HealthTip: ptr("Good swap.")}}
	s := session.New(calc)
	s.Begin(burger(), "", nil)
	require.NoError(t, s.RemoveIngredient(2))

	got, err := s.Recalculate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 520, got.Calories)
	assert.Equal(t, "Good swap.", got.HealthTip)
	assert.Equal(t, model.Macros{Protein: 35, Carbs: 50, Fat: 38}, got.Macros, "absent macros must keep prior values")
	assert.Equal(t, []string{"beef patty", "bun"}, calc.lastIng)
}

func TestRecalculateFailureKeepsEdits(t *testing.T) {
	failure := &gateway.AnalysisFailure{Op: gateway.OpRecalculate, Reason: "service call"}
	s := session.New(&stubCalc{err: failure})
	s.Begin(burger(), "", nil)
	require.NoError(t, s.AddIngredient("bacon"))

	got, err := s.Recalculate(context.Background())
	require.Error(t, err)
	assert.True(t, gateway.IsRecalculationFailure(err))
	assert.Equal(t, 700, got.Calories)
	assert.Contains(t, got.Ingredients, "bacon")

	cur, _ := s.Current()
	assert.Equal(t, got, cur)
}

func TestRecalculateRejectsConcurrentRequest(t *testing.T) {
	calc := &stubCalc{
		result:  model.PartialAnalysis{Calories: ptr(600)},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := session.New(calc)
	s.Begin(burger(), "", nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Recalculate(context.Background())
		done <- err
	}()
	<-calc.started

	_, err := s.Recalculate(context.Background())
	assert.ErrorIs(t, err, session.ErrRecalculationInFlight)

	close(calc.release)
	require.NoError(t, <-done)
	cur, _ := s.Current()
	assert.Equal(t, 600, cur.Calories)
}

func TestRecalculateResultForSupersededEditIsDiscarded(t *testing.T) {
	calc := &stubCalc{
		result:  model.PartialAnalysis{Calories: ptr(1)},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := session.New(calc)
	s.Begin(burger(), "", nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Recalculate(context.Background())
		done <- err
	}()
	<-calc.started

	next := burger()
	next.FoodName = "Salad"
	next.Calories = 250
	s.Begin(next, "", nil)
	close(calc.release)

	assert.ErrorIs(t, <-done, session.ErrStaleResult)
	cur, _ := s.Current()
	assert.Equal(t, "Salad", cur.FoodName)
	assert.Equal(t, 250, cur.Calories)
}

func TestRecalculateResultForEditedIngredientsIsDiscarded(t *testing.T) {
	for name, edit := range map[string]func(*session.Session) error{
		"add":    func(s *session.Session) error { return s.AddIngredient("lettuce") },
		"remove": func(s *session.Session) error { return s.RemoveIngredient(2) },
	} {
		t.Run(name, func(t *testing.T) {
			calc := &stubCalc{
				result:  model.PartialAnalysis{Calories: ptr(1), HealthTip: ptr("stale")},
				started: make(chan struct{}),
				release: make(chan struct{}),
			}
			s := session.New(calc)
			s.Begin(burger(), "", nil)

			done := make(chan error, 1)
			go func() {
				_, err := s.Recalculate(context.Background())
				done <- err
			}()
			<-calc.started

			require.NoError(t, edit(s))
			want, _ := s.Current()
			close(calc.release)

			assert.ErrorIs(t, <-done, session.ErrStaleResult)
			cur, _ := s.Current()
			assert.Equal(t, want, cur)
			assert.Equal(t, 700, cur.Calories)
			assert.Equal(t, "Skip the extra cheese.", cur.HealthTip)

			// The edited list can be recalculated afterwards.
			calc.started, calc.release = nil, nil
			calc.result = model.PartialAnalysis{Calories: ptr(640)}
			got, err := s.Recalculate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 640, got.Calories)
			assert.Equal(t, want.Ingredients, calc.lastIng)
		})
	}
}

func TestSaveCommitsAndClears(t *testing.T) {
	st := &memStore{}
	s := session.New(&stubCalc{})
	s.Begin(burger(), "/tmp/burger.jpg", nil)
	now := time.Date(2026, 3, 4, 12, 30, 0, 0, time.Local)

	entry, err := s.Save(st, now)
	require.NoError(t, err)
	require.Len(t, st.entries, 1)
	assert.Equal(t, entry, st.entries[0])
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, now.UnixMilli(), entry.Timestamp)
	assert.Equal(t, "/tmp/burger.jpg", entry.ImageURL)
	assert.Equal(t, 82, entry.ConfidenceScore)

	_, ok := s.Current()
	assert.False(t, ok)
	_, err = s.Save(st, now)
	assert.ErrorIs(t, err, session.ErrNoPendingEdit)
}

func TestSaveFailureKeepsPendingEdit(t *testing.T) {
	st := &memStore{err: errors.New("disk full")}
	s := session.New(&stubCalc{})
	s.Begin(burger(), "", nil)

	_, err := s.Save(st, time.Now())
	require.Error(t, err)
	_, ok := s.Current()
	assert.True(t, ok)
}

func TestOperationsWithoutPendingEdit(t *testing.T) {
	s := session.New(&stubCalc{})
	assert.ErrorIs(t, s.AddIngredient("x"), session.ErrNoPendingEdit)
	assert.ErrorIs(t, s.RemoveIngredient(0), session.ErrNoPendingEdit)
	_, err := s.Recalculate(context.Background())
	assert.ErrorIs(t, err, session.ErrNoPendingEdit)

	s.Begin(burger(), "", nil)
	s.Discard()
	_, ok := s.Current()
	assert.False(t, ok)
}
