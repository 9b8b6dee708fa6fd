package catalog

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrInvalidDifficulty marks a question whose difficulty falls outside
	// [TierMin, TierMax].
	ErrInvalidDifficulty = errors.New("question difficulty out of range")
	// ErrDuplicateID marks two questions sharing an ID within one load.
	ErrDuplicateID = errors.New("duplicate question id")
)

// Store holds the loaded catalog grouped by difficulty tier. Load builds a
// fresh catalog and swaps it in atomically, so in-flight readers never observe
// a partially loaded state.
type Store struct {
	current atomic.Pointer[catalogState]
}

type catalogState struct {
	byTier map[int][]Question
	byID   map[int]Question
}

// NewStore returns an empty store; call Load before serving plans.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(newCatalogState())
	return s
}

func newCatalogState() *catalogState {
	return &catalogState{
		byTier: make(map[int][]Question, TierMax),
		byID:   make(map[int]Question),
	}
}

// Load validates and installs a new catalog, replacing any previous one.
// Loading is idempotent: the same bundle loaded twice yields the same catalog.
func (s *Store) Load(questions []Question) error {
	next := newCatalogState()
	for _, q := range questions {
		if q.Difficulty < TierMin || q.Difficulty > TierMax {
			return fmt.Errorf("question %d: difficulty %d: %w", q.ID, q.Difficulty, ErrInvalidDifficulty)
		}
		if _, exists := next.byID[q.ID]; exists {
			return fmt.Errorf("question %d: %w", q.ID, ErrDuplicateID)
		}
		next.byID[q.ID] = q
		next.byTier[q.Difficulty] = append(next.byTier[q.Difficulty], q)
	}
	s.current.Store(next)
	return nil
}

// TierBucket returns the questions in one difficulty tier. The returned slice
// is shared and must not be mutated.
func (s *Store) TierBucket(tier int) []Question {
	return s.current.Load().byTier[tier]
}

// All returns every loaded question across all tiers.
func (s *Store) All() []Question {
	state := s.current.Load()
	out := make([]Question, 0, len(state.byID))
	for tier := TierMin; tier <= TierMax; tier++ {
		out = append(out, state.byTier[tier]...)
	}
	return out
}

// Get looks a question up by ID.
func (s *Store) Get(id int) (Question, bool) {
	q, ok := s.current.Load().byID[id]
	return q, ok
}

// Len reports the total number of loaded questions.
func (s *Store) Len() int {
	return len(s.current.Load().byID)
}
