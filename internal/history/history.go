// Package history tracks which question IDs each player has already been
// served, backed by a pluggable keyed set store.
package history

import (
	"context"
	"fmt"
)

// Store is the keyed set store backing served-question history. Keys are
// opaque player IDs; values are sets of question IDs.
type Store interface {
	Members(ctx context.Context, playerID string) ([]int, error)
	Add(ctx context.Context, playerID string, questionIDs ...int) error
	Contains(ctx context.Context, playerID string, questionID int) (bool, error)
	Clear(ctx context.Context, playerID string) error
}

// History is a thin policy wrapper over a Store. It adds no storage behavior
// of its own; marking is idempotent because the backing value is a set.
type History struct {
	store Store
}

// New wraps a keyed store.
func New(store Store) *History {
	return &History{store: store}
}

// Contains reports whether the player has already been served a question.
func (h *History) Contains(ctx context.Context, playerID string, questionID int) (bool, error) {
	return h.store.Contains(ctx, playerID, questionID)
}

// Mark records question IDs as served. Re-marking an already served ID is a
// no-op.
func (h *History) Mark(ctx context.Context, playerID string, questionIDs ...int) error {
	if len(questionIDs) == 0 {
		return nil
	}
	if err := h.store.Add(ctx, playerID, questionIDs...); err != nil {
		return fmt.Errorf("mark served: %w", err)
	}
	return nil
}

// Reset clears all served IDs for the player.
func (h *History) Reset(ctx context.Context, playerID string) error {
	if err := h.store.Clear(ctx, playerID); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}

// Snapshot returns the player's served set for exclusion checks and
// persistence hand-off.
func (h *History) Snapshot(ctx context.Context, playerID string) (map[int]struct{}, error) {
	ids, err := h.store.Members(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("snapshot history: %w", err)
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
