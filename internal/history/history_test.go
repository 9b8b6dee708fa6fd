package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAndContains(t *testing.T) {
	ctx := context.Background()
	h := New(NewMemoryStore())

	served, err := h.Contains(ctx, "p1", 42)
	require.NoError(t, err)
	assert.False(t, served)

	require.NoError(t, h.Mark(ctx, "p1", 42))

	served, err = h.Contains(ctx, "p1", 42)
	require.NoError(t, err)
	assert.True(t, served)

	// Other players are unaffected.
	served, err = h.Contains(ctx, "p2", 42)
	require.NoError(t, err)
	assert.False(t, served)
}

func TestMarkIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h := New(NewMemoryStore())

	require.NoError(t, h.Mark(ctx, "p1", 7))
	require.NoError(t, h.Mark(ctx, "p1", 7))
	require.NoError(t, h.Mark(ctx, "p1", 7, 7, 8))

	snap, err := h.Snapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, snap, 2)
}

func TestResetClearsOnlyThatPlayer(t *testing.T) {
	ctx := context.Background()
	h := New(NewMemoryStore())

	require.NoError(t, h.Mark(ctx, "p1", 1, 2, 3))
	require.NoError(t, h.Mark(ctx, "p2", 4))

	require.NoError(t, h.Reset(ctx, "p1"))

	snap, err := h.Snapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, snap)

	snap, err = h.Snapshot(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, snap, 1)
}

func TestSnapshotReturnsServedSet(t *testing.T) {
	ctx := context.Background()
	h := New(NewMemoryStore())

	require.NoError(t, h.Mark(ctx, "p1", 10, 20, 30))

	snap, err := h.Snapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, map[int]struct{}{10: {}, 20: {}, 30: {}}, snap)
}
