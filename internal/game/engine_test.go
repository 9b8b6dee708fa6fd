package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledgestack/backend/internal/catalog"
	"github.com/knowledgestack/backend/internal/history"
)

// tierQuestions builds count questions in one tier with IDs starting at base.
func tierQuestions(tier, count, base int) []catalog.Question {
	out := make([]catalog.Question, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, catalog.Question{
			ID:         base + i,
			Category:   "general",
			TextTR:     fmt.Sprintf("soru %d", base+i),
			Answer:     "a",
			Wrong:      []string{"b", "c", "d"},
			Difficulty: tier,
			TimeLimit:  15,
		})
	}
	return out
}

func newTestEngine(t *testing.T, questions []catalog.Question, seed int64) (*Engine, *history.History) {
	t.Helper()
	store := catalog.NewStore()
	require.NoError(t, store.Load(questions))
	hist := history.New(history.NewMemoryStore())
	engine := NewEngine(store, hist, rand.New(rand.NewSource(seed)), zerolog.Nop())
	return engine, hist
}

func evenCatalog(perTier int) []catalog.Question {
	var qs []catalog.Question
	for tier := 1; tier <= 4; tier++ {
		qs = append(qs, tierQuestions(tier, perTier, tier*1000)...)
	}
	return qs
}

func tierCounts(plan []catalog.Question) map[int]int {
	counts := make(map[int]int)
	for _, q := range plan {
		counts[q.Difficulty]++
	}
	return counts
}

func planIDs(plan []catalog.Question) map[int]struct{} {
	ids := make(map[int]struct{}, len(plan))
	for _, q := range plan {
		ids[q.ID] = struct{}{}
	}
	return ids
}

func TestPlanLevelReturnsTenUniqueQuestionsPerQuota(t *testing.T) {
	engine, _ := newTestEngine(t, evenCatalog(10), 1)

	plan, err := engine.PlanLevel(context.Background(), "p1", 5)
	require.NoError(t, err)

	require.Len(t, plan, PlanSize)
	assert.Len(t, planIDs(plan), PlanSize, "plan IDs must be pairwise distinct")
	assert.Equal(t, map[int]int{1: 5, 2: 2, 3: 2, 4: 1}, tierCounts(plan))
}

func TestPlanLevelHonorsLateQuota(t *testing.T) {
	engine, _ := newTestEngine(t, evenCatalog(10), 2)

	plan, err := engine.PlanLevel(context.Background(), "p1", 90)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{2: 1, 3: 4, 4: 5}, tierCounts(plan))
}

func TestPlanLevelNeverRepeatsBeforeExhaustion(t *testing.T) {
	engine, _ := newTestEngine(t, evenCatalog(10), 3) // 40 questions total

	ctx := context.Background()
	served := make(map[int]struct{})
	for attempt := 0; attempt < 4; attempt++ {
		plan, err := engine.PlanLevel(ctx, "p1", 10)
		require.NoError(t, err)
		for id := range planIDs(plan) {
			_, repeated := served[id]
			assert.False(t, repeated, "question %d served twice before exhaustion", id)
			served[id] = struct{}{}
		}
	}
	assert.Len(t, served, 40)
}

func TestPlanLevelInvalidLevel(t *testing.T) {
	engine, _ := newTestEngine(t, evenCatalog(10), 4)

	_, err := engine.PlanLevel(context.Background(), "p1", 0)
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestPlanLevelCatalogTooSmall(t *testing.T) {
	engine, _ := newTestEngine(t, tierQuestions(1, 9, 1), 5)

	_, err := engine.PlanLevel(context.Background(), "p1", 1)
	require.ErrorIs(t, err, ErrCatalogTooSmall)
}

func TestTierShortfallCarriesUpward(t *testing.T) {
	// Tier 1 holds only 2 questions, so the level-5 quota of 5 pushes a
	// shortfall of 3 into tier 2.
	qs := append(tierQuestions(1, 2, 100), tierQuestions(2, 10, 200)...)
	qs = append(qs, tierQuestions(3, 10, 300)...)
	qs = append(qs, tierQuestions(4, 10, 400)...)
	engine, _ := newTestEngine(t, qs, 6)

	plan, err := engine.PlanLevel(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 2: 5, 3: 2, 4: 1}, tierCounts(plan))
}

func TestSingleTierCatalogAbsorbsAllQuotas(t *testing.T) {
	// 12 tier-1 questions and nothing else: the plan still reaches 10, all
	// tier 1, via the pool-wide fill.
	engine, _ := newTestEngine(t, tierQuestions(1, 12, 1), 7)

	plan, err := engine.PlanLevel(context.Background(), "p1", 5)
	require.NoError(t, err)
	require.Len(t, plan, PlanSize)
	assert.Len(t, planIDs(plan), PlanSize)
	assert.Equal(t, map[int]int{1: 10}, tierCounts(plan))
}

func TestExhaustionResetMidCall(t *testing.T) {
	// 13-question catalog with all but 3 already served: the plan must reset
	// history mid-call, re-serve 7 old questions, and leave the history equal
	// to exactly the 10 returned IDs.
	qs := append(tierQuestions(1, 7, 1), tierQuestions(2, 6, 100)...)
	engine, hist := newTestEngine(t, qs, 8)
	ctx := context.Background()

	preServed := make([]int, 0, 10)
	for _, q := range qs[:10] {
		preServed = append(preServed, q.ID)
	}
	require.NoError(t, hist.Mark(ctx, "p1", preServed...))

	plan, err := engine.PlanLevel(ctx, "p1", 3)
	require.NoError(t, err)
	require.Len(t, plan, PlanSize)

	ids := planIDs(plan)
	require.Len(t, ids, PlanSize, "reset mid-call must not duplicate questions in one plan")

	for _, q := range qs[10:] {
		assert.Contains(t, ids, q.ID, "previously unseen question %d must be in the plan", q.ID)
	}

	reServed := 0
	for _, id := range preServed {
		if _, ok := ids[id]; ok {
			reServed++
		}
	}
	assert.Equal(t, 7, reServed)

	snap, err := hist.Snapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, ids, snap, "history after the call must hold exactly the returned IDs")
}

func TestDeterministicWithSeededSource(t *testing.T) {
	qs := evenCatalog(10)
	first, _ := newTestEngine(t, qs, 42)
	second, _ := newTestEngine(t, qs, 42)

	planA, err := first.PlanLevel(context.Background(), "p1", 5)
	require.NoError(t, err)
	planB, err := second.PlanLevel(context.Background(), "p1", 5)
	require.NoError(t, err)

	assert.Equal(t, planA, planB)
}

func TestConcurrentPlansForSamePlayerDoNotOverlap(t *testing.T) {
	engine, _ := newTestEngine(t, evenCatalog(5), 9) // exactly two plans worth

	var wg sync.WaitGroup
	plans := make([][]catalog.Question, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			plan, err := engine.PlanLevel(context.Background(), "p1", 30)
			assert.NoError(t, err)
			plans[i] = plan
		}(i)
	}
	wg.Wait()

	combined := make(map[int]struct{})
	for _, plan := range plans {
		for id := range planIDs(plan) {
			combined[id] = struct{}{}
		}
	}
	assert.Len(t, combined, 2*PlanSize, "concurrent plans for one player must not share questions")
}

func TestDistinctPlayersDrawIndependently(t *testing.T) {
	engine, hist := newTestEngine(t, evenCatalog(3), 10) // 12 questions
	ctx := context.Background()

	planA, err := engine.PlanLevel(ctx, "alice", 1)
	require.NoError(t, err)
	planB, err := engine.PlanLevel(ctx, "bob", 1)
	require.NoError(t, err)

	require.Len(t, planA, PlanSize)
	require.Len(t, planB, PlanSize)

	snapA, err := hist.Snapshot(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, snapA, PlanSize, "one player's plan must not touch another's history")
}
