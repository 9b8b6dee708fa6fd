package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/knowledgestack/backend/internal/catalog"
	"github.com/knowledgestack/backend/internal/history"
)

// PlanSize is the number of questions every level plan contains.
const PlanSize = 10

// ErrCatalogTooSmall marks a catalog with fewer than PlanSize questions. No
// history reset can recover from it; it is a configuration error.
var ErrCatalogTooSmall = errors.New("catalog holds fewer questions than one level plan")

// Engine assembles level plans from the catalog, honoring the per-tier quota
// and never re-serving a question before the player's unseen pool is
// exhausted.
type Engine struct {
	store   *catalog.Store
	history *history.History
	logger  zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	playerLocks sync.Map // playerID -> *sync.Mutex
}

// NewEngine wires the engine with its collaborators. A nil rng gets a
// time-seeded source; tests inject a seeded one.
func NewEngine(store *catalog.Store, hist *history.History, rng *rand.Rand, logger zerolog.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		store:   store,
		history: hist,
		logger:  logger,
		rng:     rng,
	}
}

func (e *Engine) lockFor(playerID string) *sync.Mutex {
	v, _ := e.playerLocks.LoadOrStore(playerID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// PlanLevel assembles exactly PlanSize unseen questions for one level attempt.
// Tiers are filled in ascending order; a tier that runs short pushes its
// shortfall to the next tier, anything still missing is filled from the whole
// unseen pool, and a fully exhausted pool resets the player's history before
// the final fill. Calls for the same player are serialized; distinct players
// run concurrently.
func (e *Engine) PlanLevel(ctx context.Context, playerID string, level int) ([]catalog.Question, error) {
	quota, err := QuotaForLevel(level)
	if err != nil {
		return nil, err
	}
	if total := e.store.Len(); total < PlanSize {
		return nil, fmt.Errorf("%d questions loaded: %w", total, ErrCatalogTooSmall)
	}

	lock := e.lockFor(playerID)
	lock.Lock()
	defer lock.Unlock()

	seen, err := e.history.Snapshot(ctx, playerID)
	if err != nil {
		return nil, err
	}

	plan := make([]catalog.Question, 0, PlanSize)

	// Tier pass: ascending tiers, each shortfall carried up to the next tier.
	// A shortfall at the top tier is left for the pool-wide fill.
	carry := 0
	for tier := catalog.TierMin; tier <= catalog.TierMax; tier++ {
		need := quota[tier] + carry
		if need == 0 {
			carry = 0
			continue
		}
		picked, err := e.take(ctx, playerID, unseenOf(e.store.TierBucket(tier), seen), need, seen)
		if err != nil {
			return nil, err
		}
		plan = append(plan, picked...)
		carry = need - len(picked)
		if carry > 0 {
			tierFallbacks.Inc()
		}
	}

	// Pool-wide fill, ignoring quota.
	if len(plan) < PlanSize {
		poolFills.Inc()
		picked, err := e.take(ctx, playerID, unseenOf(e.store.All(), seen), PlanSize-len(plan), seen)
		if err != nil {
			return nil, err
		}
		plan = append(plan, picked...)
	}

	// Exhaustion: the player has seen every question in the catalog. Clear the
	// history and refill. Questions already in this plan stay excluded and are
	// re-marked so the plan never contains duplicates and the stored history
	// matches exactly what this call returned.
	if len(plan) < PlanSize {
		if err := e.history.Reset(ctx, playerID); err != nil {
			return nil, err
		}
		exhaustionResets.Inc()
		e.logger.Info().Str("player", playerID).Int("level", level).Msg("question pool exhausted, history reset")

		seen = make(map[int]struct{}, len(plan))
		planIDs := make([]int, 0, len(plan))
		for _, q := range plan {
			seen[q.ID] = struct{}{}
			planIDs = append(planIDs, q.ID)
		}
		if err := e.history.Mark(ctx, playerID, planIDs...); err != nil {
			return nil, err
		}

		picked, err := e.take(ctx, playerID, unseenOf(e.store.All(), seen), PlanSize-len(plan), seen)
		if err != nil {
			return nil, err
		}
		plan = append(plan, picked...)
	}

	if len(plan) != PlanSize {
		// Unreachable while Len() >= PlanSize holds, kept as a hard guard on
		// the plan-size post-condition.
		return nil, fmt.Errorf("assembled %d of %d questions: %w", len(plan), PlanSize, ErrCatalogTooSmall)
	}

	plansBuilt.Inc()
	return plan, nil
}

// take samples up to n candidates uniformly without replacement, marking every
// pick as served in both the call-local snapshot and the backing history so
// later selection steps in the same call exclude them.
func (e *Engine) take(ctx context.Context, playerID string, candidates []catalog.Question, n int, seen map[int]struct{}) ([]catalog.Question, error) {
	if n <= 0 || len(candidates) == 0 {
		return nil, nil
	}

	e.rngMu.Lock()
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	e.rngMu.Unlock()

	if n > len(candidates) {
		n = len(candidates)
	}
	picked := candidates[:n]

	ids := make([]int, len(picked))
	for i, q := range picked {
		seen[q.ID] = struct{}{}
		ids[i] = q.ID
	}
	if err := e.history.Mark(ctx, playerID, ids...); err != nil {
		return nil, err
	}
	return picked, nil
}

// unseenOf copies pool minus the seen set. The copy is what take shuffles, so
// the store's slices are never mutated.
func unseenOf(pool []catalog.Question, seen map[int]struct{}) []catalog.Question {
	out := make([]catalog.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}
