package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/knowledgestack/backend/internal/catalog"
)

// Shuffler produces the presentation order for a question's answers. It holds
// no history and touches no other state; the random source is injected so
// tests can seed it.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewShuffler builds a shuffler. A nil rng gets a time-seeded source.
func NewShuffler(rng *rand.Rand) *Shuffler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Shuffler{rng: rng}
}

// Shuffle returns the correct answer and all wrong answers in a uniformly
// random permutation.
func (s *Shuffler) Shuffle(q catalog.Question) []string {
	options := make([]string, 0, 1+len(q.Wrong))
	options = append(options, q.Answer)
	options = append(options, q.Wrong...)

	s.mu.Lock()
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	s.mu.Unlock()
	return options
}
