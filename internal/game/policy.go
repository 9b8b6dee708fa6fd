package game

import (
	"errors"
	"fmt"

	"github.com/knowledgestack/backend/internal/catalog"
)

// ErrInvalidLevel marks a level request below 1.
var ErrInvalidLevel = errors.New("level must be at least 1")

// Quota maps a difficulty tier to the number of questions a level draws from
// it. Every bracket sums to PlanSize.
type Quota map[int]int

// Total returns the summed question count across all tiers.
func (q Quota) Total() int {
	total := 0
	for tier := catalog.TierMin; tier <= catalog.TierMax; tier++ {
		total += q[tier]
	}
	return total
}

// QuotaForLevel returns the per-tier question counts for a level. Early levels
// skew easy and later levels skew hard.
func QuotaForLevel(level int) (Quota, error) {
	if level < 1 {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	switch {
	case level <= 20:
		return Quota{1: 5, 2: 2, 3: 2, 4: 1}, nil
	case level <= 40:
		return Quota{1: 3, 2: 3, 3: 2, 4: 2}, nil
	case level <= 80:
		return Quota{1: 1, 2: 2, 3: 3, 4: 4}, nil
	default:
		return Quota{1: 0, 2: 1, 3: 4, 4: 5}, nil
	}
}
