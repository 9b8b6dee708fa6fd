package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	plansBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledgestack_level_plans_total",
		Help: "Level plans assembled by the distribution engine.",
	})
	tierFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledgestack_tier_fallbacks_total",
		Help: "Tier selections that ran short and pushed their shortfall to a higher tier.",
	})
	poolFills = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledgestack_pool_fills_total",
		Help: "Plans that needed the pool-wide fill after the tier pass.",
	})
	exhaustionResets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "knowledgestack_history_resets_total",
		Help: "Served-history resets triggered by pool exhaustion.",
	})
)
