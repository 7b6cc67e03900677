package searcher

import (
	"fmt"
	"time"

	"isolation/game"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Reference MCTS hyperparameters.
const (
	DefaultExploration = 1.7
	DefaultBudget      = 150 * time.Millisecond
	// DefaultSafety shrinks the caller's budget to leave margin for result
	// extraction before an external cutoff fires.
	DefaultSafety = 0.5
)

// MCTS is a time-budgeted Monte-Carlo tree searcher with UCT selection and
// uniformly random rollouts. Each FindAction call builds its own node arena
// and discards it; nothing is shared across calls.
type MCTS struct {
	budget      time.Duration
	safety      float64
	exploration float64
	rng         Rand
	metrics     SearchMetrics
}

type Option func(*MCTS)

func WithBudget(budget time.Duration) Option {
	return func(m *MCTS) {
		if budget >= 0 {
			m.budget = budget
		}
	}
}

func WithSafety(safety float64) Option {
	return func(m *MCTS) {
		if safety > 0 && safety <= 1 {
			m.safety = safety
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// WithRand substitutes the random source used for expansion and rollouts.
// A seeded *math/rand.Rand makes the tree build reproducibly in tests.
func WithRand(rng Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{
		budget:      DefaultBudget,
		safety:      DefaultSafety,
		exploration: DefaultExploration,
		rng:         frand.New(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindAction iterates select/expand, rollout and backpropagation until the
// safety-adjusted budget is spent, then returns the action of the most-visited
// root child. At least one iteration always runs, so even a zero budget yields
// an answer. Whenever the leading root child changes, the new best action is
// pushed through report (when non-nil).
//
// Must not be called on a terminal state; the action selector enforces that
// precondition.
func (m *MCTS) FindAction(state game.State, report func(game.Action)) (game.Action, error) {
	t := newTree(state, m.rng)
	limit := time.Duration(float64(m.budget) * m.safety)
	start := time.Now()

	iterations := 0
	best := game.CellUnset
	for iterations == 0 || time.Since(start) <= limit {
		leaf, err := t.selectExpand(m.exploration)
		if err != nil {
			return game.CellUnset, err
		}
		result, err := t.rollout(leaf)
		if err != nil {
			return game.CellUnset, err
		}
		t.backup(leaf, result)
		iterations++

		if a, ok := t.bestAction(); ok && a != best {
			best = a
			if report != nil {
				report(best)
			}
		}
	}

	m.metrics = SearchMetrics{
		Duration:   time.Since(start),
		Iterations: iterations,
		Nodes:      len(t.nodes),
		MaxDepth:   t.maxDepth(),
	}
	log.Debug().
		Dur("duration", m.metrics.Duration).
		Int("iterations", m.metrics.Iterations).
		Int("nodes", m.metrics.Nodes).
		Int("max_depth", m.metrics.MaxDepth).
		Msg("search complete")

	if best == game.CellUnset {
		return game.CellUnset, fmt.Errorf("root has no expandable actions")
	}
	return best, nil
}

// Metrics returns the statistics of the most recent FindAction call.
func (m *MCTS) Metrics() SearchMetrics {
	return m.metrics
}
