package searcher

import "time"

// SearchMetrics summarizes one MCTS call.
type SearchMetrics struct {
	Duration   time.Duration
	Iterations int // Completed select/rollout/backup passes, equals root visits
	Nodes      int // Arena size including the root
	MaxDepth   int // Deepest expanded node, root at 0
}
