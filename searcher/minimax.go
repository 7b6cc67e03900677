package searcher

import (
	"math"

	"isolation/game"
)

// DefaultDepth is the reference search depth for the minimax searcher.
const DefaultDepth = 5

// Minimax is a fixed-depth alpha-beta searcher. The searching player is bound
// at the start of each FindAction call; depth-limit cutoffs are scored by the
// configured heuristic from that player's perspective.
type Minimax struct {
	depth    int
	evaluate game.Evaluate
}

type MinimaxOption func(*Minimax)

func WithDepth(depth int) MinimaxOption {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithHeuristic(evaluate game.Evaluate) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func NewMinimax(options ...MinimaxOption) *Minimax {
	m := &Minimax{
		depth:    DefaultDepth,
		evaluate: game.EvaluateMobility,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindAction returns the best action for the active player. The first root
// action always seeds the incumbent, and only a strictly greater value
// replaces it, so the first action evaluated wins ties. Every improvement is
// pushed through report (when non-nil) so an externally preempted caller is
// never left without an answer.
//
// Must not be called on a terminal state; the action selector enforces that
// precondition.
func (m *Minimax) FindAction(state game.State, report func(game.Action)) (game.Action, error) {
	player := state.Player()
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	bestScore := math.Inf(-1)
	var best game.Action

	for i, a := range state.Actions() {
		next, err := state.Result(a)
		if err != nil {
			return game.CellUnset, err
		}
		v, err := m.minValue(next, player, alpha, beta, m.depth-1)
		if err != nil {
			return game.CellUnset, err
		}
		if i == 0 || v > bestScore {
			bestScore = v
			best = a
			if report != nil {
				report(best)
			}
		}
		alpha = math.Max(alpha, v)
	}
	return best, nil
}

func (m *Minimax) maxValue(state game.State, player game.PlayerID, alpha, beta float64, depth int) (float64, error) {
	if state.TerminalTest() {
		return state.Utility(player), nil
	}
	if depth <= 0 {
		return m.evaluate(state, player), nil
	}

	v := math.Inf(-1)
	for _, a := range state.Actions() {
		next, err := state.Result(a)
		if err != nil {
			return 0, err
		}
		w, err := m.minValue(next, player, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		v = math.Max(v, w)
		if v >= beta {
			return v, nil
		}
		alpha = math.Max(alpha, v)
	}
	return v, nil
}

func (m *Minimax) minValue(state game.State, player game.PlayerID, alpha, beta float64, depth int) (float64, error) {
	if state.TerminalTest() {
		return state.Utility(player), nil
	}
	if depth <= 0 {
		return m.evaluate(state, player), nil
	}

	v := math.Inf(1)
	for _, a := range state.Actions() {
		next, err := state.Result(a)
		if err != nil {
			return 0, err
		}
		w, err := m.maxValue(next, player, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		v = math.Min(v, w)
		if v <= alpha {
			return v, nil
		}
		beta = math.Min(beta, v)
	}
	return v, nil
}
