// Package agent picks a move for the active player under an externally owned
// clock: a random opening move for the first two plies, then a delegated
// minimax or MCTS search. Every improvement is reported immediately, so a
// forced cutoff always finds a legal answer in place.
package agent

import (
	"errors"

	"isolation/config"
	"isolation/game"
	"isolation/searcher"

	"lukechampine.com/frand"
)

// Opening phase length: placement symmetry makes deep search unproductive
// before both players are on the board.
const openingPlies = 2

// ErrTerminalState is returned when an action is requested for a finished
// game. The searchers themselves assume non-terminal roots.
var ErrTerminalState = errors.New("cannot choose an action in a terminal state")

type Agent struct {
	mode    string
	rng     searcher.Rand
	minimax *searcher.Minimax
	mcts    *searcher.MCTS
}

type Option func(*Agent)

// WithRand substitutes the random source used for opening moves and rollouts.
// A seeded *math/rand.Rand makes the agent reproducible in tests.
func WithRand(rng searcher.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

// New builds an agent from a validated configuration.
func New(cfg *config.Config, options ...Option) (*Agent, error) {
	evaluate, err := game.ParseHeuristic(cfg.Heuristic)
	if err != nil {
		return nil, err
	}
	a := &Agent{
		mode: cfg.Mode,
		rng:  frand.New(),
	}
	for _, option := range options {
		option(a)
	}
	a.minimax = searcher.NewMinimax(
		searcher.WithDepth(cfg.Depth),
		searcher.WithHeuristic(evaluate),
	)
	a.mcts = searcher.NewMCTS(
		searcher.WithBudget(cfg.Budget),
		searcher.WithSafety(cfg.Safety),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithRand(a.rng),
	)
	return a, nil
}

// ChooseAction returns an action for the active player. put (when non-nil) is
// invoked with the best action found so far, at least once before returning:
// the caller owns the clock and may preempt the search at any point after the
// first report.
func (a *Agent) ChooseAction(state game.State, put func(game.Action)) (game.Action, error) {
	if state.TerminalTest() {
		return game.CellUnset, ErrTerminalState
	}

	if state.PlyCount() < openingPlies {
		actions := state.Actions()
		action := actions[a.rng.Intn(len(actions))]
		if put != nil {
			put(action)
		}
		return action, nil
	}

	if a.mode == config.ModeMCTS {
		return a.mcts.FindAction(state, put)
	}
	return a.minimax.FindAction(state, put)
}
