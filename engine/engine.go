// Package engine runs local matches. It plays the role of the external caller
// the search is written for: it owns the per-move clock, collects the best
// action reported so far and plays that action when the deadline fires before
// the search returns.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"isolation/game"

	"github.com/rs/zerolog/log"
)

// Player chooses an action for the active player, reporting every improvement
// through put. agent.Agent is the canonical implementation.
type Player interface {
	ChooseAction(state game.State, put func(game.Action)) (game.Action, error)
}

// bestCell is the mutable best-answer slot shared between a search goroutine
// and the deadline owner. Reads and writes may race in time but never in
// memory; the engine reads it once, after the deadline.
type bestCell struct {
	mu     sync.Mutex
	action game.Action
	ok     bool
}

func (b *bestCell) put(a game.Action) {
	b.mu.Lock()
	b.action = a
	b.ok = true
	b.mu.Unlock()
}

func (b *bestCell) get() (game.Action, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.action, b.ok
}

// Engine drives one match between two players on an initial state.
type Engine struct {
	players  [2]Player
	deadline time.Duration
}

func New(player0, player1 Player, deadline time.Duration) *Engine {
	if deadline <= 0 {
		panic("deadline must be positive")
	}
	return &Engine{
		players:  [2]Player{player0, player1},
		deadline: deadline,
	}
}

// Run plays from start until a terminal state and returns the winner and the
// number of plies played.
func (e *Engine) Run(start game.State) (game.PlayerID, int, error) {
	state := start
	for !state.TerminalTest() {
		mover := state.Player()
		action, err := e.timedMove(state)
		if err != nil {
			return 0, state.PlyCount(), fmt.Errorf("%s move failed: %w", mover, err)
		}
		next, err := state.Result(action)
		if err != nil {
			return 0, state.PlyCount(), fmt.Errorf("%s played an illegal action: %w", mover, err)
		}
		log.Debug().
			Stringer("player", mover).
			Int("ply", state.PlyCount()).
			Int("action", int(action)).
			Msg("move played")
		state = next
	}

	winner := state.Player()
	if state.Utility(winner) < 0 {
		winner = winner.Opponent()
	}
	log.Info().
		Stringer("winner", winner).
		Int("plies", state.PlyCount()).
		Msg("game over")
	return winner, state.PlyCount(), nil
}

// timedMove runs the active player's search under the per-move deadline. If
// the deadline fires first, the search goroutine is abandoned and the last
// reported action is played instead, matching a caller that forcibly preempts
// the search.
func (e *Engine) timedMove(state game.State) (game.Action, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.deadline)
	defer cancel()

	cell := &bestCell{}
	done := make(chan struct{})
	var chosen game.Action
	var searchErr error
	go func() {
		defer close(done)
		chosen, searchErr = e.players[state.Player()].ChooseAction(state, cell.put)
	}()

	select {
	case <-done:
		if searchErr != nil {
			return game.CellUnset, searchErr
		}
		return chosen, nil
	case <-ctx.Done():
		action, ok := cell.get()
		if !ok {
			return game.CellUnset, fmt.Errorf("deadline expired before any action was reported")
		}
		log.Warn().
			Stringer("player", state.Player()).
			Dur("deadline", e.deadline).
			Msg("deadline expired, playing last reported action")
		return action, nil
	}
}
