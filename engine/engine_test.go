package engine

import (
	"testing"
	"time"

	"isolation/agent"
	"isolation/config"
	"isolation/game"

	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, mode string) *agent.Agent {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = mode
	cfg.Depth = 2
	cfg.Budget = 10 * time.Millisecond
	a, err := agent.New(cfg)
	require.NoError(t, err)
	return a
}

// stubPlayer reports a fixed action, then blocks until the engine moves on.
type stubPlayer struct {
	report  game.Action
	release chan struct{}
}

func (s *stubPlayer) ChooseAction(state game.State, put func(game.Action)) (game.Action, error) {
	if put != nil {
		put(s.report)
	}
	<-s.release
	return s.report, nil
}

// silentPlayer never reports and never returns in time.
type silentPlayer struct {
	release chan struct{}
}

func (s *silentPlayer) ChooseAction(state game.State, put func(game.Action)) (game.Action, error) {
	<-s.release
	return game.CellUnset, nil
}

func TestRun(t *testing.T) {
	t.Run("minimax versus mcts plays to completion", func(t *testing.T) {
		e := New(newTestAgent(t, config.ModeMinimax), newTestAgent(t, config.ModeMCTS), 5*time.Second)

		winner, plies, err := e.Run(game.NewPosition(5, 4))

		require.NoError(t, err)
		require.Contains(t, []game.PlayerID{game.Player0, game.Player1}, winner)
		require.Greater(t, plies, 2, "Both players must at least place themselves")
	})
}

func TestTimedMove(t *testing.T) {
	t.Run("plays the reported action when the deadline fires first", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		stub := &stubPlayer{report: game.Cell(3), release: release}
		e := New(stub, stub, 20*time.Millisecond)

		action, err := e.timedMove(game.NewPosition(3, 3))

		require.NoError(t, err)
		require.Equal(t, game.Cell(3), action,
			"The last reported action should be played on preemption")
	})

	t.Run("fails when nothing was reported before the deadline", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		silent := &silentPlayer{release: release}
		e := New(silent, silent, 20*time.Millisecond)

		_, err := e.timedMove(game.NewPosition(3, 3))

		require.Error(t, err)
	})

	t.Run("returns the search result when it beats the deadline", func(t *testing.T) {
		e := New(newTestAgent(t, config.ModeMinimax), newTestAgent(t, config.ModeMinimax), 5*time.Second)
		start := game.NewPosition(3, 3)

		action, err := e.timedMove(start)

		require.NoError(t, err)
		require.Contains(t, start.Actions(), action)
	})
}
