package searcher

import (
	"math"

	"isolation/game"
)

// mockState is a hand-wired game tree for exercising the searchers without a
// board.
type mockState struct {
	player   game.PlayerID
	ply      int
	actions  []game.Action
	next     map[game.Action]*mockState
	terminal bool
	winner   game.PlayerID
}

func (m *mockState) Player() game.PlayerID { return m.player }
func (m *mockState) PlyCount() int         { return m.ply }

func (m *mockState) Loc(game.PlayerID) game.Cell { return game.CellUnset }
func (m *mockState) Width() int                  { return 0 }
func (m *mockState) Height() int                 { return 0 }
func (m *mockState) Open(game.Cell) bool         { return false }

func (m *mockState) Liberties(game.Cell) []game.Cell { return nil }

func (m *mockState) Actions() []game.Action {
	if m.terminal {
		return nil
	}
	return m.actions
}

func (m *mockState) Result(a game.Action) (game.State, error) {
	child, ok := m.next[a]
	if !ok {
		return nil, game.ErrIllegalAction
	}
	return child, nil
}

func (m *mockState) TerminalTest() bool { return m.terminal }

func (m *mockState) Utility(p game.PlayerID) float64 {
	if p == m.winner {
		return math.Inf(1)
	}
	return math.Inf(-1)
}
