package game

import (
	"errors"
	"fmt"
)

// PlayerID identifies one of the two players.
type PlayerID int

const (
	Player0 PlayerID = 0
	Player1 PlayerID = 1
)

// Opponent returns the other player.
func (p PlayerID) Opponent() PlayerID {
	return 1 - p
}

func (p PlayerID) String() string {
	return fmt.Sprintf("player%d", int(p))
}

// Cell indexes a board square in row-major order. CellUnset marks a player
// location before the initial placement.
type Cell int

const CellUnset Cell = -1

// Action is the cell the active player moves to (or places on, for the
// first move of each player).
type Action = Cell

// ErrIllegalAction is returned by Result when the action is not among the
// legal actions of the receiver state.
var ErrIllegalAction = errors.New("illegal action")

// State is the game capability the search engines run against. Implementations
// must have value semantics: Result returns a new, independent snapshot and
// never mutates the receiver.
type State interface {
	// Player returns the identity of the active player.
	Player() PlayerID
	// PlyCount returns the number of plies played so far.
	PlyCount() int
	// Loc returns a player's current location, or CellUnset before placement.
	Loc(player PlayerID) Cell
	// Width and Height describe the board geometry.
	Width() int
	Height() int
	// Open reports whether a cell is on the board and unoccupied.
	Open(c Cell) bool
	// Liberties returns every open cell reachable from loc along straight and
	// diagonal rays, stopping at the first blocked cell or the board edge.
	// An unset loc yields every open cell, in row-major order.
	Liberties(loc Cell) []Cell
	// Actions returns the legal actions for the active player. Empty exactly
	// when the active player has no moves.
	Actions() []Action
	// Result applies a legal action and returns the successor state with the
	// active player toggled. Returns ErrIllegalAction otherwise.
	Result(a Action) (State, error)
	// TerminalTest reports whether either player has zero liberties from
	// their own location.
	TerminalTest() bool
	// Utility is defined only for terminal states: +Inf if player won,
	// -Inf otherwise. There are no draws.
	Utility(player PlayerID) float64
}
