package game

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

// Default board dimensions.
const (
	DefaultWidth  = 11
	DefaultHeight = 9
)

// bitset tracks the open cells of a board as a packed bit vector.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) get(i int) bool {
	return b[i/64]&(1<<(i%64)) != 0
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (i % 64)
}

func (b bitset) clear(i int) {
	b[i/64] &^= 1 << (i % 64)
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b bitset) clone() bitset {
	c := make(bitset, len(b))
	copy(c, b)
	return c
}

// rays lists the eight straight/diagonal step directions.
var rays = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Position is a full snapshot of an Isolation game: board occupancy, both
// player locations, the active player and the ply counter. Each player moves
// queen-wise to an open cell, which then becomes permanently blocked. A player
// with no move from their own location loses.
//
// Position is an immutable value: Result and Fill return modified copies.
type Position struct {
	width  int
	height int
	open   bitset
	locs   [2]Cell
	player PlayerID
	ply    int
}

// NewPosition returns an empty board of the given dimensions with both
// players unplaced and player 0 to move.
func NewPosition(width, height int) Position {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", width, height))
	}
	open := newBitset(width * height)
	for i := 0; i < width*height; i++ {
		open.set(i)
	}
	return Position{
		width:  width,
		height: height,
		open:   open,
		locs:   [2]Cell{CellUnset, CellUnset},
	}
}

// Fill returns a copy with the given cells blocked. Used to set up positions.
func (p Position) Fill(cells ...Cell) Position {
	open := p.open.clone()
	for _, c := range cells {
		open.clear(int(c))
	}
	p.open = open
	return p
}

// Place returns a copy with a player put directly on a cell, bypassing the
// move rules. Used to set up positions.
func (p Position) Place(player PlayerID, c Cell) Position {
	open := p.open.clone()
	open.clear(int(c))
	p.open = open
	p.locs[player] = c
	return p
}

func (p Position) Width() int       { return p.width }
func (p Position) Height() int      { return p.height }
func (p Position) Player() PlayerID { return p.player }
func (p Position) PlyCount() int    { return p.ply }

func (p Position) Loc(player PlayerID) Cell {
	return p.locs[player]
}

func (p Position) Open(c Cell) bool {
	return c >= 0 && int(c) < p.width*p.height && p.open.get(int(c))
}

// Liberties returns the open cells reachable from loc along all eight rays,
// each ray walked until a blocked cell or the board edge. An unset loc yields
// every open cell in row-major order (initial placement).
func (p Position) Liberties(loc Cell) []Cell {
	if loc == CellUnset {
		cells := make([]Cell, 0, p.open.count())
		for i := 0; i < p.width*p.height; i++ {
			if p.open.get(i) {
				cells = append(cells, Cell(i))
			}
		}
		return cells
	}

	var cells []Cell
	x0, y0 := int(loc)%p.width, int(loc)/p.width
	for _, d := range rays {
		x, y := x0+d[0], y0+d[1]
		for x >= 0 && x < p.width && y >= 0 && y < p.height {
			c := Cell(y*p.width + x)
			if !p.open.get(int(c)) {
				break
			}
			cells = append(cells, c)
			x, y = x+d[0], y+d[1]
		}
	}
	return cells
}

// hasLiberty is the allocation-free form of len(Liberties(loc)) > 0.
func (p Position) hasLiberty(loc Cell) bool {
	if loc == CellUnset {
		return p.open.count() > 0
	}
	x0, y0 := int(loc)%p.width, int(loc)/p.width
	for _, d := range rays {
		x, y := x0+d[0], y0+d[1]
		if x >= 0 && x < p.width && y >= 0 && y < p.height && p.open.get(y*p.width+x) {
			return true
		}
	}
	return false
}

func (p Position) Actions() []Action {
	return p.Liberties(p.locs[p.player])
}

// Result applies a legal action and returns the successor snapshot: the target
// cell is blocked, the active player stands on it, the turn passes. The
// receiver is never modified.
func (p Position) Result(a Action) (State, error) {
	if !p.legal(a) {
		return nil, fmt.Errorf("%w: %s cannot move to cell %d", ErrIllegalAction, p.player, a)
	}
	open := p.open.clone()
	open.clear(int(a))

	next := p
	next.open = open
	next.locs[p.player] = a
	next.player = p.player.Opponent()
	next.ply++
	return next, nil
}

func (p Position) legal(a Action) bool {
	loc := p.locs[p.player]
	if loc == CellUnset {
		return p.Open(a)
	}
	for _, c := range p.Liberties(loc) {
		if c == a {
			return true
		}
	}
	return false
}

// TerminalTest reports whether either player is out of moves from their own
// location.
func (p Position) TerminalTest() bool {
	return !p.hasLiberty(p.locs[Player0]) || !p.hasLiberty(p.locs[Player1])
}

// Utility returns +Inf if player won and -Inf if they lost. It is only
// meaningful for terminal states. When both players are blocked the active
// player loses, since they are the first unable to move.
func (p Position) Utility(player PlayerID) float64 {
	loser := p.player.Opponent()
	if !p.hasLiberty(p.locs[p.player]) {
		loser = p.player
	}
	if player == loser {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

func (p Position) String() string {
	var sb strings.Builder
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			c := Cell(y*p.width + x)
			switch {
			case c == p.locs[Player0]:
				sb.WriteByte('0')
			case c == p.locs[Player1]:
				sb.WriteByte('1')
			case p.open.get(int(c)):
				sb.WriteByte('.')
			default:
				sb.WriteByte('#')
			}
			if x < p.width-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
