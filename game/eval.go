package game

import "fmt"

// Evaluate scores a non-terminal state from one player's perspective. Scores
// are finite; terminal states are scored via Utility, never via an Evaluate.
type Evaluate func(s State, player PlayerID) float64

// Heuristic names one evaluation strategy. Exactly one is active per search.
type Heuristic string

const (
	HeuristicMobility Heuristic = "mobility"
	HeuristicCenter   Heuristic = "center"
	HeuristicQuadrant Heuristic = "quadrant"
	HeuristicDistance Heuristic = "distance"
)

var heuristics = map[Heuristic]Evaluate{
	HeuristicMobility: EvaluateMobility,
	HeuristicCenter:   EvaluateCenter,
	HeuristicQuadrant: EvaluateQuadrant,
	HeuristicDistance: EvaluateDistance,
}

// ParseHeuristic maps a configured name to its evaluation function.
func ParseHeuristic(name string) (Evaluate, error) {
	evaluate, ok := heuristics[Heuristic(name)]
	if !ok {
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
	return evaluate, nil
}

// EvaluateMobility is the default heuristic: the difference between the
// player's and the opponent's liberty counts.
func EvaluateMobility(s State, player PlayerID) float64 {
	own := len(s.Liberties(s.Loc(player)))
	opp := len(s.Liberties(s.Loc(player.Opponent())))
	return float64(own - opp)
}

// EvaluateCenter rewards staying close to the board center, measured by
// Manhattan distance.
func EvaluateCenter(s State, player PlayerID) float64 {
	own := s.Loc(player)
	if own == CellUnset {
		return 0
	}
	cx, cy := s.Width()/2, s.Height()/2
	x, y := int(own)%s.Width(), int(own)/s.Width()
	return float64(cx+cy) - float64(abs(x-cx)+abs(y-cy))
}

// EvaluateQuadrant compares the largest open quadrant around each player: the
// board is partitioned into the four rectangles meeting at a player's
// location, and the player wants the biggest open region on their side.
func EvaluateQuadrant(s State, player PlayerID) float64 {
	own := s.Loc(player)
	opp := s.Loc(player.Opponent())
	if own == CellUnset || opp == CellUnset {
		return 0
	}
	return float64(biggestQuadrant(s, own) - biggestQuadrant(s, opp))
}

func biggestQuadrant(s State, loc Cell) int {
	w, h := s.Width(), s.Height()
	lx, ly := int(loc)%w, int(loc)/w

	best := 0
	xRanges := [2][2]int{{0, lx}, {lx, w - 1}}
	yRanges := [2][2]int{{0, ly}, {ly, h - 1}}
	for _, xr := range xRanges {
		for _, yr := range yRanges {
			open := 0
			for y := yr[0]; y <= yr[1]; y++ {
				for x := xr[0]; x <= xr[1]; x++ {
					if s.Open(Cell(y*w + x)) {
						open++
					}
				}
			}
			if open > best {
				best = open
			}
		}
	}
	return best
}

// EvaluateDistance rewards keeping away from the opponent, centered so that
// half the maximum Manhattan distance scores zero.
func EvaluateDistance(s State, player PlayerID) float64 {
	own := s.Loc(player)
	opp := s.Loc(player.Opponent())
	if own == CellUnset || opp == CellUnset {
		return 0
	}
	w := s.Width()
	d := abs(int(own)%w-int(opp)%w) + abs(int(own)/w-int(opp)/w)
	maxDist := (s.Width() - 1) + (s.Height() - 1)
	return float64(d) - float64(maxDist)/2
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
