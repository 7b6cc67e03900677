package engine

import (
	"fmt"
	"sync"

	"isolation/game"

	"golang.org/x/sync/errgroup"
)

// SeriesResult collects the outcomes of a series of independent games.
type SeriesResult struct {
	Winners []game.PlayerID
	Plies   []int
}

// RunSeries plays games independent matches, at most parallel at a time.
// newMatch must return a fresh engine and start state per game, so nothing is
// shared between concurrent games; the searches themselves stay sequential.
func RunSeries(games, parallel int, newMatch func() (*Engine, game.State)) (SeriesResult, error) {
	if games < 1 {
		return SeriesResult{}, fmt.Errorf("series needs at least 1 game, got %d", games)
	}
	if parallel < 1 {
		return SeriesResult{}, fmt.Errorf("series needs at least 1 concurrent game, got %d", parallel)
	}

	result := SeriesResult{
		Winners: make([]game.PlayerID, games),
		Plies:   make([]int, games),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(parallel)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			e, start := newMatch()
			winner, plies, err := e.Run(start)
			if err != nil {
				return err
			}
			mu.Lock()
			result.Winners[i] = winner
			result.Plies[i] = plies
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SeriesResult{}, err
	}
	return result, nil
}
