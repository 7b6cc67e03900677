package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"isolation/agent"
	"isolation/config"
	"isolation/engine"
	"isolation/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	games := flag.Int("games", 10, "number of games in the comparison series")
	parallel := flag.Int("parallel", 4, "concurrent games in the series")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := runShowcaseGame(cfg); err != nil {
		log.Fatal().Err(err).Msg("showcase game failed")
	}
	if err := runComparisonSeries(cfg, *games, *parallel); err != nil {
		log.Fatal().Err(err).Msg("comparison series failed")
	}
}

// runShowcaseGame plays one rendered game, minimax versus MCTS.
func runShowcaseGame(cfg *config.Config) error {
	minimaxAgent, mctsAgent, err := buildAgents(cfg)
	if err != nil {
		return err
	}
	players := [2]engine.Player{minimaxAgent, mctsAgent}

	fmt.Printf("Showcase game: minimax (player0) vs mcts (player1) on %dx%d\n",
		cfg.BoardWidth, cfg.BoardHeight)

	state := game.State(game.NewPosition(cfg.BoardWidth, cfg.BoardHeight))
	render(state)
	for !state.TerminalTest() {
		action, err := players[state.Player()].ChooseAction(state, nil)
		if err != nil {
			return err
		}
		state, err = state.Result(action)
		if err != nil {
			return err
		}
		render(state)
	}

	winner := state.Player()
	if state.Utility(winner) < 0 {
		winner = winner.Opponent()
	}
	fmt.Printf("Winner after %d plies: %s\n\n", state.PlyCount(), winner)
	return nil
}

// runComparisonSeries pits minimax against MCTS over a series of games and
// prints the win counts.
func runComparisonSeries(cfg *config.Config, games, parallel int) error {
	fmt.Printf("Running %d-game series: minimax (player0) vs mcts (player1)...\n", games)

	result, err := engine.RunSeries(games, parallel, func() (*engine.Engine, game.State) {
		minimaxAgent, mctsAgent, err := buildAgents(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build agents")
		}
		return engine.New(minimaxAgent, mctsAgent, cfg.Deadline),
			game.NewPosition(cfg.BoardWidth, cfg.BoardHeight)
	})
	if err != nil {
		return err
	}

	wins := lo.CountValues(result.Winners)
	meanPlies := lo.Sum(result.Plies) / len(result.Plies)
	fmt.Printf("minimax %d - %d mcts (mean game length %d plies)\n",
		wins[game.Player0], wins[game.Player1], meanPlies)
	return nil
}

func buildAgents(cfg *config.Config) (*agent.Agent, *agent.Agent, error) {
	minimaxCfg := *cfg
	minimaxCfg.Mode = config.ModeMinimax
	minimaxAgent, err := agent.New(&minimaxCfg)
	if err != nil {
		return nil, nil, err
	}

	mctsCfg := *cfg
	mctsCfg.Mode = config.ModeMCTS
	mctsAgent, err := agent.New(&mctsCfg)
	if err != nil {
		return nil, nil, err
	}
	return minimaxAgent, mctsAgent, nil
}
