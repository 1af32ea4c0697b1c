package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tetress/agent"
	"tetress/engine"
	"tetress/experiments"
	"tetress/game"
	"tetress/searcher"
	"tetress/server"
)

func main() {
	mode := flag.String("mode", "match", "match, serve or experiment")
	red := flag.String("red", "mcts", "red agent: mcts or random")
	blue := flag.String("blue", "random", "blue agent: mcts or random")
	clock := flag.Duration("clock", agent.DefaultClock, "total game clock per mcts agent")
	steps := flag.Int("steps", 0, "rollout step budget, 0 for default")
	sims := flag.Int("sims", 0, "simulations per move, 0 for default")
	backend := flag.String("backend", "bit", "board backend: bit or sim")
	seed := flag.Uint64("seed", 0, "search seed, 0 for time-seeded")
	addr := flag.String("addr", ":8080", "listen address for serve mode")
	render := flag.Bool("render", false, "print the board after every move")
	resultDir := flag.String("results", "results", "output directory for experiment mode")
	experiment := flag.String("experiment", "strength", "experiment name: strength or step_budget")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *mode {
	case "match":
		runMatch(*red, *blue, *clock, *steps, *sims, *backend, *seed, *render)
	case "serve":
		runServer(*addr)
	case "experiment":
		runExperiment(*experiment, *resultDir)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

func runMatch(red, blue string, clock time.Duration, steps, sims int, backend string, seed uint64, render bool) {
	var board game.Board
	if backend == "sim" {
		board = game.NewSimBoard()
	} else {
		board = game.NewBitBoard()
	}

	redSeed, blueSeed := agentSeeds(seed)
	redAgent := makeAgent(red, game.Red, board, clock, steps, sims, redSeed)
	blueAgent := makeAgent(blue, game.Blue, board, clock, steps, sims, blueSeed)

	match := engine.NewMatch(board, redAgent, blueAgent)
	match.ShowBoard = render
	winner, _, err := match.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}
	log.Info().Stringer("winner", winner).Msg("done")
}

// agentSeeds derives distinct per-color seeds from the -seed flag. Zero
// means time-seeded, and stays zero for both colors.
func agentSeeds(seed uint64) (red, blue uint64) {
	if seed == 0 {
		return 0, 0
	}
	return seed, seed + 1
}

func makeAgent(kind string, color game.PlayerColor, board game.Board, clock time.Duration, steps, sims int, seed uint64) agent.Agent {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	if kind == "random" {
		return agent.NewRandom(color, board, rng)
	}

	options := []agent.MCTSOption{agent.WithClock(clock)}
	if steps > 0 {
		options = append(options, agent.WithStepBudget(steps))
	}
	if sims > 0 {
		options = append(options, agent.WithSimulationCeiling(sims))
	}
	if rng != nil {
		options = append(options, agent.WithSearchOptions(searcher.WithRand(rng)))
	}
	a, err := agent.NewMCTS(color, board, options...)
	if err != nil {
		log.Fatal().Err(err).Stringer("color", color).Msg("failed to create agent")
	}
	return a
}

func runServer(addr string) {
	s := server.New()
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func runExperiment(name, resultDir string) {
	var err error
	switch name {
	case "strength":
		err = experiments.RunStrengthExperiment(resultDir)
	case "step_budget":
		err = experiments.RunStepBudgetExperiment(resultDir)
	default:
		log.Fatal().Str("experiment", name).Msg("unknown experiment")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
