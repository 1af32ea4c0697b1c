// Package experiments pits agent configurations against each other over
// repeated matches and stores the results as CSV for offline analysis.
package experiments

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tetress/agent"
	"tetress/engine"
	"tetress/game"
	"tetress/searcher"
)

const (
	NumGames  = 20 // Per match up
	GameClock = 30 * time.Second
)

// AgentConfig describes one agent variant under test.
type AgentConfig struct {
	ID         int
	Kind       string // "mcts" or "random"
	Clock      time.Duration
	Steps      int
	SimCeiling int
	Seed       uint64
}

var stepConfigs = []AgentConfig{
	{ID: 1, Kind: "mcts", Clock: GameClock, Steps: 10},
	{ID: 2, Kind: "mcts", Clock: GameClock, Steps: 25},
	{ID: 3, Kind: "mcts", Clock: GameClock, Steps: 50},
	{ID: 4, Kind: "mcts", Clock: GameClock, Steps: game.MaxTurns},
}

// RunStepBudgetExperiment measures how deep a rollout needs to run before
// the heuristic cutoff stops costing playing strength. Every variant faces
// the full-playout agent.
func RunStepBudgetExperiment(resultDir string) error {
	baseline := AgentConfig{ID: 0, Kind: "mcts", Clock: GameClock, Steps: game.MaxTurns}
	matchUps := [][2]AgentConfig{}
	for _, config := range stepConfigs {
		matchUps = append(matchUps, [2]AgentConfig{baseline, config})
	}
	return runExperiment(resultDir, "step_budget", append(stepConfigs, baseline), matchUps)
}

// RunStrengthExperiment pits each search variant against the uniform
// random baseline as a sanity floor.
func RunStrengthExperiment(resultDir string) error {
	baseline := AgentConfig{ID: 0, Kind: "random"}
	matchUps := [][2]AgentConfig{}
	for _, config := range stepConfigs {
		matchUps = append(matchUps, [2]AgentConfig{baseline, config})
	}
	return runExperiment(resultDir, "strength", append(stepConfigs, baseline), matchUps)
}

func runExperiment(resultDir, name string, configs []AgentConfig, matchUps [][2]AgentConfig) error {
	count := 0
	gameRecords := []GameRecord{}
	moveRecords := []MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			winner, record, moves, err := runGame(config1, config2)
			if err != nil {
				return err
			}
			count++
			record.ID = count
			record.Agent1 = config1.ID
			record.Agent2 = config2.ID
			gameRecords = append(gameRecords, record)
			for _, mv := range moves {
				record := MoveRecord{
					Game:     count,
					Step:     mv.Step,
					Player:   mv.Player.String(),
					Move:     mv.Move,
					Duration: mv.Duration,
				}
				if mv.Search != nil {
					record.Episodes = mv.Search.Episodes
					record.FullPlayouts = mv.Search.FullPlayouts
					record.Cutoffs = mv.Search.CutoffJudgements
					record.IsTreeReused = mv.Search.TreeReused
				}
				moveRecords = append(moveRecords, record)
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s",
				mi+1, len(matchUps), i+1, NumGames, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := NewWriter(resultDir, name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored %s results in %s", name, writer.BaseDir())
	return nil
}

// runGame plays one game between two configs, agent1 as red.
func runGame(config1, config2 AgentConfig) (game.PlayerColor, GameRecord, []engine.MoveRecord, error) {
	board := game.NewBitBoard()
	red, err := makeAgent(config1, game.Red, board)
	if err != nil {
		return game.None, GameRecord{}, nil, err
	}
	blue, err := makeAgent(config2, game.Blue, board)
	if err != nil {
		return game.None, GameRecord{}, nil, err
	}

	start := time.Now()
	winner, moves, err := engine.NewMatch(board, red, blue).Run()
	if err != nil {
		return game.None, GameRecord{}, nil, err
	}
	end := time.Now()

	return winner, GameRecord{
		Winner:    winner.String(),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Turns:     board.TurnCount(),
		RedScore:  board.AggregateScore(game.Red),
		BlueScore: board.AggregateScore(game.Blue),
	}, moves, nil
}

func makeAgent(config AgentConfig, color game.PlayerColor, board game.Board) (agent.Agent, error) {
	var rng *rand.Rand
	if config.Seed != 0 {
		rng = rand.New(rand.NewSource(config.Seed))
	}

	if config.Kind == "random" {
		return agent.NewRandom(color, board, rng), nil
	}

	options := []agent.MCTSOption{}
	if config.Clock > 0 {
		options = append(options, agent.WithClock(config.Clock))
	}
	if config.Steps > 0 {
		options = append(options, agent.WithStepBudget(config.Steps))
	}
	if config.SimCeiling > 0 {
		options = append(options, agent.WithSimulationCeiling(config.SimCeiling))
	}
	searchOptions := []searcher.Option{searcher.WithMetrics()}
	if rng != nil {
		searchOptions = append(searchOptions, searcher.WithRand(rng))
	}
	options = append(options, agent.WithSearchOptions(searchOptions...))
	return agent.NewMCTS(color, board, options...)
}
