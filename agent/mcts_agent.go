package agent

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tetress/game"
	"tetress/searcher"
)

const (
	// DefaultClock is the total wall clock an agent gets for a match.
	DefaultClock = 180 * time.Second

	minMoveBudget = 50 * time.Millisecond
	maxMoveBudget = 5 * time.Second
)

type MCTSOption func(*MCTSAgent)

// WithClock sets the total match time to spread across the agent's moves.
func WithClock(d time.Duration) MCTSOption {
	return func(a *MCTSAgent) {
		if d > 0 {
			a.clock = d
		}
	}
}

// WithFixedBudget pins every move to the same wall-clock budget instead of
// dividing the match clock.
func WithFixedBudget(d time.Duration) MCTSOption {
	return func(a *MCTSAgent) {
		if d > 0 {
			a.fixedBudget = d
		}
	}
}

// WithStepBudget sets the bounded-rollout ply cap.
func WithStepBudget(steps int) MCTSOption {
	return func(a *MCTSAgent) {
		if steps > 0 {
			a.steps = steps
		}
	}
}

// WithSimulationCeiling caps the simulations per move.
func WithSimulationCeiling(sims int) MCTSOption {
	return func(a *MCTSAgent) {
		if sims > 0 {
			a.simCeiling = sims
		}
	}
}

// WithPlayoutEstimation estimates remaining game length by full playouts
// (averaged over n) instead of turn-count arithmetic when dividing the
// match clock.
func WithPlayoutEstimation(n int) MCTSOption {
	return func(a *MCTSAgent) {
		if n > 0 {
			a.playoutEstimates = n
		}
	}
}

// WithSearchOptions forwards options to the underlying search.
func WithSearchOptions(options ...searcher.Option) MCTSOption {
	return func(a *MCTSAgent) {
		a.searchOptions = append(a.searchOptions, options...)
	}
}

// MCTSAgent owns a private board copy and a search tree that survives
// across plies: both its own and the opponent's real moves advance the
// root, so earlier simulations keep paying off.
type MCTSAgent struct {
	color            game.PlayerColor
	board            game.Board
	search           *searcher.MCTS
	clock            time.Duration
	fixedBudget      time.Duration
	steps            int
	simCeiling       int
	playoutEstimates int
	searchOptions    []searcher.Option
}

func NewMCTS(color game.PlayerColor, board game.Board, options ...MCTSOption) (*MCTSAgent, error) {
	a := &MCTSAgent{
		color: color,
		board: board.Copy(),
		clock: DefaultClock,
	}
	for _, option := range options {
		option(a)
	}
	search, err := searcher.New(a.board, a.searchOptions...)
	if err != nil {
		return nil, fmt.Errorf("mcts agent: %w", err)
	}
	a.search = search
	return a, nil
}

func (a *MCTSAgent) Color() game.PlayerColor { return a.color }

func (a *MCTSAgent) Action() (game.PlaceAction, error) {
	if a.board.TurnColor() != a.color {
		return game.PlaceAction{}, fmt.Errorf("mcts agent: asked to move on %s's turn", a.board.TurnColor())
	}
	budget := a.moveBudget()
	a.search.SetBudget(budget)

	start := time.Now()
	move, err := a.search.BestAction(a.steps, a.simCeiling)
	spent := time.Since(start)
	a.clock -= spent
	if err != nil {
		return game.PlaceAction{}, fmt.Errorf("mcts agent: %w", err)
	}

	log.Debug().
		Stringer("color", a.color).
		Stringer("move", move).
		Dur("budget", budget).
		Dur("spent", spent).
		Dur("clock", a.clock).
		Msg("move decided")
	return move, nil
}

// moveBudget spreads the remaining clock over an estimate of the agent's
// remaining own turns.
func (a *MCTSAgent) moveBudget() time.Duration {
	if a.fixedBudget > 0 {
		return a.fixedBudget
	}
	remaining := (game.MaxTurns-a.board.TurnCount())/2 + 1
	if a.playoutEstimates > 0 {
		if est, err := a.search.EstimateRemainingTurns(a.playoutEstimates); err == nil && est > 0 {
			remaining = est
		}
	}
	budget := a.clock / time.Duration(remaining)
	if budget < minMoveBudget {
		budget = minMoveBudget
	}
	if budget > maxMoveBudget {
		budget = maxMoveBudget
	}
	return budget
}

func (a *MCTSAgent) Update(move game.PlaceAction) error {
	a.board.ApplyAction(move)
	if _, err := a.search.AdvanceRoot(move); err != nil {
		return fmt.Errorf("mcts agent: advance root: %w", err)
	}
	return nil
}

// Metrics reports the collector's view of the last search, when enabled
// through WithSearchOptions(searcher.WithMetrics()).
func (a *MCTSAgent) Metrics() searcher.MoveMetrics {
	return a.search.Metrics()
}
