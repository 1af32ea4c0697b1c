// Package searcher implements Monte Carlo Tree Search over the game's
// board contract: UCB1 selection, bounded rollouts with a heuristic judge,
// and explicit subtree pruning so the tree survives across real moves
// without unbounded growth.
package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tetress/game"
)

// Defaults for BestAction arguments given as zero.
const (
	DefaultStepBudget        = game.MaxTurns
	DefaultSimulationCeiling = 100
)

type Option func(*MCTS)

// WithExploration overrides the UCB1 exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.explore = c
		}
	}
}

// WithRand installs a seeded randomness source for reproducible searches.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

// WithGenerator swaps the action generator backend.
func WithGenerator(gen game.Generator) Option {
	return func(m *MCTS) {
		if gen != nil {
			m.gen = gen
		}
	}
}

// WithBudget sets the initial wall-clock budget on the root.
func WithBudget(d time.Duration) Option {
	return func(m *MCTS) {
		if d > 0 {
			m.budget = d
		}
	}
}

// WithMetrics enables the per-search metrics collector.
func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewMetricsCollector()
	}
}

// MCTS owns one search tree, private to a single game. The tree is reused
// across real moves through AdvanceRoot.
type MCTS struct {
	root    *node
	gen     game.Generator
	rng     *rand.Rand
	explore float64
	budget  time.Duration
	metrics MetricsCollector
}

// New builds a search rooted at a snapshot of board.
func New(board game.Board, options ...Option) (*MCTS, error) {
	m := &MCTS{
		gen:     game.StandardGenerator{},
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		explore: DefaultExploration,
		metrics: NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	root, err := m.newNode(board.Copy(), nil, game.PlaceAction{})
	if err != nil {
		return nil, err
	}
	root.budget = m.budget
	m.root = root
	return m, nil
}

// SetBudget sets the wall clock for the next BestAction call. Only the
// true root is mutable this way; expansion copies the value downward.
func (m *MCTS) SetBudget(d time.Duration) {
	m.root.budget = d
}

// BestAction runs simulations until the root's wall-clock budget is
// exhausted or simCeiling simulations complete, then returns the move of
// the child with the best pure-exploitation score. A terminal child that
// wins for the root's color short-circuits the loop immediately.
//
// Zero arguments select DefaultStepBudget and DefaultSimulationCeiling. A
// zero time budget exhausts immediately and yields ErrNoBestChild on a
// fresh tree.
func (m *MCTS) BestAction(steps, simCeiling int) (game.PlaceAction, error) {
	if steps <= 0 {
		steps = DefaultStepBudget
	}
	if simCeiling <= 0 {
		simCeiling = DefaultSimulationCeiling
	}

	start := time.Now()
	deadline := start.Add(m.root.budget)
	m.metrics.Start()

	sims := 0
	for sims < simCeiling {
		if time.Since(start) > m.root.budget {
			break
		}
		v, err := m.root.treePolicy()
		if err != nil {
			return game.PlaceAction{}, err
		}
		if v != m.root && v.terminal() && v.board.WinnerColor() == m.root.color {
			// An immediate forced win needs no statistics.
			return v.incoming, nil
		}
		end, err := v.boundedRollout(steps, deadline)
		if err != nil {
			return game.PlaceAction{}, err
		}
		end.backpropagate(end.tentativeWinner)
		sims++
		m.metrics.AddEpisode()
	}

	best := m.root.bestChild(0)
	if best == nil {
		return game.PlaceAction{}, fmt.Errorf("after %d simulations: %w", sims, ErrNoBestChild)
	}
	log.Debug().
		Int("simulations", sims).
		Int("visits", best.visits).
		Int("wins", best.wins).
		Stringer("move", best.incoming).
		Msg("search complete")
	return best.incoming, nil
}

// AdvanceRoot reparents the tree to the child for move, expanding it first
// if it was never explored, then prunes every sibling subtree. The played
// line keeps its statistics; everything else is released.
func (m *MCTS) AdvanceRoot(move game.PlaceAction) (*node, error) {
	child, ok := m.root.children[move]
	m.metrics.SetTreeReused(ok)
	if !ok {
		var err error
		child, err = m.root.expandMove(move)
		if err != nil {
			return nil, err
		}
	}
	m.root.chopExcept(child)
	child.parent = nil
	m.root = child
	return child, nil
}

// EstimateRemainingTurns runs full playouts from the root to estimate how
// many of the root player's own turns the game has left.
func (m *MCTS) EstimateRemainingTurns(times int) (int, error) {
	return m.root.rolloutTurns(times)
}

// RootColor is the player to move at the current root.
func (m *MCTS) RootColor() game.PlayerColor {
	return m.root.color
}

// RootVisits is the root's accumulated visit count, for diagnostics.
func (m *MCTS) RootVisits() int {
	return m.root.visits
}

// Metrics reports the collector's view of the last search.
func (m *MCTS) Metrics() MoveMetrics {
	return m.metrics.Complete()
}
