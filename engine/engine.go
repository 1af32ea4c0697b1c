// Package engine runs local matches between two agents on a shared board.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tetress/agent"
	"tetress/game"
	"tetress/searcher"
)

// MoveRecord captures one real move for experiment output. Search is set
// when the mover exposes a search-metrics collector and it counted at
// least one episode for this decision.
type MoveRecord struct {
	GameID   uuid.UUID
	Step     int
	Player   game.PlayerColor
	Move     string
	Duration time.Duration
	Search   *searcher.MoveMetrics
}

type searchMetricsSource interface {
	Metrics() searcher.MoveMetrics
}

// Match drives one game to completion, feeding every real move back to
// both agents so their private boards and search trees stay in step.
type Match struct {
	ID    uuid.UUID
	State game.Board
	Red   agent.Agent
	Blue  agent.Agent
	// ShowBoard prints the position after every ply.
	ShowBoard bool
}

func NewMatch(state game.Board, red, blue agent.Agent) *Match {
	return &Match{
		ID:    uuid.New(),
		State: state,
		Red:   red,
		Blue:  blue,
	}
}

func (m *Match) Run() (game.PlayerColor, []MoveRecord, error) {
	log.Info().
		Stringer("game", m.ID).
		Msg("match started")

	var records []MoveRecord
	for !m.State.GameOver() {
		mover := m.State.TurnColor()
		current := m.Red
		if mover == game.Blue {
			current = m.Blue
		}

		start := time.Now()
		move, err := current.Action()
		if err != nil {
			return game.None, records, fmt.Errorf("game %s, %s at turn %d: %w",
				m.ID, mover, m.State.TurnCount(), err)
		}

		m.State.ApplyAction(move)
		if err := m.Red.Update(move); err != nil {
			return game.None, records, fmt.Errorf("game %s: red update: %w", m.ID, err)
		}
		if err := m.Blue.Update(move); err != nil {
			return game.None, records, fmt.Errorf("game %s: blue update: %w", m.ID, err)
		}

		record := MoveRecord{
			GameID:   m.ID,
			Step:     m.State.TurnCount(),
			Player:   mover,
			Move:     move.String(),
			Duration: time.Since(start),
		}
		event := log.Debug().
			Stringer("color", mover).
			Stringer("move", move).
			Int("turn", m.State.TurnCount())
		if src, ok := current.(searchMetricsSource); ok {
			if metrics := src.Metrics(); metrics.Episodes > 0 {
				record.Search = &metrics
				event = event.
					Int64("episodes", metrics.Episodes).
					Int64("full_playouts", metrics.FullPlayouts).
					Bool("tree_reused", metrics.TreeReused)
			}
		}
		records = append(records, record)
		event.Msg("move played")
		if m.ShowBoard {
			fmt.Println(RenderColor(m.State))
		}
	}

	winner := m.State.WinnerColor()
	log.Info().
		Stringer("game", m.ID).
		Stringer("winner", winner).
		Int("turns", m.State.TurnCount()).
		Int("red", m.State.AggregateScore(game.Red)).
		Int("blue", m.State.AggregateScore(game.Blue)).
		Msg("match over")
	return winner, records, nil
}
