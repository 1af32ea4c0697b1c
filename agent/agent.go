// Package agent wraps the search core into match players: the MCTS agent
// with per-move time budgeting and tree reuse, and a uniformly random
// baseline.
package agent

import "tetress/game"

type Agent interface {
	Color() game.PlayerColor
	// Action decides the agent's next move. Called only when it is this
	// agent's turn.
	Action() (game.PlaceAction, error)
	// Update informs the agent of a move played in the real game, its own
	// included.
	Update(game.PlaceAction) error
}
