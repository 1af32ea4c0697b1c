package agent

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"tetress/game"
	"tetress/searcher"
)

// RandomAgent plays a uniformly random legal move. Baseline opponent for
// experiments and tests.
type RandomAgent struct {
	color game.PlayerColor
	board game.Board
	gen   game.Generator
	rng   *rand.Rand
}

func NewRandom(color game.PlayerColor, board game.Board, rng *rand.Rand) *RandomAgent {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &RandomAgent{
		color: color,
		board: board.Copy(),
		gen:   game.StandardGenerator{},
		rng:   rng,
	}
}

func (a *RandomAgent) Color() game.PlayerColor { return a.color }

func (a *RandomAgent) Action() (game.PlaceAction, error) {
	moves := a.gen.GenerateAll(a.board, a.color)
	if len(moves) == 0 {
		return game.PlaceAction{}, fmt.Errorf("random agent: %w", searcher.ErrGenerationFailure)
	}
	return moves[a.rng.Intn(len(moves))], nil
}

func (a *RandomAgent) Update(move game.PlaceAction) error {
	a.board.ApplyAction(move)
	return nil
}
