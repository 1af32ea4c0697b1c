package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tetress/agent"
	"tetress/game"
	"tetress/searcher"
)

func TestRandomMatchCompletes(t *testing.T) {
	board := game.NewBitBoard()
	red := agent.NewRandom(game.Red, board, rand.New(rand.NewSource(7)))
	blue := agent.NewRandom(game.Blue, board, rand.New(rand.NewSource(11)))
	match := NewMatch(board, red, blue)

	winner, records, err := match.Run()
	require.NoError(t, err)
	require.True(t, board.GameOver())
	require.NotEmpty(t, records)
	require.Contains(t, []game.PlayerColor{game.None, game.Red, game.Blue}, winner)

	// records alternate colors starting with red and count every ply
	require.Equal(t, board.TurnCount(), len(records))
	for i, rec := range records {
		require.Equal(t, i+1, rec.Step)
		want := game.Red
		if i%2 == 1 {
			want = game.Blue
		}
		require.Equal(t, want, rec.Player)
		require.Equal(t, match.ID, rec.GameID)
	}
}

func TestMatchRecordsSearchMetrics(t *testing.T) {
	board := game.NewBitBoard()
	red, err := agent.NewMCTS(game.Red, board,
		agent.WithFixedBudget(20*time.Millisecond),
		agent.WithStepBudget(4),
		agent.WithSimulationCeiling(10),
		agent.WithSearchOptions(
			searcher.WithMetrics(),
			searcher.WithRand(rand.New(rand.NewSource(3))),
		),
	)
	require.NoError(t, err)
	blue := agent.NewRandom(game.Blue, board, rand.New(rand.NewSource(13)))

	_, records, err := NewMatch(board, red, blue).Run()
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// The opening decision always runs full episodes; an immediate forced
	// win later in the game may short-circuit without counting any.
	require.NotNil(t, records[0].Search)
	require.Positive(t, records[0].Search.Episodes)
	for _, rec := range records {
		if rec.Player == game.Blue {
			require.Nil(t, rec.Search, "step %d", rec.Step)
		} else if rec.Search != nil {
			require.Positive(t, rec.Search.Episodes, "step %d", rec.Step)
		}
	}
}

func TestRenderColorShowsStones(t *testing.T) {
	board := game.NewSimBoard()
	board.ApplyAction(game.NewPlaceAction(
		game.Coord{R: 0, C: 0}, game.Coord{R: 0, C: 1},
		game.Coord{R: 0, C: 2}, game.Coord{R: 0, C: 3},
	))
	out := RenderColor(board)
	require.Contains(t, out, "r")
	require.NotContains(t, out, "b")
}
