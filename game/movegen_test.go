package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGenerateAllFirstMove(t *testing.T) {
	gen := StandardGenerator{}
	b := NewSimBoard()

	moves := gen.GenerateAll(b, Red)
	require.NotEmpty(t, moves)

	// On an empty wrapped board every orientation fits at every cell.
	require.Len(t, moves, NumTetrominoes*BoardN*BoardN)
}

func TestGenerateAllRequiresAdjacency(t *testing.T) {
	gen := StandardGenerator{}
	b := NewSimBoard()
	b.ApplyAction(NewPlaceAction(Coord{R: 5, C: 4}, Coord{R: 5, C: 5}, Coord{R: 5, C: 6}, Coord{R: 5, C: 7}))
	b.ApplyAction(NewPlaceAction(Coord{R: 0, C: 0}, Coord{R: 0, C: 1}, Coord{R: 1, C: 0}, Coord{R: 1, C: 1}))

	for _, mv := range gen.GenerateAll(b, Red) {
		touches := false
		for _, c := range mv.Coords() {
			require.Equal(t, None, b.CellColor(c), "placement must cover only empty cells")
			for _, nb := range c.Neighbors() {
				if b.CellColor(nb) == Red {
					touches = true
				}
			}
		}
		require.True(t, touches, "placement %v must touch a red stone", mv)
	}
}

func TestUpdateIncrementalMatchesGenerateAll(t *testing.T) {
	// Equivalence property: after every single ply of a random game, the
	// incremental update of either color's move set must equal full
	// generation against the new board.
	gen := StandardGenerator{}
	rng := rand.New(rand.NewSource(7))

	for name, newBoard := range backends() {
		t.Run(name, func(t *testing.T) {
			b := newBoard()
			cached := map[PlayerColor][]PlaceAction{
				Red:  gen.GenerateAll(b, Red),
				Blue: gen.GenerateAll(b, Blue),
			}
			for ply := 0; ply < 40 && !b.GameOver(); ply++ {
				moves := cached[b.TurnColor()]
				require.NotEmpty(t, moves)
				move := moves[rng.Intn(len(moves))]

				old := b.Copy()
				b.ApplyAction(move)

				for _, color := range []PlayerColor{Red, Blue} {
					got := gen.UpdateIncremental(old, b, cached[color], color)
					want := gen.GenerateAll(b, color)
					require.Equal(t, want, got,
						"ply %d: incremental update diverged for %s", ply, color)
					cached[color] = got
				}
			}
		})
	}
}

func TestGenerateAllNonEmptyForLivePositions(t *testing.T) {
	gen := StandardGenerator{}
	rng := rand.New(rand.NewSource(3))
	b := Board(NewBitBoard())

	for !b.GameOver() {
		moves := gen.GenerateAll(b, b.TurnColor())
		require.NotEmpty(t, moves, "generator contract: non-terminal boards have moves")
		b.ApplyAction(moves[rng.Intn(len(moves))])
	}
}
