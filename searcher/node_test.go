package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tetress/game"
)

// mockBoard scripts terminality: the game is over once turnCount reaches
// overAfter (negative meaning never).
type mockBoard struct {
	turn      game.PlayerColor
	turnCount int
	overAfter int
	winner    game.PlayerColor
	scores    map[game.PlayerColor]int
	applied   []game.PlaceAction
}

func (b *mockBoard) Copy() game.Board {
	dup := *b
	dup.applied = append([]game.PlaceAction(nil), b.applied...)
	if b.scores != nil {
		dup.scores = map[game.PlayerColor]int{}
		for k, v := range b.scores {
			dup.scores[k] = v
		}
	}
	return &dup
}

func (b *mockBoard) ApplyAction(p game.PlaceAction) {
	b.applied = append(b.applied, p)
	b.turnCount++
	b.turn = b.turn.Opponent()
}

func (b *mockBoard) TurnColor() game.PlayerColor { return b.turn }
func (b *mockBoard) TurnCount() int              { return b.turnCount }

func (b *mockBoard) GameOver() bool {
	return b.overAfter >= 0 && b.turnCount >= b.overAfter
}

func (b *mockBoard) WinnerColor() game.PlayerColor {
	if b.GameOver() {
		return b.winner
	}
	return game.None
}

func (b *mockBoard) AggregateScore(color game.PlayerColor) int { return b.scores[color] }
func (b *mockBoard) CellColor(game.Coord) game.PlayerColor     { return game.None }
func (b *mockBoard) HasStones(game.PlayerColor) bool           { return true }
func (b *mockBoard) Hash() uint64                              { return 0 }

// mockGenerator returns a fixed move set and counts how it was asked.
type mockGenerator struct {
	moves            []game.PlaceAction
	generateCalls    int
	incrementalCalls int
}

func (g *mockGenerator) GenerateAll(game.Board, game.PlayerColor) []game.PlaceAction {
	g.generateCalls++
	return append([]game.PlaceAction(nil), g.moves...)
}

func (g *mockGenerator) UpdateIncremental(_, _ game.Board, _ []game.PlaceAction, _ game.PlayerColor) []game.PlaceAction {
	g.incrementalCalls++
	return append([]game.PlaceAction(nil), g.moves...)
}

func mkMove(i int) game.PlaceAction {
	r := int8(i)
	return game.NewPlaceAction(
		game.Coord{R: r, C: 0}, game.Coord{R: r, C: 1},
		game.Coord{R: r, C: 2}, game.Coord{R: r, C: 3},
	)
}

func mkMoves(n int) []game.PlaceAction {
	out := make([]game.PlaceAction, n)
	for i := range out {
		out[i] = mkMove(i)
	}
	return out
}

func newTestMCTS(t *testing.T, board game.Board, gen game.Generator, options ...Option) *MCTS {
	t.Helper()
	options = append([]Option{
		WithGenerator(gen),
		WithRand(rand.New(rand.NewSource(1))),
	}, options...)
	m, err := New(board, options...)
	require.NoError(t, err)
	return m
}

func TestNewNodeMoveGeneration(t *testing.T) {
	t.Run("grandparent cache enables incremental update", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(3)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)
		require.Equal(t, 1, gen.generateCalls, "root generates from scratch")

		child, err := m.root.expand()
		require.NoError(t, err)
		require.Equal(t, 2, gen.generateCalls, "child has no grandparent cache")
		require.Equal(t, 0, gen.incrementalCalls)

		_, err = child.expand()
		require.NoError(t, err)
		require.Equal(t, 2, gen.generateCalls)
		require.Equal(t, 1, gen.incrementalCalls, "grandchild updates from the root's cached set")
	})

	t.Run("empty set on a live board is a contract violation", func(t *testing.T) {
		gen := &mockGenerator{}
		_, err := New(&mockBoard{turn: game.Red, overAfter: -1},
			WithGenerator(gen), WithRand(rand.New(rand.NewSource(1))))
		require.ErrorIs(t, err, ErrGenerationFailure)
		require.Equal(t, 2, gen.generateCalls, "full regeneration is retried before failing")
	})

	t.Run("empty set on a terminal board is fine", func(t *testing.T) {
		gen := &mockGenerator{}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: 0, winner: game.Blue}, gen)
		require.True(t, m.root.terminal())
		require.Empty(t, m.root.legal)
	})

	t.Run("node color matches the board's turn", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Blue, overAfter: -1}, gen)
		require.Equal(t, game.Blue, m.root.color)

		child, err := m.root.expand()
		require.NoError(t, err)
		require.Equal(t, game.Red, child.color)
		require.Equal(t, game.Blue, child.grandparent().color, "every other ply shares the color")
	})
}

func TestExpand(t *testing.T) {
	t.Run("pops one untried move and registers the child", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		child, err := m.root.expand()
		require.NoError(t, err)
		require.Len(t, m.root.untried, 1)
		require.Len(t, m.root.children, 1)
		require.Equal(t, child, m.root.children[child.incoming])
		require.NotContains(t, m.root.untried, child.incoming)
		require.Equal(t, m.root, child.parent)
	})

	t.Run("fully expanded node returns an existing child", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		first, err := m.root.expand()
		require.NoError(t, err)
		second, err := m.root.expand()
		require.NoError(t, err)
		require.Empty(t, m.root.untried)

		again, err := m.root.expand()
		require.NoError(t, err)
		require.Contains(t, []*node{first, second}, again, "no duplicate child is constructed")
		require.Len(t, m.root.children, 2)
	})

	t.Run("child inherits the parent's time budget", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(1)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)
		m.SetBudget(42)

		child, err := m.root.expand()
		require.NoError(t, err)
		require.Equal(t, m.root.budget, child.budget)
	})
}

func TestBackpropagate(t *testing.T) {
	gen := &mockGenerator{moves: mkMoves(1)}
	m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)
	child, err := m.root.expand() // blue to move
	require.NoError(t, err)
	leaf, err := child.expand() // red to move
	require.NoError(t, err)

	t.Run("every node on the path counts the visit, wins credit own color", func(t *testing.T) {
		leaf.backpropagate(game.Red)

		require.Equal(t, 1, leaf.visits)
		require.Equal(t, 1, child.visits)
		require.Equal(t, 1, m.root.visits)
		require.Equal(t, 1, leaf.wins, "leaf is red's node")
		require.Equal(t, 0, child.wins, "child is blue's node")
		require.Equal(t, 1, m.root.wins, "root is red's node")
	})

	t.Run("win count never exceeds visit count", func(t *testing.T) {
		leaf.backpropagate(game.Blue)
		for _, n := range []*node{leaf, child, m.root} {
			require.GreaterOrEqual(t, n.wins, 0)
			require.LessOrEqual(t, n.wins, n.visits)
		}
	})

	t.Run("danger flag copies upward verbatim", func(t *testing.T) {
		leaf.danger = true
		leaf.backpropagate(game.Red)
		require.True(t, child.danger)
		require.True(t, m.root.danger)

		// A calm pass through the same ancestors overwrites the mark; this
		// is deliberate overwrite semantics, not an OR-accumulation.
		leaf.danger = false
		leaf.backpropagate(game.Red)
		require.False(t, child.danger)
		require.False(t, m.root.danger)
	})
}
