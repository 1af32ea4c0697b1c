package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tetress/game"
)

func TestAdvanceRoot(t *testing.T) {
	t.Run("keeps only the designated subtree", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(3)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		var children []*node
		for range gen.moves {
			child, err := m.root.expand()
			require.NoError(t, err)
			children = append(children, child)
		}
		keep := children[0]
		grandchild, err := keep.expand()
		require.NoError(t, err)
		oldRoot := m.root

		got, err := m.AdvanceRoot(keep.incoming)
		require.NoError(t, err)
		require.Equal(t, keep, got)
		require.Equal(t, keep, m.root)
		require.Nil(t, keep.parent, "the new root is detached")
		require.Equal(t, keep, grandchild.parent, "the kept subtree stays intact")

		for _, sibling := range children[1:] {
			require.Nil(t, sibling.board, "pruned nodes release their board snapshot")
			require.Nil(t, sibling.children)
			require.Nil(t, sibling.parent)
			require.Nil(t, sibling.legal)
			require.Nil(t, sibling.untried)
		}
		require.Nil(t, oldRoot.board, "the old root itself is released")
		require.Nil(t, oldRoot.children)
	})

	t.Run("prunes recursively through sibling subtrees", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		first, err := m.root.expand()
		require.NoError(t, err)
		second, err := m.root.expand()
		require.NoError(t, err)
		deep, err := second.expand()
		require.NoError(t, err)

		_, err = m.AdvanceRoot(first.incoming)
		require.NoError(t, err)
		require.Nil(t, deep.board, "descendants of pruned siblings are released too")
		require.Nil(t, deep.parent)
	})

	t.Run("expands an unexplored move first", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		move := gen.moves[1]
		got, err := m.AdvanceRoot(move)
		require.NoError(t, err)
		require.Equal(t, got, m.root)
		require.Equal(t, move, m.root.incoming)
		require.Equal(t, game.Blue, m.root.color)
	})

	t.Run("the played line keeps its statistics", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		child, err := m.root.expand()
		require.NoError(t, err)
		child.visits, child.wins = 17, 9

		_, err = m.AdvanceRoot(child.incoming)
		require.NoError(t, err)
		require.Equal(t, 17, m.root.visits)
		require.Equal(t, 9, m.root.wins)
	})

	t.Run("tree reuse survives successive real moves", func(t *testing.T) {
		gen := &mockGenerator{moves: mkMoves(2)}
		m := newTestMCTS(t, &mockBoard{turn: game.Red, overAfter: -1}, gen)

		for ply := 0; ply < 4; ply++ {
			child, err := m.root.expand()
			require.NoError(t, err)
			_, err = m.AdvanceRoot(child.incoming)
			require.NoError(t, err)
			require.Nil(t, m.root.parent)
			require.Equal(t, ply+1, m.root.board.TurnCount())
		}
	})
}
