package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tetress/game"
)

// node is one position in the search tree: an owned board snapshot plus
// the bookkeeping the tree policy needs. Nodes are created by expansion
// (or as the detached root) and destroyed only by pruning.
type node struct {
	search *MCTS
	board  game.Board
	// color is the player to move at this node; always equals the board's
	// turn indicator.
	color  game.PlayerColor
	parent *node
	// incoming is the move that produced this node; the zero value at the
	// root, where parent is nil.
	incoming game.PlaceAction

	legal    []game.PlaceAction
	untried  []game.PlaceAction
	children map[game.PlaceAction]*node
	// order holds children in expansion order so selection ties break by
	// encounter order, independent of map iteration.
	order []*node

	visits int
	wins   int

	// danger marks that a simulation through this subtree reached a loss
	// or a terminal state; backpropagation copies it upward verbatim.
	danger bool
	// tentativeWinner is the estimated outcome of a bounded rollout that
	// stopped at this node; meaningful on simulation leaves only.
	tentativeWinner game.PlayerColor

	// budget is the wall clock allotted to the next search rooted here,
	// copied parent to child at expansion and set by the driver at the
	// true root.
	budget time.Duration
}

func (m *MCTS) newNode(board game.Board, parent *node, incoming game.PlaceAction) (*node, error) {
	n := &node{
		search:   m,
		board:    board,
		color:    board.TurnColor(),
		parent:   parent,
		incoming: incoming,
		children: make(map[game.PlaceAction]*node),
	}
	if parent != nil {
		n.budget = parent.budget
	}

	// The grandparent is the nearest ancestor for the same color; its
	// cached move list makes generation an O(delta) update instead of a
	// full board scan.
	if gp := n.grandparent(); gp != nil && len(gp.legal) > 0 {
		n.legal = m.gen.UpdateIncremental(gp.board, board, gp.legal, n.color)
	} else {
		n.legal = m.gen.GenerateAll(board, n.color)
	}
	if len(n.legal) == 0 && !board.GameOver() {
		// An empty set here can only come from stale incremental
		// bookkeeping or a generator bug; regenerate before giving up.
		log.Warn().
			Int("turn", board.TurnCount()).
			Stringer("color", n.color).
			Msg("generator returned no moves for a live position, regenerating")
		n.legal = m.gen.GenerateAll(board, n.color)
		if len(n.legal) == 0 {
			return nil, fmt.Errorf("turn %d, %s to move: %w",
				board.TurnCount(), n.color, ErrGenerationFailure)
		}
	}
	n.untried = append([]game.PlaceAction(nil), n.legal...)
	return n, nil
}

func (n *node) grandparent() *node {
	if n.parent == nil {
		return nil
	}
	return n.parent.parent
}

func (n *node) terminal() bool {
	return n.board.GameOver()
}

// expand grows the tree by one uniformly random untried move. On a fully
// expanded node it instead returns a uniformly random existing child, so
// the same entry point serves rollouts that revisit explored ground.
func (n *node) expand() (*node, error) {
	if len(n.untried) == 0 {
		if len(n.order) == 0 {
			return nil, fmt.Errorf("expansion at turn %d: %w",
				n.board.TurnCount(), ErrSelectionInconsistency)
		}
		return n.order[n.search.rng.Intn(len(n.order))], nil
	}
	return n.expandMove(n.untried[n.search.rng.Intn(len(n.untried))])
}

// expandMove creates the child for a specific move, removing the move from
// the untried set if still present.
func (n *node) expandMove(move game.PlaceAction) (*node, error) {
	board := n.board.Copy()
	board.ApplyAction(move)
	child, err := n.search.newNode(board, n, move)
	if err != nil {
		return nil, err
	}
	for i, mv := range n.untried {
		if mv == move {
			n.untried[i] = n.untried[len(n.untried)-1]
			n.untried = n.untried[:len(n.untried)-1]
			break
		}
	}
	n.children[move] = child
	n.order = append(n.order, child)
	return child, nil
}

// backpropagate walks from this node to the root: every node on the path
// counts the visit, and credits a win when the result matches its own
// color. The danger flag copies child to parent verbatim at each step, so
// a later calm rollout through the same ancestors overwrites an earlier
// mark rather than accumulating it.
func (n *node) backpropagate(result game.PlayerColor) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		if result == cur.color {
			cur.wins++
		}
		if cur.parent != nil {
			cur.parent.danger = cur.danger
		}
	}
}
