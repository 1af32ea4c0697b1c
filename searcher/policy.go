package searcher

import (
	"fmt"
	"math"
)

// DefaultExploration is the UCB1 exploration constant.
const DefaultExploration = 1.4

// ucb1 scores a child from its parent's perspective. With no information
// (unvisited child or unvisited parent) the score is the raw win count,
// matching the pure-exploitation fallback.
func ucb1(wins, visits, parentVisits int, c float64) float64 {
	if visits == 0 || parentVisits == 0 {
		return float64(wins)
	}
	exploit := float64(wins) / float64(visits)
	explore := c * math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
	return exploit + explore
}

// bestChild returns the child maximizing UCB1; the first encountered
// maximum wins ties. c = 0 degenerates to pure exploitation, the form used
// for the final move decision.
func (n *node) bestChild(c float64) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.order {
		if score := ucb1(child.wins, child.visits, n.visits, c); score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// treePolicy takes one selection step: a terminal node returns itself, an
// expandable node expands, and a fully expanded node descends to its best
// child. Rollouts and the top-level loop both drive the tree with it.
func (n *node) treePolicy() (*node, error) {
	if n.terminal() {
		return n, nil
	}
	if len(n.untried) > 0 {
		return n.expand()
	}
	if len(n.order) == 0 {
		return nil, fmt.Errorf("selection at turn %d: %w",
			n.board.TurnCount(), ErrSelectionInconsistency)
	}
	return n.bestChild(n.search.explore), nil
}
