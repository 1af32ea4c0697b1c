package searcher

import (
	"math"
	"time"

	"tetress/game"
)

// boundedRollout pushes the tree policy from this node for up to maxSteps
// plies (odd budgets are rounded up so both colors simulate the same
// number of turns) or until a terminal state or the deadline.
//
// A terminal end records the true winner and raises the danger flag. At
// the step cap the reached position is judged statically against this node
// from this node's color's perspective: strictly better awards this color,
// anything else the opponent.
func (n *node) boundedRollout(maxSteps int, deadline time.Time) (*node, error) {
	if maxSteps%2 == 1 {
		maxSteps++
	}
	cur := n
	for step := 0; !cur.terminal() && step < maxSteps; step++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		next, err := cur.treePolicy()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if cur.terminal() {
		cur.danger = true
		cur.tentativeWinner = cur.board.WinnerColor()
		n.search.metrics.AddFullPlayout()
		return cur, nil
	}
	if cur.greedyJudge(n.color) > n.greedyJudge(n.color) {
		cur.tentativeWinner = n.color
	} else {
		cur.tentativeWinner = n.color.Opponent()
	}
	n.search.metrics.AddCutoff()
	return cur, nil
}

// rolloutTurns plays complete games under the tree policy to estimate how
// many of this player's own turns remain, averaged over the requested
// repetitions. The board's winner (None until terminal) is backpropagated
// at every step, as the estimate is about game length, not move choice.
func (n *node) rolloutTurns(times int) (int, error) {
	if times <= 0 {
		return 0, nil
	}
	total := 0
	for rep := 0; rep < times; rep++ {
		cur := n
		for !cur.terminal() {
			next, err := cur.treePolicy()
			if err != nil {
				return 0, err
			}
			cur = next
			total++
			cur.backpropagate(cur.board.WinnerColor())
		}
	}
	avg := float64(total) / float64(times)
	// Half the plies are this player's.
	return int(math.Round(avg / 2)), nil
}

// greedyJudge statically scores this position for perspective: mobility,
// plus a late-game term that rewards a material lead and penalizes
// lateness once the clock passes the endgame threshold.
func (n *node) greedyJudge(perspective game.PlayerColor) int {
	mobility := len(n.legal)
	result := mobility
	if n.color != perspective {
		result = -mobility
	}
	if n.board.TurnCount() > game.CloseToEnd {
		own := n.board.AggregateScore(perspective)
		opp := n.board.AggregateScore(perspective.Opponent())
		result += int(math.Round(float64(own-opp) +
			float64(mobility)/game.MaxTurns -
			float64(n.board.TurnCount())))
	}
	return result
}
