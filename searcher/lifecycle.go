package searcher

// chopExcept releases every child subtree other than keep and this node's
// own storage. The kept child stays linked; the caller reparents it.
func (n *node) chopExcept(keep *node) {
	for _, child := range n.order {
		if child != keep {
			child.chop()
		}
	}
	n.release()
}

// chop releases this node's entire subtree. References are cleared
// explicitly so the collector can reclaim boards and move lists even while
// something outside the tree still holds one of these nodes.
func (n *node) chop() {
	for _, child := range n.order {
		child.chop()
	}
	n.parent = nil
	n.release()
}

func (n *node) release() {
	n.children = nil
	n.order = nil
	n.board = nil
	n.legal = nil
	n.untried = nil
	n.search = nil
}
