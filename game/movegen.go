package game

import "sort"

// Generator enumerates legal placements. GenerateAll must return a
// non-empty set for any non-terminal board; UpdateIncremental must be
// functionally equivalent to GenerateAll against the new board.
type Generator interface {
	GenerateAll(b Board, color PlayerColor) []PlaceAction
	UpdateIncremental(oldBoard, newBoard Board, previous []PlaceAction, color PlayerColor) []PlaceAction
}

// StandardGenerator implements the placement rules directly against the
// Board contract, so it serves both backends.
type StandardGenerator struct{}

func (g StandardGenerator) GenerateAll(b Board, color PlayerColor) []PlaceAction {
	set := make(map[PlaceAction]struct{})
	if !b.HasStones(color) {
		// First placement: anywhere on empty cells.
		for i := 0; i < BoardN*BoardN; i++ {
			c := CoordFromIndex(i)
			if b.CellColor(c) == None {
				collectValid(b, c, set)
			}
		}
		return sortedActions(set)
	}
	// Anchors are empty cells next to own stones; a placement is legal
	// exactly when it covers at least one anchor and only empty cells.
	for i := 0; i < BoardN*BoardN; i++ {
		c := CoordFromIndex(i)
		if b.CellColor(c) != color {
			continue
		}
		for _, anchor := range c.Neighbors() {
			if b.CellColor(anchor) == None {
				collectValid(b, anchor, set)
			}
		}
	}
	return sortedActions(set)
}

func (g StandardGenerator) UpdateIncremental(oldBoard, newBoard Board, previous []PlaceAction, color PlayerColor) []PlaceAction {
	if !oldBoard.HasStones(color) {
		// The anchor rule changes shape after the first own placement.
		return g.GenerateAll(newBoard, color)
	}

	var placed []Coord
	for i := 0; i < BoardN*BoardN; i++ {
		c := CoordFromIndex(i)
		old, now := oldBoard.CellColor(c), newBoard.CellColor(c)
		if old == now {
			continue
		}
		if now == None {
			// A line clear emptied cells; the delta is no longer a few
			// placed stones, so recompute from scratch.
			return g.GenerateAll(newBoard, color)
		}
		placed = append(placed, c)
	}

	set := make(map[PlaceAction]struct{}, len(previous))
	for _, mv := range previous {
		if placementFits(newBoard, mv) {
			set[mv] = struct{}{}
		}
	}
	// Freshly placed own stones open new anchors around themselves.
	for _, c := range placed {
		if newBoard.CellColor(c) != color {
			continue
		}
		for _, anchor := range c.Neighbors() {
			if newBoard.CellColor(anchor) == None {
				collectValid(newBoard, anchor, set)
			}
		}
	}
	return sortedActions(set)
}

func collectValid(b Board, anchor Coord, set map[PlaceAction]struct{}) {
	for _, p := range PlacementsCovering(anchor) {
		if placementFits(b, p) {
			set[p] = struct{}{}
		}
	}
}

func sortedActions(set map[PlaceAction]struct{}) []PlaceAction {
	out := make([]PlaceAction, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
