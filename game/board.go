package game

// Board is the capability contract the search core and the agents consume.
// Two interchangeable implementations exist: SimBoard (dictionary-based)
// and BitBoard (bit-packed). Both produce identical hashes for identical
// positions.
type Board interface {
	// Copy returns a deep, independent clone.
	Copy() Board
	// ApplyAction plays one legal move in place. Behavior is undefined for
	// an illegal move.
	ApplyAction(PlaceAction)
	// TurnColor is the player to move next.
	TurnColor() PlayerColor
	GameOver() bool
	// WinnerColor is None while the game is running and on a draw.
	WinnerColor() PlayerColor
	TurnCount() int
	// AggregateScore is the number of cells the color currently occupies.
	AggregateScore(PlayerColor) int
	// CellColor is None for empty cells.
	CellColor(Coord) PlayerColor
	// HasStones reports whether the color occupies any cell. A player
	// without stones may place anywhere; afterwards placements must touch
	// their own color.
	HasStones(PlayerColor) bool
	Hash() uint64
}

// boardOver implements the shared termination rule: the ply limit, or the
// player to move having no legal placement.
func boardOver(b Board) bool {
	if b.TurnCount() >= MaxTurns {
		return true
	}
	if !b.HasStones(b.TurnColor()) {
		// A first placement may go on any empty cells; with at most one
		// piece per prior turn the board cannot be full here.
		return false
	}
	return !hasPlacement(b, b.TurnColor())
}

func hasPlacement(b Board, color PlayerColor) bool {
	for i := 0; i < BoardN*BoardN; i++ {
		c := CoordFromIndex(i)
		if b.CellColor(c) != color {
			continue
		}
		for _, anchor := range c.Neighbors() {
			if b.CellColor(anchor) != None {
				continue
			}
			for _, p := range PlacementsCovering(anchor) {
				if placementFits(b, p) {
					return true
				}
			}
		}
	}
	return false
}

func placementFits(b Board, p PlaceAction) bool {
	for _, c := range p.Coords() {
		if b.CellColor(c) != None {
			return false
		}
	}
	return true
}

func boardWinner(b Board) PlayerColor {
	if !b.GameOver() {
		return None
	}
	if b.TurnCount() >= MaxTurns {
		red, blue := b.AggregateScore(Red), b.AggregateScore(Blue)
		switch {
		case red > blue:
			return Red
		case blue > red:
			return Blue
		}
		return None
	}
	// The player to move is stuck.
	return b.TurnColor().Opponent()
}
