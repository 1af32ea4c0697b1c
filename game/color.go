package game

// PlayerColor identifies a player, or nobody for empty cells and draws.
type PlayerColor uint8

const (
	None PlayerColor = iota
	Red
	Blue
)

func (c PlayerColor) Opponent() PlayerColor {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return None
}

func (c PlayerColor) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "none"
}
