package game

// BoardN is the side length of the square board. The board wraps: row 0 is
// adjacent to row BoardN-1 and likewise for columns.
const BoardN = 11

// MaxTurns is the ply limit; once reached the higher cell count wins.
const MaxTurns = 150

// CloseToEnd is the turn count past which the endgame heuristic kicks in.
const CloseToEnd = 100

// Coord is a wrapped board coordinate. Valid values are always in
// [0, BoardN); construct through NewCoord or Shift to keep them so.
type Coord struct {
	R, C int8
}

func NewCoord(r, c int) Coord {
	return Coord{R: int8(wrap(r)), C: int8(wrap(c))}
}

func wrap(v int) int {
	v %= BoardN
	if v < 0 {
		v += BoardN
	}
	return v
}

// Shift returns the coordinate moved by (dr, dc) with wraparound.
func (c Coord) Shift(dr, dc int) Coord {
	return NewCoord(int(c.R)+dr, int(c.C)+dc)
}

// Neighbors returns the four orthogonally adjacent coordinates.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Shift(-1, 0),
		c.Shift(1, 0),
		c.Shift(0, -1),
		c.Shift(0, 1),
	}
}

// Index maps the coordinate to [0, BoardN*BoardN).
func (c Coord) Index() int {
	return int(c.R)*BoardN + int(c.C)
}

func CoordFromIndex(i int) Coord {
	return Coord{R: int8(i / BoardN), C: int8(i % BoardN)}
}

func (c Coord) Less(o Coord) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	return c.C < o.C
}
