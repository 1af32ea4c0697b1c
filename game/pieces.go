package game

// The 19 fixed tetromino orientations, as cell offsets from an arbitrary
// origin. Rotations are listed explicitly; the board wraps, so every
// orientation is placeable anywhere.
var tetrominoes = [19][4][2]int8{
	// I
	{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	// O
	{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	// T
	{{0, 0}, {0, 1}, {0, 2}, {1, 1}},
	{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	{{1, 0}, {1, 1}, {1, 2}, {0, 1}},
	{{0, 1}, {1, 1}, {2, 1}, {1, 0}},
	// J
	{{0, 1}, {1, 1}, {2, 1}, {2, 0}},
	{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	{{0, 0}, {0, 1}, {1, 0}, {2, 0}},
	{{0, 0}, {0, 1}, {0, 2}, {1, 2}},
	// L
	{{0, 0}, {1, 0}, {2, 0}, {2, 1}},
	{{0, 0}, {0, 1}, {0, 2}, {1, 0}},
	{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	{{1, 0}, {1, 1}, {1, 2}, {0, 2}},
	// S
	{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	// Z
	{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
}

// NumTetrominoes is the number of distinct orientations.
const NumTetrominoes = len(tetrominoes)

// PlacementsAt returns every placement of every orientation anchored with
// its first offset at origin.
func PlacementsAt(origin Coord) []PlaceAction {
	out := make([]PlaceAction, 0, NumTetrominoes)
	for _, shape := range tetrominoes {
		out = append(out, placeShape(origin, shape, 0))
	}
	return out
}

// PlacementsCovering returns every placement that covers the given cell:
// each orientation aligned so that each of its four cells in turn lands on
// the cell. Duplicates (from symmetric shapes) are not removed; callers
// collect into a set keyed by PlaceAction.
func PlacementsCovering(cell Coord) []PlaceAction {
	out := make([]PlaceAction, 0, NumTetrominoes*4)
	for _, shape := range tetrominoes {
		for i := range shape {
			out = append(out, placeShape(cell, shape, i))
		}
	}
	return out
}

func placeShape(at Coord, shape [4][2]int8, anchor int) PlaceAction {
	base := shape[anchor]
	var cells [4]Coord
	for i, off := range shape {
		cells[i] = at.Shift(int(off[0]-base[0]), int(off[1]-base[1]))
	}
	return NewPlaceAction(cells[0], cells[1], cells[2], cells[3])
}
