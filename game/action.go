package game

import (
	"fmt"
	"strings"
)

// PlaceAction is a single move: one tetromino covering four cells. Cells are
// kept sorted so two actions are equal exactly when they occupy the same
// coordinate set, which also makes the type usable as a map key.
type PlaceAction struct {
	cells [4]Coord
}

func NewPlaceAction(a, b, c, d Coord) PlaceAction {
	p := PlaceAction{cells: [4]Coord{a, b, c, d}}
	// insertion sort, four elements
	for i := 1; i < 4; i++ {
		for j := i; j > 0 && p.cells[j].Less(p.cells[j-1]); j-- {
			p.cells[j], p.cells[j-1] = p.cells[j-1], p.cells[j]
		}
	}
	return p
}

func (p PlaceAction) Coords() [4]Coord {
	return p.cells
}

// Contains reports whether the placement covers c.
func (p PlaceAction) Contains(c Coord) bool {
	return p.cells[0] == c || p.cells[1] == c || p.cells[2] == c || p.cells[3] == c
}

func (p PlaceAction) Less(o PlaceAction) bool {
	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return p.cells[i].Less(o.cells[i])
		}
	}
	return false
}

func (p PlaceAction) String() string {
	parts := make([]string, 0, 4)
	for _, c := range p.cells {
		parts = append(parts, fmt.Sprintf("%d-%d", c.R, c.C))
	}
	return strings.Join(parts, " ")
}
