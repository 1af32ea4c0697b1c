package game

// SimBoard is the dictionary-based backend: occupied cells live in a map.
// Simple to inspect, and the reference implementation the bit-packed
// backend is tested against.
type SimBoard struct {
	cells     map[Coord]PlayerColor
	counts    [2]int
	turn      PlayerColor
	turnCount int
	hash      uint64
	overKnown bool
	over      bool
}

func NewSimBoard() *SimBoard {
	return &SimBoard{
		cells: make(map[Coord]PlayerColor),
		turn:  Red,
	}
}

func (b *SimBoard) Copy() Board {
	cells := make(map[Coord]PlayerColor, len(b.cells))
	for c, col := range b.cells {
		cells[c] = col
	}
	dup := *b
	dup.cells = cells
	return &dup
}

func (b *SimBoard) TurnColor() PlayerColor { return b.turn }
func (b *SimBoard) TurnCount() int         { return b.turnCount }
func (b *SimBoard) Hash() uint64           { return b.hash }

func (b *SimBoard) CellColor(c Coord) PlayerColor {
	return b.cells[c]
}

func (b *SimBoard) HasStones(color PlayerColor) bool {
	return b.counts[color-1] > 0
}

func (b *SimBoard) AggregateScore(color PlayerColor) int {
	return b.counts[color-1]
}

func (b *SimBoard) ApplyAction(p PlaceAction) {
	for _, c := range p.Coords() {
		b.setCell(c, b.turn)
	}
	b.clearFullLines()
	b.turnCount++
	b.turn = b.turn.Opponent()
	b.hash ^= zobristBlue
	b.overKnown = false
}

func (b *SimBoard) setCell(c Coord, color PlayerColor) {
	b.cells[c] = color
	b.counts[color-1]++
	b.hash ^= zobristKey(c, color)
}

func (b *SimBoard) clearCell(c Coord) {
	color, ok := b.cells[c]
	if !ok {
		return
	}
	delete(b.cells, c)
	b.counts[color-1]--
	b.hash ^= zobristKey(c, color)
}

func (b *SimBoard) clearFullLines() {
	toClear := make(map[Coord]struct{})
	for i := 0; i < BoardN; i++ {
		if b.lineFull(func(j int) Coord { return Coord{R: int8(i), C: int8(j)} }) {
			for j := 0; j < BoardN; j++ {
				toClear[Coord{R: int8(i), C: int8(j)}] = struct{}{}
			}
		}
		if b.lineFull(func(j int) Coord { return Coord{R: int8(j), C: int8(i)} }) {
			for j := 0; j < BoardN; j++ {
				toClear[Coord{R: int8(j), C: int8(i)}] = struct{}{}
			}
		}
	}
	for c := range toClear {
		b.clearCell(c)
	}
}

func (b *SimBoard) lineFull(cell func(int) Coord) bool {
	for j := 0; j < BoardN; j++ {
		if _, ok := b.cells[cell(j)]; !ok {
			return false
		}
	}
	return true
}

func (b *SimBoard) GameOver() bool {
	if !b.overKnown {
		b.over = boardOver(b)
		b.overKnown = true
	}
	return b.over
}

func (b *SimBoard) WinnerColor() PlayerColor {
	return boardWinner(b)
}
