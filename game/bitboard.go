package game

import "math/bits"

// mask128 packs the 121 board cells into two words.
type mask128 [2]uint64

func (m mask128) test(i int) bool {
	return m[i>>6]>>(uint(i)&63)&1 == 1
}

func (m *mask128) set(i int) {
	m[i>>6] |= 1 << (uint(i) & 63)
}

func (m mask128) or(o mask128) mask128 {
	return mask128{m[0] | o[0], m[1] | o[1]}
}

func (m mask128) and(o mask128) mask128 {
	return mask128{m[0] & o[0], m[1] & o[1]}
}

func (m mask128) andNot(o mask128) mask128 {
	return mask128{m[0] &^ o[0], m[1] &^ o[1]}
}

func (m mask128) count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1])
}

func (m mask128) forEach(fn func(i int)) {
	for w := 0; w < 2; w++ {
		v := m[w]
		for v != 0 {
			fn(w*64 + bits.TrailingZeros64(v))
			v &= v - 1
		}
	}
}

var (
	rowMasks [BoardN]mask128
	colMasks [BoardN]mask128
)

func init() {
	for i := 0; i < BoardN; i++ {
		for j := 0; j < BoardN; j++ {
			rowMasks[i].set(Coord{R: int8(i), C: int8(j)}.Index())
			colMasks[i].set(Coord{R: int8(j), C: int8(i)}.Index())
		}
	}
}

// BitBoard is the packed backend: one mask128 per color. Placement, line
// clearing and scoring are mask operations.
type BitBoard struct {
	stones    [2]mask128
	turn      PlayerColor
	turnCount int
	hash      uint64
	overKnown bool
	over      bool
}

func NewBitBoard() *BitBoard {
	return &BitBoard{turn: Red}
}

func (b *BitBoard) Copy() Board {
	dup := *b
	return &dup
}

func (b *BitBoard) TurnColor() PlayerColor { return b.turn }
func (b *BitBoard) TurnCount() int         { return b.turnCount }
func (b *BitBoard) Hash() uint64           { return b.hash }

func (b *BitBoard) occupied() mask128 {
	return b.stones[0].or(b.stones[1])
}

func (b *BitBoard) CellColor(c Coord) PlayerColor {
	i := c.Index()
	if b.stones[0].test(i) {
		return Red
	}
	if b.stones[1].test(i) {
		return Blue
	}
	return None
}

func (b *BitBoard) HasStones(color PlayerColor) bool {
	m := b.stones[color-1]
	return m[0] != 0 || m[1] != 0
}

func (b *BitBoard) AggregateScore(color PlayerColor) int {
	return b.stones[color-1].count()
}

func (b *BitBoard) ApplyAction(p PlaceAction) {
	mover := int(b.turn - 1)
	for _, c := range p.Coords() {
		i := c.Index()
		b.stones[mover].set(i)
		b.hash ^= zobristCell[i][mover]
	}
	b.clearFullLines()
	b.turnCount++
	b.turn = b.turn.Opponent()
	b.hash ^= zobristBlue
	b.overKnown = false
}

func (b *BitBoard) clearFullLines() {
	occ := b.occupied()
	var cleared mask128
	for i := 0; i < BoardN; i++ {
		if occ.and(rowMasks[i]) == rowMasks[i] {
			cleared = cleared.or(rowMasks[i])
		}
		if occ.and(colMasks[i]) == colMasks[i] {
			cleared = cleared.or(colMasks[i])
		}
	}
	if cleared == (mask128{}) {
		return
	}
	for color := 0; color < 2; color++ {
		color := color
		b.stones[color].and(cleared).forEach(func(i int) {
			b.hash ^= zobristCell[i][color]
		})
		b.stones[color] = b.stones[color].andNot(cleared)
	}
}

func (b *BitBoard) GameOver() bool {
	if !b.overKnown {
		b.over = boardOver(b)
		b.overKnown = true
	}
	return b.over
}

func (b *BitBoard) WinnerColor() PlayerColor {
	return boardWinner(b)
}
