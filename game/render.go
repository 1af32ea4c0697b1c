package game

import "strings"

// Render draws the board as text, one row per line: r/b for stones, a dot
// for empty cells.
func Render(b Board) string {
	var sb strings.Builder
	for r := 0; r < BoardN; r++ {
		for c := 0; c < BoardN; c++ {
			switch b.CellColor(Coord{R: int8(r), C: int8(c)}) {
			case Red:
				sb.WriteByte('r')
			case Blue:
				sb.WriteByte('b')
			default:
				sb.WriteByte('.')
			}
			if c < BoardN-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
