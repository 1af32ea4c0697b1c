package engine

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tetress/game"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	blueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderColor draws the board with ANSI colors for terminal play.
func RenderColor(b game.Board) string {
	var sb strings.Builder
	for r := int8(0); r < game.BoardN; r++ {
		for c := int8(0); c < game.BoardN; c++ {
			switch b.CellColor(game.Coord{R: r, C: c}) {
			case game.Red:
				sb.WriteString(redStyle.Render("r"))
			case game.Blue:
				sb.WriteString(blueStyle.Render("b"))
			default:
				sb.WriteString(emptyStyle.Render("."))
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
