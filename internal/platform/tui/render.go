package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/block-breaker/internal/core"
)

// colorStyles caches one lipgloss style per core.Color.
var colorStyles = map[core.Color]lipgloss.Style{}

func init() {
	for _, c := range []core.Color{
		core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue,
		core.ColorMagenta, core.ColorCyan, core.ColorWhite, core.ColorBrightRed,
		core.ColorBrightBlue, core.ColorBrightYellow, core.ColorGray,
	} {
		colorStyles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(c.Index())))
	}
	colorStyles[core.ColorDefault] = lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
