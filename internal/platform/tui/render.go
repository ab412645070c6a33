package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Palette maps core.Color to lipgloss styles bound to one renderer.
// SSH sessions need their own renderer so color detection follows the
// client's terminal, not the server's.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the palette for r. A nil renderer uses the default one.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Palette{
		core.ColorDefault:       r.NewStyle(),
		core.ColorRed:           fg("1"),
		core.ColorGreen:         fg("2"),
		core.ColorYellow:        fg("3"),
		core.ColorBlue:          fg("4"),
		core.ColorMagenta:       fg("5"),
		core.ColorCyan:          fg("6"),
		core.ColorWhite:         fg("7"),
		core.ColorBrightRed:     fg("9"),
		core.ColorBrightGreen:   fg("10"),
		core.ColorBrightYellow:  fg("11"),
		core.ColorBrightBlue:    fg("12"),
		core.ColorBrightMagenta: fg("13"),
		core.ColorBrightCyan:    fg("14"),
		core.ColorBrightWhite:   fg("15").Bold(true),
		core.ColorOrange:        fg("208"),
		core.ColorGray:          fg("245"),
	}
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
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

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
