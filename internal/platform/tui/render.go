package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ringside-tui/ringside/internal/core"
)

// colorStyle returns the lipgloss style drawing c.
func colorStyle(c core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code := c.ANSI(); code != "" {
		style = style.Foreground(lipgloss.Color(code))
	}
	return style
}

// RenderScreen turns a Screen into a styled string. Each run of same-coloured
// cells on a row is rendered once.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()

	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	styles := make(map[core.Color]lipgloss.Style)
	var run strings.Builder
	for y := range h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < w; x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[color]
			if !ok {
				style = colorStyle(color)
				styles[color] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
