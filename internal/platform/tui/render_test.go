package tui

import (
	"strings"
	"testing"

	"github.com/ringside-tui/ringside/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "ROUND 1")
	s.DrawTextColored(2, 1, "FIGHT!", core.ColorBrightYellow)
	s.SetColored(11, 2, '\\', core.ColorOrange)

	out := RenderScreen(s)
	for y := range 3 {
		if !strings.Contains(out, s.Row(y)) {
			t.Errorf("row %d %q missing from output", y, s.Row(y))
		}
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("newlines = %d, want 2", got)
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color core.Color
		want  string
	}{
		{core.ColorDefault, ""},
		{core.ColorRed, "1"},
		{core.ColorBrightCyan, "14"},
		{core.ColorGray, "245"},
		{core.Color(200), ""},
	}
	for _, tt := range tests {
		if got := tt.color.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.color, got, tt.want)
		}
	}
}
