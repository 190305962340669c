package boxing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
)

// Layout
const (
	hudRows   = 3
	barWidth  = 20
	minWidth  = 50
	minHeight = 16
)

var cornerColors = [2]core.Color{core.ColorBrightCyan, core.ColorBrightRed}

// viewport maps ring coordinates to screen cells. Rows run from the back
// rope at top to the front rope at top+height-1.
type viewport struct {
	left, top     int
	width, height int
	ring          fight.Ring
}

func newViewport(w, h int, ring fight.Ring) viewport {
	top := hudRows + spriteH
	bottom := h - 2 // last row is the footer
	return viewport{left: 1, top: top, width: max(w-2, 2), height: max(bottom-top+1, 2), ring: ring}
}

// project returns the cell under a fighter's feet. The ring is centred with
// a margin of MinX on both sides.
func (v viewport) project(p core.Vec2) (int, int) {
	span := v.ring.MaxX + v.ring.MinX
	x := v.left + int(math.Round(p.X/span*float64(v.width-1)))
	depth := (p.Y - v.ring.MinY) / (v.ring.MaxY - v.ring.MinY)
	y := v.top + int(math.Round((1-depth)*float64(v.height-1)))
	return x, y
}

// depthAt returns the ring depth drawn on screen row.
func (v viewport) depthAt(row int) float64 {
	frac := float64(row-v.top) / float64(v.height-1)
	return v.ring.MaxY - frac*(v.ring.MaxY-v.ring.MinY)
}

// Render draws the current bout to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w < minWidth || h < minHeight {
		dst.DrawTextCentered(h/2, fmt.Sprintf("Enlarge the terminal to %dx%d", minWidth, minHeight))
		return
	}

	vp := newViewport(w, h, g.ring())
	g.drawRing(dst, vp)
	g.drawFighters(dst, vp)
	g.drawHUD(dst)
	g.drawFooter(dst)

	s := g.snap
	switch {
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case s.Status == fight.GameOver:
		g.drawGameOver(dst)
	case s.Phase == fight.Starting:
		if banner := s.Banner(); banner != "" {
			drawCenteredMessage(dst, banner, "")
		}
	case s.Phase == fight.Ending && s.HasLast:
		drawCenteredMessage(dst, g.roundTitle(s.Last), reasonCaption(s.Last.Reason))
	}
}

func (g *Game) ring() fight.Ring {
	if g.match != nil {
		return g.match.Rules().Ring
	}
	return fight.DefaultRing()
}

func (g *Game) drawRing(dst *core.Screen, vp viewport) {
	last := vp.top + vp.height - 1
	for row := vp.top; row <= last; row++ {
		y := vp.depthAt(row)
		lo, hi := vp.ring.Bounds(y)
		x0, _ := vp.project(core.V(lo, y))
		x1, _ := vp.project(core.V(hi, y))

		if row == vp.top || row == last {
			for x := x0; x <= x1; x++ {
				dst.SetColored(x, row, '═', core.ColorWhite)
			}
		} else if (row-vp.top)%2 == 0 {
			for x := x0 + 2; x < x1-1; x += 4 {
				dst.SetColored(x, row, '·', core.ColorGray)
			}
		}
		dst.SetColored(x0-1, row, '/', core.ColorOrange)
		dst.SetColored(x1+1, row, '\\', core.ColorOrange)
	}
}

// drawFighters paints the fighter further back first.
func (g *Game) drawFighters(dst *core.Screen, vp viewport) {
	order := []fight.Side{fight.SidePlayer, fight.SideOpponent}
	sort.SliceStable(order, func(i, j int) bool {
		return g.snap.Fighters[order[i]].Position.Y > g.snap.Fighters[order[j]].Position.Y
	})
	for _, side := range order {
		color := cornerColors[side]
		if g.flash[side] > 0 && int(g.flash[side]*30)%2 == 0 {
			color = core.ColorBrightWhite
		}
		drawFighter(dst, vp, g.snap.Fighters[side], color)
	}
}

func drawFighter(dst *core.Screen, vp viewport, f fight.FighterSnapshot, color core.Color) {
	x, y := vp.project(f.Position)
	facing := f.Facing
	if facing == 0 {
		facing = 1
	}
	pose := poseFor(f.State, f.Frame)
	for r, line := range pose {
		row := y - spriteH + 1 + r
		for c, ch := range []rune(line) {
			if ch == ' ' {
				continue
			}
			dst.SetColored(x+(c-spriteCenter)*facing, row, mirror(ch, facing), color)
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.snap
	w := dst.Width()
	p, o := s.Fighters[fight.SidePlayer], s.Fighters[fight.SideOpponent]

	// names and round
	dst.DrawTextColored(1, 0, p.Name, cornerColors[fight.SidePlayer])
	dst.DrawTextColored(w-1-len([]rune(o.Name)), 0, o.Name, cornerColors[fight.SideOpponent])
	dst.DrawTextCentered(0, fmt.Sprintf("ROUND %d/%d", s.Round, s.MaxRounds))

	// life bars and clock
	drawBar(dst, 1, 1, g.bars[fight.SidePlayer].Fraction(), false)
	drawBar(dst, w-barWidth-3, 1, g.bars[fight.SideOpponent].Fraction(), true)
	clockColor := core.ColorWhite
	if s.Critical() {
		clockColor = core.ColorBrightRed
	}
	dst.DrawTextCenteredColored(1, fmt.Sprintf("%05.2f", math.Max(0, s.Clock)), clockColor)

	// tallies
	left := fmt.Sprintf("WINS %d", s.Wins)
	right := fmt.Sprintf("LOST %d", s.Losses)
	if g.mode != ModeVsCPU {
		right = fmt.Sprintf("WINS %d", s.Losses)
	}
	dst.DrawText(1, 2, left)
	dst.DrawText(w-1-len(right), 2, right)
	if g.mode == ModeVsCPU {
		dst.DrawTextCenteredColored(2, g.DifficultyLabel(), core.ColorYellow)
	}
}

// drawBar draws a bracketed life bar. Right-hand bars drain toward the edge.
func drawBar(dst *core.Screen, x, y int, frac float64, rtl bool) {
	filled := int(math.Round(frac * barWidth))
	color := core.ColorGreen
	switch {
	case frac <= 0.25:
		color = core.ColorRed
	case frac <= 0.5:
		color = core.ColorYellow
	}

	dst.Set(x, y, '[')
	dst.Set(x+barWidth+1, y, ']')
	for i := range barWidth {
		on := i < filled
		if rtl {
			on = i >= barWidth-filled
		}
		if on {
			dst.SetColored(x+1+i, y, '█', color)
		} else {
			dst.SetColored(x+1+i, y, '░', core.ColorGray)
		}
	}
}

func (g *Game) drawFooter(dst *core.Screen) {
	var hint string
	switch g.mode {
	case ModeDuel:
		hint = "P1 WASD F V B  |  P2 arrows K L J  |  P pause  Q quit"
	case ModeOnline:
		hint = "move WASD/arrows  F punch  V kick  B block  Q leave"
	default:
		hint = "move WASD/arrows  F punch  V kick  B block  P pause  Q quit"
	}
	dst.DrawTextCenteredColored(dst.Height()-1, hint, core.ColorGray)
}

func (g *Game) drawGameOver(dst *core.Screen) {
	s := g.snap
	winner := fight.SideOpponent
	if s.Wins > s.Losses {
		winner = fight.SidePlayer
	}

	var title string
	switch {
	case g.mode == ModeVsCPU && winner == fight.SidePlayer:
		title = "YOU WIN!"
	case g.mode == ModeVsCPU:
		title = "YOU LOSE"
	default:
		title = s.Fighters[winner].Name + " WINS!"
	}

	subtitle := fmt.Sprintf("%d - %d", s.Wins, s.Losses)
	if g.mode != ModeOnline {
		subtitle += "  |  R restart  Esc menu"
	}
	drawCenteredMessage(dst, title, subtitle)
}

func (g *Game) roundTitle(r fight.RoundResult) string {
	name := strings.TrimSpace(g.snap.Fighters[r.Winner].Name)
	if name == "" {
		name = strings.ToUpper(r.Winner.String())
	}
	return fmt.Sprintf("ROUND %d: %s", r.Round, name)
}

func reasonCaption(r fight.Reason) string {
	switch r {
	case fight.KnockOut:
		return "BY KNOCKOUT"
	case fight.DoubleKnockOut:
		return "DOUBLE KNOCKOUT"
	}
	return "ON POINTS"
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	if subtitle == "" {
		boxH = 3
	}
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	if subtitle != "" {
		dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
	}
}
