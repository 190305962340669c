package boxing

import (
	"github.com/ringside-tui/ringside/internal/fight"
	"github.com/ringside-tui/ringside/internal/multiplayer"
)

// BoxingSnapshot is what the online match loop sends to both sessions.
type BoxingSnapshot struct {
	fight.Snapshot

	Tick  uint64
	Score [2]int
	KOs   [2]int
}

// IsGameSnapshot implements the GameSnapshot interface marker.
func (BoxingSnapshot) IsGameSnapshot() {}

var (
	_ multiplayer.GameSnapshot = BoxingSnapshot{}
	_ multiplayer.OnlineGame   = (*Game)(nil)
)

// Snapshot returns the current bout state for the sessions to draw.
func (g *Game) Snapshot() multiplayer.GameSnapshot {
	return BoxingSnapshot{
		Snapshot: g.snap,
		Tick:     uint64(max(0, g.ticks)), //nolint:gosec // ticks never go negative
		Score:    g.score,
		KOs:      g.kos,
	}
}

// ApplySnapshot replaces the local state with one received from the server.
// The game stops simulating and only animates the HUD from then on.
func (g *Game) ApplySnapshot(snap BoxingSnapshot) {
	g.remote = true
	g.paused = false
	g.ticks = int(min(snap.Tick, uint64(1<<31-1))) //nolint:gosec // clamped
	g.score = snap.Score
	g.kos = snap.KOs

	prev := g.snap.Fighters
	g.snap = snap.Snapshot
	for side, name := range g.names {
		if name != "" {
			g.snap.Fighters[side].Name = name
		}
	}
	for side := range g.bars {
		if g.bars[side] == nil {
			g.bars[side] = newLifeBar(g.snap.Fighters[side].MaxLife)
		}
		if g.snap.Fighters[side].State == fight.Hurt && prev[side].State != fight.Hurt {
			g.flash[side] = flashTime
		}
	}
	g.animate(g.runtime.Dt())
}

// IsGameOver reports whether the bout is decided.
func (g *Game) IsGameOver() bool {
	return g.snap.Status == fight.GameOver
}

// Winner returns the winning player, or 0 while the bout is undecided.
func (g *Game) Winner() multiplayer.PlayerID {
	if !g.IsGameOver() {
		return 0
	}
	if g.snap.Wins > g.snap.Losses {
		return multiplayer.Player1
	}
	return multiplayer.Player2
}

// Score1 returns the host corner's score.
func (g *Game) Score1() int {
	return g.score[fight.SidePlayer]
}

// Score2 returns the joiner corner's score.
func (g *Game) Score2() int {
	return g.score[fight.SideOpponent]
}
