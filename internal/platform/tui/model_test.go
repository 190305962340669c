package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringside-tui/ringside/internal/config"
	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func quickBout(roundTime float64) config.BoxingConfig {
	cfg := config.DefaultBoxingConfig()
	cfg.Rounds.MaxRounds = 1
	cfg.Rounds.StartDelay = 0.1
	cfg.Rounds.EndDelay = 0.1
	cfg.Rounds.RoundTime = roundTime
	return cfg
}

func newTestModel(t *testing.T, game *boxing.Game, store *storage.Store, clock *fakeClock) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	m := NewModel(game, store, cfg, WithClock(clock.now))
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model, n int) Model {
	t.Helper()
	for range n {
		m = send(t, m, TickMsg(time.Now()))
	}
	return m
}

func TestModelRecordsFinishedBout(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "bouts.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	game := boxing.NewWithConfig(boxing.ModeDuel, quickBout(0.5))
	m := newTestModel(t, game, store, &fakeClock{t: time.Unix(0, 0)})

	m = tick(t, m, 120)
	if !m.State().GameOver {
		t.Fatal("bout should be over")
	}
	m = tick(t, m, 10) // recorded once

	bouts, err := store.RecentBouts(10)
	if err != nil {
		t.Fatalf("RecentBouts: %v", err)
	}
	if len(bouts) != 1 {
		t.Fatalf("got %d bouts, want 1", len(bouts))
	}
	b := bouts[0]
	if b.GameID != "boxing_duel" || b.Player != "PLAYER" || b.Opponent != "PLAYER 2" {
		t.Errorf("bout = %+v", b)
	}
	// Equal life at the bell goes to the player corner.
	if !b.Won || b.RoundsWon != 1 || b.RoundsLost != 0 {
		t.Errorf("won=%v rounds=%d-%d, want a 1-0 win", b.Won, b.RoundsWon, b.RoundsLost)
	}
	if b.Difficulty != "" {
		t.Errorf("duel difficulty = %q, want empty", b.Difficulty)
	}

	scores, err := store.TopScores("boxing_duel", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	want := boxing.RoundPoints + boxing.LifePoints*100
	if len(scores) != 1 || scores[0].Score != want {
		t.Errorf("scores = %+v, want one entry of %d", scores, want)
	}
}

func TestModelReleasesHeldKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	game := boxing.NewWithConfig(boxing.ModeDuel, quickBout(30))
	m := newTestModel(t, game, nil, clock)

	for range 60 {
		if game.FightSnapshot().Phase == fight.InProgress {
			break
		}
		m = tick(t, m, 1)
	}
	if game.FightSnapshot().Phase != fight.InProgress {
		t.Fatal("round never started")
	}

	x0 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	m = send(t, m, runeKey('d'))
	m = tick(t, m, 10)
	x1 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	if x1 <= x0 {
		t.Fatalf("holding D should walk right: %.2f -> %.2f", x0, x1)
	}

	clock.t = clock.t.Add(DefaultHoldWindow + time.Millisecond)
	m = tick(t, m, 1)
	x2 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	m = tick(t, m, 10)
	x3 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	if x3 != x2 {
		t.Errorf("fighter kept walking after the hold lapsed: %.2f -> %.2f", x2, x3)
	}
	_ = m
}

func TestModelResumeDropsHeldKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	game := boxing.NewWithConfig(boxing.ModeDuel, quickBout(30))
	m := newTestModel(t, game, nil, clock)

	for i := 0; game.FightSnapshot().Phase != fight.InProgress; i++ {
		if i > 60 {
			t.Fatal("round never started")
		}
		m = tick(t, m, 1)
	}

	m = send(t, m, runeKey('d'))
	m = tick(t, m, 5)
	if game.FightSnapshot().Fighters[fight.SidePlayer].State != fight.Walk {
		t.Fatalf("state = %v, want walking", game.FightSnapshot().Fighters[fight.SidePlayer].State)
	}

	m = send(t, m, runeKey('p'))
	m = tick(t, m, 1)
	if !m.State().Paused {
		t.Fatal("P should pause")
	}
	clock.t = clock.t.Add(DefaultHoldWindow / 2)
	m = tick(t, m, 3)

	m = send(t, m, runeKey('p'))
	m = tick(t, m, 1)
	if m.State().Paused {
		t.Fatal("P should resume")
	}
	x0 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	m = tick(t, m, 10)
	x1 := game.FightSnapshot().Fighters[fight.SidePlayer].Position.X
	if s := game.FightSnapshot().Fighters[fight.SidePlayer].State; s != fight.Idle {
		t.Errorf("state after resume = %v, want idle", s)
	}
	if x1 != x0 {
		t.Errorf("fighter kept walking after resume: %.2f -> %.2f", x0, x1)
	}
	if m.holds.Held(core.Player1, core.ActionRight) {
		t.Error("D still held after resume")
	}
}

func TestModelBackOnlyWhenPaused(t *testing.T) {
	game := boxing.NewWithConfig(boxing.ModeVsCPU, quickBout(30))
	m := newTestModel(t, game, nil, &fakeClock{t: time.Unix(0, 0)})
	m = tick(t, m, 1)

	m = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("B blocks during a bout")
	}

	m = send(t, m, runeKey('p'))
	m = tick(t, m, 1)
	if !m.State().Paused {
		t.Fatal("P should pause")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Esc while paused should go back to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	game := boxing.NewWithConfig(boxing.ModeVsCPU, quickBout(30))
	m := newTestModel(t, game, nil, &fakeClock{t: time.Unix(0, 0)})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() {
		t.Error("Ctrl+C should quit")
	}
	if cmd == nil {
		t.Error("quit should return tea.Quit")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}
