package boxing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringside-tui/ringside/internal/config"
	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
	"github.com/ringside-tui/ringside/internal/multiplayer"
	"github.com/ringside-tui/ringside/internal/registry"
)

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultBoxingConfig())
	g.Reset(runtimeConfig())
	require.Equal(t, fight.Starting, g.FightSnapshot().Phase)
	return g
}

func step(g *Game, p1, p2 []core.Action) core.StepResult {
	in := core.NewMultiInputFrame()
	for _, a := range p1 {
		in.Add(core.Player1, a)
	}
	for _, a := range p2 {
		in.Add(core.Player2, a)
	}
	return g.StepMulti(in)
}

func untilPhase(t *testing.T, g *Game, phase fight.Phase) {
	t.Helper()
	for i := 0; g.FightSnapshot().Phase != phase; i++ {
		require.Less(t, i, 60*10, "never reached %v", phase)
		step(g, nil, nil)
	}
}

// knockOut walks the player corner into reach and punches until the round ends.
func knockOut(t *testing.T, g *Game) {
	t.Helper()
	untilPhase(t, g, fight.InProgress)
	step(g, []core.Action{core.ActionRight}, nil)

	walking := true
	for range 60 * 30 {
		s := g.FightSnapshot()
		if s.Phase != fight.InProgress {
			return
		}
		var acts []core.Action
		if walking && s.Distance().X <= 6 {
			acts = append(acts, core.ActionReleaseRight)
			walking = false
		}
		if !walking && s.Fighters[fight.SidePlayer].State.Free() {
			acts = append(acts, core.ActionPunch)
		}
		step(g, acts, nil)
	}
	t.Fatal("round never ended")
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists("boxing"))
	require.True(t, registry.Exists("boxing_duel"))

	infos := map[string]registry.GameInfo{}
	for _, info := range registry.List() {
		infos[info.ID] = info
	}
	assert.False(t, infos["boxing"].Multi)
	assert.True(t, infos["boxing_duel"].Multi)
	assert.Equal(t, "Boxing vs CPU", infos["boxing"].Title)
}

func TestIntentFor(t *testing.T) {
	cases := map[core.Action]fight.Intent{
		core.ActionLeft:         fight.MoveLeft,
		core.ActionReleaseUp:    fight.StopUp,
		core.ActionBlock:        fight.BlockBegin,
		core.ActionReleaseBlock: fight.BlockEnd,
		core.ActionPunch:        fight.ThrowPunch,
		core.ActionKick:         fight.ThrowKick,
	}
	for action, want := range cases {
		got, ok := IntentFor(action)
		assert.True(t, ok, action.String())
		assert.Equal(t, want, got, action.String())
	}

	_, ok := IntentFor(core.ActionPause)
	assert.False(t, ok)
}

func TestMovementWaitsForTheBell(t *testing.T) {
	g := newGame(t, ModeDuel)

	step(g, []core.Action{core.ActionRight}, nil)
	untilPhase(t, g, fight.InProgress)
	assert.Equal(t, 16.0, g.FightSnapshot().Fighters[fight.SidePlayer].Position.X)

	step(g, []core.Action{core.ActionRight}, nil)
	for range 29 {
		step(g, nil, nil)
	}
	p := g.FightSnapshot().Fighters[fight.SidePlayer]
	assert.Equal(t, fight.Walk, p.State)
	assert.InDelta(t, 21, p.Position.X, 0.2)

	step(g, []core.Action{core.ActionReleaseRight}, nil)
	assert.Equal(t, fight.Idle, g.FightSnapshot().Fighters[fight.SidePlayer].State)
}

func TestSecondPlayerDrivesOpponent(t *testing.T) {
	g := newGame(t, ModeDuel)
	untilPhase(t, g, fight.InProgress)

	step(g, nil, []core.Action{core.ActionLeft})
	for range 30 {
		step(g, nil, nil)
	}
	assert.Less(t, g.FightSnapshot().Fighters[fight.SideOpponent].Position.X, 51.0)
}

func TestPauseFreezesTheBout(t *testing.T) {
	g := newGame(t, ModeDuel)
	step(g, nil, nil)
	before := g.FightSnapshot().PhaseTime

	res := step(g, nil, []core.Action{core.ActionPause})
	require.True(t, res.State.Paused)
	for range 30 {
		step(g, nil, nil)
	}
	assert.Equal(t, before, g.FightSnapshot().PhaseTime)

	res = step(g, []core.Action{core.ActionPause}, nil)
	assert.False(t, res.State.Paused)
	assert.Greater(t, g.FightSnapshot().PhaseTime, before)
}

func TestOnlineIgnoresPause(t *testing.T) {
	g := newGame(t, ModeOnline)
	res := step(g, []core.Action{core.ActionPause}, nil)
	assert.False(t, res.State.Paused)
}

func TestKnockoutScoringAndResult(t *testing.T) {
	g := newGame(t, ModeDuel)

	knockOut(t, g)
	s := g.FightSnapshot()
	require.True(t, s.HasLast)
	assert.Equal(t, fight.KnockOut, s.Last.Reason)
	assert.Equal(t, fight.SidePlayer, s.Last.Winner)
	assert.Equal(t, RoundPoints+LifePoints*100+KOPoints, g.State().Score)

	knockOut(t, g)
	for i := 0; !g.IsGameOver(); i++ {
		require.Less(t, i, 60*10, "match never ended")
		step(g, nil, nil)
	}

	assert.True(t, g.State().GameOver)
	assert.Equal(t, multiplayer.Player1, g.Winner())
	assert.Equal(t, 2*(RoundPoints+LifePoints*100+KOPoints), g.Score1())
	assert.Equal(t, 0, g.Score2())

	r := g.Result()
	assert.True(t, r.Decided)
	assert.Equal(t, fight.SidePlayer, r.Winner)
	assert.Equal(t, 2, r.Wins)
	assert.Equal(t, 0, r.Losses)
	assert.Equal(t, [2]int{2, 0}, r.KOs)
	assert.Greater(t, r.Duration.Seconds(), 0.0)

	// Nothing moves once the bout is over.
	ticks := r.Ticks
	step(g, []core.Action{core.ActionPunch}, nil)
	assert.Equal(t, ticks, g.Result().Ticks)
}

func TestDoubleKnockoutScoresAsKO(t *testing.T) {
	g := newGame(t, ModeDuel)
	g.scoreRound(fight.RoundResult{Round: 1, Winner: fight.SidePlayer, Reason: fight.DoubleKnockOut})
	assert.Equal(t, RoundPoints+KOPoints, g.State().Score)
	assert.Equal(t, [2]int{1, 0}, g.Result().KOs)

	g.scoreRound(fight.RoundResult{Round: 2, Winner: fight.SideOpponent, Reason: fight.Decision, Lives: [2]float64{40, 60}})
	assert.Equal(t, RoundPoints+LifePoints*60, g.Score2())
	assert.Equal(t, [2]int{1, 0}, g.Result().KOs)
}

func TestCPUTakesTheOpponentCorner(t *testing.T) {
	g := newGame(t, ModeVsCPU)
	require.NotNil(t, g.cpu)
	untilPhase(t, g, fight.InProgress)

	moved := false
	for range 60 * 10 {
		g.Step(core.NewInputFrame())
		if g.FightSnapshot().Fighters[fight.SideOpponent].Position.X < 50 {
			moved = true
			break
		}
	}
	assert.True(t, moved, "CPU never left its corner")
}

func TestPresetSetsCPUSkill(t *testing.T) {
	cfg := config.DefaultBoxingConfig()
	g := NewWithConfig(ModeVsCPU, cfg)
	g.SetPreset(config.DifficultyHard)
	g.Reset(runtimeConfig())

	assert.Equal(t, "HARD", g.DifficultyLabel())
	assert.Equal(t, cfg.Skill(0.7), g.cpu.Skill())
}

func TestDuelHasNoCPU(t *testing.T) {
	g := newGame(t, ModeDuel)
	assert.Nil(t, g.cpu)
	assert.Equal(t, 2, g.Players())
	assert.Equal(t, "PLAYER 2", g.FightSnapshot().Fighters[fight.SideOpponent].Name)
}

func TestApplySnapshotMirrorsServer(t *testing.T) {
	host := newGame(t, ModeOnline)
	untilPhase(t, host, fight.InProgress)
	step(host, []core.Action{core.ActionRight}, []core.Action{core.ActionBlock})
	step(host, nil, nil)

	client := NewWithConfig(ModeOnline, config.DefaultBoxingConfig())
	client.Reset(runtimeConfig())
	client.SetNames([2]string{"ANA", "BEN"})

	snap, ok := host.Snapshot().(BoxingSnapshot)
	require.True(t, ok)
	client.ApplySnapshot(snap)

	got := client.FightSnapshot()
	want := host.FightSnapshot()
	assert.Equal(t, want.Fighters[fight.SidePlayer].Position, got.Fighters[fight.SidePlayer].Position)
	assert.Equal(t, fight.Block, got.Fighters[fight.SideOpponent].State)
	assert.Equal(t, "ANA", got.Fighters[fight.SidePlayer].Name)
	assert.Equal(t, "BEN", got.Fighters[fight.SideOpponent].Name)

	// A client never simulates on its own.
	step(client, []core.Action{core.ActionLeft}, nil)
	assert.Equal(t, got, client.FightSnapshot())
}

func TestRenderIntro(t *testing.T) {
	g := newGame(t, ModeVsCPU)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	assert.Contains(t, screen.Row(0), "PLAYER")
	assert.Contains(t, screen.Row(0), "CPU")
	assert.Contains(t, screen.Row(0), "ROUND 1/3")
	assert.Contains(t, screen.Row(1), "99.99")
	assert.Contains(t, screen.Row(2), "MEDIUM")
	assert.Contains(t, screen.String(), "ROUND 1")

	for range 100 {
		g.Step(core.NewInputFrame())
	}
	g.Render(screen)
	assert.Contains(t, screen.String(), "FIGHT!")
}

func TestRenderPausedAndTooSmall(t *testing.T) {
	g := newGame(t, ModeDuel)
	step(g, []core.Action{core.ActionPause}, nil)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	small := core.NewScreen(30, 10)
	g.Render(small)
	assert.True(t, strings.Contains(small.String(), "Enlarge"))
}

func TestViewportProjection(t *testing.T) {
	ring := fight.DefaultRing()
	vp := newViewport(80, 24, ring)
	bottom := vp.top + vp.height - 1

	_, backY := vp.project(core.V(30, ring.MaxY))
	_, frontY := vp.project(core.V(30, ring.MinY))
	assert.Equal(t, vp.top, backY)
	assert.Equal(t, bottom, frontY)

	leftX, _ := vp.project(core.V(ring.MinX, 10))
	rightX, _ := vp.project(core.V(ring.MaxX, 10))
	assert.Less(t, leftX, rightX)
	assert.GreaterOrEqual(t, leftX, vp.left)
	assert.Less(t, rightX, vp.left+vp.width)

	assert.InDelta(t, ring.MaxY, vp.depthAt(vp.top), 1e-9)
	assert.InDelta(t, ring.MinY, vp.depthAt(bottom), 1e-9)
}

func TestPoses(t *testing.T) {
	for f := range fight.Frames {
		for state := fight.Idle; state <= fight.Lose; state++ {
			pose := poseFor(state, f)
			assert.NotEmpty(t, strings.TrimSpace(strings.Join(pose[:], "")), "%v frame %d", state, f)
		}
	}
	// The glove is out while the punch can land.
	assert.Contains(t, poseFor(fight.Punch, 3)[1], "@")
	assert.NotContains(t, poseFor(fight.Punch, 0)[1], "@")

	assert.Equal(t, '\\', mirror('/', -1))
	assert.Equal(t, '/', mirror('/', 1))
	assert.Equal(t, 'o', mirror('o', -1))
}

func TestLifeBarEases(t *testing.T) {
	b := newLifeBar(100)
	assert.Equal(t, 1.0, b.Fraction())

	b.Set(50)
	b.Update(barEase / 10)
	mid := b.Fraction()
	assert.Less(t, mid, 1.0)
	assert.Greater(t, mid, 0.5)

	for range 20 {
		b.Update(barEase / 10)
	}
	assert.InDelta(t, 0.5, b.Fraction(), 1e-9)

	var none *lifeBar
	assert.Equal(t, 0.0, none.Fraction())
}
