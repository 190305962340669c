// Package boxing hosts a fight.Match as a registry game: it maps platform
// actions to fighter intents, drives the CPU corner, keeps score and draws
// the ring.
package boxing

import (
	"math"
	"sync"
	"time"

	"github.com/ringside-tui/ringside/internal/config"
	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
	"github.com/ringside-tui/ringside/internal/registry"
)

// Mode selects who fights in the opponent corner.
type Mode int

const (
	ModeVsCPU Mode = iota // the computer takes the opponent corner
	ModeDuel              // two players share one keyboard
	ModeOnline            // two remote players; no pause
)

// Scoring, per round won.
const (
	RoundPoints = 1000
	LifePoints  = 10 // per point of life left at the bell
	KOPoints    = 500
)

// flashTime is how long a fighter blinks after taking a clean hit.
const flashTime = 0.15

// Package-level settings applied to registry-created games (set from the CLI).
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config file path used by new games.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by new games.
// Unknown names clear the preset so the config file decides.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

func settings() (string, config.DifficultyPreset) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset
}

// Result summarises a finished (or abandoned) bout for the records.
type Result struct {
	Winner   fight.Side
	Decided  bool
	Wins     int // rounds taken by the player corner
	Losses   int
	KOs      [2]int
	Score    [2]int
	Ticks    int
	Duration time.Duration
}

// Game is a boxing bout.
type Game struct {
	mode Mode

	cfg    config.BoxingConfig
	pinned bool // cfg was handed in; skip loading on Reset
	preset config.DifficultyPreset
	names  [2]string

	difficulty *config.DifficultyManager
	match      *fight.Match
	cpu        *fight.CPU
	runtime    core.RuntimeConfig

	snap   fight.Snapshot
	remote bool // snap comes from a server, not from match

	paused bool
	ticks  int
	score  [2]int
	kos    [2]int
	bars   [2]*lifeBar
	flash  [2]float64
}

// New creates a bout against the CPU.
func New() *Game {
	return &Game{mode: ModeVsCPU}
}

// NewDuel creates a hot-seat bout for two players at one keyboard.
func NewDuel() *Game {
	return &Game{mode: ModeDuel}
}

// NewOnline creates a bout for the online match loop.
func NewOnline() *Game {
	return &Game{mode: ModeOnline}
}

// NewWithConfig creates a bout that always uses cfg instead of loading one.
func NewWithConfig(mode Mode, cfg config.BoxingConfig) *Game {
	return &Game{mode: mode, cfg: cfg, pinned: true}
}

func init() {
	registry.Register("boxing", func() registry.Game {
		return New()
	})
	registry.Register("boxing_duel", func() registry.Game {
		return NewDuel()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeVsCPU {
		return "boxing"
	}
	return "boxing_duel"
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeDuel:
		return "Boxing (2 players)"
	case ModeOnline:
		return "Boxing (online)"
	}
	return "Boxing vs CPU"
}

// Mode returns who fights in the opponent corner.
func (g *Game) Mode() Mode {
	return g.mode
}

// Players returns how many people play at this keyboard.
func (g *Game) Players() int {
	if g.mode == ModeDuel {
		return 2
	}
	return 1
}

// SetPreset overrides the difficulty preset for this game from the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// Preset returns the difficulty preset in effect.
func (g *Game) Preset() config.DifficultyPreset {
	if g.preset == "" {
		return config.DifficultyNormal
	}
	return g.preset
}

// SetNames overrides the corner names. Empty entries keep the configured name.
func (g *Game) SetNames(names [2]string) {
	g.names = names
	for side, name := range names {
		if name != "" {
			g.snap.Fighters[side].Name = name
		}
	}
}

// Reset loads configuration and readies round one.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt

	path, preset := settings()
	if !g.pinned {
		cfg, err := config.LoadBoxing(path)
		if err != nil {
			cfg = config.DefaultBoxingConfig()
		}
		g.cfg = cfg
	}
	if g.preset != "" {
		preset = g.preset
	}
	g.preset = preset
	cfg := g.cfg
	if preset != "" {
		config.ApplyBoxingPreset(&cfg, preset)
	}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	names := [2]string{cfg.Names.Player, cfg.Names.Opponent}
	if g.mode != ModeVsCPU {
		names[fight.SideOpponent] = cfg.Names.Player2
	}
	for side, name := range g.names {
		if name != "" {
			names[side] = name
		}
	}

	rules := cfg.Rules()
	g.match = fight.NewMatch(rules, names)
	g.cpu = nil
	if g.mode == ModeVsCPU {
		g.cpu = fight.NewCPU(rt.Seed, cfg.Skill(g.difficulty.Level(0, 0)), rules.Reach)
	}

	g.remote = false
	g.paused = false
	g.ticks = 0
	g.score = [2]int{}
	g.kos = [2]int{}
	g.flash = [2]float64{}
	for side := range g.bars {
		g.bars[side] = newLifeBar(rules.Fighter.MaxLife)
	}
	g.snap = g.match.Snapshot()
}

// Step advances the bout by one tick with the player corner's input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	multi := core.NewMultiInputFrame()
	multi.SetPlayer(core.Player1, in)
	return g.StepMulti(multi)
}

// StepMulti advances the bout by one tick. Player1 fights from the player
// corner. Player2 is ignored against the CPU.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.match == nil || g.remote || g.match.Over() {
		return core.StepResult{State: g.State()}
	}

	if g.mode != ModeOnline &&
		(in.Player1().Has(core.ActionPause) || in.Player2().Has(core.ActionPause)) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(fight.SidePlayer, in.Player1())
	if g.cpu != nil {
		for _, it := range g.cpu.Think(g.snap, fight.SideOpponent, g.runtime.Dt()) {
			g.match.Apply(fight.SideOpponent, it)
		}
	} else {
		g.applyInput(fight.SideOpponent, in.Player2())
	}

	g.advance()
	return core.StepResult{State: g.State()}
}

func (g *Game) advance() {
	dt := g.runtime.Dt()
	events := g.match.Update(dt)
	g.ticks++

	for _, evt := range events {
		switch e := evt.(type) {
		case fight.RoundStarted:
			if g.cpu != nil {
				g.cpu.SetSkill(g.cfg.Skill(g.difficulty.Level(e.Round-1, g.ticks)))
			}
		case fight.HitLanded:
			if !e.Blocked {
				g.flash[e.Attacker.Other()] = flashTime
			}
		case fight.RoundEnded:
			g.scoreRound(e.Result)
		}
	}

	g.snap = g.match.Snapshot()
	g.animate(dt)
}

// scoreRound credits the round winner. A double knock-out counts as a KO for
// the corner the tie-break awards it to.
func (g *Game) scoreRound(r fight.RoundResult) {
	points := RoundPoints + int(math.Round(LifePoints*r.Lives[r.Winner]))
	if r.Reason == fight.KnockOut || r.Reason == fight.DoubleKnockOut {
		points += KOPoints
		g.kos[r.Winner]++
	}
	g.score[r.Winner] += points
}

func (g *Game) animate(dt float64) {
	for side := range g.bars {
		g.flash[side] = math.Max(0, g.flash[side]-dt)
		if g.bars[side] == nil {
			continue
		}
		g.bars[side].Set(g.snap.Fighters[side].Life)
		g.bars[side].Update(dt)
	}
}

// State returns the current game state. Score is the player corner's.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score[fight.SidePlayer],
		GameOver: g.snap.Status == fight.GameOver,
		Paused:   g.paused,
	}
}

// FightSnapshot returns the last state of the underlying fight.
func (g *Game) FightSnapshot() fight.Snapshot {
	return g.snap
}

// Result summarises the bout so far.
func (g *Game) Result() Result {
	r := Result{
		Wins:   g.snap.Wins,
		Losses: g.snap.Losses,
		KOs:    g.kos,
		Score:  g.score,
		Ticks:  g.ticks,
	}
	if g.match != nil {
		r.Winner, r.Decided = g.match.Winner()
	}
	r.Duration = time.Duration(float64(g.ticks) * g.runtime.Dt() * float64(time.Second))
	return r
}

// DifficultyLabel is the HUD caption for the CPU's difficulty.
func (g *Game) DifficultyLabel() string {
	return g.Preset().Label()
}
