package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/logging"
	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

// Model is the Bubble Tea model for a local bout.
type Model struct {
	game       registry.Game
	multi      registry.MultiGame // set when two players share the keyboard
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	holds      *HoldTracker
	inputFrame core.MultiInputFrame
	gameState  core.GameState
	now        func() time.Time

	exitOnBack bool // the program ends with the bout
	quitting   bool
	backToMenu bool
	recorded   bool // bout for the current game over is stored
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for records and screenshots.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock replaces time.Now for hold expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logging.Discard(),
		config:     cfg,
		keys:       NewKeyMapper(),
		holds:      NewHoldTracker(DefaultHoldWindow),
		inputFrame: core.NewMultiInputFrame(),
		now:        time.Now,
	}
	if mg, ok := game.(registry.MultiGame); ok && mg.Players() > 1 {
		m.multi = mg
		m.keys = NewDuelKeyMapper()
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The ring is drawn to fit; the bout carries on.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	if (m.gameState.GameOver || m.gameState.Paused) && m.keys.IsBack(msg) {
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	player, action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action == core.ActionNone:
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action.Held():
		m.holds.Press(player, action, m.now())
	}
	m.inputFrame.Add(player, action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Player1().Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.holds.ReleaseAll()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Holds do not lapse while paused. Resuming lets go of every key held
	// before the pause so no fighter walks on after the bell.
	var releases []Release
	switch {
	case m.gameState.Paused && m.resuming():
		releases = m.holds.ReleaseAll()
	case !m.gameState.Paused:
		releases = m.holds.Expire(m.now())
	}
	for _, r := range releases {
		m.inputFrame.Add(r.Player, r.Action)
	}

	var result core.StepResult
	if m.multi != nil {
		result = m.multi.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame.Player1())
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.recorded {
		m.record()
		m.recorded = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// resuming reports whether this tick's input toggles a paused bout back on.
func (m Model) resuming() bool {
	return m.inputFrame.Player1().Has(core.ActionPause) || m.inputFrame.Player2().Has(core.ActionPause)
}

// record stores the finished bout and the score. Best effort: failures are
// logged and play goes on.
func (m *Model) record() {
	bg, ok := m.game.(*boxing.Game)
	if !ok || m.store == nil {
		return
	}

	bout := boutFromGame(bg)
	id, err := m.store.SaveBout(bout)
	if err != nil {
		m.logger.Warn("could not save bout", "game", bout.GameID, "error", err)
		return
	}
	m.logger.Info("bout saved", "id", id, "player", bout.Player, "won", bout.Won, "score", bout.Score)

	res := bg.Result()
	snap := bg.FightSnapshot()
	for side, score := range res.Score {
		if score <= 0 || (side == int(fight.SideOpponent) && bg.Mode() == boxing.ModeVsCPU) {
			continue
		}
		if _, err := m.store.SaveScore(bg.ID(), snap.Fighters[side].Name, score); err != nil {
			m.logger.Warn("could not save score", "game", bg.ID(), "error", err)
		}
	}
}

// boutFromGame builds the record of a finished bout from the player corner's view.
func boutFromGame(g *boxing.Game) storage.Bout {
	res := g.Result()
	snap := g.FightSnapshot()
	b := storage.Bout{
		GameID:     g.ID(),
		Player:     snap.Fighters[fight.SidePlayer].Name,
		Opponent:   snap.Fighters[fight.SideOpponent].Name,
		Won:        res.Decided && res.Winner == fight.SidePlayer,
		RoundsWon:  res.Wins,
		RoundsLost: res.Losses,
		KOs:        res.KOs[fight.SidePlayer],
		Score:      res.Score[fight.SidePlayer],
		Duration:   int(res.Duration.Seconds()),
	}
	if g.Mode() == boxing.ModeVsCPU {
		b.Difficulty = string(g.Preset())
	}
	return b
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".ringside", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || (m.exitOnBack && m.backToMenu) {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays one bout in the terminal until the player quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
