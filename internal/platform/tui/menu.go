package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ringside-tui/ringside/internal/config"
	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

// OnlineGameID is the menu entry for a bout against a remote player.
const OnlineGameID = "boxing_online"

// MenuItem represents a selectable bout in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Online bool
}

// MenuModel is the Bubble Tea model for the bout picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	preset         int // index into config.Presets
	width          int
	height         int
	store          *storage.Store
	player         string
	record         *storage.Record
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user selects a bout
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The online entry is only offered
// where a lobby coordinator runs.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, player string, online bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+1)
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	if online {
		items = append(items, MenuItem{GameID: OnlineGameID, Title: "Boxing (online)", Online: true})
	}

	m := MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	for i, p := range config.Presets {
		if p == config.DifficultyNormal {
			m.preset = i
		}
	}
	if store != nil && player != "" {
		if rec, err := store.Record(player); err == nil && rec.Bouts > 0 {
			m.record = &rec
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(config.Presets)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the bout
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("R I N G S I D E"), 15, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose your bout", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	difficulty := fmt.Sprintf("CPU: < %s >", m.Difficulty().Label())
	b.WriteString(centerText(difficulty, m.width))
	b.WriteString("\n")

	if m.record != nil {
		rec := fmt.Sprintf("%s  %dW %dL  %d KO", m.player, m.record.Wins, m.record.Losses, m.record.KOs)
		b.WriteString("\n")
		b.WriteString(centerText(rec, m.width))
		b.WriteString("\n")
	}

	// Controls for the highlighted bout
	if len(m.items) > 0 {
		keys := SoloKeyMap()
		if m.items[m.cursor].GameID == "boxing_duel" {
			keys = DuelKeyMap()
		}
		b.WriteString("\n")
		b.WriteString(m.help.View(keys))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Fight  |  Tab: Records  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset picked for the CPU.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return config.Presets[m.preset]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return centerStyled(text, len([]rune(text)), width)
}

// centerStyled centers text whose printed width differs from its byte length.
func centerStyled(text string, printed, width int) string {
	if printed >= width {
		return text
	}
	padding := (width - printed) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Online          bool
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, player string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, player, false)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config:     m.Config(),
		Difficulty: m.Difficulty(),
	}

	if m.WantsScoreboard() {
		result.WantsScoreboard = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.GameID = m.Selected().GameID
		result.Online = m.Selected().Online
	} else {
		result.Quit = true
	}

	return result, nil
}
