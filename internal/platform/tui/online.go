package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/multiplayer"
)

// OnlineBoutID is the game the coordinator builds for online matches.
const OnlineBoutID = "boxing_duel"

const joinCodeLen = 6

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match has started
)

// waitForEvent returns a command that delivers the next coordinator event.
func waitForEvent(events <-chan multiplayer.SessionEvent) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

// OnlineLobbyModel handles hosting and joining a lobby. Coordinator events
// are delivered to Update by the owner of the session's event channel.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	sessionID   multiplayer.SessionID
	name        string
	coordinator *multiplayer.Coordinator

	// Host state
	lobbyCode string

	// Join state
	codeInput textinput.Model
	joinError string

	// Match state
	started  multiplayer.MatchStartedEvent
	opponent string

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(
	sessionID multiplayer.SessionID,
	name string,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	ti := textinput.New()
	ti.Placeholder = "ABC123"
	ti.CharLimit = joinCodeLen
	ti.Width = joinCodeLen + 1
	ti.Prompt = ""
	ti.Validate = func(s string) error {
		for _, r := range s {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				return fmt.Errorf("invalid character %q", r)
			}
		}
		return nil
	}

	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		sessionID:   sessionID,
		name:        name,
		coordinator: coordinator,
		codeInput:   ti,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.opponent = msg.OpponentName
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		if m.state == OnlineStateJoinWaiting {
			m.state = OnlineStateJoinEnterCode
			return m, m.codeInput.Focus()
		}
	case multiplayer.LobbyPlayerLeftEvent:
		// The host keeps waiting for someone else
		m.opponent = ""
	case multiplayer.MatchStartedEvent:
		m.started = msg
		m.state = OnlineStateInMatch
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	}

	return m, nil
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			GameID:    OnlineBoutID,
			Name:      m.name,
		})
		return m, nil
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.codeInput.Reset()
		m.joinError = ""
		return m, m.codeInput.Focus()
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.backToMenu = true
		return m, nil
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.codeInput.Blur()
		m.state = OnlineStateChooseMode
		return m, nil
	case tea.KeyEnter:
		code := m.code()
		if len(code) != joinCodeLen {
			m.joinError = fmt.Sprintf("Codes have %d characters", joinCodeLen)
			return m, nil
		}
		m.codeInput.Blur()
		m.state = OnlineStateJoinWaiting
		m.joinError = ""
		m.coordinator.Send(multiplayer.JoinLobbyMsg{
			SessionID: m.sessionID,
			Code:      code,
			Name:      m.name,
		})
		return m, nil
	case tea.KeyRunes:
		msg.Runes = []rune(strings.ToUpper(string(msg.Runes)))
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	return m, cmd
}

func (m OnlineLobbyModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
		return m, m.codeInput.Focus()
	}

	return m, nil
}

// leave withdraws from whatever lobby this session is in.
func (m OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.code(),
		})
	}
}

func (m OnlineLobbyModel) code() string {
	return strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateChooseMode:
		return m.viewChooseMode()
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	}
	return ""
}

func (m OnlineLobbyModel) lines(title string, body ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n")
	for _, line := range body {
		b.WriteString("\n")
		b.WriteString(centerText(line, m.width))
	}
	return b.String()
}

func (m OnlineLobbyModel) viewChooseMode() string {
	return m.lines("ONLINE BOUT",
		fmt.Sprintf("Fighting as %s", m.name),
		"",
		"[H] Host a bout",
		"[J] Join a bout",
		"",
		"Esc: Back  |  Q: Quit",
	)
}

func (m OnlineLobbyModel) viewHostWaiting() string {
	status := "Waiting for a challenger..."
	if m.opponent != "" {
		status = fmt.Sprintf("%s is stepping in...", m.opponent)
	}
	return m.lines("HOSTING",
		"Share this code with your opponent:",
		"",
		fmt.Sprintf("[ %s ]", m.lobbyCode),
		"",
		status,
		"",
		"Esc: Cancel  |  Q: Quit",
	)
}

func (m OnlineLobbyModel) viewJoinEnterCode() string {
	body := []string{
		"Enter the bout code:",
		"",
		fmt.Sprintf("[ %s ]", m.codeInput.View()),
	}
	if m.joinError != "" {
		body = append(body, "", "Error: "+m.joinError)
	}
	body = append(body, "", "Enter: Connect  |  Esc: Back")
	return m.lines("JOIN", body...)
}

func (m OnlineLobbyModel) viewJoinWaiting() string {
	return m.lines("CONNECTING",
		fmt.Sprintf("Joining bout %s", m.code()),
		"",
		"Please wait...",
		"",
		"Esc: Cancel",
	)
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// Started returns the match start event once the bout has begun.
func (m OnlineLobbyModel) Started() (multiplayer.MatchStartedEvent, bool) {
	return m.started, m.state == OnlineStateInMatch
}

// LobbyCode returns the hosted lobby code.
func (m OnlineLobbyModel) LobbyCode() string {
	return m.lobbyCode
}

// OnlineMatchModel plays one side of an online bout. The coordinator runs
// the simulation; this model forwards key presses and draws the snapshots
// it receives.
type OnlineMatchModel struct {
	coordinator *multiplayer.Coordinator
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID

	game   *boxing.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   *KeyMapper
	holds  *HoldTracker
	input  core.InputFrame
	now    func() time.Time

	ended      *multiplayer.MatchEndedEvent
	quitting   bool
	backToMenu bool
}

// NewOnlineMatchModel creates the client side of a started match.
func NewOnlineMatchModel(
	coordinator *multiplayer.Coordinator,
	sessionID multiplayer.SessionID,
	started multiplayer.MatchStartedEvent,
	cfg core.RuntimeConfig,
) OnlineMatchModel {
	game := boxing.NewOnline()
	game.Reset(cfg)
	game.SetNames(started.Names)

	return OnlineMatchModel{
		coordinator: coordinator,
		sessionID:   sessionID,
		matchID:     started.MatchID,
		side:        started.Side,
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:      cfg,
		keys:        NewKeyMapper(),
		holds:       NewHoldTracker(DefaultHoldWindow),
		input:       core.NewInputFrame(),
		now:         time.Now,
	}
}

// Init starts the input tick.
func (m OnlineMatchModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles keys, ticks and coordinator events.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.ended != nil {
			return m, nil
		}
		m.flush()
		return m, tickCmd(m.config.TickRate)

	case multiplayer.SnapshotEvent:
		if msg.MatchID == m.matchID {
			if snap, ok := msg.Snapshot.(boxing.BoxingSnapshot); ok {
				m.game.ApplySnapshot(snap)
			}
		}
		return m, nil

	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			m.ended = &msg
		}
		return m, nil
	}
	return m, nil
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if m.ended != nil {
		if m.keys.IsBack(msg) || msg.String() == "q" || msg.String() == "enter" {
			m.backToMenu = true
		}
		return m, nil
	}

	player, action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		// Q forfeits the bout and returns to the menu.
		m.leave()
		m.backToMenu = true
		return m, nil
	}

	switch action {
	case core.ActionNone, core.ActionPause, core.ActionRestart:
		return m, nil
	}
	if action.Held() {
		m.holds.Press(player, action, m.now())
	}
	m.input.Set(action)
	return m, nil
}

// flush sends this tick's input, with any lapsed holds released.
func (m *OnlineMatchModel) flush() {
	for _, r := range m.holds.Expire(m.now()) {
		m.input.Set(r.Action)
	}
	if m.input.Empty() {
		return
	}
	m.coordinator.Send(multiplayer.PlayerInputMsg{
		MatchID: m.matchID,
		Player:  m.side,
		Input:   m.input.Clone(),
	})
	m.input.Clear()
}

func (m OnlineMatchModel) leave() {
	if m.ended != nil {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{
		SessionID: m.sessionID,
		MatchID:   m.matchID,
	})
}

// View draws the ring from the last snapshot.
func (m OnlineMatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.ended != nil && m.ended.Reason != multiplayer.MatchEndReasonCompleted {
		title := "BOUT ABANDONED"
		if m.ended.Winner == m.side {
			title = "YOU WIN BY FORFEIT"
		}
		drawNotice(m.screen, title, m.ended.Reason.String()+"  |  Esc menu")
	}
	return RenderScreen(m.screen)
}

// drawNotice draws a boxed two-line message over the ring.
func drawNotice(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxX, boxY := (w-boxW)/2, (h-5)/2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, 5), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, 5))
	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

// Side returns which corner this session fights from.
func (m OnlineMatchModel) Side() core.PlayerID {
	return m.side
}

// Ended returns the end event once the match is over.
func (m OnlineMatchModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}
