package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/games/boxing"
	"github.com/ringside-tui/ringside/internal/logging"
	"github.com/ringside-tui/ringside/internal/multiplayer"
	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

const tracerName = "github.com/ringside-tui/ringside/internal/platform/tui"

// sessionEventBuffer is how many coordinator events a session may lag behind.
const sessionEventBuffer = 128

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.ringside/host_key.
	HostKeyPath string

	// DBPath is the path to the records database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate drives local bouts and online matches.
	TickRate int

	// Logger receives session and match lifecycle messages. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.ringside/ringside.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves ringside over SSH: every connection gets its own menu,
// and connected players can meet in online bouts.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
	tracer      trace.Tracer
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		var err error
		if logger, err = logging.New(os.Stderr, "ringside-ssh", "info"); err != nil {
			return nil, err
		}
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// Records are optional
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		store = nil
	}

	sessions := multiplayer.NewSessionRegistry()
	coordCfg := multiplayer.DefaultCoordinatorConfig()
	coordCfg.TickRate = cfg.TickRate
	coordinator := multiplayer.NewCoordinator(coordCfg, OnlineGameFactory, sessions)
	coordinator.SetLogger(logger.WithPrefix("lobby"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		sessions:    sessions,
		coordinator: coordinator,
		logger:      logger,
		tracer:      otel.Tracer(tracerName),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("tui: home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".ringside", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: ssh server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// OnlineGameFactory builds the server side of an online bout.
func OnlineGameFactory(gameID string, cfg core.RuntimeConfig) (multiplayer.OnlineGame, error) {
	if gameID != OnlineBoutID {
		return nil, fmt.Errorf("tui: %q cannot be played online", gameID)
	}
	g := boxing.NewOnline()
	g.Reset(cfg)
	return g, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "ringside needs an interactive terminal: connect with ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	id := multiplayer.SessionID(fmt.Sprintf("%s-%d", sshSession.User(), time.Now().UnixNano()))
	channel := multiplayer.NewChannelSession(id, sessionEventBuffer)
	s.sessions.Register(channel)

	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
		s.sessions.Unregister(id)
		channel.Close()
	}()

	model := NewSessionModel(s.store, cfg, sshSession.User(),
		WithCoordinator(s.coordinator, channel),
		WithSessionLogger(s.logger.With("user", sshSession.User())),
	)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events and traces each session.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		_, span := s.tracer.Start(sshSession.Context(), "ssh_session",
			trace.WithAttributes(
				attribute.String("ssh.user", sshSession.User()),
				attribute.String("net.peer", sshSession.RemoteAddr().String()),
			),
		)
		defer span.End()

		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		_ = s.Shutdown()
		return fmt.Errorf("tui: listen: %w", err)
	}
}

// Shutdown stops accepting sessions, ends running matches and closes the
// records database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("could not close records database", "error", err)
	}
	s.store = nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenScoreboard
	screenBout
	screenLobby
	screenMatch
)

// SessionOption configures a SessionModel.
type SessionOption func(*SessionModel)

// WithCoordinator enables online bouts for the session.
func WithCoordinator(c *multiplayer.Coordinator, channel *multiplayer.ChannelSession) SessionOption {
	return func(m *SessionModel) {
		m.coordinator = c
		m.channel = channel
	}
}

// WithSessionLogger sets the logger handed to local bouts.
func WithSessionLogger(logger *log.Logger) SessionOption {
	return func(m *SessionModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// SessionModel manages a full session: menu, records, local bouts and
// online bouts. It is the top-level model for SSH sessions.
type SessionModel struct {
	store       *storage.Store
	coordinator *multiplayer.Coordinator
	channel     *multiplayer.ChannelSession
	logger      *log.Logger
	config      core.RuntimeConfig
	username    string

	screen     sessionScreen
	menu       MenuModel
	scoreboard ScoreboardModel
	bout       Model
	lobby      OnlineLobbyModel
	match      OnlineMatchModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, opts ...SessionOption) SessionModel {
	m := SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.store, m.config, m.username, m.coordinator != nil)
}

func (m SessionModel) sessionID() multiplayer.SessionID {
	if m.channel == nil {
		return ""
	}
	return m.channel.ID()
}

// listen waits for the next coordinator event for this session.
func (m SessionModel) listen() tea.Cmd {
	if m.channel == nil {
		return nil
	}
	return waitForEvent(m.channel.Events())
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.listen())
}

// Update routes messages to the current screen and switches screens.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// Coordinator events only matter online; keep listening either way.
	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		var cmd tea.Cmd
		switch m.screen {
		case screenLobby:
			return m.updateLobby(evt, m.listen())
		case screenMatch:
			m, cmd = m.updateMatch(evt)
		}
		return m, tea.Batch(cmd, m.listen())
	}

	switch m.screen {
	case screenScoreboard:
		return m.updateScoreboard(msg)
	case screenBout:
		return m.updateBout(msg)
	case screenLobby:
		return m.updateLobby(msg, nil)
	case screenMatch:
		return m.updateMatch(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

func (m SessionModel) quit() (SessionModel, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		m.screen = screenScoreboard
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		return m.startSelected(*m.menu.Selected())
	}

	return m, cmd
}

// startSelected opens the bout picked in the menu.
func (m SessionModel) startSelected(item MenuItem) (SessionModel, tea.Cmd) {
	if item.Online {
		if m.coordinator == nil {
			return m.toMenu()
		}
		m.screen = screenLobby
		m.lobby = NewOnlineLobbyModel(m.sessionID(), m.username, m.coordinator, m.config.ScreenW, m.config.ScreenH)
		return m, m.lobby.Init()
	}

	game, err := registry.Create(item.GameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", item.GameID, "error", err)
		return m.toMenu()
	}
	if bg, ok := game.(*boxing.Game); ok {
		bg.SetPreset(m.menu.Difficulty())
		bg.SetNames([2]string{m.username, ""})
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	m.screen = screenBout
	m.bout = NewModel(game, m.store, cfg, WithLogger(m.logger))
	return m, m.bout.Init()
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// updateBout handles updates while a local bout runs.
func (m SessionModel) updateBout(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.bout.Update(msg)
	if bm, ok := next.(Model); ok {
		m.bout = bm
	}
	switch {
	case m.bout.IsQuitting():
		return m.quit()
	case m.bout.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg, listen tea.Cmd) (SessionModel, tea.Cmd) {
	next, cmd := m.lobby.Update(msg)
	if lm, ok := next.(OnlineLobbyModel); ok {
		m.lobby = lm
	}

	switch {
	case m.lobby.IsQuitting():
		return m.quit()
	case m.lobby.BackToMenu():
		menu, menuCmd := m.toMenu()
		return menu, tea.Batch(menuCmd, listen)
	}

	if started, ok := m.lobby.Started(); ok {
		m.logger.Info("online bout started", "match", started.MatchID.Short(), "side", started.Side)
		m.screen = screenMatch
		m.match = NewOnlineMatchModel(m.coordinator, m.sessionID(), started, m.config)
		return m, tea.Batch(m.match.Init(), listen)
	}
	return m, tea.Batch(cmd, listen)
}

func (m SessionModel) updateMatch(msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.match.Update(msg)
	if om, ok := next.(OnlineMatchModel); ok {
		m.match = om
	}
	switch {
	case m.match.IsQuitting():
		return m.quit()
	case m.match.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenScoreboard:
		return m.scoreboard.View()
	case screenBout:
		return m.bout.View()
	case screenLobby:
		return m.lobby.View()
	case screenMatch:
		return m.match.View()
	}
	return m.menu.View()
}
