package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ringside-tui/ringside/internal/registry"
	"github.com/ringside-tui/ringside/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the page list sidebar
	sidebarWidth       = 24  // Width of page list sidebar
	maxRows            = 100 // Max rows to load per page
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardPage is one table: the bout log, a game's high scores or the
// online match log.
type scoreboardPage struct {
	title  string
	gameID string // set for high score pages
	online bool
}

// ScoreboardModel is the Bubble Tea model for the records screen.
type ScoreboardModel struct {
	pages       []scoreboardPage
	pageCursor  int
	store       *storage.Store
	bouts       []storage.Bout
	scores      []storage.ScoreEntry
	matches     []storage.OnlineMatchResult
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	loadErr     error
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the page list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	pages := []scoreboardPage{{title: "Recent bouts"}}
	for _, g := range registry.List() {
		pages = append(pages, scoreboardPage{title: g.Title, gameID: g.ID})
	}
	pages = append(pages, scoreboardPage{title: "Online matches", online: true})

	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		pages:       pages,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the table columns for the current page.
func (m *ScoreboardModel) columns() []table.Column {
	if m.page().online {
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Host", Width: 16},
			{Title: "Guest", Width: 16},
			{Title: "Score", Width: 11},
			{Title: "Winner", Width: 6},
			{Title: "Ended", Width: 13},
		}
	}
	if m.page().gameID != "" {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Name", Width: 14},
			{Title: "Score", Width: 8},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Player", Width: 12},
		{Title: "Opponent", Width: 12},
		{Title: "Result", Width: 7},
		{Title: "Rounds", Width: 6},
		{Title: "KO", Width: 3},
		{Title: "Score", Width: 6},
		{Title: "Level", Width: 7},
	}
}

// createTable creates a new table for the current page.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ScoreboardModel) page() scoreboardPage {
	return m.pages[m.pageCursor]
}

// load fetches the rows of the current page and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.bouts, m.scores, m.matches, m.loadErr = nil, nil, nil, nil
	if m.store != nil {
		switch p := m.page(); {
		case p.online:
			m.matches, m.loadErr = m.store.RecentOnlineMatches(maxRows)
		case p.gameID != "":
			m.scores, m.loadErr = m.store.TopScores(p.gameID, maxRows)
		default:
			m.bouts, m.loadErr = m.store.RecentBouts(maxRows)
		}
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.page().online {
		rows := make([]table.Row, len(m.matches))
		for i, r := range m.matches {
			winner := "-"
			switch r.WinnerSession {
			case r.Player1Session:
				winner = "host"
			case r.Player2Session:
				winner = "guest"
			}
			rows[i] = table.Row{
				r.CreatedAt.Format("Jan 02 15:04"),
				sessionUser(r.Player1Session),
				sessionUser(r.Player2Session),
				fmt.Sprintf("%d-%d", r.Score1, r.Score2),
				winner,
				r.EndReason,
			}
		}
		return rows
	}
	if m.page().gameID != "" {
		rows := make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Player,
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.bouts))
	for i, b := range m.bouts {
		result := "LOST"
		if b.Won {
			result = "WON"
		}
		rows[i] = table.Row{
			b.CreatedAt.Format("Jan 02 15:04"),
			b.Player,
			b.Opponent,
			result,
			fmt.Sprintf("%d-%d", b.RoundsWon, b.RoundsLost),
			fmt.Sprintf("%d", b.KOs),
			fmt.Sprintf("%d", b.Score),
			b.Difficulty,
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage):
			m.pageCursor = (m.pageCursor + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.pageCursor = (m.pageCursor + len(m.pages) - 1) % len(m.pages)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.table.SetRows(m.rows())
		return m, nil
	}

	// Scrolling and the rest go to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("RECORDS - %s", m.page().title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with the page list on the left.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.pageCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows the current page name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.page().title), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Records are off: no database.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load records.")
	case len(m.table.Rows()) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nStep into the ring!")
	}
	return m.table.View()
}

// sessionUser strips the connection suffix from an SSH session ID.
func sessionUser(id string) string {
	if i := strings.LastIndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the records screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
