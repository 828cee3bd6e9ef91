package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/bomber-legend/internal/leaderboard"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

// leaderboardLoadedMsg carries a fetched table. gen is the request
// generation it answers; older generations are dropped.
type leaderboardLoadedMsg struct {
	gen     int
	gameID  string
	entries []leaderboard.Entry
	err     error
}

// loginDoneMsg carries the result of a login request.
type loginDoneMsg struct {
	profile leaderboard.Profile
	err     error
}

func fetchLeaderboardCmd(svc *leaderboard.Service, gameID string, gen int) tea.Cmd {
	return func() tea.Msg {
		entries, err := svc.Leaderboard(context.Background(), gameID)
		return leaderboardLoadedMsg{gen: gen, gameID: gameID, entries: entries, err: err}
	}
}

func loginCmd(svc *leaderboard.Service) tea.Cmd {
	return func() tea.Msg {
		p, err := svc.Login(context.Background())
		return loginDoneMsg{profile: p, err: err}
	}
}

// LeaderboardModel shows the ranked table of each game from a
// leaderboard.Service. Fetches run as commands; switching games while a
// fetch is in flight discards the late answer.
type LeaderboardModel struct {
	service     *leaderboard.Service
	games       []registry.GameInfo
	gameCursor  int
	gen         int
	loading     bool
	entries     []leaderboard.Entry
	err         error
	profile     *leaderboard.Profile
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewLeaderboardModel creates the view. Call Init to start the first fetch.
func NewLeaderboardModel(svc *leaderboard.Service, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		service:     svc,
		games:       registry.List(),
		keys:        DefaultListKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if p, ok := svc.Profile(); ok {
		m.profile = &p
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		// Init issues the request for this generation
		m.gen = 1
		m.loading = true
	}
	return m
}

func (m *LeaderboardModel) createTable() table.Model {
	return newTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 18},
		{Title: "Score", Width: 12},
	}, m.height)
}

// refresh starts a fetch for the selected game under a new generation.
func (m *LeaderboardModel) refresh() tea.Cmd {
	if len(m.games) == 0 {
		return nil
	}
	m.gen++
	m.loading = true
	return fetchLeaderboardCmd(m.service, m.games[m.gameCursor].ID, m.gen)
}

func (m *LeaderboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		name := e.Name
		if m.profile != nil && e.Name == m.profile.Name {
			name = "* " + name
		}
		rows[i] = table.Row{
			humanize.Ordinal(e.Rank),
			truncate(name, 18),
			humanize.Comma(int64(e.Score)),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init starts fetching the first game's table.
func (m LeaderboardModel) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return fetchLeaderboardCmd(m.service, m.games[m.gameCursor].ID, m.gen)
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case leaderboardLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
		}
		m.updateTableRows()
		return m, nil

	case loginDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.profile = &msg.profile
		m.updateTableRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			return m, m.cycle(1)
		case key.Matches(msg, m.keys.PrevGame):
			return m, m.cycle(-1)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refresh()
		case key.Matches(msg, m.keys.Login):
			return m, loginCmd(m.service)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *LeaderboardModel) cycle(delta int) tea.Cmd {
	if len(m.games) == 0 {
		return nil
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.entries = nil
	m.updateTableRows()
	return m.refresh()
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "LEADERBOARD"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}
	switch {
	case m.profile != nil:
		title += fmt.Sprintf("  [%s]", m.profile.Name)
	default:
		title += "  [not logged in]"
	}
	if m.service.Mock() {
		title += "  (offline)"
	}

	var body string
	switch {
	case m.loading && len(m.entries) == 0:
		body = emptyNotice("Loading...")
	case m.err != nil:
		body = emptyNotice("Leaderboard unavailable:\n" + m.err.Error())
	case len(m.entries) == 0:
		body = emptyNotice("No scores yet.")
	default:
		body = m.table.View()
	}

	return layoutList(title, m.games, m.gameCursor, m.width, m.showSidebar, framed(body), m.help.View(m.keys))
}

// Entries returns the rows currently shown.
func (m LeaderboardModel) Entries() []leaderboard.Entry {
	return m.entries
}

// Loading reports whether a fetch is outstanding.
func (m LeaderboardModel) Loading() bool {
	return m.loading
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}

// RunLeaderboard runs the leaderboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunLeaderboard(svc *leaderboard.Service, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewLeaderboardModel(svc, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(LeaderboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
