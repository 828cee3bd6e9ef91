package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/bomber-legend/internal/registry"
	"github.com/vovakirdan/bomber-legend/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxScores          = 100
	loadTimeout        = 3 * time.Second
)

var (
	borderColor = lipgloss.Color("240")
	dimColor    = lipgloss.Color("241")
	accentColor = lipgloss.Color("229")
	selectBg    = lipgloss.Color("57")
)

// ScoreSource reads stored score history. Both storage backends satisfy it.
type ScoreSource interface {
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
}

// ListKeyMap is the key set shared by the scoreboard and leaderboard screens.
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Refresh  key.Binding
	Login    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Refresh, k.Login, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Refresh, k.Login, k.Back, k.Quit},
	}
}

// DefaultListKeyMap returns default key bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("S-tab", "prev game")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// newTable builds a styled table sized for the given screen.
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(selectBg).
		Bold(false)
	t.SetStyles(s)
	return t
}

// gameTabs renders the game picker either as a sidebar or as a tab row.
func gameTabs(games []registry.GameInfo, cursor, width int, sidebar bool) string {
	if len(games) == 0 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	if sidebar {
		var b strings.Builder
		b.WriteString("Games\n")
		b.WriteString(strings.Repeat("-", sidebarWidth-4))
		b.WriteString("\n")
		for i, g := range games {
			name := truncate(g.Title, sidebarWidth-6)
			if i == cursor {
				b.WriteString(active.Render("> " + name))
			} else {
				b.WriteString("  " + name)
			}
			b.WriteString("\n")
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Width(sidebarWidth).
			Padding(0, 1).
			Render(b.String())
	}

	tabs := make([]string, len(games))
	for i, g := range games {
		name := truncate(g.Title, 10)
		if i == cursor {
			tabs[i] = active.Background(selectBg).Padding(0, 1).Render(name)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(dimColor).Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > width-4 {
		line = fmt.Sprintf("< %s >", games[cursor].Title)
	}
	return centerText(line, width)
}

func framed(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(content)
}

func emptyNotice(text string) string {
	return lipgloss.NewStyle().Foreground(dimColor).Italic(true).Padding(2, 4).Render(text)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// ScoreboardModel shows the stored score history of each game.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	source      ScoreSource
	scores      []storage.ScoreEntry
	loadErr     error
	now         func() time.Time
	table       table.Model
	help        help.Model
	keys        ListKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard reading from source, which may be nil.
func NewScoreboardModel(source ScoreSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:       registry.List(),
		source:      source,
		now:         time.Now,
		keys:        DefaultListKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.keys.Login.SetEnabled(false)
	m.table = m.createTable()
	m.loadScores()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	width := m.width - 4
	if m.showSidebar {
		width -= sidebarWidth + 3
	}
	dateW := min(max(width-36, 10), 16)
	return newTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 10},
		{Title: "When", Width: dateW},
	}, m.height)
}

// loadScores reads the current game's scores. The local store answers
// quickly enough to stay on the update loop.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if m.source != nil && len(m.games) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		m.scores, m.loadErr = m.source.TopScores(ctx, m.games[m.gameCursor].ID, maxScores)
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			truncate(s.PlayerName, 16),
			humanize.Comma(int64(s.Score)),
			humanize.RelTime(s.CreatedAt, m.now(), "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
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
		case key.Matches(msg, m.keys.NextGame):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.loadScores()
			return m, nil
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

func (m *ScoreboardModel) cycle(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.loadScores()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "SCORE HISTORY"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameCursor].Title
	}

	var body string
	switch {
	case m.loadErr != nil:
		body = emptyNotice("Could not load scores:\n" + m.loadErr.Error())
	case len(m.scores) == 0:
		body = emptyNotice("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		body = m.table.View()
	}

	return layoutList(title, m.games, m.gameCursor, m.width, m.showSidebar, framed(body), m.help.View(m.keys))
}

// layoutList stacks the title, game picker, body and help bar.
func layoutList(title string, games []registry.GameInfo, cursor, width int, sidebar bool, body, helpView string) string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	b.WriteString(centerText(titleStyle.Render(title), width))
	b.WriteString("\n\n")

	if sidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, gameTabs(games, cursor, width, true), "  ", body))
	} else {
		b.WriteString(gameTabs(games, cursor, width, false))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, width))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(dimColor).Render(helpView))
	return b.String()
}

// Scores returns the rows currently shown.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(source ScoreSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(source, width, height), tea.WithAltScreen())

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
