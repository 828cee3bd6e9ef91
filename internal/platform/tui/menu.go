package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

// Screen is what the menu hands control to.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenGame
	ScreenScoreboard
	ScreenLeaderboard
)

// MenuItem is one game on the picker.
type MenuItem struct {
	GameID string
	Title  string
	Blurb  string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	player    string
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	next      Screen
	selected  *MenuItem
}

// NewMenuModel creates a menu listing every registered game. player is shown
// in the header when set.
func NewMenuModel(cfg core.RuntimeConfig, player string) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Blurb: g.Blurb})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
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
	}

	return m, nil
}

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

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.next = ScreenGame
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.next = ScreenScoreboard
		return m, tea.Quit

	case MenuActionLeaderboard:
		m.next = ScreenLeaderboard
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuItemStyle  = lipgloss.NewStyle().Padding(0, 2)
	menuPickStyle  = menuItemStyle.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
)

const menuHelp = "↑/↓ move · enter play · tab history · l leaderboard · q quit"

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{"", menuTitleStyle.Render("B O M B E R   L E G E N D"), ""}
	if m.player != "" {
		lines = append(lines, menuDimStyle.Render("playing as "+m.player))
	}
	lines = append(lines, "")

	for i, item := range m.items {
		if i != m.cursor {
			lines = append(lines, menuItemStyle.Render(item.Title))
			continue
		}
		lines = append(lines, menuPickStyle.Render("▸ "+item.Title))
		if item.Blurb != "" {
			lines = append(lines, menuDimStyle.Render(item.Blurb))
		}
	}
	if len(m.items) == 0 {
		lines = append(lines, menuDimStyle.Render("no games registered"))
	}

	lines = append(lines, "", menuDimStyle.Render(menuHelp))

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteByte('\n')
	}
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Next returns the screen the player asked for.
func (m MenuModel) Next() Screen {
	return m.next
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID string
	Next   Screen
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, player string) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, player), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Next: m.Next()}
	switch {
	case m.IsQuitting() || m.Next() == ScreenNone:
		result.Quit = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	}
	return result, nil
}
