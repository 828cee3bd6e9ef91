package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bomber-legend/internal/core"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return mm, cmd
}

func TestMenuListsGamesWithBlurb(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "ada")
	view := m.View()

	for _, want := range []string{"Bomber Legend", "Turbo Racer", "playing as ada", "AI bombers"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if strings.Contains(view, "traffic") {
		t.Error("only the highlighted game should show its description")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "")
	m, _ = updateMenu(t, m, runeKey("j"))
	m, _ = updateMenu(t, m, runeKey("j"))

	m, cmd := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("selecting should quit the menu program")
	}
	if m.Next() != ScreenGame || m.Selected() == nil || m.Selected().GameID != "racing" {
		t.Errorf("Next()=%v Selected()=%+v, expected the racer", m.Next(), m.Selected())
	}
}

func TestMenuScreensAndQuit(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "")

	tab, _ := updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if tab.Next() != ScreenScoreboard {
		t.Errorf("tab Next() = %v", tab.Next())
	}
	lb, _ := updateMenu(t, m, runeKey("l"))
	if lb.Next() != ScreenLeaderboard {
		t.Errorf("l Next() = %v", lb.Next())
	}
	q, _ := updateMenu(t, m, runeKey("q"))
	if !q.IsQuitting() || q.View() != "" {
		t.Error("q should quit with an empty view")
	}

	resized, _ := updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if c := resized.Config(); c.ScreenW != 120 || c.ScreenH != 40 {
		t.Errorf("Config() = %+v after resize", c)
	}
}
