// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, score submission and the
// menu, scoreboard and leaderboard screens.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/leaderboard"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends one tick message at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// scoreSubmittedMsg reports the outcome of a background score submission.
// gen identifies the run the score belongs to.
type scoreSubmittedMsg struct {
	gen   int
	score int
	err   error
}

// submitCmd signs in when needed and submits score off the update loop.
func submitCmd(svc *leaderboard.Service, gameID string, score, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if _, ok := svc.Profile(); !ok {
			if _, err := svc.Login(ctx); err != nil {
				return scoreSubmittedMsg{gen: gen, score: score, err: err}
			}
		}
		err := svc.SubmitScore(ctx, gameID, score)
		return scoreSubmittedMsg{gen: gen, score: score, err: err}
	}
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	service    *leaderboard.Service
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       *HeldKeys
	gameState  core.GameState
	quitOnBack bool
	quitting   bool
	backToMenu bool
	submitted  bool
	runGen     int
	status     string
}

// NewModel creates a model for game. svc may be nil to skip score submission.
func NewModel(game registry.Game, svc *leaderboard.Service, cfg core.RuntimeConfig) Model {
	cfg = cfg.Normalized()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		service:   svc,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		keys:      NewHeldKeys(DefaultHoldWindow, nil),
	}
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
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case scoreSubmittedMsg:
		return m.handleSubmitted(msg), nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			log.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	m.keys.Press(action)
	return m, nil
}

// handleTick steps the game once with the currently held keys.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.keys.Frame())
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		// restarted: results for the previous run no longer apply
		m.runGen++
		m.submitted = false
		m.status = ""
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.gameState.GameOver && !m.submitted {
		m.submitted = true
		if m.service != nil && m.gameState.Score > 0 {
			m.status = "Submitting score..."
			cmds = append(cmds, submitCmd(m.service, m.game.ID(), m.gameState.Score, m.runGen))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmitted(msg scoreSubmittedMsg) Model {
	if msg.gen != m.runGen {
		return m
	}
	if msg.err != nil {
		m.status = "Score not submitted: " + msg.err.Error()
		return m
	}
	m.status = fmt.Sprintf("Score %d submitted", msg.score)
	return m
}

// saveScreenshot writes the current frame under ~/.arcade/screenshots.
func (m Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game and the submission status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextColor(0, m.screen.Height()-1, " "+m.status, core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Status returns the score submission status line.
func (m Model) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own program until the player quits or backs out.
// It reports whether the player backed out rather than quitting.
func Run(game registry.Game, svc *leaderboard.Service, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewModel(game, svc, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
