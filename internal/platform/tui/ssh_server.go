package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/leaderboard"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

// SSHServer serves the arcade over SSH with one Bubble Tea program per
// session. Sessions share one leaderboard backend and sign in under their
// SSH user name.
type SSHServer struct {
	cfg     config.SSHConfig
	lbCfg   config.LeaderboardConfig
	backend leaderboard.Backend
	server  *ssh.Server
	logger  *log.Logger
}

// NewSSHServer creates a server. backend may be nil for the mock leaderboard.
func NewSSHServer(cfg *config.ServerConfig, backend leaderboard.Backend, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	srv := &SSHServer{
		cfg:     cfg.SSH,
		lbCfg:   cfg.Leaderboard,
		backend: backend,
		logger:  logger.WithPrefix("ssh"),
	}

	hostKeyPath, err := resolveHostKey(cfg.SSH.HostKeyPath)
	if err != nil {
		return nil, err
	}

	opts := []ssh.Option{
		wish.WithAddress(srv.Addr()),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.SSH.IdleTimeout))
	}
	if cfg.SSH.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.SSH.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// resolveHostKey makes a relative host key path relative to ~/.arcade and
// creates its directory. Wish generates the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		path = "host_key"
	}
	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// service builds the leaderboard client for one SSH user.
func (s *SSHServer) service(user string) *leaderboard.Service {
	opts := append(leaderboard.Options(s.lbCfg),
		leaderboard.WithName(user),
		leaderboard.WithLogger(s.logger.WithPrefix("leaderboard")),
	)
	if s.backend != nil {
		opts = append(opts, leaderboard.WithBackend(s.backend))
	}
	return leaderboard.New(opts...)
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height
	cfg.Seed = time.Now().UnixNano()

	return NewSessionModel(s.service(sess.User()), s.backend, cfg, sess.User()), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// SessionModel manages one SSH session: menu, games and score screens
// inside a single program.
type SessionModel struct {
	service     *leaderboard.Service
	source      ScoreSource
	config      core.RuntimeConfig
	username    string
	screen      Screen
	menu        MenuModel
	game        *Model
	scoreboard  *ScoreboardModel
	leaderboard *LeaderboardModel
	quitting    bool
}

// NewSessionModel creates a session. source may be nil.
func NewSessionModel(svc *leaderboard.Service, source ScoreSource, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		service:  svc,
		source:   source,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(cfg, username),
	}
}

// Init signs the user in and shows the menu.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), loginCmd(m.service))
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	if done, ok := msg.(loginDoneMsg); ok && m.screen != ScreenLeaderboard {
		if done.err != nil {
			log.Warn("login failed", "user", m.username, "error", done.err)
		}
		return m, nil
	}

	switch m.screen {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenScoreboard:
		return m.updateScoreboard(msg)
	case ScreenLeaderboard:
		return m.updateLeaderboard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = ScreenNone
	m.game, m.scoreboard, m.leaderboard = nil, nil, nil
	m.menu = NewMenuModel(m.config, m.username)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// the menu quits its own program on selection; keep ours running
	switch m.menu.Next() {
	case ScreenGame:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			return m.toMenu()
		}
		m.config = m.menu.Config()
		gm := NewModel(game, m.service, m.config)
		m.game = &gm
		m.screen = ScreenGame
		return m, m.game.Init()

	case ScreenScoreboard:
		sb := NewScoreboardModel(m.source, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		m.screen = ScreenScoreboard
		return m, sb.Init()

	case ScreenLeaderboard:
		lb := NewLeaderboardModel(m.service, m.config.ScreenW, m.config.ScreenH)
		m.leaderboard = &lb
		m.screen = ScreenLeaderboard
		return m, lb.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.leaderboard.Update(msg)
	if lb, ok := next.(LeaderboardModel); ok {
		m.leaderboard = &lb
	}

	if m.leaderboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.leaderboard.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case ScreenGame:
		return m.game.View()
	case ScreenScoreboard:
		return m.scoreboard.View()
	case ScreenLeaderboard:
		return m.leaderboard.View()
	}
	return m.menu.View()
}

// Screen returns the active screen.
func (m SessionModel) Screen() Screen {
	return m.screen
}
