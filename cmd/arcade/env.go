package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
	"github.com/vovakirdan/bomber-legend/internal/leaderboard"
	"github.com/vovakirdan/bomber-legend/internal/logging"
	"github.com/vovakirdan/bomber-legend/internal/platform/tui"
	"github.com/vovakirdan/bomber-legend/internal/registry"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// requireGame exits unless id names a registered game.
func requireGame(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// setupLogging installs the process logger. Interactive commands log to a
// file so output does not tear the alt screen.
func setupLogging(toFile bool) func() error {
	cfg := config.LoggingConfig{Level: flagLogLevel}
	if toFile {
		cfg.File = logging.DefaultFile
	}
	logger, closeFn, err := logging.New(cfg, "arcade")
	if err != nil {
		fail("%v", err)
	}
	logging.Install(logger)
	return closeFn
}

// leaderboardConfig applies the global flags over the defaults.
func leaderboardConfig() config.LeaderboardConfig {
	cfg := config.DefaultServerConfig().Leaderboard
	cfg.Backend = flagBackend
	cfg.Path = flagDBPath
	cfg.DSN = flagDSN
	return cfg
}

// session is an opened leaderboard backend with its client.
type session struct {
	service *leaderboard.Service
	backend leaderboard.Backend
	close   func() error
}

// source returns the backend as a score history source, or nil for the mock.
func (s session) source() tui.ScoreSource {
	if s.backend == nil {
		return nil
	}
	return s.backend
}

// openSession opens the configured backend. A backend that cannot be opened
// degrades to the mock leaderboard with a warning, so games stay playable.
func openSession(ctx context.Context, cfg config.LeaderboardConfig, name string) session {
	backend, closeFn, err := leaderboard.OpenBackend(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open %s leaderboard: %v\n", cfg.Backend, err)
		log.Warn("leaderboard backend unavailable", "backend", cfg.Backend, "error", err)
		backend, closeFn = nil, func() error { return nil }
	}

	opts := append(leaderboard.Options(cfg), leaderboard.WithName(name))
	if backend != nil {
		opts = append(opts, leaderboard.WithBackend(backend))
	}
	return session{
		service: leaderboard.New(opts...),
		backend: backend,
		close:   closeFn,
	}
}

// playerName is the local profile name: $ARCADE_PLAYER, then $USER.
func playerName() string {
	if n := os.Getenv("ARCADE_PLAYER"); n != "" {
		return n
	}
	if n := os.Getenv("USER"); n != "" {
		return n
	}
	return leaderboard.DefaultName
}
