package leaderboard

import (
	"context"
	"fmt"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/storage"
)

var (
	_ Backend = (*storage.Store)(nil)
	_ Backend = (*storage.PGStore)(nil)
)

// OpenBackend opens the store selected by cfg. The mock backend returns a
// nil Backend and a no-op close function.
func OpenBackend(ctx context.Context, cfg config.LeaderboardConfig) (Backend, func() error, error) {
	switch cfg.Backend {
	case "", "mock":
		return nil, func() error { return nil }, nil
	case "sqlite":
		store, err := storage.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "postgres":
		store, err := storage.OpenPostgres(ctx, cfg.DSN, storage.PGOptions{
			MaxConns:        cfg.MaxConns,
			MinConns:        cfg.MinConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("leaderboard: unknown backend %q", cfg.Backend)
	}
}

// Options translates cfg into service options.
func Options(cfg config.LeaderboardConfig) []Option {
	opts := []Option{WithTopN(cfg.TopN), WithTimeout(cfg.Timeout)}
	if cfg.SubmitLimit > 0 && cfg.SubmitWindow > 0 {
		opts = append(opts, WithRateLimiter(NewRateLimiter(cfg.SubmitLimit, cfg.SubmitWindow, nil)))
	}
	return opts
}
