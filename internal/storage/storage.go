// Package storage persists scores and player profiles.
//
// Two stores share one surface: Store on a local SQLite file (pure-Go
// modernc.org/sqlite, no CGO) and PGStore on PostgreSQL through pgxpool.
// Both migrate their schema with goose from embedded SQL files.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// ScoreEntry represents a single score record.
type ScoreEntry struct {
	ID         int64
	GameID     string
	PlayerID   string
	PlayerName string
	Score      int
	CreatedAt  time.Time
}

// Profile is a player identity.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
	LastSeen  time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// migrate applies the embedded migrations for dialect from dir.
func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// parseTime accepts the forms SQLite hands back for DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
