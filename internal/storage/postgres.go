package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PGOptions tunes the Postgres connection pool.
type PGOptions struct {
	MaxConns        int32
	MinConns        int32
	ConnMaxLifetime time.Duration
}

// PGStore keeps scores and profiles in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn, verifies the connection and runs migrations.
func OpenPostgres(ctx context.Context, dsn string, opts PGOptions) (*PGStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: parse dsn: %w", err)
	}
	if opts.MaxConns > 0 {
		poolCfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		poolCfg.MinConns = opts.MinConns
	}
	if opts.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = opts.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping db: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrate(ctx, db, "postgres", "migrations/postgres")
	db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PGStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) SaveScore(ctx context.Context, e ScoreEntry) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scores (game_id, player_id, player_name, score)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		e.GameID, e.PlayerID, e.PlayerName, e.Score,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

func (s *PGStore) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, game_id, player_id, player_name, score, created_at
		 FROM scores
		 WHERE game_id = $1
		 ORDER BY score DESC, id ASC
		 LIMIT $2`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.ID, &e.GameID, &e.PlayerID, &e.PlayerName, &e.Score, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func (s *PGStore) SaveProfile(ctx context.Context, p Profile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, name) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, last_seen = now()`,
		p.ID, p.Name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

func (s *PGStore) ProfileByName(ctx context.Context, name string) (*Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_at, last_seen FROM profiles WHERE name = $1",
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.LastSeen)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profile: %w", err)
	}
	return &p, nil
}
