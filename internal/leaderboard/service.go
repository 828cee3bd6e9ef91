// Package leaderboard is the profile and score client used by the games.
//
// A Service caches the signed-in profile and the last fetched table per game.
// Backend failures are logged and answered from the cache; the simulation
// never waits on this package.
package leaderboard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/bomber-legend/internal/storage"
)

// DefaultName is the profile name used when none is configured.
const DefaultName = "PlayerOne"

// Profile is the signed-in player.
type Profile struct {
	ID        string
	Name      string
	AvatarURL string
}

// Entry is one ranked leaderboard row. Ranks start at 1.
type Entry struct {
	Rank  int
	Name  string
	Score int
}

// Backend is a remote score and profile store.
type Backend interface {
	SaveProfile(ctx context.Context, p storage.Profile) error
	ProfileByName(ctx context.Context, name string) (*storage.Profile, error)
	SaveScore(ctx context.Context, e storage.ScoreEntry) (int64, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]storage.ScoreEntry, error)
}

// mockEntries seeds the table of every game when no backend is configured.
var mockEntries = []Entry{
	{Rank: 1, Name: "BomberPro", Score: 5000},
	{Rank: 2, Name: "BlastMaster", Score: 4200},
	{Rank: 3, Name: "ExplosionKing", Score: 3800},
	{Rank: 4, Name: "TNT_Lover", Score: 3100},
	{Rank: 5, Name: "FuseRunner", Score: 2500},
}

// Service is safe for concurrent use.
type Service struct {
	backend Backend
	name    string
	topN    int
	timeout time.Duration
	limiter *RateLimiter
	logger  *log.Logger

	mu      sync.RWMutex
	profile *Profile
	cache   map[string][]Entry
}

// Option configures a Service.
type Option func(*Service)

// WithBackend stores profiles and scores in b. Without it the service runs
// on an in-memory mock table.
func WithBackend(b Backend) Option {
	return func(s *Service) { s.backend = b }
}

// WithName sets the profile name used by Login.
func WithName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.name = name
		}
	}
}

// WithTopN sets the number of rows kept per game.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithRateLimiter replaces the default 10 submissions per minute.
func WithRateLimiter(r *RateLimiter) Option {
	return func(s *Service) { s.limiter = r }
}

// WithLogger sets the logger used for degraded backend calls.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a service.
func New(opts ...Option) *Service {
	s := &Service{
		name:    DefaultName,
		topN:    10,
		timeout: 5 * time.Second,
		limiter: NewRateLimiter(10, time.Minute, nil),
		logger:  log.Default().WithPrefix("leaderboard"),
		cache:   make(map[string][]Entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mock reports whether the service runs without a backend.
func (s *Service) Mock() bool { return s.backend == nil }

func (s *Service) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Login signs in under the configured name, creating the profile on first
// use. A failing backend yields a local profile instead of an error.
func (s *Service) Login(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}

	p := Profile{ID: uuid.NewString(), Name: s.name}
	if s.backend != nil {
		if id, err := s.remoteLogin(ctx); err != nil {
			s.logger.Warn("login failed, using local profile", "name", s.name, "error", err)
		} else {
			p.ID = id
		}
	}

	s.mu.Lock()
	s.profile = &p
	s.mu.Unlock()

	s.logger.Debug("logged in", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) remoteLogin(ctx context.Context) (string, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	existing, err := s.backend.ProfileByName(ctx, s.name)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if existing != nil {
		id = existing.ID
	}
	if err := s.backend.SaveProfile(ctx, storage.Profile{ID: id, Name: s.name}); err != nil {
		return "", err
	}
	return id, nil
}

// Profile returns the signed-in profile, if any.
func (s *Service) Profile() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return Profile{}, false
	}
	return *s.profile, true
}

// Leaderboard returns the ranked table for a game. A backend failure or an
// empty remote table returns the cached rows.
func (s *Service) Leaderboard(ctx context.Context, gameID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.backend != nil {
		if entries, err := s.fetch(ctx, gameID); err != nil {
			s.logger.Warn("fetch leaderboard failed, serving cache", "game", gameID, "error", err)
		} else if len(entries) > 0 {
			s.mu.Lock()
			s.cache[gameID] = entries
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.table(gameID)), nil
}

func (s *Service) fetch(ctx context.Context, gameID string) ([]Entry, error) {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	rows, err := s.backend.TopScores(ctx, gameID, s.topN)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(rows))
	for i, r := range rows {
		name := r.PlayerName
		if name == "" {
			name = "Player"
		}
		entries[i] = Entry{Rank: i + 1, Name: name, Score: r.Score}
	}
	return entries, nil
}

// table returns the cached rows for gameID, seeding the mock table on first
// use. Callers hold s.mu.
func (s *Service) table(gameID string) []Entry {
	entries, ok := s.cache[gameID]
	if !ok && s.backend == nil {
		entries = slices.Clone(mockEntries)
		s.cache[gameID] = entries
	}
	return entries
}

// SubmitScore validates and records a score for the signed-in player. The
// local table is updated even when the backend write fails.
func (s *Service) SubmitScore(ctx context.Context, gameID string, score int) error {
	if !ValidateScore(score) {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	p, ok := s.Profile()
	if !ok {
		return ErrNotLoggedIn
	}
	if !s.limiter.Allow() {
		return ErrRateLimited
	}

	if s.backend != nil {
		cctx, cancel := s.callCtx(ctx)
		_, err := s.backend.SaveScore(cctx, storage.ScoreEntry{
			GameID:     gameID,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Score:      score,
		})
		cancel()
		if err != nil {
			s.logger.Warn("submit score failed", "game", gameID, "score", score, "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[gameID] = rerank(append(slices.Clone(s.table(gameID)), Entry{Name: p.Name, Score: score}), s.topN)
	return nil
}

// rerank sorts by score descending, keeping earlier rows first on ties,
// truncates to n rows and renumbers ranks from 1.
func rerank(entries []Entry, n int) []Entry {
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.Score - a.Score })
	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
