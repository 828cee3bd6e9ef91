// Package registry holds the games known to the arcade. Each game package
// registers a factory from init, and the commands, the menu and the SSH
// server look games up here by id.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/bomber-legend/internal/config"
	"github.com/vovakirdan/bomber-legend/internal/core"
)

// Game is a pure simulation driven one fixed tick at a time. It never
// touches the terminal: the platform maps keys to actions, owns the clock
// and hands over a cleared screen to draw into.
type Game interface {
	// ID is the stable key used on the command line and in score storage.
	ID() string
	Title() string

	// Reset starts a fresh run sized to cfg. It is called before the first
	// Step and again whenever the platform restarts the game.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions held during it.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// Configurable is implemented by games that load tuning from a config file
// and accept a difficulty preset. An empty path uses the default search path.
type Configurable interface {
	Configure(path string, preset config.DifficultyPreset) error
}

// Configure applies path and preset when g supports configuration.
func Configure(g Game, path string, preset config.DifficultyPreset) error {
	c, ok := g.(Configurable)
	if !ok {
		return nil
	}
	return c.Configure(path, preset)
}

// Describer is implemented by games with a one-line description for listings.
type Describer interface {
	Blurb() string
}

// GameInfo describes a registered game without instantiating it.
type GameInfo struct {
	ID    string
	Title string
	Blurb string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a game under id. It panics on an empty or duplicate id, or
// when the factory builds a game reporting a different id.
func Register(id string, f Factory) {
	id = strings.TrimSpace(id)
	if id == "" {
		panic("registry: empty game id")
	}

	sample := f()
	if sample.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds %q", id, sample.ID()))
	}
	info := GameInfo{ID: id, Title: sample.Title()}
	if d, ok := sample.(Describer); ok {
		info.Blurb = d.Blurb()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, factory: f}
}

// List returns every registered game ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Lookup returns the metadata for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
