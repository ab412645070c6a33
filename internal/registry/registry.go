// Package registry maps game IDs to factories.
// Games register themselves in init(), so front ends (the CLI, the SSH
// server) can build a fresh instance per player without importing the
// game package directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-connect4/internal/core"
)

// Game is what the platform drives. Implementations hold pure game logic
// and never touch the terminal; the platform maps keys to actions, calls
// Step once per tick and Render once per frame.
type Game interface {
	// ID returns the identifier used on the command line and in the
	// results ledger (e.g. "connect4").
	ID() string

	// Title returns the display name.
	Title() string

	// Reset starts a new game. Called once before the first Step and
	// again on restart. Games that can keep their state across a terminal
	// resize implement Resizer.
	Reset(cfg core.RuntimeConfig)

	// Step applies the input gathered since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current platform-level state.
	State() core.GameState
}

// Resizer is optionally implemented by games that adapt to a new screen
// size without starting over.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, independent game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id.
// Panics on an empty id or when id is already taken.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a new game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
