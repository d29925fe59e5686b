// Package registry maps game IDs to factories. Game packages register
// from init; the CLI and the terminal platform create games by ID, so
// neither imports a game package directly.
package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Game is what the platform drives once per tick. Implementations hold no
// terminal state.
type Game interface {
	ID() string
	Title() string

	// Reset builds a fresh idle game for the given screen, seed, player
	// and clock.
	Reset(cfg core.RuntimeConfig)

	// Step applies lifecycle actions, then advances by the clock's delta.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizable is implemented by games that adapt to a new terminal size
// without resetting.
type Resizable interface {
	Resize(cols, rows int)
}

// Flusher is implemented by games that finish work in the background,
// such as score reports, and must be waited on before exit.
type Flusher interface {
	// Pending reports how much background work is unfinished.
	Pending() int
	Flush(ctx context.Context) error
}

// Info describes a registered game.
type Info struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on a duplicate id.
func Register(id string, f Factory) {
	title := f().Title()

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: Info{ID: id, Title: title}, factory: f}
}

// List returns the registered games sorted by ID.
func List() []Info {
	mu.RLock()
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Flush waits for g's background work until ctx is done. Games that are
// not a Flusher return nil at once.
func Flush(ctx context.Context, g Game) error {
	f, ok := g.(Flusher)
	if !ok {
		return nil
	}
	return f.Flush(ctx)
}
