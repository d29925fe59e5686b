package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

const stubID = "tui_stub"

// stubGame records every frame it is stepped with.
type stubGame struct {
	frames  []core.InputFrame
	resets  int
	resized [2]int
	state   core.GameState

	// reports is closed when the game's background work finishes.
	reports chan struct{}
	flushed int
}

func (g *stubGame) ID() string    { return stubID }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	cp := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			cp.Set(a)
		}
	}
	g.frames = append(g.frames, cp)
	if in.Has(core.ActionStart) || in.Has(core.ActionRestart) {
		g.state = core.GameState{Running: true}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColor(0, 0, "stub", core.ColorDefault)
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Resize(cols, rows int) { g.resized = [2]int{cols, rows} }

func (g *stubGame) Pending() int {
	if g.reports == nil {
		return 0
	}
	select {
	case <-g.reports:
		return 0
	default:
		return 1
	}
}

func (g *stubGame) Flush(ctx context.Context) error {
	if g.reports == nil {
		return nil
	}
	select {
	case <-g.reports:
		g.flushed++
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *stubGame) last() core.InputFrame {
	if len(g.frames) == 0 {
		return core.NewInputFrame()
	}
	return g.frames[len(g.frames)-1]
}

func init() {
	registry.Register(stubID, func() registry.Game { return &stubGame{} })
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1, Player: "alice"}
}
