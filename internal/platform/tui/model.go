package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

// DefaultHold is how long a key counts as held after its last repeat
// when no config is available.
const DefaultHold = 180 * time.Millisecond

// ModelOptions configures a GameModel.
type ModelOptions struct {
	Keys     *KeyMapper
	Hold     time.Duration
	Renderer *ScreenRenderer

	// ExitOnBack quits the program on Back instead of returning to a menu.
	ExitOnBack bool

	// ScreenshotDir is where ctrl+s writes; empty means ~/.arcade/screenshots.
	ScreenshotDir string
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	renderer *ScreenRenderer
	config   core.RuntimeConfig
	mapper   *KeyMapper
	keys     *core.KeyState
	pending  core.InputFrame // one-shot actions until the next tick
	state    core.GameState
	now      func() time.Time
	loopID   int64

	exitOnBack    bool
	screenshotDir string

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Keys == nil {
		opts.Keys = DefaultKeyMapper()
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Renderer == nil {
		opts.Renderer = NewScreenRenderer(nil)
	}

	return GameModel{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:      opts.Renderer,
		config:        cfg,
		mapper:        opts.Keys,
		keys:          core.NewKeyState(opts.Hold),
		pending:       core.NewInputFrame(),
		now:           time.Now,
		loopID:        nextLoopID(),
		exitOnBack:    opts.ExitOnBack,
		screenshotDir: opts.ScreenshotDir,
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.loopID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.loopID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey records held keys and queues one-shot actions.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.mapper.IsHeld(msg.String()) {
		m.keys.Touch(msg.String(), m.now())
		return m, nil
	}

	switch action {
	case core.ActionBack:
		// Back works while idle, paused, or after game over.
		if m.state.Running && !m.state.Paused {
			return m, nil
		}
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case core.ActionStart:
		if !m.state.Running {
			m.pending.Set(core.ActionStart)
		}
	case core.ActionRestart:
		if m.state.GameOver {
			m.pending.Set(core.ActionRestart)
		}
	case core.ActionPause:
		if m.state.Running {
			m.pending.Set(core.ActionPause)
		}
	}

	return m, nil
}

// handleResize resizes the screen buffer and the playfield.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.state.Running {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick steps the game with the held keys and queued actions.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	m.mapper.Fill(m.keys, m.now(), &frame)
	for a, on := range m.pending.Actions {
		if on {
			frame.Set(a)
		}
	}
	m.pending.Clear()

	if frame.Has(core.ActionStart) || frame.Has(core.ActionRestart) {
		m.keys.Reset()
	}

	result := m.game.Step(frame)
	m.state = result.State

	return m, tickCmd(m.loopID, m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text.
func (m GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := m.now().Format("20060102_150405.000")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the current terminal, then waits for the
// game's pending score reports.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	opts.ExitOnBack = true
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultFlushTimeout)
	defer cancel()
	return errors.Join(err, registry.Flush(ctx, game))
}
