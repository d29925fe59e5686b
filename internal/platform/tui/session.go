package tui

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

// DefaultFlushTimeout bounds how long an exiting session waits for score
// reports. It covers the default report timeout.
const DefaultFlushTimeout = 6 * time.Second

// gameTracker holds the games a session created that may still be
// reporting. Copies of a SessionModel share one tracker.
type gameTracker struct {
	mu    sync.Mutex
	games []registry.Game
}

// add tracks g and forgets earlier games with nothing left to wait for.
// Games are only tracked once they are no longer stepped, so their
// pending count never grows again.
func (t *gameTracker) add(g registry.Game) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.games[:0]
	for _, old := range t.games {
		if f, ok := old.(registry.Flusher); ok && f.Pending() > 0 {
			kept = append(kept, old)
		}
	}
	t.games = append(kept, g)
}

func (t *gameTracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.games)
}

// flush waits for every tracked game until ctx is done.
func (t *gameTracker) flush(ctx context.Context) error {
	t.mu.Lock()
	games := t.games
	t.games = nil
	t.mu.Unlock()

	var errs []error
	for _, g := range games {
		if err := registry.Flush(ctx, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// flushGames waits up to timeout for games' background work.
func flushGames(t *gameTracker, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return t.flush(ctx)
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	GameID   string
	Store    *storage.Store
	Keys     *KeyMapper
	Hold     time.Duration
	Renderer *ScreenRenderer
}

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard reachable from the menu. Local menu mode and every SSH
// connection run one of these.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	game     *GameModel
	scores   *ScoreboardModel
	games    *gameTracker
	quitting bool
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Renderer == nil {
		opts.Renderer = NewScreenRenderer(nil)
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, opts.GameID, cfg, opts.Renderer),
		games:  &gameTracker{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoiceScores:
		m.menu.Reset()
		sb := NewScoreboardModel(m.opts.Store, m.opts.GameID, m.config.Player,
			m.config.ScreenW, m.config.ScreenH, m.opts.Renderer)
		m.scores = &sb
		m.view = viewScores
		return m, sb.Init()

	case ChoicePlay:
		m.menu.Reset()
		game, err := registry.Create(m.opts.GameID)
		if err != nil {
			// Shouldn't happen since the command line checks the ID
			return m, nil
		}

		cfg := m.menu.Config()
		cfg.ScreenW, cfg.ScreenH = m.config.ScreenW, m.config.ScreenH
		cfg.Seed = time.Now().UnixNano()
		cfg.Best = m.menu.best
		m.config.Difficulty = cfg.Difficulty

		gm := NewGameModel(game, cfg, ModelOptions{
			Keys:     m.opts.Keys,
			Hold:     m.opts.Hold,
			Renderer: m.opts.Renderer,
		})
		m.games.add(game)
		m.game = &gm
		m.view = viewGame
		return m, gm.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.backToMenu()
		// Dropping cmd stops the tick loop
		return m, nil
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is open.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.scores = nil
		m.backToMenu()
		return m, nil
	}

	return m, cmd
}

// backToMenu rebuilds the menu so best scores are current, keeping the
// cursor and difficulty.
func (m *SessionModel) backToMenu() {
	prev := m.menu
	m.menu = NewMenuModel(m.opts.Store, m.opts.GameID, m.config, m.opts.Renderer)
	m.menu.cursor = prev.cursor
	m.menu.difficulty = prev.difficulty
	m.view = viewMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Flush waits until ctx is done for score reports from every game this
// session played.
func (m SessionModel) Flush(ctx context.Context) error {
	return m.games.flush(ctx)
}

// RunSession runs the menu flow in the current terminal. Before returning
// it waits for pending score reports so the caller can close the store.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	model := NewSessionModel(cfg, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return errors.Join(err, flushGames(model.games, DefaultFlushTimeout))
}
