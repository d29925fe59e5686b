package dodge

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/registry"
)

// GameID is the registry and score storage identifier.
const GameID = "dodge"

var (
	_ registry.Resizable = (*Game)(nil)
	_ registry.Flusher   = (*Game)(nil)
)

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Settings shared by every game instance, set from CLI flags.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	scoreSink        ScoreSink
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetScoreSink sets where final scores are reported.
func SetScoreSink(sink ScoreSink) {
	scoreSink = sink
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig loads the dodge config from the configured path and applies the preset.
func LoadConfig() (config.DodgeConfig, error) {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) (config.DodgeConfig, error) {
	cfg, err := config.LoadDodge(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyDodgePreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// Game adapts a Driver and Renderer to the platform's registry.Game.
type Game struct {
	runtime  core.RuntimeConfig
	cfg      config.DodgeConfig
	session  *Session
	driver   *Driver
	renderer *Renderer
	log      *log.Logger

	// Drivers replaced by Reset while a report was still pending.
	retired []*Driver
}

// New creates a new dodge game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dodge"
}

// Reset loads config and builds a fresh idle session sized to the screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger.WithPrefix(GameID)

	preset := difficultyPreset
	if p := config.ParsePreset(runtime.Difficulty); p != "" {
		preset = p
	}

	cfg, err := loadConfig(preset)
	if err != nil {
		g.log.Warn("using default config", "error", err)
		cfg = config.DefaultDodgeConfig()
		config.ApplyDodgePreset(&cfg, preset)
	}
	g.cfg = cfg

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	best := runtime.Best
	if g.driver != nil {
		best = max(best, g.driver.Best())
		if g.driver.Pending() > 0 {
			g.retired = append(g.retired, g.driver)
		}
	}

	w, h := g.worldSize(runtime.ScreenW, runtime.ScreenH)
	g.session = NewSession(cfg, NewRNG(seed), w, h)
	g.driver = NewDriver(g.session, runtime.Clock, DriverOptions{
		Sink:   scoreSink,
		Logger: g.log,
		Player: runtime.Player,
	})
	g.driver.SetBest(best)
	g.renderer = NewRenderer(cfg, g.loadSprite(), seed+1)
}

func (g *Game) worldSize(cols, rows int) (float64, float64) {
	return float64(cols * g.cfg.Render.CellWidth), float64(rows * g.cfg.Render.CellHeight)
}

// loadSprite returns the configured player sprite, or nil for the placeholder.
func (g *Game) loadSprite() *Sprite {
	path := g.cfg.Render.PlayerSprite
	if path == "" {
		return nil
	}
	w := int(g.cfg.World.PlayerWidth) / g.cfg.Render.CellWidth
	h := int(g.cfg.World.PlayerHeight) / g.cfg.Render.CellHeight
	sprite, err := LoadSprite(path, w, h)
	if err != nil {
		g.log.Debug("player sprite unavailable, drawing placeholder", "path", path, "error", err)
		return nil
	}
	return sprite
}

// Resize adapts the playfield to a new terminal size without ending the session.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW, g.runtime.ScreenH = cols, rows
	g.session.Resize(g.worldSize(cols, rows))
}

// Step handles lifecycle actions and advances the session by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionStart) {
		g.driver.Start()
	}
	if in.Has(core.ActionRestart) {
		g.driver.Retry()
	}
	if in.Has(core.ActionPause) {
		g.driver.TogglePause()
	}

	out := g.driver.Frame(in)
	return core.StepResult{State: g.State(), Ended: out.Ended}
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Draw(dst, g.session, Frame{Best: g.driver.Best(), Paused: g.driver.Paused()})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Best:     g.driver.Best(),
		Running:  g.session.Running(),
		GameOver: g.session.Over(),
		Paused:   g.driver.Paused(),
	}
}

// Config returns the effective config of the current session.
func (g *Game) Config() config.DodgeConfig {
	return g.cfg
}

// Pending returns the number of score reports still in flight.
func (g *Game) Pending() int {
	n := 0
	for _, d := range g.retired {
		n += d.Pending()
	}
	if g.driver != nil {
		n += g.driver.Pending()
	}
	return n
}

// Flush waits for pending score reports, including those of sessions
// replaced by Reset, until ctx is done.
func (g *Game) Flush(ctx context.Context) error {
	var errs []error
	kept := g.retired[:0]
	for _, d := range g.retired {
		if err := d.WaitReports(ctx); err != nil {
			errs = append(errs, err)
			kept = append(kept, d)
		}
	}
	g.retired = kept
	if g.driver != nil {
		errs = append(errs, g.driver.WaitReports(ctx))
	}
	return errors.Join(errs...)
}

// Driver exposes the underlying driver.
func (g *Game) Driver() *Driver {
	return g.driver
}
