// Package dodge implements an arcade dodge game: blocks rain down, the
// player slides along the bottom, collects coins, and survives with a
// timed dash and a one-hit shield.
//
// Session holds the whole simulation state and advances it by explicit
// time steps. Driver connects a Session to a clock and a score sink. Game
// adapts both to the platform's registry.Game interface.
package dodge

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Input is the player's intent for one step.
type Input struct {
	Left  bool
	Right bool
	Dash  bool
}

// InputFromFrame reads held movement and dash actions from a platform frame.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Left:  f.Has(core.ActionLeft),
		Right: f.Has(core.ActionRight),
		Dash:  f.Has(core.ActionDash),
	}
}

// Direction returns -1, 0 or 1.
func (in Input) Direction() float64 {
	d := 0.0
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}

// StepOutcome reports what happened during one step.
type StepOutcome struct {
	Ended    bool   // the session became terminal on this step
	Waves    []Wave // pattern waves spawned on this step
	Absorbed int    // blocks absorbed by the shield
}

// Session is the state of one run from reset to game over.
type Session struct {
	cfg      config.DodgeConfig
	curves   config.Curves
	rng      RNG
	patterns *PatternGen

	width, height float64

	player    Player
	blocks    []Block
	coins     []Coin
	particles []Particle

	dash     Dash
	dashHeld bool
	shield   Shield
	shake    float64

	elapsed    float64 // seconds
	score      float64
	hueBase    float64
	hintShown  bool
	coinsTaken int

	dripAcc    Accumulator
	patternAcc Accumulator
	coinAcc    Accumulator
	shieldAcc  Accumulator

	running bool
	over    bool
}

// NewSession creates an idle session on a width x height pixel field.
func NewSession(cfg config.DodgeConfig, rng RNG, width, height float64) *Session {
	s := &Session{
		cfg:      cfg,
		curves:   config.NewCurves(cfg.Curves, cfg.Difficulty),
		rng:      rng,
		patterns: NewPatternGen(cfg.Patterns, rng),
		width:    width,
		height:   height,
	}
	s.Reset()
	return s
}

// Reset returns the session to its initial idle state: no entities, zero
// timers and score, player centred, not running and not over.
func (s *Session) Reset() {
	w := s.cfg.World
	s.player = Player{
		X:     s.width/2 - w.PlayerWidth/2,
		Y:     s.height - w.PlayerBottom,
		W:     w.PlayerWidth,
		H:     w.PlayerHeight,
		Speed: w.PlayerSpeed,
	}
	s.blocks = s.blocks[:0]
	s.coins = s.coins[:0]
	s.particles = s.particles[:0]

	s.dash = Dash{}
	s.dashHeld = false
	s.shield = Shield{}
	s.shake = 0

	s.elapsed = 0
	s.score = 0
	s.hueBase = 260
	s.hintShown = false
	s.coinsTaken = 0

	s.dripAcc.Reset()
	s.patternAcc.Reset()
	s.coinAcc.Reset()
	s.shieldAcc.Reset()
	s.patterns.Reset()

	s.running = false
	s.over = false
}

// Start resets the session and begins running it.
func (s *Session) Start() {
	s.Reset()
	s.running = true
}

func (s *Session) end() {
	s.running = false
	s.over = true
}

// Resize changes the playfield. The player keeps its horizontal position
// where possible and stays pinned to the bottom.
func (s *Session) Resize(width, height float64) {
	s.width, s.height = width, height
	s.player.Y = height - s.cfg.World.PlayerBottom
	s.player.X = math.Max(0, math.Min(s.player.X, width-s.player.W))
}

// TooSmall reports whether the field is too narrow to guarantee passable
// wall gaps. Steps are skipped until the field grows.
func (s *Session) TooSmall() bool {
	return s.width < s.cfg.MinWorldWidth() || s.height < s.cfg.World.PlayerBottom+s.cfg.World.PlayerHeight
}

// Step advances the simulation by dt seconds. It does nothing unless the
// session is running.
func (s *Session) Step(dt float64, in Input) StepOutcome {
	var out StepOutcome
	if !s.running || s.over || s.TooSmall() {
		return out
	}
	if dt < 0 {
		dt = 0
	}
	dtMs := dt * 1000

	s.elapsed += dt
	s.hueBase = 220 + math.Mod(s.score/14, 140)

	s.dash.Tick(dtMs)
	s.shield.Tick(dtMs)
	s.patterns.Tick(dtMs)
	if s.shake > 0 {
		s.shake = math.Max(0, s.shake-dt*s.cfg.Effects.ShakeDecayPerSec)
	}

	s.score += dt * s.cfg.Scoring.PointsPerSecond

	s.movePlayer(dt, in)
	s.tryDash(in)

	s.spawn(dtMs, &out)
	s.advanceEntities(dt)

	if s.dash.Active() {
		cx, cy := s.player.Center()
		s.trail(cx, cy, s.hueBase, s.cfg.Effects.DashTrailPerFrame)
	}

	s.collectPickups()
	out.Ended = s.resolveObstacles(&out)
	return out
}

// spawn drains the four spawn accumulators. Intervals and fall speed are
// evaluated once per step, before draining.
func (s *Session) spawn(dtMs float64, out *StepOutcome) {
	t := s.elapsed
	fall := s.curves.FallSpeed(t)
	sp := s.cfg.Spawn

	s.dripAcc.Drain(dtMs, s.curves.DripInterval(t, s.score), func() {
		s.spawnDrip(fall)
	})
	s.patternAcc.Drain(dtMs, sp.PatternEveryMs, func() {
		w := s.patterns.Next(s.curves.Time(t), fall, s.width)
		for _, b := range w.Blocks {
			s.addBlock(b)
		}
		out.Waves = append(out.Waves, w)
	})
	s.coinAcc.Drain(dtMs, sp.CoinEveryMs, func() {
		s.spawnCoin(fall)
	})
	s.shieldAcc.Drain(dtMs, sp.ShieldEveryMs, func() {
		if !s.shield.Held() {
			s.spawnShield(fall)
		}
	})
}

// Lanes returns the wave lane count. It follows difficulty progression, so
// the fixed preset stays at the base count and hard starts wider.
func (s *Session) Lanes() int { return s.patterns.Cols(s.curves.Time(s.elapsed)) }

// Running reports whether steps are being simulated.
func (s *Session) Running() bool { return s.running }

// Over reports whether the session ended in a collision.
func (s *Session) Over() bool { return s.over }

// Score returns the floored score.
func (s *Session) Score() int { return int(math.Floor(s.score)) }

// Elapsed returns the simulated seconds since start.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Config returns the tuning the session runs with.
func (s *Session) Config() config.DodgeConfig { return s.cfg }

// Player returns the player body.
func (s *Session) Player() Player { return s.player }

// Blocks returns the live obstacles. The slice must not be modified.
func (s *Session) Blocks() []Block { return s.blocks }

// Coins returns the live pickups. The slice must not be modified.
func (s *Session) Coins() []Coin { return s.coins }

// Dash returns the dash timers.
func (s *Session) Dash() Dash { return s.dash }

// Shield returns the shield timer.
func (s *Session) Shield() Shield { return s.shield }

// Size returns the playfield in pixels.
func (s *Session) Size() (float64, float64) { return s.width, s.height }
