package dodge

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Block is a falling obstacle.
type Block struct {
	X, Y float64
	W, H float64
	VY   float64 // px/s, downward
	Hue  float64
}

// Rect returns the collision box.
func (b Block) Rect() core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// CoinKind distinguishes score coins from shield pickups.
type CoinKind int

const (
	CoinNormal CoinKind = iota
	CoinShield
)

// Coin is a falling pickup. X and Y are the top-left of its bounding square.
type Coin struct {
	X, Y float64
	R    float64
	VY   float64
	Kind CoinKind
	Hue  float64
}

// Circle returns the collision circle.
func (c Coin) Circle() core.Circle {
	return core.Circle{CX: c.X + c.R, CY: c.Y + c.R, R: c.R}
}

// Particle is a cosmetic spark with no gameplay effect.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64 // seconds
	Life   float64 // seconds
	Hue    float64
	Light  bool // trail sparks render brighter than bursts
}

// Fade returns the remaining opacity in [0, 1].
func (p Particle) Fade() float64 {
	if p.Life <= 0 {
		return 0
	}
	return core.ClampF(1-p.Age/p.Life, 0, 1)
}

// Player is the horizontally moving body at the bottom of the field.
type Player struct {
	X, Y  float64
	W, H  float64
	Speed float64 // px/s
}

// Rect returns the collision box.
func (p Player) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the middle of the player box.
func (p Player) Center() (float64, float64) {
	return p.X + p.W/2, p.Y + p.H/2
}

// advanceEntities moves every entity by dt seconds and drops blocks and
// coins that fell past limit and particles that outlived their life.
func (s *Session) advanceEntities(dt float64) {
	limit := s.height + s.cfg.World.PruneMargin

	blocks := s.blocks[:0]
	for _, b := range s.blocks {
		b.Y += b.VY * dt
		if b.Y < limit {
			blocks = append(blocks, b)
		}
	}
	s.blocks = blocks

	coins := s.coins[:0]
	for _, c := range s.coins {
		c.Y += c.VY * dt
		if c.Y < limit {
			coins = append(coins, c)
		}
	}
	s.coins = coins

	particles := s.particles[:0]
	for _, p := range s.particles {
		p.Age += dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		if p.Age < p.Life {
			particles = append(particles, p)
		}
	}
	s.particles = particles
}

// blockHue picks a hue near the current base so waves drift in color with the score.
func (s *Session) blockHue() float64 {
	return math.Mod(s.hueBase+math.Floor(s.rng.Float64()*60), 360)
}

func (s *Session) addBlock(b Block) {
	b.Hue = s.blockHue()
	s.blocks = append(s.blocks, b)
}

func (s *Session) spawnDrip(fall float64) {
	s.addBlock(Block{
		X:  between(s.rng, 0, s.width-40),
		Y:  -30,
		W:  between(s.rng, 22, 38),
		H:  between(s.rng, 16, 26),
		VY: fall,
	})
}

func (s *Session) spawnCoin(fall float64) {
	s.coins = append(s.coins, Coin{
		X:    between(s.rng, 12, s.width-24),
		Y:    -18,
		R:    between(s.rng, 8, 11),
		VY:   fall * s.cfg.Spawn.CoinFallScale,
		Kind: CoinNormal,
		Hue:  coinHue,
	})
}

func (s *Session) spawnShield(fall float64) {
	s.coins = append(s.coins, Coin{
		X:    between(s.rng, 14, s.width-28),
		Y:    -20,
		R:    11,
		VY:   fall * s.cfg.Spawn.ShieldFallScale,
		Kind: CoinShield,
		Hue:  shieldHue,
	})
}

const (
	coinHue   = 48
	shieldHue = 200
)
