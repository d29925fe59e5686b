package dodge

import "math"

// burst emits n sparks flying out from (x, y) in random directions.
func (s *Session) burst(x, y, hue float64, n int) {
	if !s.cfg.Effects.Particles {
		return
	}
	for range n {
		a := s.rng.Float64() * math.Pi * 2
		speed := between(s.rng, 110, 260)
		s.particles = append(s.particles, Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(a) * speed,
			VY:   math.Sin(a) * speed,
			Life: between(s.rng, 0.28, 0.6),
			Hue:  hue,
		})
	}
}

// trail emits n slow sparks around (x, y) while the dash is active.
func (s *Session) trail(x, y, hue float64, n int) {
	if !s.cfg.Effects.Particles {
		return
	}
	for range n {
		s.particles = append(s.particles, Particle{
			X:     x + between(s.rng, -3, 3),
			Y:     y + between(s.rng, -3, 3),
			VX:    between(s.rng, -60, 60),
			VY:    between(s.rng, -20, 10),
			Life:  between(s.rng, 0.22, 0.4),
			Hue:   hue,
			Light: true,
		})
	}
}
