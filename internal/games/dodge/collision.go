package dodge

import "math"

// collectPickups removes every coin touching the player and applies it.
func (s *Session) collectPickups() {
	box := s.player.Rect()
	fx := s.cfg.Effects

	kept := s.coins[:0]
	for _, c := range s.coins {
		if !box.IntersectsCircle(c.Circle()) {
			kept = append(kept, c)
			continue
		}
		switch c.Kind {
		case CoinShield:
			// Spawns are suppressed while the shield is held, so a second
			// pickup here is just removed.
			if s.shield.Grant(s.cfg.Abilities.ShieldDurationMs) {
				cx, _ := s.player.Center()
				s.burst(cx, s.player.Y, shieldHue, fx.ShieldPickupBurst)
				s.shake = math.Max(s.shake, 0.5)
			}
		default:
			s.score += s.cfg.Scoring.CoinValue
			s.coinsTaken++
			s.burst(c.X+c.R, c.Y+c.R, coinHue, fx.CoinBurst)
		}
	}
	s.coins = kept
}

// resolveObstacles checks blocks in order against the player. A dash ignores
// every hit, a shield absorbs one and removes that block, anything else ends
// the session. It returns true if the session ended.
func (s *Session) resolveObstacles(out *StepOutcome) bool {
	if s.dash.Active() {
		return false
	}
	box := s.player.Rect()

	for i := 0; i < len(s.blocks); i++ {
		if !box.Intersects(s.blocks[i].Rect()) {
			continue
		}
		if s.shield.Held() {
			s.shield.Consume()
			cx, _ := s.player.Center()
			s.burst(cx, s.player.Y, shieldHue, s.cfg.Effects.ShieldBreakBurst)
			s.shake = 0.9
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			i--
			out.Absorbed++
			continue
		}
		s.end()
		return true
	}
	return false
}
