package dodge

import "math"

// DashPhase is the observable state of the dash ability.
type DashPhase int

const (
	DashReady    DashPhase = iota
	DashActive             // invulnerable and boosted
	DashCooldown           // spent, waiting to recharge
)

// String returns the phase name.
func (p DashPhase) String() string {
	switch p {
	case DashActive:
		return "active"
	case DashCooldown:
		return "cooldown"
	default:
		return "ready"
	}
}

// Dash tracks the dash ability. The active window and the cooldown start
// together, so the cooldown includes the active time.
type Dash struct {
	ActiveMs   float64
	CooldownMs float64
}

// Phase derives the phase from the two timers.
func (d Dash) Phase() DashPhase {
	switch {
	case d.ActiveMs > 0:
		return DashActive
	case d.CooldownMs > 0:
		return DashCooldown
	default:
		return DashReady
	}
}

// Active reports whether the dash grants immunity right now.
func (d Dash) Active() bool {
	return d.ActiveMs > 0
}

// Ready reports whether a dash may be activated.
func (d Dash) Ready() bool {
	return d.CooldownMs == 0 && d.ActiveMs == 0
}

// Activate starts both windows. It returns false when the dash is not ready.
func (d *Dash) Activate(activeMs, cooldownMs float64) bool {
	if !d.Ready() {
		return false
	}
	d.ActiveMs = activeMs
	d.CooldownMs = cooldownMs
	return true
}

// Tick counts both windows down, clamped at zero.
func (d *Dash) Tick(dtMs float64) {
	d.ActiveMs = math.Max(0, d.ActiveMs-dtMs)
	d.CooldownMs = math.Max(0, d.CooldownMs-dtMs)
}

// Shield absorbs one obstacle hit while its timer runs.
type Shield struct {
	RemainingMs float64
}

// Held reports whether the shield is up.
func (s Shield) Held() bool {
	return s.RemainingMs > 0
}

// Grant raises the shield for durationMs. A shield already held is left alone.
func (s *Shield) Grant(durationMs float64) bool {
	if s.Held() {
		return false
	}
	s.RemainingMs = durationMs
	return true
}

// Consume drops the shield after it absorbed a hit.
func (s *Shield) Consume() {
	s.RemainingMs = 0
}

// Tick counts the shield down, clamped at zero.
func (s *Shield) Tick(dtMs float64) {
	s.RemainingMs = math.Max(0, s.RemainingMs-dtMs)
}

// movePlayer integrates horizontal movement and keeps the player on the field.
func (s *Session) movePlayer(dt float64, in Input) {
	speed := s.player.Speed
	if s.dash.Active() {
		speed *= s.cfg.Abilities.DashSpeedMul
	}
	s.player.X += in.Direction() * speed * dt
	s.player.X = math.Max(0, math.Min(s.player.X, s.width-s.player.W))
}

// tryDash activates the dash on the press edge of the dash input.
// Holding the key through the cooldown does not fire it again.
func (s *Session) tryDash(in Input) bool {
	pressed := in.Dash && !s.dashHeld
	s.dashHeld = in.Dash
	if !pressed {
		return false
	}
	a := s.cfg.Abilities
	if !s.dash.Activate(a.DashActiveMs, a.DashCooldownMs) {
		return false
	}
	s.hintShown = true
	s.shake = math.Max(s.shake, 0.45)
	cx, cy := s.player.Center()
	s.burst(cx, cy, s.hueBase, s.cfg.Effects.DashBurst)
	return true
}
