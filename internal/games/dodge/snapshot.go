package dodge

// Snapshot contains the observable session state using primitive types
// only, for tests, headless runs and stats output.
type Snapshot struct {
	Elapsed   float64
	Score     float64
	PlayerX   float64
	PlayerY   float64
	Blocks    int
	Coins     int
	Particles int
	CoinsHit  int

	DashPhase      string
	DashActiveMs   float64
	DashCooldownMs float64
	ShieldMs       float64
	Shake          float64
	HintShown      bool

	DripAcc    float64
	PatternAcc float64
	CoinAcc    float64
	ShieldAcc  float64

	Lanes          int
	LastPattern    string
	LastGap        int
	WallCooldownMs float64
	HueBase        float64

	Running bool
	Over    bool
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Elapsed:   s.elapsed,
		Score:     s.score,
		PlayerX:   s.player.X,
		PlayerY:   s.player.Y,
		Blocks:    len(s.blocks),
		Coins:     len(s.coins),
		Particles: len(s.particles),
		CoinsHit:  s.coinsTaken,

		DashPhase:      s.dash.Phase().String(),
		DashActiveMs:   s.dash.ActiveMs,
		DashCooldownMs: s.dash.CooldownMs,
		ShieldMs:       s.shield.RemainingMs,
		Shake:          s.shake,
		HintShown:      s.hintShown,

		DripAcc:    s.dripAcc.Value(),
		PatternAcc: s.patternAcc.Value(),
		CoinAcc:    s.coinAcc.Value(),
		ShieldAcc:  s.shieldAcc.Value(),

		Lanes:          s.Lanes(),
		LastPattern:    s.patterns.Last().String(),
		LastGap:        s.patterns.lastGap,
		WallCooldownMs: s.patterns.WallCooldown(),
		HueBase:        s.hueBase,

		Running: s.running,
		Over:    s.over,
	}
}
