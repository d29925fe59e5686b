package dodge

import "github.com/vovakirdan/tui-dodge/internal/config"

const (
	testW = 640.0
	testH = 384.0
)

// quietConfig pushes every spawn interval out of reach so tests control
// exactly which entities exist.
func quietConfig() config.DodgeConfig {
	cfg := config.DefaultDodgeConfig()
	cfg.Curves.DripBase = 1e9
	cfg.Curves.DripMin = 1e9
	cfg.Spawn.PatternEveryMs = 1e9
	cfg.Spawn.CoinEveryMs = 1e9
	cfg.Spawn.ShieldEveryMs = 1e9
	return cfg
}

func startedSession(cfg config.DodgeConfig, seed int64) *Session {
	s := NewSession(cfg, NewRNG(seed), testW, testH)
	s.Start()
	return s
}

// onPlayer returns a motionless block covering the player exactly.
func onPlayer(s *Session) Block {
	p := s.Player()
	return Block{X: p.X, Y: p.Y, W: p.W, H: p.H}
}
