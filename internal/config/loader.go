package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadDodge loads dodge configuration.
// Search order: customPath -> ~/.arcade/configs/dodge.yaml -> ./configs/dodge.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the keys it names.
func LoadDodge(customPath string) (DodgeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseDodge(data)
		if err != nil {
			return DodgeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dodge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseDodge(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dodge.yaml")); err == nil {
		if cfg, err := ParseDodge(data); err == nil {
			return cfg, nil
		}
	}

	return embeddedDodge(), nil
}

// ParseDodge decodes YAML over the embedded defaults.
func ParseDodge(data []byte) (DodgeConfig, error) {
	cfg := embeddedDodge()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DodgeConfig{}, err
	}
	return cfg, nil
}

func embeddedDodge() DodgeConfig {
	cfg := DefaultDodgeConfig()
	if err := yaml.Unmarshal(defaultDodgeYAML, &cfg); err != nil {
		return DefaultDodgeConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyDodgePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config as loaded.
func ApplyDodgePreset(cfg *DodgeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Curves.FallScale = 0.85
		cfg.Curves.DripBase += 150
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.TimeOffset = 0
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.TimeOffset = 30
	}
}

// Marshal returns the YAML form of the config.
func (c DodgeConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects settings the engine cannot run with.
func (c DodgeConfig) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}

	w := c.World
	if w.PlayerWidth <= 0 || w.PlayerHeight <= 0 {
		return invalid("player size must be positive, got %vx%v", w.PlayerWidth, w.PlayerHeight)
	}
	if w.PlayerSpeed <= 0 {
		return invalid("player_speed must be positive, got %v", w.PlayerSpeed)
	}

	cv := c.Curves
	if cv.BaseFall <= 0 || cv.FallScale <= 0 {
		return invalid("base_fall and fall_scale must be positive")
	}
	if cv.FallLogGain < 0 || cv.FallLogRate < 0 || cv.FallSqrtGain < 0 {
		return invalid("fall curve gains must not be negative")
	}
	if cv.DripLogGain < 0 || cv.DripLogRate < 0 || cv.DripSqrtGain < 0 || cv.DripScoreGain < 0 {
		return invalid("drip curve gains must not be negative")
	}
	if cv.DripMin <= 0 {
		return invalid("drip_min must be positive, got %v", cv.DripMin)
	}
	if cv.DripMin > cv.DripBase {
		return invalid("drip_min %v exceeds drip_base %v", cv.DripMin, cv.DripBase)
	}

	s := c.Spawn
	if s.PatternEveryMs <= 0 || s.CoinEveryMs <= 0 || s.ShieldEveryMs <= 0 {
		return invalid("spawn intervals must be positive")
	}

	p := c.Patterns
	if p.BaseCols < 2 || p.MaxExtraCols < 0 {
		return invalid("base_cols must be at least 2 and max_extra_cols not negative")
	}
	if p.ColGrowthSecs <= 0 {
		return invalid("col_growth_secs must be positive")
	}
	if p.GapColsMin < 1 || p.GapColsMax < p.GapColsMin || p.GapColsMax >= p.BaseCols {
		return invalid("gap columns %d..%d out of range for %d lanes", p.GapColsMin, p.GapColsMax, p.BaseCols)
	}
	if p.MinGapPx < w.PlayerWidth {
		return invalid("min_gap_px %v narrower than the player (%v)", p.MinGapPx, w.PlayerWidth)
	}
	if p.StaggerSkipChance < 0 || p.StaggerSkipChance > 1 {
		return invalid("stagger_skip_chance must be within [0,1]")
	}

	a := c.Abilities
	if a.DashActiveMs <= 0 || a.DashCooldownMs < a.DashActiveMs {
		return invalid("dash_active_ms must be positive and not exceed dash_cooldown_ms")
	}
	if a.DashSpeedMul < 1 {
		return invalid("dash_speed_mul must be at least 1")
	}
	if a.ShieldDurationMs <= 0 {
		return invalid("shield_duration_ms must be positive")
	}

	if c.Engine.MaxFrameMs <= 0 || c.Engine.ReportTimeoutMs <= 0 {
		return invalid("engine limits must be positive")
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		return invalid("cell size must be positive")
	}
	if c.Input.HoldMs <= 0 {
		return invalid("hold_ms must be positive")
	}
	if len(c.Input.Left) == 0 || len(c.Input.Right) == 0 || len(c.Input.Dash) == 0 {
		return invalid("every action needs at least one key")
	}
	if c.Difficulty.TimeOffset < 0 {
		return invalid("time_offset must not be negative")
	}
	return nil
}

// MinWorldWidth is the narrowest playfield, in pixels, on which every wall
// still leaves a passable gap: two lanes at the maximum lane count must span MinGapPx.
func (c DodgeConfig) MinWorldWidth() float64 {
	maxCols := float64(c.Patterns.BaseCols + c.Patterns.MaxExtraCols)
	return c.Patterns.MinGapPx * maxCols / 2
}
