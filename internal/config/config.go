// Package config provides YAML-based game configuration loading and
// difficulty management for the dodge game.
package config

// DodgeConfig contains all tuning for the dodge game.
type DodgeConfig struct {
	World      DodgeWorld       `yaml:"world"`
	Curves     CurveConfig      `yaml:"curves"`
	Spawn      DodgeSpawn       `yaml:"spawn"`
	Patterns   DodgePatterns    `yaml:"patterns"`
	Abilities  DodgeAbilities   `yaml:"abilities"`
	Scoring    DodgeScoring     `yaml:"scoring"`
	Effects    DodgeEffects     `yaml:"effects"`
	Engine     DodgeEngine      `yaml:"engine"`
	Render     DodgeRender      `yaml:"render"`
	Input      DodgeInput       `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DodgeWorld defines the player body and playfield margins, in pixels.
type DodgeWorld struct {
	PlayerWidth  float64 `yaml:"player_width"`
	PlayerHeight float64 `yaml:"player_height"`
	PlayerSpeed  float64 `yaml:"player_speed"`  // px/s
	PlayerBottom float64 `yaml:"player_bottom"` // distance from bottom edge to player top
	PruneMargin  float64 `yaml:"prune_margin"`  // entities below H+margin are dropped
}

// CurveConfig holds the coefficients of the difficulty curves.
//
//	fall(t)        = fall_scale * (base_fall + fall_log_gain*ln(1+t*fall_log_rate) + fall_sqrt_gain*sqrt(t))
//	drip(t, score) = max(drip_min, drip_base - (drip_log_gain*ln(1+t*drip_log_rate) + drip_sqrt_gain*sqrt(t) + drip_score_gain*score))
type CurveConfig struct {
	BaseFall      float64 `yaml:"base_fall"`
	FallScale     float64 `yaml:"fall_scale"`
	FallLogGain   float64 `yaml:"fall_log_gain"`
	FallLogRate   float64 `yaml:"fall_log_rate"`
	FallSqrtGain  float64 `yaml:"fall_sqrt_gain"`
	DripBase      float64 `yaml:"drip_base"` // ms
	DripMin       float64 `yaml:"drip_min"`  // ms
	DripLogGain   float64 `yaml:"drip_log_gain"`
	DripLogRate   float64 `yaml:"drip_log_rate"`
	DripSqrtGain  float64 `yaml:"drip_sqrt_gain"`
	DripScoreGain float64 `yaml:"drip_score_gain"`
}

// DodgeSpawn defines fixed spawn intervals and pickup fall scaling.
type DodgeSpawn struct {
	PatternEveryMs  float64 `yaml:"pattern_every_ms"`
	CoinEveryMs     float64 `yaml:"coin_every_ms"`
	ShieldEveryMs   float64 `yaml:"shield_every_ms"`
	CoinFallScale   float64 `yaml:"coin_fall_scale"`
	ShieldFallScale float64 `yaml:"shield_fall_scale"`
}

// DodgePatterns defines obstacle wave layout rules.
type DodgePatterns struct {
	BaseCols          int     `yaml:"base_cols"`
	MaxExtraCols      int     `yaml:"max_extra_cols"`
	ColGrowthSecs     float64 `yaml:"col_growth_secs"` // seconds per extra lane
	GapColsMin        int     `yaml:"gap_cols_min"`
	GapColsMax        int     `yaml:"gap_cols_max"`
	MinGapPx          float64 `yaml:"min_gap_px"`
	WallCooldownMs    float64 `yaml:"wall_cooldown_ms"`
	StaggerSkipChance float64 `yaml:"stagger_skip_chance"`
	WallSpeedScale    float64 `yaml:"wall_speed_scale"`
	StaggerSpeedScale float64 `yaml:"stagger_speed_scale"`
	ChunkSpeedScale   float64 `yaml:"chunk_speed_scale"`
}

// DodgeAbilities defines dash and shield timings.
type DodgeAbilities struct {
	DashCooldownMs   float64 `yaml:"dash_cooldown_ms"` // measured from activation
	DashActiveMs     float64 `yaml:"dash_active_ms"`
	DashSpeedMul     float64 `yaml:"dash_speed_mul"`
	ShieldDurationMs float64 `yaml:"shield_duration_ms"`
}

// DodgeScoring defines score accrual.
type DodgeScoring struct {
	PointsPerSecond float64 `yaml:"points_per_second"`
	CoinValue       float64 `yaml:"coin_value"`
}

// DodgeEffects defines particle bursts and screen shake.
type DodgeEffects struct {
	Particles         bool    `yaml:"particles"`
	DashTrailPerFrame int     `yaml:"dash_trail_per_frame"`
	DashBurst         int     `yaml:"dash_burst"`
	CoinBurst         int     `yaml:"coin_burst"`
	ShieldPickupBurst int     `yaml:"shield_pickup_burst"`
	ShieldBreakBurst  int     `yaml:"shield_break_burst"`
	ShakeDecayPerSec  float64 `yaml:"shake_decay_per_sec"`
	ShakeMaxPx        float64 `yaml:"shake_max_px"`
}

// DodgeEngine defines frame handling and score reporting limits.
type DodgeEngine struct {
	MaxFrameMs      int `yaml:"max_frame_ms"`
	ReportTimeoutMs int `yaml:"report_timeout_ms"`
}

// DodgeRender defines how world pixels map onto terminal cells.
type DodgeRender struct {
	CellWidth    int    `yaml:"cell_width"`
	CellHeight   int    `yaml:"cell_height"`
	PlayerSprite string `yaml:"player_sprite"` // optional text sprite file
}

// DodgeInput defines key bindings, two names per action.
type DodgeInput struct {
	Left   []string `yaml:"left"`
	Right  []string `yaml:"right"`
	Dash   []string `yaml:"dash"`
	HoldMs int      `yaml:"hold_ms"` // how long a key counts as held after its last repeat
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`     // false freezes the curves at their start values
	TimeOffset float64 `yaml:"time_offset"` // seconds added to elapsed time before evaluating curves
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty and unknown values
// return "" which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
