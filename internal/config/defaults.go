package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultDodgeYAML []byte

// DefaultDodgeConfig returns the built-in dodge tuning.
// It mirrors defaults/dodge.yaml and is used when the embedded file fails to parse.
func DefaultDodgeConfig() DodgeConfig {
	return DodgeConfig{
		World: DodgeWorld{
			PlayerWidth:  32,
			PlayerHeight: 32,
			PlayerSpeed:  335,
			PlayerBottom: 54,
			PruneMargin:  64,
		},
		Curves: CurveConfig{
			BaseFall:      145,
			FallScale:     1.0,
			FallLogGain:   60,
			FallLogRate:   0.45,
			FallSqrtGain:  16,
			DripBase:      900,
			DripMin:       210,
			DripLogGain:   90,
			DripLogRate:   0.35,
			DripSqrtGain:  20,
			DripScoreGain: 0.20,
		},
		Spawn: DodgeSpawn{
			PatternEveryMs:  2600,
			CoinEveryMs:     1600,
			ShieldEveryMs:   7000,
			CoinFallScale:   0.9,
			ShieldFallScale: 0.85,
		},
		Patterns: DodgePatterns{
			BaseCols:          6,
			MaxExtraCols:      6,
			ColGrowthSecs:     7,
			GapColsMin:        1,
			GapColsMax:        2,
			MinGapPx:          48, // player width plus margin
			WallCooldownMs:    2600,
			StaggerSkipChance: 0.2,
			WallSpeedScale:    1.02,
			StaggerSpeedScale: 0.95,
			ChunkSpeedScale:   0.92,
		},
		Abilities: DodgeAbilities{
			DashCooldownMs:   1800,
			DashActiveMs:     350,
			DashSpeedMul:     2.25,
			ShieldDurationMs: 6500,
		},
		Scoring: DodgeScoring{
			PointsPerSecond: 10.5,
			CoinValue:       35,
		},
		Effects: DodgeEffects{
			Particles:         true,
			DashTrailPerFrame: 10,
			DashBurst:         20,
			CoinBurst:         12,
			ShieldPickupBurst: 26,
			ShieldBreakBurst:  34,
			ShakeDecayPerSec:  8,
			ShakeMaxPx:        9,
		},
		Engine: DodgeEngine{
			MaxFrameMs:      250,
			ReportTimeoutMs: 5000,
		},
		Render: DodgeRender{
			CellWidth:  8,
			CellHeight: 16,
		},
		Input: DodgeInput{
			Left:   []string{"left", "a"},
			Right:  []string{"right", "d"},
			Dash:   []string{" ", "x"},
			HoldMs: 180,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			TimeOffset: 0,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDodgeYAML
}
