package config

import "math"

// Curves evaluates fall speed and drip interval as functions of elapsed
// seconds and score. It has no state beyond its coefficients.
type Curves struct {
	cfg        CurveConfig
	enabled    bool
	timeOffset float64
}

// NewCurves builds curves from their coefficients and progression settings.
func NewCurves(cfg CurveConfig, diff DifficultyConfig) Curves {
	if cfg.FallScale <= 0 {
		cfg.FallScale = 1
	}
	return Curves{
		cfg:        cfg,
		enabled:    diff.Enabled,
		timeOffset: math.Max(0, diff.TimeOffset),
	}
}

// Time maps elapsed session seconds onto curve time: negative values clamp
// to zero, the preset offset is added, and disabled progression pins it at zero.
func (c Curves) Time(t float64) float64 {
	if !c.enabled {
		return 0
	}
	return math.Max(0, t) + c.timeOffset
}

// FallSpeed returns the base obstacle fall speed in px/s at elapsed time t.
func (c Curves) FallSpeed(t float64) float64 {
	t = c.Time(t)
	v := c.cfg.BaseFall + c.cfg.FallLogGain*math.Log1p(t*c.cfg.FallLogRate) + c.cfg.FallSqrtGain*math.Sqrt(t)
	return v * c.cfg.FallScale
}

// DripInterval returns the milliseconds between drip spawns. It never drops below DripMin.
func (c Curves) DripInterval(t, score float64) float64 {
	t = c.Time(t)
	score = math.Max(0, score)
	cut := c.cfg.DripLogGain*math.Log1p(t*c.cfg.DripLogRate) + c.cfg.DripSqrtGain*math.Sqrt(t) + c.cfg.DripScoreGain*score
	return math.Max(c.cfg.DripMin, c.cfg.DripBase-cut)
}

// Enabled reports whether the curves progress with time.
func (c Curves) Enabled() bool {
	return c.enabled
}
