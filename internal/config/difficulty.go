package config

import "math"

// Pace computes the global speed multiplier from the current score.
// The scaling is fixed and linear: start + perPoint*score, optionally capped.
type Pace struct {
	cfg Scaling
}

// NewPace creates a pace calculator for the given scaling section.
func NewPace(cfg Scaling) Pace {
	if cfg.SpeedMultiplier <= 0 {
		cfg.SpeedMultiplier = 1
	}
	return Pace{cfg: cfg}
}

// Multiplier returns the speed multiplier at the given score.
func (p Pace) Multiplier(score int) float64 {
	m := p.cfg.SpeedMultiplier + p.cfg.PerPoint*float64(max(0, score))
	if p.cfg.Max > 0 {
		m = math.Min(m, p.cfg.Max)
	}
	return math.Max(0, m)
}

// Speed returns the obstacle scroll speed at the given score.
func (p Pace) Speed(baseSpeed float64, score int) float64 {
	return baseSpeed * p.Multiplier(score)
}

// Progressive reports whether the multiplier changes with score.
func (p Pace) Progressive() bool {
	return p.cfg.PerPoint != 0
}
