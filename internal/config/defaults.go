package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultConfig returns the hardcoded configuration, tuned for ~60 ticks/second.
func DefaultConfig() GameConfig {
	return GameConfig{
		Physics: Physics{
			Gravity:     0.38,
			JumpImpulse: -8,
			BaseSpeed:   3.2,
			TiltFactor:  0.08,
			TiltMin:     -0.5,
			TiltMax:     1.2,
		},
		Obstacles: Obstacles{
			Width:               64,
			GapHeight:           200,
			ShortGapHeight:      160,
			Margin:              80,
			ShortMargin:         50,
			MinBand:             20,
			ShortViewportHeight: 550,
			MinGapHeight:        80,
			SpawnInterval:       90,
			RetireThreshold:     -10,
		},
		Player: Player{
			XRatio:       0.2,
			StartYRatio:  0.45,
			RespawnRatio: 0.4,
			Width:        44,
			Height:       32,
			InsetW:       8,
			InsetH:       6,
		},
		Session: Session{
			Lives:            3,
			WinScore:         10,
			HitCooldownTicks: 30, // 500ms
			DyingTicks:       48, // 800ms
			DeathKick:        -5,
			GroundHeight:     60,
		},
		Idle: Idle{
			BobAmplitude:  12,
			BobPeriodMS:   600,
			TiltAmplitude: 0.15,
			ScrollSpeed:   0.8,
		},
		Display: Display{
			TickRate:   60,
			CellWidth:  8,
			CellHeight: 16,
		},
		Scaling: Scaling{
			SpeedMultiplier: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
