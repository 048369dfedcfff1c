// Package config provides YAML-based game configuration loading, validation
// and score-based pace scaling for flappyep.
package config

// GameConfig contains all tunable parameters of the flappy session.
// Distances are logical playfield pixels, durations are ticks.
type GameConfig struct {
	Physics   Physics   `yaml:"physics"`
	Obstacles Obstacles `yaml:"obstacles"`
	Player    Player    `yaml:"player"`
	Session   Session   `yaml:"session"`
	Idle      Idle      `yaml:"idle"`
	Display   Display   `yaml:"display"`
	Scaling   Scaling   `yaml:"scaling"`
}

// Physics defines gravity, impulse and tilt.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set on activate (negative is up)
	BaseSpeed   float64 `yaml:"base_speed"`   // Obstacle scroll speed per tick
	TiltFactor  float64 `yaml:"tilt_factor"`  // Radians per unit of velocity
	TiltMin     float64 `yaml:"tilt_min"`
	TiltMax     float64 `yaml:"tilt_max"`
}

// Obstacles defines the obstacle stream geometry and cadence.
type Obstacles struct {
	Width               float64 `yaml:"width"`
	GapHeight           float64 `yaml:"gap_height"`
	ShortGapHeight      float64 `yaml:"short_gap_height"`
	Margin              float64 `yaml:"margin"`
	ShortMargin         float64 `yaml:"short_margin"`
	MinBand             float64 `yaml:"min_band"`              // Minimum width of the gap-start band
	ShortViewportHeight float64 `yaml:"short_viewport_height"` // Below this the short constants apply
	MinGapHeight        float64 `yaml:"min_gap_height"`        // Floor when clamping the gap to tiny playfields
	SpawnInterval       int     `yaml:"spawn_interval"`
	RetireThreshold     float64 `yaml:"retire_threshold"` // Retire once trailing edge <= this x
}

// Player defines the player's placement and hitbox.
type Player struct {
	XRatio       float64 `yaml:"x_ratio"`
	StartYRatio  float64 `yaml:"start_y_ratio"`
	RespawnRatio float64 `yaml:"respawn_y_ratio"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	InsetW       float64 `yaml:"inset_w"`
	InsetH       float64 `yaml:"inset_h"`
}

// Session defines lives, scoring and timing of transitions.
type Session struct {
	Lives            int     `yaml:"lives"`
	WinScore         int     `yaml:"win_score"`
	HitCooldownTicks int     `yaml:"hit_cooldown_ticks"`
	DyingTicks       int     `yaml:"dying_ticks"`
	DeathKick        float64 `yaml:"death_kick"`
	GroundHeight     float64 `yaml:"ground_height"`
	Invincible       bool    `yaml:"invincible"`
}

// Idle defines the attract-mode bob animation.
type Idle struct {
	BobAmplitude  float64 `yaml:"bob_amplitude"`
	BobPeriodMS   float64 `yaml:"bob_period_ms"`
	TiltAmplitude float64 `yaml:"tilt_amplitude"`
	ScrollSpeed   float64 `yaml:"scroll_speed"`
}

// Display defines how the logical playfield maps onto the terminal.
type Display struct {
	TickRate      int  `yaml:"tick_rate"`
	CellWidth     int  `yaml:"cell_width"`  // Logical pixels per column
	CellHeight    int  `yaml:"cell_height"` // Logical pixels per row
	FixedTimestep bool `yaml:"fixed_timestep"`
}

// Scaling defines the fixed linear speed scaling.
type Scaling struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Initial global multiplier
	PerPoint        float64 `yaml:"per_point"`        // Added to the multiplier per point scored
	Max             float64 `yaml:"max"`              // Upper bound, 0 means unbounded
}
