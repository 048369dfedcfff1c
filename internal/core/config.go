package core

import "time"

// RuntimeConfig describes the terminal surface and clock a game session runs on.
type RuntimeConfig struct {
	Cols     int   // Terminal width in characters
	Rows     int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic obstacle placement
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Cols:     80,
		Rows:     24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the wall-clock length of one tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Ticks converts a wall-clock duration to a whole number of ticks, rounding
// to nearest and never returning less than one for a positive duration.
func Ticks(d time.Duration, tickRate int) int {
	if d <= 0 {
		return 0
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	n := int((d*time.Duration(tickRate) + time.Second/2) / time.Second)
	return Max(1, n)
}
