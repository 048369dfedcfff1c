// Package flappy implements the flappy reflex game: a player falling under
// gravity, lifted by a single activate action, threading gaps in a stream of
// obstacles. The simulation is pure and tick-driven; presentation consumes
// read-only snapshots.
package flappy

import (
	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
)

// Player is the controlled entity. X stays fixed during a session.
type Player struct {
	X, Y   float64 // Top-left corner of the visual bounds
	VY     float64 // Vertical velocity, positive is down
	Width  float64
	Height float64
	Angle  float64 // Tilt in radians, derived from VY
	Lives  int
}

// Bounds returns the visual bounds of the player.
func (p Player) Bounds() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Hitbox returns the collision box: the visual bounds shrunk by the inset
// on the right and bottom edges.
func (p Player) Hitbox(insetW, insetH float64) core.Box {
	return p.Bounds().Shrink(insetW, insetH)
}

// Physics integrates the player's vertical motion.
type Physics struct {
	Gravity      float64
	JumpVelocity float64
	TiltFactor   float64
	TiltMin      float64
	TiltMax      float64
}

// NewPhysics builds the integrator from configuration.
func NewPhysics(cfg config.Physics) Physics {
	return Physics{
		Gravity:      cfg.Gravity,
		JumpVelocity: cfg.JumpImpulse,
		TiltFactor:   cfg.TiltFactor,
		TiltMin:      cfg.TiltMin,
		TiltMax:      cfg.TiltMax,
	}
}

// Integrate advances the player by one tick: velocity gains gravity, then
// position gains velocity.
func (ph Physics) Integrate(p *Player) {
	p.VY += ph.Gravity
	p.Y += p.VY
	p.Angle = ph.Tilt(p.VY)
}

// Impulse overwrites the vertical velocity with the jump velocity.
// Repeated impulses never stack.
func (ph Physics) Impulse(p *Player) {
	p.VY = ph.JumpVelocity
	p.Angle = ph.Tilt(p.VY)
}

// Tilt maps a velocity to a clamped tilt angle.
func (ph Physics) Tilt(vy float64) float64 {
	return core.ClampF(vy*ph.TiltFactor, ph.TiltMin, ph.TiltMax)
}

// Boundary identifies which playfield edge a clamp touched.
type Boundary int

const (
	BoundaryNone    Boundary = iota
	BoundaryCeiling          // Soft ceiling, no penalty
	BoundaryGround           // Ground line, raises a hit while playing
)

// ClampBounds keeps the player between the top of the playfield and the
// ground line. Both edges stop vertical motion; neither bounces.
func ClampBounds(p *Player, groundY float64) Boundary {
	if p.Y+p.Height >= groundY {
		p.Y = groundY - p.Height
		p.VY = 0
		return BoundaryGround
	}
	if p.Y <= 0 {
		p.Y = 0
		p.VY = 0
		return BoundaryCeiling
	}
	return BoundaryNone
}
