package flappy

import "github.com/vovakirdan/flappyep/internal/core"

// Collides reports whether the hitbox touches the solid part of an obstacle
// of the given width. The horizontal test runs first; only when the extents
// overlap is the hitbox checked against the gap corridor.
func Collides(hitbox core.Box, o Obstacle, width float64) bool {
	if !hitbox.OverlapsX(core.Box{X: o.X, W: width}) {
		return false
	}
	return hitbox.Y < o.GapY || hitbox.Bottom() > o.GapBottom()
}
