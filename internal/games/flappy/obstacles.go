package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flappyep/internal/config"
)

// Obstacle is a pair of walls with a passable corridor between them.
type Obstacle struct {
	X         float64 // Left edge
	GapY      float64 // Top of the corridor
	GapHeight float64 // Height of the corridor
	Passed    bool    // Set once the player has cleared it
}

// GapBottom returns the y-coordinate of the bottom of the corridor.
func (o Obstacle) GapBottom() float64 {
	return o.GapY + o.GapHeight
}

// Stream spawns, advances and retires obstacles.
type Stream struct {
	cfg       config.Obstacles
	rng       *rand.Rand
	obstacles []Obstacle
}

// NewStream creates an empty obstacle stream with the given RNG seed.
func NewStream(cfg config.Obstacles, seed int64) *Stream {
	return &Stream{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		obstacles: make([]Obstacle, 0, 8),
	}
}

// Width returns the obstacle width.
func (s *Stream) Width() float64 {
	return s.cfg.Width
}

// Interval returns the spawn cadence in ticks.
func (s *Stream) Interval() int {
	return s.cfg.SpawnInterval
}

// Layout returns the margin and gap height for a playfield of height h with
// the ground line at groundY. Short viewports use the reduced constants; the
// gap and margin are then clamped so the corridor still fits above the ground.
func (s *Stream) Layout(h, groundY float64) (margin, gap float64) {
	margin, gap = s.cfg.Margin, s.cfg.GapHeight
	if h < s.cfg.ShortViewportHeight {
		margin, gap = s.cfg.ShortMargin, s.cfg.ShortGapHeight
	}
	if avail := groundY - 2*margin; gap > avail {
		gap = math.Max(s.cfg.MinGapHeight, avail)
	}
	if groundY < gap+2*margin {
		margin = math.Max(0, (groundY-gap)/2)
	}
	return margin, gap
}

// Band returns the inclusive range the gap start is drawn from.
// The upper bound never falls below margin + min_band, so the band is never empty.
func (s *Stream) Band(h, groundY float64) (lo, hi float64) {
	margin, gap := s.Layout(h, groundY)
	return margin, math.Max(margin+s.cfg.MinBand, h-margin-gap-margin)
}

// Spawn appends a new obstacle at the right edge of a w-wide playfield.
func (s *Stream) Spawn(w, h, groundY float64) Obstacle {
	_, gap := s.Layout(h, groundY)
	lo, hi := s.Band(h, groundY)

	o := Obstacle{
		X:         w,
		GapY:      lo + s.rng.Float64()*(hi-lo),
		GapHeight: gap,
	}
	s.obstacles = append(s.obstacles, o)
	return o
}

// Advance moves every obstacle left by speed.
func (s *Stream) Advance(speed float64) {
	for i := range s.obstacles {
		s.obstacles[i].X -= speed
	}
}

// Retire drops obstacles whose trailing edge reached the retire threshold
// left of the playfield. It returns the number removed.
func (s *Stream) Retire() int {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.X+s.cfg.Width > s.cfg.RetireThreshold {
			kept = append(kept, o)
		}
	}
	removed := len(s.obstacles) - len(kept)
	s.obstacles = kept
	return removed
}

// CheckPass marks the obstacle passed and returns true exactly once, on the
// tick its trailing edge is first left of playerX.
func (s *Stream) CheckPass(o *Obstacle, playerX float64) bool {
	if o.Passed || o.X+s.cfg.Width >= playerX {
		return false
	}
	o.Passed = true
	return true
}

// Clear removes all obstacles.
func (s *Stream) Clear() {
	s.obstacles = s.obstacles[:0]
}

// Obstacles returns the live obstacles. The slice is owned by the stream.
func (s *Stream) Obstacles() []Obstacle {
	return s.obstacles
}

// Len returns the number of live obstacles.
func (s *Stream) Len() int {
	return len(s.obstacles)
}
