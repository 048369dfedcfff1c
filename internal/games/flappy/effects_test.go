package flappy

import "testing"

// feed observes n copies of s with increasing ticks and returns the last one.
func feed(e *Effects, s Snapshot, n int) Snapshot {
	for i := 0; i < n; i++ {
		s.Tick++
		e.Observe(s)
	}
	return s
}

func TestEffectsScoreBurst(t *testing.T) {
	e := NewEffects(60, 1)
	s := playingSnapshot()
	e.Observe(s)

	s.Tick++
	s.Score = 1
	e.Observe(s)

	if len(e.particle) != particlesPerBurst {
		t.Errorf("particles = %d, expected %d", len(e.particle), particlesPerBurst)
	}
	if len(e.popups) != 1 {
		t.Errorf("popups = %d, expected 1", len(e.popups))
	}
	if !e.Active() {
		t.Error("Active() = false right after scoring")
	}

	feed(e, s, 120)
	if e.Active() {
		t.Errorf("effects still active after two seconds: %d particles, %d popups", len(e.particle), len(e.popups))
	}
}

func TestEffectsPopupRises(t *testing.T) {
	e := NewEffects(60, 1)
	s := playingSnapshot()
	e.Observe(s)
	s.Tick++
	s.Score = 1
	e.Observe(s)

	start := e.popups[0].y
	feed(e, s, 10)
	if len(e.popups) != 1 || e.popups[0].y >= start {
		t.Errorf("popup y = %v, expected above %v", e.popups[0].y, start)
	}
}

func TestEffectsHitShakes(t *testing.T) {
	e := NewEffects(60, 1)
	s := playingSnapshot()
	s = feed(e, s, 5)

	s.Tick++
	s.Lives = 2
	e.Observe(s)

	if e.shakeLeft <= 0 {
		t.Fatal("losing a life should start the shake")
	}
	if len(e.trail) > 1 {
		t.Errorf("trail = %d points, expected it restarted on hit", len(e.trail))
	}
	for i := 0; i < 20; i++ {
		if off := e.ShakeOffset(); off < -1 || off > 1 {
			t.Fatalf("ShakeOffset() = %d, expected -1..1", off)
		}
	}

	feed(e, s, 60)
	if off := e.ShakeOffset(); off != 0 {
		t.Errorf("ShakeOffset() = %d after the shake ended, expected 0", off)
	}
}

func TestEffectsIgnoreIdleScore(t *testing.T) {
	e := NewEffects(60, 1)
	s := playingSnapshot()
	s.Mode = ModeIdle
	e.Observe(s)
	s.Tick++
	s.Score = 4
	e.Observe(s)

	if e.Active() {
		t.Error("a score change on the idle screen should not start effects")
	}
}

func TestEffectsTrailLength(t *testing.T) {
	e := NewEffects(60, 1)
	s := feed(e, playingSnapshot(), 3*trailLength)
	if len(e.trail) != trailLength {
		t.Errorf("trail = %d points, expected %d", len(e.trail), trailLength)
	}

	s.Mode = ModeDead
	feed(e, s, trailLength)
	if len(e.trail) != 0 {
		t.Errorf("trail = %d points after death, expected it to fade out", len(e.trail))
	}
}

func TestEffectsResetClears(t *testing.T) {
	e := NewEffects(60, 1)
	s := playingSnapshot()
	e.Observe(s)
	s.Tick++
	s.Mode = ModeWon
	s.Score = 10
	e.Observe(s)
	if e.confettiLeft <= 0 || e.banner == nil {
		t.Fatal("winning should start confetti and the banner")
	}

	e.Observe(Snapshot{Mode: ModeIdle, Tick: 1, Events: EventReset, Width: testW, Height: testH})
	if e.Active() || e.banner != nil || len(e.trail) != 0 {
		t.Error("reset should clear every effect")
	}
}
