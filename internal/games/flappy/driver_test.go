package flappy

import (
	"testing"

	"github.com/vovakirdan/flappyep/internal/config"
)

const (
	testW = 800.0
	testH = 600.0
)

// recordingHooks counts notifications; the driver calls hooks on the tick
// goroutine, so no locking is needed in single-goroutine tests.
type recordingHooks struct {
	flaps  int
	scores []int
	hits   []int
	wins   int
}

func (h *recordingHooks) Flapped()          { h.flaps++ }
func (h *recordingHooks) Scored(count int)  { h.scores = append(h.scores, count) }
func (h *recordingHooks) Hit(livesLeft int) { h.hits = append(h.hits, livesLeft) }
func (h *recordingHooks) Won()              { h.wins++ }

type panickyHooks struct{ NopHooks }

func (panickyHooks) Flapped()   { panic("flap hook failed") }
func (panickyHooks) Scored(int) { panic("score hook failed") }

type recordedBest struct{ values []int }

func (r *recordedBest) Record(score int) { r.values = append(r.values, score) }

func newTestDriver(mutate func(*config.GameConfig), opts ...Option) *Driver {
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	return NewDriver(cfg, testW, testH, 1234, opts...)
}

// startPlaying resets into playing and runs the first tick.
func startPlaying(d *Driver) Snapshot {
	d.RequestReset(ModePlaying)
	return d.Tick()
}

// placeObstacle puts an obstacle at x that will not collide while invincible.
func placeObstacle(s *Session, x float64) {
	s.Obstacles().Spawn(x, s.H, s.GroundY())
}

func TestInitialStateIsIdle(t *testing.T) {
	d := newTestDriver(nil)
	snap := d.Tick()

	if snap.Mode != ModeIdle {
		t.Errorf("Mode = %v, expected idle", snap.Mode)
	}
	if snap.Lives != 3 || snap.Score != 0 {
		t.Errorf("lives/score = %d/%d, expected 3/0", snap.Lives, snap.Score)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("idle spawned %d obstacles", len(snap.Obstacles))
	}
}

func TestIntegrationWhilePlaying(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)
	g := d.Config().Physics.Gravity

	for i := 0; i < 30; i++ {
		prev := d.Session().Player
		snap := d.Tick()
		if snap.Events&(EventFlap|EventHit) != 0 {
			continue
		}
		p := snap.Player
		if p.Y == 0 || p.Y == snap.GroundY-p.Height {
			continue // clamped
		}
		if !approx(p.VY, prev.VY+g) {
			t.Fatalf("tick %d: VY = %v, expected %v", i, p.VY, prev.VY+g)
		}
		if !approx(p.Y, prev.Y+prev.VY+g) {
			t.Fatalf("tick %d: Y = %v, expected %v", i, p.Y, prev.Y+prev.VY+g)
		}
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	once := newTestDriver(nil)
	many := newTestDriver(nil)
	startPlaying(once)
	startPlaying(many)

	// Drift so the impulse has something to overwrite.
	for i := 0; i < 10; i++ {
		once.Tick()
		many.Tick()
	}

	once.Activate()
	many.Activate()
	many.Activate()
	many.Activate()

	a, b := once.Tick(), many.Tick()
	cfg := config.DefaultConfig().Physics
	expected := cfg.JumpImpulse + cfg.Gravity

	if !approx(a.Player.VY, expected) || !approx(b.Player.VY, expected) {
		t.Errorf("VY after activate = %v / %v, expected %v", a.Player.VY, b.Player.VY, expected)
	}
}

func TestActivateStartsFromIdle(t *testing.T) {
	hooks := &recordingHooks{}
	d := newTestDriver(nil, WithHooks(hooks))
	for i := 0; i < 17; i++ {
		d.Tick()
	}

	d.Activate()
	snap := d.Tick()

	if snap.Mode != ModePlaying {
		t.Fatalf("Mode = %v, expected playing", snap.Mode)
	}
	if !snap.Events.Has(EventFlap) || hooks.flaps != 1 {
		t.Errorf("flap not reported: events %b, hook calls %d", snap.Events, hooks.flaps)
	}
	cfg := config.DefaultConfig()
	vy := cfg.Physics.JumpImpulse + cfg.Physics.Gravity
	if !approx(snap.Player.Y, testH*cfg.Player.StartYRatio+vy) {
		t.Errorf("Y = %v, expected re-centred start plus one step", snap.Player.Y)
	}
	if len(snap.Obstacles) != 1 {
		t.Errorf("first playing tick spawned %d obstacles, expected 1", len(snap.Obstacles))
	}
}

func TestActivateIgnoredOutsidePlay(t *testing.T) {
	for _, mode := range []Mode{ModeDying, ModeDead, ModeWon} {
		t.Run(mode.String(), func(t *testing.T) {
			hooks := &recordingHooks{}
			d := newTestDriver(nil, WithHooks(hooks))
			startPlaying(d)
			s := d.Session()
			s.Mode = mode
			s.DyingLeft = 10
			s.Player.VY = 2

			d.Activate()
			snap := d.Tick()

			if snap.Events.Has(EventFlap) || hooks.flaps != 0 {
				t.Error("activate should be ignored")
			}
			if snap.Player.VY < 0 {
				t.Errorf("VY = %v, impulse should not apply", snap.Player.VY)
			}
		})
	}
}

func TestThreeGroundContactsEndRun(t *testing.T) {
	hooks := &recordingHooks{}
	d := newTestDriver(nil, WithHooks(hooks))
	startPlaying(d)

	sawDying := false
	var snap Snapshot
	for i := 0; i < 3000; i++ {
		snap = d.Tick()
		if snap.Mode == ModeDying {
			sawDying = true
		}
		if snap.Mode == ModeDead {
			break
		}
	}

	if snap.Mode != ModeDead {
		t.Fatalf("Mode = %v, expected dead", snap.Mode)
	}
	if snap.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", snap.Lives)
	}
	if !sawDying {
		t.Error("run should pass through dying before dead")
	}
	if len(hooks.hits) != 3 || hooks.hits[0] != 2 || hooks.hits[1] != 1 || hooks.hits[2] != 0 {
		t.Errorf("hit hook lives = %v, expected [2 1 0]", hooks.hits)
	}
	if len(hooks.scores) != 0 {
		t.Errorf("scored %v without passing obstacles", hooks.scores)
	}
}

func TestDyingLastsConfiguredTicks(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)
	s := d.Session()
	s.Player.Lives = 1
	s.Player.Y = s.GroundY() // next tick hits the ground

	snap := d.Tick()
	if snap.Mode != ModeDying {
		t.Fatalf("Mode = %v, expected dying", snap.Mode)
	}
	if snap.Player.VY != d.Config().Session.DeathKick {
		t.Errorf("VY = %v, expected death kick %v", snap.Player.VY, d.Config().Session.DeathKick)
	}

	ticks := 0
	for snap.Mode == ModeDying {
		snap = d.Tick()
		ticks++
	}
	if ticks != d.Config().Session.DyingTicks {
		t.Errorf("dying lasted %d ticks, expected %d", ticks, d.Config().Session.DyingTicks)
	}
	if snap.Mode != ModeDead {
		t.Errorf("Mode = %v after dying, expected dead", snap.Mode)
	}
}

func TestWinStopsObstacleProcessing(t *testing.T) {
	hooks := &recordingHooks{}
	d := newTestDriver(func(c *config.GameConfig) { c.Session.Invincible = true }, WithHooks(hooks))
	startPlaying(d)

	s := d.Session()
	s.Score = 9
	s.SpawnClock = 1
	s.Obstacles().Clear()
	// Both trailing edges cross the player x (160) during the next advance.
	placeObstacle(s, 98.2)
	placeObstacle(s, 98.2)

	snap := d.Tick()

	if snap.Mode != ModeWon {
		t.Fatalf("Mode = %v, expected won", snap.Mode)
	}
	if snap.Score != 10 {
		t.Errorf("Score = %d, expected 10", snap.Score)
	}
	if !snap.Obstacles[0].Passed || snap.Obstacles[1].Passed {
		t.Errorf("passed flags = %v/%v, expected only the first obstacle processed",
			snap.Obstacles[0].Passed, snap.Obstacles[1].Passed)
	}
	if s.SpawnClock != 1 {
		t.Errorf("SpawnClock = %d, the win tick should end processing", s.SpawnClock)
	}
	if hooks.wins != 1 || len(hooks.scores) != 1 || hooks.scores[0] != 10 {
		t.Errorf("hooks: wins %d scores %v, expected 1 and [10]", hooks.wins, hooks.scores)
	}
	if !snap.Events.Has(EventScore | EventWin) {
		t.Errorf("events = %b, expected score and win", snap.Events)
	}

	// Terminal: further ticks leave the field untouched.
	x := snap.Obstacles[1].X
	snap = d.Tick()
	if snap.Mode != ModeWon || snap.Obstacles[1].X != x {
		t.Error("won session should not advance obstacles")
	}
}

func TestBestUpdatesAtScoringEvent(t *testing.T) {
	rec := &recordedBest{}
	d := newTestDriver(func(c *config.GameConfig) { c.Session.Invincible = true }, WithBest(5, rec))
	startPlaying(d)
	s := d.Session()
	s.Obstacles().Clear()
	s.SpawnClock = 1

	s.Score = 3
	placeObstacle(s, 98.2)
	snap := d.Tick()
	if snap.Score != 4 || snap.Best != 5 || len(rec.values) != 0 {
		t.Fatalf("score/best = %d/%d recorded %v, expected 4/5 and nothing", snap.Score, snap.Best, rec.values)
	}

	s.Score = 6
	placeObstacle(s, 98.2)
	snap = d.Tick()

	if snap.Mode != ModePlaying {
		t.Fatalf("Mode = %v, expected playing", snap.Mode)
	}
	if d.BestScore() != 7 || snap.Best != 7 {
		t.Errorf("BestScore() = %d (snapshot %d), expected 7", d.BestScore(), snap.Best)
	}
	if len(rec.values) != 1 || rec.values[0] != 7 {
		t.Errorf("recorded %v, expected [7]", rec.values)
	}
}

func TestBestSurvivesReset(t *testing.T) {
	d := newTestDriver(nil, WithBest(8, nil))
	startPlaying(d)
	d.RequestReset(ModeIdle)
	snap := d.Tick()

	if snap.Best != 8 {
		t.Errorf("Best = %d after reset, expected 8", snap.Best)
	}
}

func TestResetMidPlay(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)
	s := d.Session()
	s.Player.Lives = 1
	s.Score = 4
	s.Obstacles().Clear()
	placeObstacle(s, 500)
	placeObstacle(s, 700)

	d.RequestReset(ModePlaying)

	// Deferred until the tick boundary.
	if d.Session().Player.Lives != 1 || d.Session().Obstacles().Len() != 2 {
		t.Fatal("reset applied before the tick boundary")
	}

	d.applyPending()
	fresh := d.Session()
	if fresh == s {
		t.Fatal("reset should replace the session")
	}
	if fresh.Player.Lives != 3 || fresh.Score != 0 || fresh.Obstacles().Len() != 0 {
		t.Errorf("after reset lives/score/obstacles = %d/%d/%d, expected 3/0/0",
			fresh.Player.Lives, fresh.Score, fresh.Obstacles().Len())
	}
	if fresh.Mode != ModePlaying {
		t.Errorf("Mode = %v, expected playing", fresh.Mode)
	}
}

func TestResetTickSnapshot(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)
	s := d.Session()
	s.Player.Lives = 1
	s.Score = 4
	placeObstacle(s, 500)

	d.RequestReset(ModeIdle)
	snap := d.Tick()

	if !snap.Events.Has(EventReset) {
		t.Error("reset tick should report EventReset")
	}
	if snap.Mode != ModeIdle || snap.Lives != 3 || snap.Score != 0 || len(snap.Obstacles) != 0 {
		t.Errorf("snapshot = mode %v lives %d score %d obstacles %d", snap.Mode, snap.Lives, snap.Score, len(snap.Obstacles))
	}
}

func TestResetDropsPendingActivate(t *testing.T) {
	d := newTestDriver(nil)
	d.Activate()
	d.RequestReset(ModeIdle)

	if snap := d.Tick(); snap.Mode != ModeIdle {
		t.Errorf("Mode = %v, activate queued before reset should be dropped", snap.Mode)
	}
}

func TestIdleBobIsDeterministic(t *testing.T) {
	a := newTestDriver(nil)
	b := newTestDriver(func(c *config.GameConfig) { c.Obstacles.SpawnInterval = 7 })
	cfg := config.DefaultConfig()
	base := testH * cfg.Player.StartYRatio

	for i := 0; i < 300; i++ {
		sa, sb := a.Tick(), b.Tick()
		if sa.Player.Y != sb.Player.Y || sa.Player.Angle != sb.Player.Angle {
			t.Fatalf("tick %d: idle bob differs between drivers", i)
		}
		if d := sa.Player.Y - base; d > cfg.Idle.BobAmplitude+1e-9 || d < -cfg.Idle.BobAmplitude-1e-9 {
			t.Fatalf("tick %d: Y offset %v exceeds amplitude", i, d)
		}
		if len(sa.Obstacles) != 0 {
			t.Fatalf("tick %d: obstacles in idle", i)
		}
	}
}

func TestHookPanicDoesNotAlterTick(t *testing.T) {
	d := newTestDriver(nil, WithHooks(panickyHooks{}))
	d.Activate()

	snap := d.Tick()
	if snap.Mode != ModePlaying {
		t.Errorf("Mode = %v, a panicking hook should not block the transition", snap.Mode)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	d := newTestDriver(nil)
	snap := startPlaying(d)
	snap.Obstacles[0].X = -9999

	if d.Session().Obstacles().Obstacles()[0].X == -9999 {
		t.Error("mutating a snapshot changed the live stream")
	}
}

func TestResizeAppliesAtBoundary(t *testing.T) {
	d := newTestDriver(nil)
	d.Resize(1000, 400)
	if d.Session().W != testW {
		t.Fatal("resize applied before tick")
	}

	snap := d.Tick()
	if snap.Width != 1000 || snap.Height != 400 {
		t.Errorf("size = %vx%v, expected 1000x400", snap.Width, snap.Height)
	}
	if snap.Player.X != 200 {
		t.Errorf("player X = %v, expected 200", snap.Player.X)
	}
}

func TestSpeedScaling(t *testing.T) {
	d := newTestDriver(func(c *config.GameConfig) {
		c.Session.Invincible = true
		c.Scaling.PerPoint = 0.5
	})
	startPlaying(d)
	s := d.Session()
	s.SpawnClock = 1
	placeObstacle(s, 98.2)

	snap := d.Tick()
	if snap.Score != 1 || !approx(snap.SpeedMult, 1.5) {
		t.Errorf("score %d speed %v, expected 1 and 1.5", snap.Score, snap.SpeedMult)
	}
}

func TestPlayfieldSize(t *testing.T) {
	w, h := PlayfieldSize(80, 24, config.DefaultConfig().Display)
	if w != 640 || h != 384 {
		t.Errorf("PlayfieldSize(80, 24) = %vx%v, expected 640x384", w, h)
	}
}

func TestRespawnKeepsSpawnCadence(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)
	s := d.Session()

	s.Player.Y = s.GroundY()
	if snap := d.Tick(); snap.Lives != 2 {
		t.Fatalf("Lives = %d, expected 2 after the ground hit", snap.Lives)
	}
	if s.SpawnClock != 1 {
		t.Errorf("SpawnClock = %d after respawn, expected 1", s.SpawnClock)
	}

	d.Tick()
	if n := s.Obstacles().Len(); n != 0 {
		t.Errorf("obstacles = %d on the tick after respawn, expected 0", n)
	}
}

func TestSetInvincibleAtBoundary(t *testing.T) {
	d := newTestDriver(nil)
	startPlaying(d)

	d.SetInvincible(true)
	if d.Config().Session.Invincible {
		t.Fatal("invincible applied before the tick boundary")
	}
	d.Session().Player.Y = d.Session().GroundY()
	snap := d.Tick()
	if !snap.Invincible {
		t.Error("Invincible = false, expected true after the tick")
	}
	if snap.Lives != 3 {
		t.Errorf("Lives = %d, expected 3 while invincible", snap.Lives)
	}

	d.RequestReset(ModePlaying)
	if snap = d.Tick(); !snap.Invincible {
		t.Error("invincible should survive a reset")
	}

	d.SetInvincible(false)
	if snap = d.Tick(); snap.Invincible {
		t.Error("Invincible = true, expected false after toggling off")
	}
}
