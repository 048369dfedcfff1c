package flappy

import (
	"io"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
)

// Hooks receives one-way notifications at the moments the simulation defines.
// Implementations must return promptly; the tick never waits on them and a
// panicking hook is recovered.
type Hooks interface {
	Flapped()
	Scored(count int)
	Hit(livesLeft int)
	Won()
}

// NopHooks ignores every notification.
type NopHooks struct{}

func (NopHooks) Flapped()   {}
func (NopHooks) Scored(int) {}
func (NopHooks) Hit(int)    {}
func (NopHooks) Won()       {}

// BestRecorder receives every new best score. Record must not block.
type BestRecorder interface {
	Record(score int)
}

// Events flags what happened during one tick.
type Events uint8

const (
	EventFlap Events = 1 << iota
	EventScore
	EventHit
	EventWin
	EventReset
)

// Has reports whether all bits of e2 are set.
func (e Events) Has(e2 Events) bool {
	return e&e2 == e2
}

// Snapshot is a read-only copy of the session after one tick.
type Snapshot struct {
	Mode          Mode
	Tick          uint64
	Score         int
	Best          int
	Lives         int
	Player        Player
	Obstacles     []Obstacle
	ObstacleWidth float64
	Width, Height float64
	GroundY       float64
	SpeedMult     float64
	BgScroll      float64
	GroundScroll  float64
	HitCooldown   int
	Invincible    bool
	Events        Events
}

// Option configures a Driver.
type Option func(*Driver)

// WithHooks adds notification receivers.
func WithHooks(hooks ...Hooks) Option {
	return func(d *Driver) {
		d.hooks = append(d.hooks, hooks...)
	}
}

// WithBest seeds the best score and the recorder that persists improvements.
func WithBest(initial int, rec BestRecorder) Option {
	return func(d *Driver) {
		d.best.Store(int64(max(0, initial)))
		d.bestRec = rec
	}
}

// WithLogger sets the logger used for recovered hook panics and transitions.
func WithLogger(logger *log.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Driver runs the per-tick orchestration. Tick must only be called from a
// single goroutine; Activate, RequestReset and Resize are safe from any
// goroutine and take effect at the next tick boundary.
type Driver struct {
	cfg     config.GameConfig
	physics Physics
	rng     *rand.Rand
	session *Session
	hooks   []Hooks
	bestRec BestRecorder
	best    atomic.Int64
	logger  *log.Logger
	events  Events

	mu           sync.Mutex
	pendingFlap  bool
	pendingReset bool
	resetMode    Mode
	pendingSize  bool
	sizeW, sizeH float64
	pendingGod   bool
	godMode      bool
}

// NewDriver creates a driver for a w x h playfield, starting idle.
func NewDriver(cfg config.GameConfig, w, h float64, seed int64, opts ...Option) *Driver {
	d := &Driver{
		cfg:     cfg,
		physics: NewPhysics(cfg.Physics),
		rng:     rand.New(rand.NewSource(seed)),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.session = d.freshSession(w, h, ModeIdle)
	return d
}

func (d *Driver) freshSession(w, h float64, mode Mode) *Session {
	return newSession(&d.cfg, NewStream(d.cfg.Obstacles, d.rng.Int63()), w, h, mode)
}

// Activate queues one upward impulse. Several calls between ticks collapse
// into one, since impulses overwrite rather than stack.
func (d *Driver) Activate() {
	d.mu.Lock()
	d.pendingFlap = true
	d.mu.Unlock()
}

// RequestReset queues a full session rebuild in the given mode.
// Only ModeIdle and ModePlaying are meaningful targets.
func (d *Driver) RequestReset(mode Mode) {
	if mode != ModePlaying {
		mode = ModeIdle
	}
	d.mu.Lock()
	d.pendingReset = true
	d.resetMode = mode
	d.pendingFlap = false
	d.mu.Unlock()
}

// Resize queues a playfield size change.
func (d *Driver) Resize(w, h float64) {
	d.mu.Lock()
	d.pendingSize = true
	d.sizeW, d.sizeH = w, h
	d.mu.Unlock()
}

// SetInvincible queues a change of the invincible flag. The flag belongs to
// the configuration, so it survives resets.
func (d *Driver) SetInvincible(on bool) {
	d.mu.Lock()
	d.pendingGod = true
	d.godMode = on
	d.mu.Unlock()
}

// BestScore returns the best score seen so far. Safe from any goroutine.
func (d *Driver) BestScore() int {
	return int(d.best.Load())
}

// Config returns the configuration the driver runs with.
func (d *Driver) Config() config.GameConfig {
	return d.cfg
}

// Session exposes the live session to tests in this package.
func (d *Driver) Session() *Session {
	return d.session
}

// Tick advances the simulation by one step and returns its snapshot.
func (d *Driver) Tick() Snapshot {
	d.events = 0
	flap := d.applyPending()
	s := d.session

	if flap {
		switch s.Mode {
		case ModeIdle:
			s.begin()
			d.flap()
		case ModePlaying:
			d.flap()
		}
	}

	switch s.Mode {
	case ModePlaying:
		d.updatePlaying()
	case ModeDying:
		d.updateDying()
	case ModeIdle:
		d.updateIdle()
	}

	s.Tick++
	return d.snapshot()
}

// applyPending consumes queued resets, resizes and input at the tick boundary.
func (d *Driver) applyPending() bool {
	d.mu.Lock()
	reset, mode := d.pendingReset, d.resetMode
	resize, w, h := d.pendingSize, d.sizeW, d.sizeH
	flap := d.pendingFlap
	god, godMode := d.pendingGod, d.godMode
	d.pendingReset, d.pendingSize, d.pendingFlap, d.pendingGod = false, false, false, false
	d.mu.Unlock()

	if god {
		d.cfg.Session.Invincible = godMode
		d.logger.Info("invincible toggled", "on", godMode)
	}

	if resize {
		d.session.resize(w, h)
	}
	if reset {
		d.session = d.freshSession(d.session.W, d.session.H, mode)
		d.events |= EventReset
		d.logger.Debug("session reset", "mode", mode)
	}
	return flap
}

func (d *Driver) flap() {
	d.physics.Impulse(&d.session.Player)
	d.events |= EventFlap
	d.notify(func(h Hooks) { h.Flapped() })
}

func (d *Driver) updatePlaying() {
	s := d.session
	speed := d.cfg.Physics.BaseSpeed * s.SpeedMult

	s.BgScroll += speed * 0.4
	s.GroundScroll -= speed * 1.5
	if s.HitCooldown > 0 {
		s.HitCooldown--
	}

	d.physics.Integrate(&s.Player)
	if ClampBounds(&s.Player, s.GroundY()) == BoundaryGround {
		if d.endsTick(d.hit()) {
			return
		}
	}

	stream := s.stream
	if s.SpawnClock%stream.Interval() == 0 {
		stream.Spawn(s.W, s.H, s.GroundY())
	}
	stream.Advance(speed)
	stream.Retire()

	hitbox := s.Player.Hitbox(d.cfg.Player.InsetW, d.cfg.Player.InsetH)
	obstacles := stream.Obstacles()
	for i := range obstacles {
		if Collides(hitbox, obstacles[i], stream.Width()) {
			if d.endsTick(d.hit()) {
				return
			}
		}
		if stream.CheckPass(&obstacles[i], s.Player.X) {
			if d.score() {
				return
			}
		}
	}

	s.SpawnClock++
}

// endsTick reports whether a hit ends this playing tick. A respawn still
// counts the tick on the spawn clock, so the next pipe keeps its cadence.
func (d *Driver) endsTick(r HitResult) bool {
	switch r {
	case HitRespawn:
		d.session.SpawnClock++
		return true
	case HitFatal:
		return true
	}
	return false
}

func (d *Driver) updateDying() {
	s := d.session
	d.physics.Integrate(&s.Player)
	ClampBounds(&s.Player, s.GroundY())

	s.DyingLeft--
	if s.DyingLeft <= 0 {
		s.Mode = ModeDead
		d.logger.Info("run over", "score", s.Score, "best", d.BestScore())
	}
}

// updateIdle bobs the player as a pure function of the tick counter.
func (d *Driver) updateIdle() {
	s := d.session
	idle := d.cfg.Idle

	elapsedMS := float64(s.Tick) * 1000 / float64(d.cfg.Display.TickRate)
	wave := math.Sin(elapsedMS / idle.BobPeriodMS)

	s.Player.Y = s.H*d.cfg.Player.StartYRatio + wave*idle.BobAmplitude
	s.Player.VY = 0
	s.Player.Angle = wave * idle.TiltAmplitude
	s.BgScroll += idle.ScrollSpeed
}

func (d *Driver) hit() HitResult {
	s := d.session
	res := s.Hit()
	if res == HitIgnored {
		return res
	}
	d.events |= EventHit
	lives := s.Player.Lives
	d.notify(func(h Hooks) { h.Hit(lives) })
	if res == HitFatal {
		d.logger.Debug("last life lost", "score", s.Score)
	}
	return res
}

// score awards one point and reports whether it ended the run with a win.
func (d *Driver) score() bool {
	s := d.session
	won := s.AddPoint()
	d.events |= EventScore

	if int64(s.Score) > d.best.Load() {
		d.best.Store(int64(s.Score))
		if d.bestRec != nil {
			d.bestRec.Record(s.Score)
		}
	}

	count := s.Score
	d.notify(func(h Hooks) { h.Scored(count) })

	if won {
		d.events |= EventWin
		d.notify(func(h Hooks) { h.Won() })
		d.logger.Info("run won", "score", s.Score)
	}
	return won
}

// notify fans a notification out to every hook, recovering panics.
func (d *Driver) notify(call func(Hooks)) {
	for _, h := range d.hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.logger.Warn("hook panicked", "err", r)
				}
			}()
			call(h)
		}()
	}
}

func (d *Driver) snapshot() Snapshot {
	s := d.session
	obstacles := make([]Obstacle, s.stream.Len())
	copy(obstacles, s.stream.Obstacles())

	return Snapshot{
		Mode:          s.Mode,
		Tick:          s.Tick,
		Score:         s.Score,
		Best:          d.BestScore(),
		Lives:         s.Player.Lives,
		Player:        s.Player,
		Obstacles:     obstacles,
		ObstacleWidth: s.stream.Width(),
		Width:         s.W,
		Height:        s.H,
		GroundY:       s.GroundY(),
		SpeedMult:     s.SpeedMult,
		BgScroll:      s.BgScroll,
		GroundScroll:  s.GroundScroll,
		HitCooldown:   s.HitCooldown,
		Invincible:    d.cfg.Session.Invincible,
		Events:        d.events,
	}
}

// PlayfieldSize converts a terminal size to logical playfield pixels.
func PlayfieldSize(cols, rows int, display config.Display) (w, h float64) {
	return float64(core.Max(0, cols) * display.CellWidth), float64(core.Max(0, rows) * display.CellHeight)
}
