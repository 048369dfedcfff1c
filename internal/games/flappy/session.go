package flappy

import (
	"github.com/vovakirdan/flappyep/internal/config"
)

// Mode is the high-level session state.
type Mode int

const (
	ModeIdle    Mode = iota // Attract mode, player bobs, no obstacles
	ModePlaying             // Full simulation
	ModeDying               // Last life lost, player falls without input or collision
	ModeDead                // Terminal, awaits reset
	ModeWon                 // Terminal, awaits reset
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlaying:
		return "playing"
	case ModeDying:
		return "dying"
	case ModeDead:
		return "dead"
	case ModeWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the mode waits for an explicit reset.
func (m Mode) Terminal() bool {
	return m == ModeDead || m == ModeWon
}

// HitResult describes how the session absorbed a hit.
type HitResult int

const (
	HitIgnored HitResult = iota // Cooldown active or invincible
	HitRespawn                  // Life lost, soft respawn, still playing
	HitFatal                    // Last life lost, now dying
)

// Session is the full mutable state of one play attempt.
// It is owned by the Driver and replaced wholesale on reset.
type Session struct {
	cfg    *config.GameConfig
	stream *Stream

	Mode         Mode
	Player       Player
	Score        int
	SpeedMult    float64
	Tick         uint64 // Monotonic, drives the idle bob
	SpawnClock   int    // Spawn cadence counter, reset on soft respawn
	HitCooldown  int    // Ticks during which hits are ignored
	DyingLeft    int    // Ticks until dying becomes dead
	BgScroll     float64
	GroundScroll float64

	W, H float64 // Playfield size in logical pixels
}

// newSession builds a fresh session in the requested mode.
func newSession(cfg *config.GameConfig, stream *Stream, w, h float64, mode Mode) *Session {
	s := &Session{
		cfg:       cfg,
		stream:    stream,
		Mode:      mode,
		SpeedMult: config.NewPace(cfg.Scaling).Multiplier(0),
		W:         w,
		H:         h,
	}
	s.Player = Player{
		X:      w * cfg.Player.XRatio,
		Y:      h * cfg.Player.StartYRatio,
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
		Lives:  cfg.Session.Lives,
	}
	return s
}

// GroundY returns the y-coordinate of the ground line.
func (s *Session) GroundY() float64 {
	return s.H - s.cfg.Session.GroundHeight
}

// Obstacles returns the session's obstacle stream.
func (s *Session) Obstacles() *Stream {
	return s.stream
}

// begin moves an idle session into play with the player re-centred.
func (s *Session) begin() {
	s.Mode = ModePlaying
	s.Player.Y = s.H * s.cfg.Player.StartYRatio
	s.Player.VY = 0
	s.Player.Angle = 0
	s.SpawnClock = 0
	s.stream.Clear()
}

// Hit applies one fatal contact: a soft respawn while lives remain, or the
// dying transition on the last life.
func (s *Session) Hit() HitResult {
	if s.Mode != ModePlaying || s.cfg.Session.Invincible || s.HitCooldown > 0 {
		return HitIgnored
	}

	s.Player.Lives--
	if s.Player.Lives <= 0 {
		s.Player.Lives = 0
		s.Mode = ModeDying
		s.DyingLeft = s.cfg.Session.DyingTicks
		s.Player.VY = s.cfg.Session.DeathKick
		return HitFatal
	}

	s.HitCooldown = s.cfg.Session.HitCooldownTicks
	s.respawn()
	return HitRespawn
}

// respawn resets the player and the obstacle field but keeps score and mode.
func (s *Session) respawn() {
	s.Player.Y = s.H * s.cfg.Player.RespawnRatio
	s.Player.VY = 0
	s.Player.Angle = 0
	s.stream.Clear()
	s.SpawnClock = 0
}

// AddPoint increments the score and reports whether the win score was reached.
func (s *Session) AddPoint() bool {
	s.Score++
	s.SpeedMult = config.NewPace(s.cfg.Scaling).Multiplier(s.Score)
	if s.Score >= s.cfg.Session.WinScore {
		s.Mode = ModeWon
		return true
	}
	return false
}

// resize adapts the playfield; positions scale with the new size only where
// they are defined as ratios.
func (s *Session) resize(w, h float64) {
	s.W, s.H = w, h
	s.Player.X = w * s.cfg.Player.XRatio
	if ground := s.GroundY(); s.Player.Y+s.Player.Height > ground {
		s.Player.Y = ground - s.Player.Height
	}
}
