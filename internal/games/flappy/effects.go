package flappy

import (
	"math"
	"math/rand"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/flappyep/internal/core"
)

// Decoration tuning, in logical pixels and seconds.
const (
	particlesPerBurst = 12
	particleDecay     = 0.035
	particleGravity   = 0.1
	popupRise         = 40
	popupSeconds      = 0.8
	shakeSeconds      = 0.4
	confettiPieces    = 35
	confettiSeconds   = 3.5
	bannerSeconds     = 0.9
	trailLength       = 10
)

var (
	particleGlyphs = []rune{'*', '•', '·'}
	confettiGlyphs = []rune{'▪', '▴', '●', '◆', '✦'}
	confettiColors = []core.Color{core.ColorNeonTeal, core.ColorNeonPink, core.ColorNeonYellow}
)

type particle struct {
	x, y, vx, vy float64
	life         float64
	color        core.Color
	glyph        rune
}

type popup struct {
	x     float64
	tween *gween.Tween
	y     float32
	text  string
	color core.Color
}

type confetto struct {
	x, y, vy float64
	color    core.Color
	glyph    rune
}

// Effects holds purely decorative state. It watches successive snapshots
// and never feeds anything back into the simulation.
type Effects struct {
	rng *rand.Rand
	dt  float32 // Seconds per tick

	last     Snapshot
	seen     bool
	particle []particle
	popups   []popup
	confetti []confetto
	trail    [][2]float64

	shakeLeft    float32
	confettiLeft float32
	banner       *gween.Tween
	bannerChars  int
}

// NewEffects creates decoration state for a loop running at tickRate.
func NewEffects(tickRate int, seed int64) *Effects {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Effects{
		rng: rand.New(rand.NewSource(seed)),
		dt:  1 / float32(tickRate),
	}
}

// Observe advances the decoration by the ticks elapsed since the previous
// snapshot and starts effects for what changed in between.
func (e *Effects) Observe(s Snapshot) {
	steps := 1
	if e.seen {
		if s.Tick < e.last.Tick || s.Events.Has(EventReset) {
			e.clear()
		} else {
			e.trigger(e.last, s)
			steps = int(min(s.Tick-e.last.Tick, 10))
		}
	}
	for i := 0; i < steps; i++ {
		e.step(s)
	}
	e.last, e.seen = s, true
}

func (e *Effects) clear() {
	e.particle = e.particle[:0]
	e.popups = e.popups[:0]
	e.confetti = e.confetti[:0]
	e.trail = e.trail[:0]
	e.shakeLeft, e.confettiLeft = 0, 0
	e.banner = nil
	e.bannerChars = 0
}

func (e *Effects) trigger(prev, s Snapshot) {
	cx, cy := s.Player.Bounds().Center()

	if s.Score > prev.Score && s.Mode != ModeIdle {
		e.burst(cx, cy, core.ColorNeonTeal, core.ColorNeonPink)
		e.popups = append(e.popups, popup{
			x:     cx,
			tween: gween.New(float32(s.Player.Y), float32(s.Player.Y-popupRise), popupSeconds, ease.OutQuad),
			y:     float32(s.Player.Y),
			text:  "+1",
			color: core.ColorNeonYellow,
		})
	}
	if s.Lives < prev.Lives {
		e.burst(cx, cy, core.ColorRed, core.ColorNeonOrange)
		e.shakeLeft = shakeSeconds
		e.trail = e.trail[:0]
	}
	if s.Mode == ModeWon && prev.Mode != ModeWon {
		e.confettiLeft = confettiSeconds
		e.banner = gween.New(0, float32(len([]rune(wonTitle))), bannerSeconds, ease.Linear)
	}
}

// burst scatters particles radially from (x, y), each drawn in a or b.
func (e *Effects) burst(x, y float64, a, b core.Color) {
	for i := 0; i < particlesPerBurst; i++ {
		angle := 2*math.Pi*float64(i)/particlesPerBurst + e.rng.Float64()*0.5
		speed := 1.5 + e.rng.Float64()*3
		color := a
		if e.rng.Float64() > 0.5 {
			color = b
		}
		e.particle = append(e.particle, particle{
			x:     x,
			y:     y,
			vx:    math.Cos(angle) * speed,
			vy:    math.Sin(angle) * speed,
			life:  1,
			color: color,
			glyph: particleGlyphs[e.rng.Intn(len(particleGlyphs))],
		})
	}
}

func (e *Effects) step(s Snapshot) {
	alive := e.particle[:0]
	for _, p := range e.particle {
		p.x += p.vx
		p.y += p.vy
		p.vy += particleGravity
		p.life -= particleDecay
		if p.life > 0 {
			alive = append(alive, p)
		}
	}
	e.particle = alive

	live := e.popups[:0]
	for _, p := range e.popups {
		var done bool
		p.y, done = p.tween.Update(e.dt)
		if !done {
			live = append(live, p)
		}
	}
	e.popups = live

	if e.shakeLeft > 0 {
		e.shakeLeft -= e.dt
	}

	if s.Mode == ModePlaying {
		cx, cy := s.Player.Bounds().Center()
		e.trail = append(e.trail, [2]float64{cx, cy})
		if len(e.trail) > trailLength {
			e.trail = e.trail[len(e.trail)-trailLength:]
		}
	} else if len(e.trail) > 0 {
		e.trail = e.trail[1:]
	}

	e.stepConfetti(s)

	if e.banner != nil {
		n, _ := e.banner.Update(e.dt)
		e.bannerChars = int(n + 0.5)
	}
}

func (e *Effects) stepConfetti(s Snapshot) {
	if e.confettiLeft > 0 {
		e.confettiLeft -= e.dt
		// Spread the pieces over the confetti window.
		perTick := float32(confettiPieces) * e.dt / confettiSeconds
		for n := perTick; n > 0; n-- {
			if n < 1 && e.rng.Float32() > n {
				break
			}
			e.confetti = append(e.confetti, confetto{
				x:     e.rng.Float64() * s.Width,
				vy:    1.5 + e.rng.Float64()*2.5,
				color: confettiColors[e.rng.Intn(len(confettiColors))],
				glyph: confettiGlyphs[e.rng.Intn(len(confettiGlyphs))],
			})
		}
	}

	falling := e.confetti[:0]
	for _, c := range e.confetti {
		c.y += c.vy
		if c.y < s.Height {
			falling = append(falling, c)
		}
	}
	e.confetti = falling
}

// ShakeOffset returns the horizontal screen shake in cells for this frame.
func (e *Effects) ShakeOffset() int {
	if e.shakeLeft <= 0 {
		return 0
	}
	return e.rng.Intn(3) - 1
}

// Active reports whether any transient effect is still running.
func (e *Effects) Active() bool {
	return len(e.particle) > 0 || len(e.popups) > 0 || len(e.confetti) > 0 || e.shakeLeft > 0
}
