package flappy

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/flappyep/internal/config"
	"github.com/vovakirdan/flappyep/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	GroundDash    = '─'
	BodyChar      = '█'
	EyeChar       = '●'
	BeakLevel     = '▶'
	BeakDiving    = '◢'
	BeakClimbing  = '◥'
	HeartFull     = '♥'
	HeartEmpty    = '♡'
	BuildingChar  = '░'
	WindowChar    = '▪'
	StarChar      = '·'
)

const wonTitle = "YOU WIN!"

// Skyline buildings as fractions of the playfield: x, top, width, height.
var skyline = [][4]float64{
	{0.05, 0.6, 0.08, 0.3},
	{0.12, 0.5, 0.06, 0.4},
	{0.2, 0.55, 0.1, 0.35},
	{0.32, 0.45, 0.07, 0.45},
	{0.42, 0.6, 0.09, 0.3},
	{0.55, 0.5, 0.06, 0.4},
	{0.63, 0.42, 0.08, 0.48},
	{0.73, 0.55, 0.1, 0.35},
	{0.85, 0.48, 0.07, 0.42},
	{0.93, 0.6, 0.06, 0.3},
}

// Renderer draws snapshots onto a character screen. One logical pixel
// column is 1/cellW of a terminal column.
type Renderer struct {
	cellW, cellH float64
	effects      *Effects
	dx           int // Shake offset for the current frame
}

// NewRenderer creates a renderer for the given cell geometry.
func NewRenderer(display config.Display, seed int64) *Renderer {
	return &Renderer{
		cellW:   float64(core.Max(1, display.CellWidth)),
		cellH:   float64(core.Max(1, display.CellHeight)),
		effects: NewEffects(display.TickRate, seed),
	}
}

// Observe feeds a new snapshot to the decoration layer. Call it once per
// received frame; Draw may then be called any number of times.
func (r *Renderer) Observe(s Snapshot) {
	r.effects.Observe(s)
}

// Effects returns the decoration state.
func (r *Renderer) Effects() *Effects {
	return r.effects
}

func (r *Renderer) col(px float64) int {
	return int(math.Floor(px/r.cellW)) + r.dx
}

func (r *Renderer) row(py float64) int {
	return int(math.Floor(py / r.cellH))
}

// Draw renders the snapshot and the current decoration.
func (r *Renderer) Draw(dst *core.Screen, s Snapshot) {
	dst.Clear()

	r.dx = r.effects.ShakeOffset()
	r.drawSky(dst, s)
	for _, o := range s.Obstacles {
		r.drawObstacle(dst, s, o)
	}
	r.drawGround(dst, s)
	r.drawTrail(dst, s)
	r.drawParticles(dst)
	r.drawPlayer(dst, s)
	r.drawPopups(dst)
	r.drawConfetti(dst)
	r.dx = 0

	r.drawHUD(dst, s)
	r.drawOverlay(dst, s)
}

func (r *Renderer) drawSky(dst *core.Screen, s Snapshot) {
	groundRow := r.row(s.GroundY)

	// Fixed star field
	for y := 0; y < groundRow/2; y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13)%41 == 0 {
				dst.SetColor(x, y, StarChar, core.ColorDim)
			}
		}
	}

	if s.Width <= 0 {
		return
	}
	for i, b := range skyline {
		bx := math.Mod(math.Mod(b[0]*s.Width-s.BgScroll*0.3, s.Width)+s.Width, s.Width)
		c0 := int(bx / r.cellW)
		wc := core.Max(1, int(b[2]*s.Width/r.cellW))
		top := r.row(b[1] * s.Height)
		for y := top; y < groundRow; y++ {
			for c := 0; c < wc; c++ {
				x := (c0 + c) % core.Max(1, dst.Width())
				if (c+y+i)%3 == 0 && c > 0 && c < wc-1 && y > top {
					dst.SetColor(x, y, WindowChar, core.ColorSky)
					continue
				}
				dst.SetColor(x, y, BuildingChar, core.ColorSky)
			}
		}
	}
}

func (r *Renderer) drawObstacle(dst *core.Screen, s Snapshot, o Obstacle) {
	x0 := r.col(o.X)
	x1 := core.Max(x0+1, r.col(o.X+s.ObstacleWidth))
	groundRow := r.row(s.GroundY)
	capTop := r.row(o.GapY)
	capBottom := r.row(o.GapBottom())

	for x := x0; x < x1; x++ {
		for y := 0; y < capTop; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorGreen)
		}
		dst.SetColor(x, capTop, PipeCapTop, core.ColorNeonTeal)

		if capBottom < groundRow {
			dst.SetColor(x, capBottom, PipeCapBottom, core.ColorNeonTeal)
		}
		for y := capBottom + 1; y < groundRow; y++ {
			dst.SetColor(x, y, PipeChar, core.ColorGreen)
		}
	}
}

func (r *Renderer) drawGround(dst *core.Screen, s Snapshot) {
	groundRow := r.row(s.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorNeonTeal)

	// Dashes 30px long with 20px gaps, scrolling left with the ground.
	for x := 0; x < dst.Width(); x++ {
		pos := math.Mod(math.Mod(float64(x)*r.cellW-s.GroundScroll, 50)+50, 50)
		if pos < 30 {
			dst.SetColor(x, groundRow+1, GroundDash, core.ColorGround)
		}
	}
}

func (r *Renderer) drawTrail(dst *core.Screen, s Snapshot) {
	trail := r.effects.trail
	color := core.PlayerColor(s.Score)
	for i, p := range trail {
		glyph := StarChar
		if i >= len(trail)/2 {
			glyph = '•'
		}
		dst.SetColor(r.col(p[0]), r.row(p[1]), glyph, color)
	}
}

func (r *Renderer) drawParticles(dst *core.Screen) {
	for _, p := range r.effects.particle {
		glyph := p.glyph
		if p.life < 0.3 {
			glyph = StarChar
		}
		dst.SetColor(r.col(p.x), r.row(p.y), glyph, p.color)
	}
}

func (r *Renderer) drawPlayer(dst *core.Screen, s Snapshot) {
	// Blink while hits are ignored after a respawn.
	if s.Mode == ModePlaying && s.HitCooldown > 0 && (s.HitCooldown/4)%2 == 1 {
		return
	}

	p := s.Player
	c0 := r.col(p.X)
	c1 := core.Max(c0+2, r.col(p.X+p.Width))
	r0 := r.row(p.Y)
	r1 := core.Max(r0+1, r.row(p.Y+p.Height-1)+1)

	color := core.PlayerColor(s.Score)
	if s.Mode == ModeDying || s.Mode == ModeDead {
		color = core.ColorRed
	}
	dst.DrawRectColor(core.NewRect(c0, r0, c1-c0, r1-r0), BodyChar, color)

	mid := (r0 + r1 - 1) / 2
	wing := PipeCapTop
	if p.VY < 0 && (s.Tick/4)%2 == 0 {
		wing = PipeCapBottom
	}
	dst.SetColor(c0+1, r1-1, wing, core.ColorNeonYellow)
	dst.SetColor(c1-1, r0, EyeChar, core.ColorWhite)

	beak := BeakLevel
	switch {
	case p.Angle > 0.4:
		beak = BeakDiving
	case p.Angle < -0.2:
		beak = BeakClimbing
	}
	dst.SetColor(c1, mid, beak, core.ColorNeonOrange)
}

func (r *Renderer) drawPopups(dst *core.Screen) {
	for _, p := range r.effects.popups {
		dst.DrawTextColor(r.col(p.x)-1, r.row(float64(p.y))-1, p.text, p.color)
	}
}

func (r *Renderer) drawConfetti(dst *core.Screen) {
	for _, c := range r.effects.confetti {
		dst.SetColor(r.col(c.x), r.row(c.y), c.glyph, c.color)
	}
}

func (r *Renderer) drawHUD(dst *core.Screen, s Snapshot) {
	if s.Mode != ModePlaying && s.Mode != ModeDying {
		return
	}

	score := fmt.Sprintf(" SCORE %d ", s.Score)
	dst.DrawTextColor(1, 0, score, core.ColorNeonYellow)

	hearts := make([]rune, 0, config.MaxLives)
	for i := 0; i < config.MaxLives; i++ {
		if i < s.Lives {
			hearts = append(hearts, HeartFull)
		} else {
			hearts = append(hearts, HeartEmpty)
		}
	}
	dst.DrawTextColor(1+utf8.RuneCountInString(score), 0, string(hearts), core.ColorNeonPink)
	if s.Invincible {
		dst.DrawTextColor(2+utf8.RuneCountInString(score)+len(hearts), 0, "GOD", core.ColorNeonViolet)
	}

	if s.SpeedMult > 1 {
		dst.DrawTextCenteredColor(0, fmt.Sprintf("x%.1f", s.SpeedMult), core.ColorNeonOrange)
	}

	best := fmt.Sprintf(" BEST %d ", s.Best)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(best)-1, 0, best, core.ColorGold)
}

type panelLine struct {
	text  string
	color core.Color
}

func (r *Renderer) drawOverlay(dst *core.Screen, s Snapshot) {
	switch s.Mode {
	case ModeIdle:
		drawPanel(dst, []panelLine{
			{"F L A P P Y", core.ColorNeonTeal},
			{"", 0},
			{"SPACE / click to flap", core.ColorWhite},
			{fmt.Sprintf("best %d", s.Best), core.ColorGold},
			{"", 0},
			{"Q quit", core.ColorGray},
		})
	case ModeDead:
		drawPanel(dst, []panelLine{
			{"GAME OVER", core.ColorNeonPink},
			{"", 0},
			{fmt.Sprintf("Score %d   Best %d", s.Score, s.Best), core.ColorWhite},
			{"Rank: " + Rank(s.Score), rankColor(s.Score)},
			{"", 0},
			{"R retry   M menu   Q quit", core.ColorGray},
		})
	case ModeWon:
		title := []rune(wonTitle)
		n := core.Clamp(r.effects.bannerChars, 0, len(title))
		if r.effects.banner == nil {
			n = len(title)
		}
		drawPanel(dst, []panelLine{
			{string(title[:n]), core.ColorGold},
			{"", 0},
			{fmt.Sprintf("Score %d   Best %d", s.Score, s.Best), core.ColorWhite},
			{"", 0},
			{"R play again   M menu   Q quit", core.ColorGray},
		})
	}
}

func rankColor(score int) core.Color {
	switch Rank(score) {
	case "Legend":
		return core.ColorNeonViolet
	case "Gold":
		return core.ColorGold
	case "Silver":
		return core.ColorSilver
	default:
		return core.ColorNeonOrange
	}
}

// drawPanel draws a bordered message box in the center of the screen.
func drawPanel(dst *core.Screen, lines []panelLine) {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, utf8.RuneCountInString(l.text))
	}
	// Reserve room for the typing banner so the box does not grow.
	inner = core.Max(inner, utf8.RuneCountInString(wonTitle))

	boxW := inner + 6
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorNeonViolet)
	for i, l := range lines {
		x := box.X + (boxW-utf8.RuneCountInString(l.text))/2
		dst.DrawTextColor(x, box.Y+1+i, l.text, l.color)
	}
}
