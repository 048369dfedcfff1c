package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flappyep/internal/games/flappy"
)

const sampleRate = beep.SampleRate(44100)

// Sound effects.
var (
	FlapTone  = Tone{Freq: 520, Duration: 100 * time.Millisecond, Wave: WaveTriangle, Gain: 0.18}
	ScoreTone = Tone{Freq: 880, Duration: 120 * time.Millisecond, Wave: WaveSine, Gain: 0.2}
	HitTone   = Tone{Freq: 100, Duration: 300 * time.Millisecond, Wave: WaveSaw, Gain: 0.35}
	WinTones  = []Tone{
		{Freq: 523, Duration: 150 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
		{Freq: 659, Duration: 150 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
		{Freq: 784, Duration: 150 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
		{Freq: 1047, Duration: 300 * time.Millisecond, Wave: WaveSquare, Gain: 0.15},
	}
)

// Player accepts streamers to play. The speaker is the production player.
type Player interface {
	Play(s beep.Streamer)
}

type speakerPlayer struct{}

func (speakerPlayer) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Synth turns game notifications into sound. A Synth with no player is
// silent, so a missing audio device never stops the game.
type Synth struct {
	mu     sync.Mutex
	player Player
	muted  bool
	rate   beep.SampleRate
	logger *log.Logger
}

var _ flappy.Hooks = (*Synth)(nil)

// NewSynth opens the audio device, even when muted, so sound can be switched
// on later. When it cannot be opened the returned Synth is silent and the
// error is only logged.
func NewSynth(muted bool, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Synth{muted: muted, rate: sampleRate, logger: logger}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, continuing silently", "err", err)
		return s
	}
	s.player = speakerPlayer{}
	return s
}

// NewSynthWithPlayer creates a synth that plays into p.
func NewSynthWithPlayer(p Player, rate beep.SampleRate) *Synth {
	return &Synth{player: p, rate: rate, logger: log.New(io.Discard)}
}

// SetMuted toggles all output.
func (s *Synth) SetMuted(muted bool) {
	s.mu.Lock()
	s.muted = muted
	s.mu.Unlock()
}

// Muted reports whether output is off.
func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *Synth) play(tones ...Tone) {
	s.mu.Lock()
	p, muted := s.player, s.muted
	s.mu.Unlock()
	if p == nil || muted {
		return
	}
	p.Play(Sequence(s.rate, tones...))
}

// Flapped plays the flap chirp.
func (s *Synth) Flapped() { s.play(FlapTone) }

// Scored plays the score ding.
func (s *Synth) Scored(int) { s.play(ScoreTone) }

// Hit plays the crash buzz.
func (s *Synth) Hit(int) { s.play(HitTone) }

// Won plays the victory arpeggio.
func (s *Synth) Won() { s.play(WinTones...) }
