// Package audio synthesizes the game's sound effects with beep.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Tone describes one synthesized note.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Gain     float64
}

// tone streams a single note with an exponential decay envelope.
type tone struct {
	step     float64 // Phase advance per sample
	phase    float64
	position int
	total    int
	wave     Wave
	gain     float64
}

// NewTone returns a finite streamer playing t at rate.
func NewTone(t Tone, rate beep.SampleRate) beep.Streamer {
	return &tone{
		step:  t.Freq / float64(rate),
		total: rate.N(t.Duration),
		wave:  t.Wave,
		gain:  t.Gain,
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2*o.phase - 1
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		// Decays to about 1% of the gain by the end of the note.
		env := math.Exp(-4.6 * float64(o.position) / float64(o.total))
		val *= o.gain * env

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.step
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error {
	return nil
}

// Sequence plays tones back to back.
func Sequence(rate beep.SampleRate, tones ...Tone) beep.Streamer {
	streamers := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		streamers[i] = NewTone(t, rate)
	}
	return beep.Seq(streamers...)
}
