package audio

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

// drain streams s to the end and returns every left-channel sample.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestToneLengthAndRange(t *testing.T) {
	tests := []struct {
		name string
		tone Tone
	}{
		{"flap", FlapTone},
		{"score", ScoreTone},
		{"hit", HitTone},
		{"square", Tone{Freq: 440, Duration: 50 * time.Millisecond, Wave: WaveSquare, Gain: 0.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			samples := drain(NewTone(tc.tone, testRate))
			if expected := testRate.N(tc.tone.Duration); len(samples) != expected {
				t.Errorf("streamed %d samples, expected %d", len(samples), expected)
			}
			peak := 0.0
			for _, v := range samples {
				peak = math.Max(peak, math.Abs(v))
			}
			if peak > tc.tone.Gain+1e-9 {
				t.Errorf("peak = %v, expected at most gain %v", peak, tc.tone.Gain)
			}
			if peak == 0 {
				t.Error("tone is silent")
			}
		})
	}
}

func TestToneDecays(t *testing.T) {
	samples := drain(NewTone(Tone{Freq: 100, Duration: 200 * time.Millisecond, Wave: WaveSquare, Gain: 1}, testRate))
	head := math.Abs(samples[0])
	tail := math.Abs(samples[len(samples)-1])
	if tail >= head/10 {
		t.Errorf("tail %v not below a tenth of head %v", tail, head)
	}
}

func TestSequenceLength(t *testing.T) {
	samples := drain(Sequence(testRate, WinTones...))
	expected := 0
	for _, tone := range WinTones {
		expected += testRate.N(tone.Duration)
	}
	if len(samples) != expected {
		t.Errorf("arpeggio streamed %d samples, expected %d", len(samples), expected)
	}
}

type recordingPlayer struct {
	mu      sync.Mutex
	lengths []int
}

func (p *recordingPlayer) Play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lengths = append(p.lengths, len(drain(s)))
}

func TestSynthHooks(t *testing.T) {
	p := &recordingPlayer{}
	s := NewSynthWithPlayer(p, testRate)

	s.Flapped()
	s.Scored(1)
	s.Hit(2)
	s.Won()

	expected := []int{
		testRate.N(FlapTone.Duration),
		testRate.N(ScoreTone.Duration),
		testRate.N(HitTone.Duration),
		len(drain(Sequence(testRate, WinTones...))),
	}
	if len(p.lengths) != len(expected) {
		t.Fatalf("played %d sounds, expected %d", len(p.lengths), len(expected))
	}
	for i := range expected {
		if p.lengths[i] != expected[i] {
			t.Errorf("sound %d length = %d, expected %d", i, p.lengths[i], expected[i])
		}
	}
}

func TestSynthMuted(t *testing.T) {
	p := &recordingPlayer{}
	s := NewSynthWithPlayer(p, testRate)
	s.SetMuted(true)

	s.Flapped()
	s.Won()
	if len(p.lengths) != 0 {
		t.Errorf("muted synth played %d sounds", len(p.lengths))
	}
	if !s.Muted() {
		t.Error("Muted() = false after SetMuted(true)")
	}

	s.SetMuted(false)
	s.Flapped()
	if len(p.lengths) != 1 {
		t.Errorf("played %d sounds after unmute, expected 1", len(p.lengths))
	}
}
