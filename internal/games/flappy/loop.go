package flappy

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// maxCatchUp bounds the ticks run for one timer fire in fixed-timestep mode.
const maxCatchUp = 5

// FrameSink receives the snapshot of every tick. It runs on the loop
// goroutine, so it must not block and must not call Start or Stop.
type FrameSink func(Snapshot)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithTickRate sets the number of ticks per second.
func WithTickRate(rate int) LoopOption {
	return func(l *Loop) {
		if rate > 0 {
			l.interval = time.Second / time.Duration(rate)
		}
	}
}

// WithFixedTimestep makes the loop run catch-up ticks from a wall-clock
// accumulator instead of exactly one tick per timer fire.
func WithFixedTimestep(fixed bool) LoopOption {
	return func(l *Loop) {
		l.fixed = fixed
	}
}

// WithLoopLogger sets the loop's logger.
func WithLoopLogger(logger *log.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loop schedules driver ticks on a timer. Start is idempotent: it first
// stops any running loop. Stop is synchronous: no tick runs after it returns.
type Loop struct {
	driver   *Driver
	sink     FrameSink
	interval time.Duration
	fixed    bool
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop creates a stopped loop that feeds sink.
func NewLoop(d *Driver, sink FrameSink, opts ...LoopOption) *Loop {
	if sink == nil {
		sink = func(Snapshot) {}
	}
	l := &Loop{
		driver:   d,
		sink:     sink,
		interval: time.Second / 60,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start (re)initializes the session in mode and begins ticking.
func (l *Loop) Start(ctx context.Context, mode Mode) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopLocked()
	l.driver.RequestReset(mode)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel, l.done = cancel, done
	go l.run(ctx, done)
	l.logger.Debug("loop started", "mode", mode, "interval", l.interval, "fixed", l.fixed)
}

// Stop halts the loop and waits for the tick goroutine to exit.
// It is safe to call when the loop is not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel, l.done = nil, nil
	l.logger.Debug("loop stopped")
}

// Running reports whether the tick goroutine is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Activate forwards the single input action to the driver.
func (l *Loop) Activate() {
	l.driver.Activate()
}

// Reset queues a full session reset, keeping the loop running.
func (l *Loop) Reset(mode Mode) {
	l.driver.RequestReset(mode)
}

// Driver returns the driver the loop ticks.
func (l *Loop) Driver() *Driver {
	return l.driver
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	// First frame immediately so the reset is visible without waiting a tick.
	l.sink(l.driver.Tick())

	last := time.Now()
	var acc time.Duration
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !l.fixed {
				l.sink(l.driver.Tick())
				continue
			}

			acc += now.Sub(last)
			last = now
			var snap Snapshot
			var events Events
			steps := 0
			for acc >= l.interval && steps < maxCatchUp {
				snap = l.driver.Tick()
				events |= snap.Events
				acc -= l.interval
				steps++
			}
			snap.Events = events
			if steps == maxCatchUp {
				acc = 0
			}
			if steps > 0 {
				l.sink(snap)
			}
		}
	}
}
