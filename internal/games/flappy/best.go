package flappy

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// BestScoreStore is the external persistence for the single best score.
// Calls are best-effort; failures never reach the simulation.
type BestScoreStore interface {
	BestScore(ctx context.Context) (int, error)
	SetBestScore(ctx context.Context, score int) error
}

// storeTimeout bounds a single persistence call.
const storeTimeout = 2 * time.Second

// BestKeeper sits between the driver and a BestScoreStore. Record never
// blocks: pending writes collapse to the latest value and a background
// goroutine performs them.
type BestKeeper struct {
	store  BestScoreStore
	logger *log.Logger

	mu      sync.Mutex
	closed  bool
	pending chan int
	done    chan struct{}
}

// NewBestKeeper starts the writer goroutine. A nil store disables persistence.
func NewBestKeeper(store BestScoreStore, logger *log.Logger) *BestKeeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	k := &BestKeeper{
		store:   store,
		logger:  logger,
		pending: make(chan int, 1),
		done:    make(chan struct{}),
	}
	go k.run()
	return k
}

// Load reads the persisted best score, returning 0 when it is missing or
// the store fails.
func (k *BestKeeper) Load(ctx context.Context) int {
	if k.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	best, err := k.store.BestScore(ctx)
	if err != nil {
		k.logger.Warn("best score unavailable, starting from zero", "err", err)
		return 0
	}
	return max(0, best)
}

// Record queues score for persistence, replacing any value not yet written.
func (k *BestKeeper) Record(score int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed || k.store == nil {
		return
	}
	select {
	case <-k.pending:
	default:
	}
	k.pending <- score
}

// Close flushes the pending value and waits for the writer to exit.
func (k *BestKeeper) Close() {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		<-k.done
		return
	}
	k.closed = true
	close(k.pending)
	k.mu.Unlock()
	<-k.done
}

func (k *BestKeeper) run() {
	defer close(k.done)
	for score := range k.pending {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := k.store.SetBestScore(ctx, score); err != nil {
			k.logger.Warn("saving best score failed", "score", score, "err", err)
		} else {
			k.logger.Debug("best score saved", "score", score)
		}
		cancel()
	}
}
