// Package tui provides the Bubble Tea front end: the login gate, the game
// screen, the scoreboard and the SSH server.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappyep/internal/games/flappy"
)

// FrameMsg carries the latest simulation snapshot to the model.
type FrameMsg flappy.Snapshot

// frameClosedMsg reports that the frame source was shut down.
type frameClosedMsg struct{}

// frameQueue holds at most one undelivered snapshot. A newer frame replaces
// an older one, so a slow renderer drops frames instead of stalling ticks.
type frameQueue struct {
	ch  chan flappy.Snapshot
	ctx context.Context
}

func newFrameQueue(ctx context.Context) *frameQueue {
	return &frameQueue{ch: make(chan flappy.Snapshot, 1), ctx: ctx}
}

// push is the loop's frame sink. It never blocks.
func (q *frameQueue) push(s flappy.Snapshot) {
	for {
		select {
		case q.ch <- s:
			return
		default:
		}
		select {
		case <-q.ch:
		default:
		}
	}
}

// waitForFrame returns a command that delivers the next snapshot.
func (q *frameQueue) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-q.ch:
			return FrameMsg(s)
		case <-q.ctx.Done():
			return frameClosedMsg{}
		}
	}
}
