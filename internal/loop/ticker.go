// Package loop drives an engine on a fixed tick outside of the terminal UI.
// A Session owns the ticker and keeps it running only while the game is.
package loop

import (
	"context"
	"sync"
	"time"
)

// Ticker calls a function on a fixed interval from a single goroutine, so
// calls never overlap. The loop ends when the function returns false, the
// context is cancelled, or Stop is called.
type Ticker struct {
	interval time.Duration
	fn       func() bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker creates a stopped ticker.
func NewTicker(interval time.Duration, fn func() bool) *Ticker {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Ticker{interval: interval, fn: fn}
}

// Start launches the loop. It reports false if the loop is already running.
func (t *Ticker) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		select {
		case <-t.done:
			t.cancel()
		default:
			return false
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel, t.done = cancel, done
	go t.run(ctx, done)
	return true
}

func (t *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if !t.fn() {
				return
			}
		}
	}
}

// Stop ends the loop and waits for an in-flight call to return.
// It must not be called from inside the tick function.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop goroutine is alive.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Interval returns the tick period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}
