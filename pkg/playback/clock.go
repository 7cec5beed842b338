// Package playback drives the active index of a collection at a fixed
// interval. Each collection view owns one Clock; there is no shared timer
// state anywhere in the process.
package playback

import (
	"sync"
	"time"

	"github.com/user/patterncard/pkg/pattern"
)

// Clock is a two-state (stopped/running) playback timer over a collection.
// All methods are safe for concurrent use.
type Clock struct {
	mu         sync.Mutex
	collection *pattern.Collection
	timingMs   int
	running    bool
	ticker     *time.Ticker
	done       chan struct{}
	onChange   func(index int)
}

// New creates a stopped clock bound to a collection, ticking at the
// collection's timing interval.
func New(c *pattern.Collection) *Clock {
	return &Clock{collection: c, timingMs: c.TimingMs}
}

// OnChange registers a callback invoked with the new active index after
// every advance or selection. Must be set before Play.
func (k *Clock) OnChange(fn func(index int)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.onChange = fn
}

// Running reports whether the clock is in the running state.
func (k *Clock) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

// Play transitions Stopped to Running. Calling Play while running is a
// no-op.
func (k *Clock) Play() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.running {
		return
	}
	k.running = true
	k.startLocked()
}

// Pause transitions Running to Stopped and cancels the timer.
func (k *Clock) Pause() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.stopLocked()
}

// Toggle flips between Running and Stopped.
func (k *Clock) Toggle() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.running {
		k.stopLocked()
		return
	}
	k.running = true
	k.startLocked()
}

// SetTimingMs changes the interval. While running the timer is torn down
// and reinstalled at the new interval; no partial tick carries over.
func (k *Clock) SetTimingMs(ms int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ms <= 0 {
		ms = pattern.DefaultTimingMs
	}
	k.timingMs = ms
	k.collection.TimingMs = ms
	if k.running {
		k.stopTimerLocked()
		k.startLocked()
	}
}

// SelectIndex forces the clock to Stopped and sets the active index
// directly. Explicit navigation always takes playback out of Running.
func (k *Clock) SelectIndex(i int) {
	k.mu.Lock()
	k.stopLocked()
	k.collection.Select(i)
	fn, idx := k.onChange, k.collection.ActiveIndex
	k.mu.Unlock()
	if fn != nil {
		fn(idx)
	}
}

// Advance performs one tick: active index moves to (active+1) mod length,
// clamping first in case the collection shrank since the last tick. It is
// called by the timer loop and directly by tests.
func (k *Clock) Advance() {
	k.mu.Lock()
	n := k.collection.Len()
	if n == 0 {
		k.mu.Unlock()
		return
	}
	if k.collection.ActiveIndex >= n {
		k.collection.ActiveIndex = n - 1
	}
	k.collection.ActiveIndex = (k.collection.ActiveIndex + 1) % n
	fn, idx := k.onChange, k.collection.ActiveIndex
	k.mu.Unlock()
	if fn != nil {
		fn(idx)
	}
}

func (k *Clock) startLocked() {
	k.ticker = time.NewTicker(time.Duration(k.timingMs) * time.Millisecond)
	k.done = make(chan struct{})
	go k.loop(k.ticker, k.done)
}

func (k *Clock) loop(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-ticker.C:
			k.Advance()
		case <-done:
			return
		}
	}
}

func (k *Clock) stopLocked() {
	k.running = false
	k.stopTimerLocked()
}

func (k *Clock) stopTimerLocked() {
	if k.ticker != nil {
		k.ticker.Stop()
		k.ticker = nil
	}
	if k.done != nil {
		close(k.done)
		k.done = nil
	}
}
