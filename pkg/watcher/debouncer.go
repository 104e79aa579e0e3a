// Package watcher reports debounced changes to the task database file.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 250 * time.Millisecond

// debouncer coalesces bursts of Trigger calls into a single fire call that
// runs once the window has been quiet for the configured duration.
type debouncer struct {
	duration time.Duration
	fire     func()

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

func newDebouncer(duration time.Duration, fire func()) *debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &debouncer{duration: duration, fire: fire}
}

// Trigger restarts the quiet window.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A timer that already fired when Stop was called must not run a stale call.
		current := seq == d.seq && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			d.fire()
		}
	})
}

// Stop cancels any pending call; later Triggers are ignored.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
