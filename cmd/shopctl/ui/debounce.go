package ui

import (
	"sync"
	"time"
)

// ResizeDebouncer coalesces rapid window resize events so the layout only
// reflows once the terminal settles.
type ResizeDebouncer struct {
	mu            sync.Mutex
	timer         *time.Timer
	duration      time.Duration
	lastWidth     int
	lastHeight    int
	pendingWidth  int
	pendingHeight int
}

// NewResizeDebouncer creates a resize debouncer.
func NewResizeDebouncer(duration time.Duration) *ResizeDebouncer {
	return &ResizeDebouncer{duration: duration}
}

// Resize records a new size and schedules fn with the final dimensions once
// events stop arriving. Identical sizes are ignored.
func (d *ResizeDebouncer) Resize(width, height int, fn func(w, h int)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if width == d.lastWidth && height == d.lastHeight {
		return
	}
	d.pendingWidth, d.pendingHeight = width, height

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		w, h := d.pendingWidth, d.pendingHeight
		d.lastWidth, d.lastHeight = w, h
		d.mu.Unlock()
		fn(w, h)
	})
}

// Cancel drops any pending reflow.
func (d *ResizeDebouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
