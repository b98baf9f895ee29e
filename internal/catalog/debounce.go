package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window for search keystrokes.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays a value until no newer value has been pushed for the
// configured window, then hands the latest one to fn on the timer goroutine.
// Cancel must be called on teardown; after Cancel, Push is a no-op.
type Debouncer struct {
	wait time.Duration
	fn   func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
	stopped bool
}

// NewDebouncer returns a Debouncer committing values to fn after wait.
// A non-positive wait uses DefaultDebounce.
func NewDebouncer(wait time.Duration, fn func(string)) *Debouncer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{wait: wait, fn: fn}
}

// Push schedules v, replacing any value still waiting.
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.pending = v
	d.timer = time.AfterFunc(d.wait, func() { d.fire(seq) })
}

// Flush commits the pending value now, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	d.seq++
	v := d.pending
	d.mu.Unlock()
	d.fn(v)
}

// Pending reports whether a value is waiting to be committed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending value and disables the Debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	// A timer whose Stop raced with expiry still runs; seq tells us it lost.
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v := d.pending
	d.mu.Unlock()
	d.fn(v)
}
