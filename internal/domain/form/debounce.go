// internal/domain/form/debounce.go
package form

import "time"

// Debouncer owns at most one pending task. Scheduling replaces the
// pending task; Cancel drops it.
//
// Schedule, Cancel and Pending must be called from one goroutine. When a
// timer fires, its task is handed to post, which must run it on that
// same goroutine.
type Debouncer struct {
	clock Clock
	quiet time.Duration
	post  func(func())

	timer Timer
	gen   uint64
}

func NewDebouncer(clock Clock, quiet time.Duration, post func(func())) *Debouncer {
	return &Debouncer{
		clock: clock,
		quiet: quiet,
		post:  post,
	}
}

// Schedule runs fn once the quiet period elapses, unless Schedule or
// Cancel is called again first.
func (d *Debouncer) Schedule(fn func()) {
	d.Cancel()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.quiet, func() {
		d.post(func() {
			// The timer may have fired after a Cancel that could not stop it.
			if gen != d.gen {
				return
			}
			d.timer = nil
			fn()
		})
	})
}

// Cancel releases the pending task, if any. It is safe to call at any
// time and any number of times.
func (d *Debouncer) Cancel() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) Pending() bool {
	return d.timer != nil
}

func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}
