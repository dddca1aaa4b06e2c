package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// inline runs posted tasks immediately on the caller's goroutine.
func inline(fn func()) { fn() }

func TestDebouncerTrailingEdge(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, 500*time.Millisecond, inline)

	var fired []int
	for i := 1; i <= 5; i++ {
		i := i
		d.Schedule(func() { fired = append(fired, i) })
		clock.Advance(100 * time.Millisecond)
	}
	assert.Empty(t, fired)
	assert.True(t, d.Pending())

	clock.Advance(400 * time.Millisecond)
	assert.Equal(t, []int{5}, fired)
	assert.False(t, d.Pending())
	assert.Zero(t, clock.Active())
}

func TestDebouncerCancel(t *testing.T) {
	clock := newManualClock()
	d := NewDebouncer(clock, time.Second, inline)

	called := false
	d.Schedule(func() { called = true })
	d.Cancel()
	d.Cancel()
	clock.Advance(time.Hour)

	assert.False(t, called)
	assert.False(t, d.Pending())
}

func TestDebouncerDropsTaskQueuedBeforeCancel(t *testing.T) {
	clock := newManualClock()
	var queue []func()
	d := NewDebouncer(clock, time.Second, func(fn func()) { queue = append(queue, fn) })

	called := false
	d.Schedule(func() { called = true })
	clock.Advance(time.Second)
	if assert.Len(t, queue, 1) {
		// The timer fired but its task has not run yet.
		d.Cancel()
		queue[0]()
	}
	assert.False(t, called)
}

func TestDebouncerQuiet(t *testing.T) {
	d := NewDebouncer(RealClock(), 250*time.Millisecond, inline)
	assert.Equal(t, 250*time.Millisecond, d.Quiet())
}
