// internal/domain/form/clock.go
package form

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. It exists so tests can drive time by hand.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock schedules on the runtime timer heap.
func RealClock() Clock {
	return realClock{}
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
