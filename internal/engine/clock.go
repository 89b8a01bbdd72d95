package engine

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the timer was
	// stopped before firing. A callback that has already started may still run
	// to completion; session callbacks re-check their generation under the
	// session lock, so a late fire is a no-op.
	Stop() bool
}

// Clock abstracts wall time and timer scheduling so sessions can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// NewClock returns a Clock backed by the time package.
func NewClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
