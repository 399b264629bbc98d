package scheduler

import "time"

// Clock is the scheduler's time source. Tests inject a fake to step frames
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// time.Now carries a monotonic reading, so frame gaps are immune to wall
// clock changes.
func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock.
var SystemClock Clock = systemClock{}
