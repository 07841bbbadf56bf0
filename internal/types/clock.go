package types

import "time"

// Clock supplies the current time so billing dates can be pinned in tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall clock
func NewSystemClock() Clock {
	return systemClock{}
}
