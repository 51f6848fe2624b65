package usecase

import "time"

// Clock abstracts wall time so the check-in window and the 24h cancellation
// window can be exercised in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
