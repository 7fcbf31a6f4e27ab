package services

import (
	"time"

	portssvc "github.com/barengs/smpt-sub000/internal/core/ports/services"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by the wall clock in UTC.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
