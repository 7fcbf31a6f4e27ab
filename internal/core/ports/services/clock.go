package services

import "time"

// Clock supplies the current time. Injected so lateness and overdue
// computations are testable.
type Clock interface {
	Now() time.Time
}
