package models

import (
	"time"
)

// TimePrecision is the resolution kept for persisted timestamps. Document
// stores keep milliseconds, so entities are created at that precision.
const TimePrecision = time.Millisecond

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC().Truncate(TimePrecision)
}
