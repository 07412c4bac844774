package holiday

import "time"

// Holiday is a single organization-wide non-working day.
type Holiday struct {
	Id   int
	Date time.Time
	Name string
}
