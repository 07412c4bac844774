// Package event exposes externally synced calendar events. Rows in the
// external_event table are written by an outside sync process; this package
// only reads them.
package event

import "time"

type EventType string

const (
	TypeOfficial EventType = "OFFICIAL"
	TypeTeam     EventType = "TEAM"
	TypeOther    EventType = "OTHER"
)

// Event is an external happening shown alongside schedules. All-day events
// carry no minutes; timed events carry both.
type Event struct {
	Id          int
	Name        string
	Type        EventType
	Date        time.Time
	StartMinute *int
	EndMinute   *int
	Completed   bool
}

// AllDay reports whether the event has no time of day.
func (e *Event) AllDay() bool {
	return e.StartMinute == nil || e.EndMinute == nil
}
