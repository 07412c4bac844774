package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ParticipantStatus is the approval state of a single invitee.
type ParticipantStatus string

const (
	StatusPending  ParticipantStatus = "PENDING"
	StatusApproved ParticipantStatus = "APPROVED"
	StatusRejected ParticipantStatus = "REJECTED"
)

// Participant is a non-owner member invited to a schedule. Each participant
// holds an independent approval status that only that member may change.
type Participant struct {
	Id         int
	ScheduleId int
	UserId     int
	Status     ParticipantStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Schedule is an owned, time-bounded activity record. Times are minutes of
// day; EndDate is zero for single-day schedules.
type Schedule struct {
	Id                  int
	Uid                 string
	OwnerId             int
	Date                time.Time
	EndDate             time.Time
	StartMinute         int
	EndMinute           int
	Title               string
	ActivityDescription string
	LocationText        string
	TaskId              string
	ProjectId           string
	FreeNote            string
	Participants        []Participant
}

// StatusSummary are the aggregate participant counts of one schedule. They
// are always recomputed from the current participant list, never cached.
type StatusSummary struct {
	Approved int
	Pending  int
	Rejected int
}

// ParticipantSummary counts the participants of s by status.
func (s *Schedule) ParticipantSummary() StatusSummary {
	var summary StatusSummary
	for _, p := range s.Participants {
		switch p.Status {
		case StatusApproved:
			summary.Approved++
		case StatusRejected:
			summary.Rejected++
		default:
			summary.Pending++
		}
	}
	return summary
}

// ParticipantUserIds returns the invited user ids in participant order.
func (s *Schedule) ParticipantUserIds() []int {
	ids := make([]int, 0, len(s.Participants))
	for _, p := range s.Participants {
		ids = append(ids, p.UserId)
	}
	return ids
}

// ValidationError aggregates field-level messages so every offending field
// can be reported to the client at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
