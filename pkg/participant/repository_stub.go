package participant

import (
	"context"

	"github.com/crewplan/crewplan/pkg/schedule"
)

// RepositoryStub applies status updates to an in-memory schedule stub.
type RepositoryStub struct {
	Schedules   *schedule.RepositoryStub
	ForcedError error
	Updates     int
}

func NewRepositoryStub(schedules *schedule.RepositoryStub) *RepositoryStub {
	return &RepositoryStub{Schedules: schedules}
}

func (s *RepositoryStub) UpdateStatus(ctx context.Context, scheduleId int, userId int, status schedule.ParticipantStatus) error {
	if s.ForcedError != nil {
		return s.ForcedError
	}
	s.Updates++
	s.Schedules.SetParticipantStatus(scheduleId, userId, status)
	return nil
}
