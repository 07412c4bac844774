package participant

import (
	"context"
	"fmt"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repo         Repository
	scheduleRepo schedule.Repository
	bus          *event_bus.EventBus
}

func NewService(repo Repository, scheduleRepo schedule.Repository, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, scheduleRepo: scheduleRepo, bus: bus}
}

// Respond records the current user's decision on the given schedule.
// Repeating an already-recorded decision is a no-op; flipping a terminal
// decision is rejected with ErrAlreadyDecided.
func (s *Service) Respond(ctx context.Context, scheduleUid string, decision schedule.ParticipantStatus) (schedule.Schedule, error) {
	if decision != schedule.StatusApproved && decision != schedule.StatusRejected {
		return schedule.Schedule{}, ErrInvalidDecision
	}

	userId, err := user.CurrentId(ctx)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}

	sched, err := s.scheduleRepo.GetByUid(ctx, scheduleUid)
	if err != nil {
		return schedule.Schedule{}, err
	}

	var current *schedule.Participant
	for i := range sched.Participants {
		if sched.Participants[i].UserId == userId {
			current = &sched.Participants[i]
			break
		}
	}
	if current == nil {
		return schedule.Schedule{}, ErrNotParticipant
	}

	if current.Status == decision {
		return sched, nil
	}
	if current.Status != schedule.StatusPending {
		return schedule.Schedule{}, ErrAlreadyDecided
	}

	if err := s.repo.UpdateStatus(ctx, sched.Id, userId, decision); err != nil {
		return schedule.Schedule{}, err
	}

	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ParticipantRespondedType, event_bus.ParticipantResponded{
			ScheduleUid: sched.Uid,
			UserId:      userId,
			Status:      string(decision),
		}))
		if err != nil {
			log.Errorf("failed to publish participant responded event: %v", err)
		}
	}

	return s.scheduleRepo.GetByUid(ctx, scheduleUid)
}

// Summary recomputes the decision counts from the schedule's current rows.
func (s *Service) Summary(ctx context.Context, scheduleUid string) (schedule.StatusSummary, error) {
	sched, err := s.scheduleRepo.GetByUid(ctx, scheduleUid)
	if err != nil {
		return schedule.StatusSummary{}, err
	}
	return sched.ParticipantSummary(), nil
}
