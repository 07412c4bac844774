package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/user"
	"github.com/crewplan/crewplan/pkg/viewmode"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrNotOwner = errors.New("only the schedule owner may modify it")

type Service struct {
	repo  Repository
	clock utils.Clock
	bus   *event_bus.EventBus
}

func NewService(repo Repository, clock utils.Clock, bus *event_bus.EventBus) *Service {
	return &Service{repo: repo, clock: clock, bus: bus}
}

// List returns the schedules overlapping [from, to] visible under the given
// view mode. The individual view is always scoped to the current user; the
// all-members view may optionally narrow to a single owner.
func (s *Service) List(ctx context.Context, filter Filter, mode viewmode.ViewMode) ([]Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	if mode == viewmode.Individual {
		filter.OwnerId = userId
	}
	return s.repo.List(ctx, filter)
}

// Create validates and persists a new schedule owned by the current user,
// inviting each given participant with PENDING status.
func (s *Service) Create(ctx context.Context, schedule Schedule, participantUserIds []int) (Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}
	schedule.OwnerId = userId
	schedule.Uid = uuid.NewString()

	participantUserIds = uniqueIds(participantUserIds)
	if err := validate(schedule, participantUserIds); err != nil {
		return Schedule{}, err
	}

	var created Schedule
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		id, err := repo.StoreSchedule(ctx, schedule)
		if err != nil {
			return fmt.Errorf("failed to store schedule: %w", err)
		}
		schedule.Id = id
		for _, participantId := range participantUserIds {
			if _, err := repo.StoreParticipant(ctx, id, participantId, StatusPending); err != nil {
				return fmt.Errorf("failed to store participant: %w", err)
			}
		}
		created, err = repo.GetByUid(ctx, schedule.Uid)
		return err
	})
	if err != nil {
		return Schedule{}, err
	}

	s.publish(ctx, event_bus.ScheduleCreatedType, event_bus.ScheduleCreated{
		Uid:     created.Uid,
		OwnerId: created.OwnerId,
		Date:    created.Date.Format("2006-01-02"),
		Title:   created.Title,
	})
	return created, nil
}

// GetByUid returns a single schedule with its participants.
func (s *Service) GetByUid(ctx context.Context, uid string) (Schedule, error) {
	return s.repo.GetByUid(ctx, uid)
}

// Update replaces the schedule's fields and reconciles its participant set:
// newly invited users get a fresh PENDING row, removed users lose theirs, and
// surviving participants keep the status they already chose. A user removed
// and invited again starts over with a new PENDING record.
func (s *Service) Update(ctx context.Context, uid string, updated Schedule, participantUserIds []int) (Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return Schedule{}, err
	}
	if existing.OwnerId != userId {
		return Schedule{}, ErrNotOwner
	}

	updated.Id = existing.Id
	updated.Uid = existing.Uid
	updated.OwnerId = existing.OwnerId

	participantUserIds = uniqueIds(participantUserIds)
	if err := validate(updated, participantUserIds); err != nil {
		return Schedule{}, err
	}

	wanted := make(map[int]bool, len(participantUserIds))
	for _, id := range participantUserIds {
		wanted[id] = true
	}
	current := make(map[int]bool, len(existing.Participants))
	for _, p := range existing.Participants {
		current[p.UserId] = true
	}

	var result Schedule
	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		if err := repo.UpdateSchedule(ctx, updated); err != nil {
			return fmt.Errorf("failed to update schedule: %w", err)
		}
		for _, p := range existing.Participants {
			if !wanted[p.UserId] {
				if err := repo.DeleteParticipant(ctx, existing.Id, p.UserId); err != nil {
					return fmt.Errorf("failed to remove participant: %w", err)
				}
			}
		}
		for _, id := range participantUserIds {
			if !current[id] {
				if _, err := repo.StoreParticipant(ctx, existing.Id, id, StatusPending); err != nil {
					return fmt.Errorf("failed to store participant: %w", err)
				}
			}
		}
		result, err = repo.GetByUid(ctx, uid)
		return err
	})
	if err != nil {
		return Schedule{}, err
	}

	s.publish(ctx, event_bus.ScheduleUpdatedType, event_bus.ScheduleUpdated{
		Uid:     result.Uid,
		OwnerId: result.OwnerId,
	})
	return result, nil
}

// Delete removes the schedule and all its participant records.
func (s *Service) Delete(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return err
	}
	if existing.OwnerId != userId {
		return ErrNotOwner
	}

	if err := s.repo.DeleteSchedule(ctx, existing.Id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.publish(ctx, event_bus.ScheduleDeletedType, event_bus.ScheduleDeleted{
		Uid:     existing.Uid,
		OwnerId: existing.OwnerId,
	})
	return nil
}

// Duplicate clones the schedule into a new record dated today: same title,
// description and invitee set, fresh uid, all participant statuses reset to
// PENDING. A multi-day span keeps its length. The source stays untouched.
func (s *Service) Duplicate(ctx context.Context, uid string) (Schedule, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Schedule{}, fmt.Errorf("failed to get current user: %w", err)
	}

	source, err := s.repo.GetByUid(ctx, uid)
	if err != nil {
		return Schedule{}, err
	}
	if source.OwnerId != userId {
		return Schedule{}, ErrNotOwner
	}

	clone := source
	clone.Id = 0
	clone.Uid = ""
	clone.Participants = nil

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !source.EndDate.IsZero() {
		span := source.EndDate.Sub(source.Date)
		clone.EndDate = today.Add(span)
	}
	clone.Date = today

	log.Debugf("duplicating schedule %s for user %d", uid, userId)
	return s.Create(ctx, clone, source.ParticipantUserIds())
}

func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}

// validate checks the record invariants and reports every violation at once.
func validate(schedule Schedule, participantUserIds []int) error {
	vErr := &ValidationError{}

	if schedule.Date.IsZero() {
		vErr.Add("date", "Date is required")
	}
	if schedule.Title == "" {
		vErr.Add("title", "Title is required")
	}
	if schedule.StartMinute < 0 || schedule.StartMinute >= 24*60 {
		vErr.Add("startTime", "Start time must be within the day")
	}
	if schedule.EndMinute <= 0 || schedule.EndMinute > 24*60 {
		vErr.Add("endTime", "End time must be within the day")
	}
	if schedule.StartMinute >= schedule.EndMinute {
		vErr.Add("endTime", "End time must be after start time")
	}
	if !schedule.EndDate.IsZero() && schedule.EndDate.Before(schedule.Date) {
		vErr.Add("endDate", "End date must not be before date")
	}
	for _, id := range participantUserIds {
		if id == schedule.OwnerId {
			vErr.Add("participantUserIds", "The owner cannot be invited as a participant")
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func uniqueIds(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
