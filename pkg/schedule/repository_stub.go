package schedule

import (
	"context"
	"time"
)

// RepositoryStub is an in-memory Repository for tests of packages that
// depend on schedules.
type RepositoryStub struct {
	schedules   []Schedule
	nextId      int
	nextPartId  int
	ForcedError error
	StoredUids  []string
	DeletedIds  []int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 1, nextPartId: 1}
}

func (s *RepositoryStub) Reset() {
	s.schedules = nil
	s.nextId = 1
	s.nextPartId = 1
	s.ForcedError = nil
	s.StoredUids = nil
	s.DeletedIds = nil
}

func (s *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	if s.ForcedError != nil {
		return s.ForcedError
	}
	return fn(s)
}

func (s *RepositoryStub) StoreSchedule(ctx context.Context, schedule Schedule) (int, error) {
	if s.ForcedError != nil {
		return 0, s.ForcedError
	}
	schedule.Id = s.nextId
	s.nextId++
	s.schedules = append(s.schedules, schedule)
	s.StoredUids = append(s.StoredUids, schedule.Uid)
	return schedule.Id, nil
}

func (s *RepositoryStub) StoreParticipant(ctx context.Context, scheduleId int, userId int, status ParticipantStatus) (int, error) {
	if s.ForcedError != nil {
		return 0, s.ForcedError
	}
	for i := range s.schedules {
		if s.schedules[i].Id == scheduleId {
			participant := Participant{
				Id:         s.nextPartId,
				ScheduleId: scheduleId,
				UserId:     userId,
				Status:     status,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}
			s.nextPartId++
			s.schedules[i].Participants = append(s.schedules[i].Participants, participant)
			return participant.Id, nil
		}
	}
	return 0, ErrScheduleNotFound
}

func (s *RepositoryStub) DeleteParticipant(ctx context.Context, scheduleId int, userId int) error {
	if s.ForcedError != nil {
		return s.ForcedError
	}
	for i := range s.schedules {
		if s.schedules[i].Id != scheduleId {
			continue
		}
		kept := s.schedules[i].Participants[:0]
		for _, p := range s.schedules[i].Participants {
			if p.UserId != userId {
				kept = append(kept, p)
			}
		}
		s.schedules[i].Participants = kept
		return nil
	}
	return ErrScheduleNotFound
}

func (s *RepositoryStub) GetByUid(ctx context.Context, uid string) (Schedule, error) {
	if s.ForcedError != nil {
		return Schedule{}, s.ForcedError
	}
	for _, schedule := range s.schedules {
		if schedule.Uid == uid {
			return schedule, nil
		}
	}
	return Schedule{}, ErrScheduleNotFound
}

func (s *RepositoryStub) List(ctx context.Context, filter Filter) ([]Schedule, error) {
	if s.ForcedError != nil {
		return nil, s.ForcedError
	}
	var result []Schedule
	for _, schedule := range s.schedules {
		if filter.OwnerId != 0 && schedule.OwnerId != filter.OwnerId {
			continue
		}
		end := schedule.EndDate
		if end.IsZero() {
			end = schedule.Date
		}
		if schedule.Date.After(filter.To) || end.Before(filter.From) {
			continue
		}
		result = append(result, schedule)
	}
	return result, nil
}

func (s *RepositoryStub) UpdateSchedule(ctx context.Context, schedule Schedule) error {
	if s.ForcedError != nil {
		return s.ForcedError
	}
	for i := range s.schedules {
		if s.schedules[i].Id == schedule.Id {
			schedule.Participants = s.schedules[i].Participants
			s.schedules[i] = schedule
			return nil
		}
	}
	return ErrScheduleNotFound
}

func (s *RepositoryStub) DeleteSchedule(ctx context.Context, id int) error {
	if s.ForcedError != nil {
		return s.ForcedError
	}
	for i := range s.schedules {
		if s.schedules[i].Id == id {
			s.schedules = append(s.schedules[:i], s.schedules[i+1:]...)
			s.DeletedIds = append(s.DeletedIds, id)
			return nil
		}
	}
	return ErrScheduleNotFound
}

// SetParticipantStatus mutates a participant's status directly, for test setup.
func (s *RepositoryStub) SetParticipantStatus(scheduleId int, userId int, status ParticipantStatus) {
	for i := range s.schedules {
		if s.schedules[i].Id != scheduleId {
			continue
		}
		for j := range s.schedules[i].Participants {
			if s.schedules[i].Participants[j].UserId == userId {
				s.schedules[i].Participants[j].Status = status
			}
		}
	}
}
