package holiday

import (
	"context"
	"fmt"
	"time"
)

// Service exposes the holiday calendar. It satisfies grid.HolidayOracle.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return s.repo.ExistsOnDate(ctx, date)
}

func (s *Service) ListInRange(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return s.repo.GetInRange(ctx, from, to)
}

func (s *Service) Create(ctx context.Context, holiday Holiday) (Holiday, error) {
	id, err := s.repo.Store(ctx, holiday)
	if err != nil {
		return Holiday{}, fmt.Errorf("failed to store holiday: %w", err)
	}
	holiday.Id = id
	return holiday, nil
}

func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
