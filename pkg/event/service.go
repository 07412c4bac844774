package event

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListInRange returns all external events with a date inside [from, to].
func (s *Service) ListInRange(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	return s.repo.GetInRange(ctx, from, to)
}
