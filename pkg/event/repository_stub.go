package event

import (
	"context"
	"time"
)

type RepositoryStub struct {
	Events      []Event
	ForcedError error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) GetInRange(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	if s.ForcedError != nil {
		return nil, s.ForcedError
	}
	var result []Event
	for _, e := range s.Events {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}
