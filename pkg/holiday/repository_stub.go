package holiday

import (
	"context"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu       sync.RWMutex
	holidays map[int]Holiday
	nextId   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		holidays: make(map[int]Holiday),
		nextId:   1,
	}
}

func (r *RepositoryStub) Store(ctx context.Context, holiday Holiday) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	holiday.Id = r.nextId
	r.holidays[holiday.Id] = holiday
	r.nextId++
	return holiday.Id, nil
}

func (r *RepositoryStub) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.holidays {
		if h.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			return true, nil
		}
	}
	return false, nil
}

func (r *RepositoryStub) GetInRange(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Holiday
	for _, h := range r.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holidays[id]; !ok {
		return false, nil
	}
	delete(r.holidays, id)
	return true, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holidays = make(map[int]Holiday)
	r.nextId = 1
}
