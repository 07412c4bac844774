package gesture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrNoDraft = errors.New("no draft interval")

// DraftStore keeps the latest committed drag interval per user so the create
// form can be pre-filled with it. Purely in-memory: a draft only lives until
// the schedule is saved or the user discards it.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[int]Interval
}

func NewDraftStore(bus *event_bus.EventBus) *DraftStore {
	store := &DraftStore{drafts: make(map[int]Interval)}
	event_bus.SubscribeTyped[event_bus.ScheduleCreated](
		bus,
		event_bus.ScheduleCreatedType,
		func(e event_bus.EventT[event_bus.ScheduleCreated]) error {
			log.Debugf("clearing draft for user %d after schedule %s was created", e.Data.OwnerId, e.Data.Uid)
			store.clear(e.Data.OwnerId)
			return nil
		},
	)
	return store
}

func (d *DraftStore) put(userId int, interval Interval) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[userId] = interval
}

func (d *DraftStore) get(userId int) (Interval, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	interval, ok := d.drafts[userId]
	return interval, ok
}

func (d *DraftStore) clear(userId int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, userId)
}

// Service runs drag gestures to completion on behalf of the current user and
// keeps the committed result as their draft.
type Service struct {
	store *DraftStore
}

func NewService(store *DraftStore) *Service {
	return &Service{store: store}
}

// CommitDrag replays a finished drag gesture through the state machine:
// pointer-down on the snapped anchor, a single accumulated move, pointer-up.
// The committed interval becomes the user's current draft.
func (s *Service) CommitDrag(ctx context.Context, date time.Time, anchorMinute int, pointerDeltaPx float64) (Interval, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Interval{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var committed Interval
	selector := NewSelector(nil, func(interval Interval) {
		committed = interval
	})
	selector.PointerDown(date, anchorMinute)
	selector.PointerMove(pointerDeltaPx)
	selector.PointerUp()

	s.store.put(userId, committed)
	return committed, nil
}

// CurrentDraft returns the user's pending draft interval.
func (s *Service) CurrentDraft(ctx context.Context) (Interval, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Interval{}, fmt.Errorf("failed to get current user: %w", err)
	}
	interval, ok := s.store.get(userId)
	if !ok {
		return Interval{}, ErrNoDraft
	}
	return interval, nil
}

// DiscardDraft drops the user's pending draft, if any.
func (s *Service) DiscardDraft(ctx context.Context) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	s.store.clear(userId)
	return nil
}
