// Package gesture converts a pointer drag over the time axis into a committed
// [start,end) minute interval for a new schedule.
package gesture

import (
	"time"

	"github.com/crewplan/crewplan/pkg/timeaxis"
	log "github.com/sirupsen/logrus"
)

// State is the drag state of a Selector.
type State string

const (
	Idle     State = "idle"
	Dragging State = "dragging"
)

// Interval is a candidate time range produced by a committed drag.
type Interval struct {
	Date        time.Time
	StartMinute int
	EndMinute   int
}

// CommitFunc receives the committed interval on pointer-up.
type CommitFunc func(interval Interval)

// ListenerHost abstracts the host environment's global pointer subscription.
// Attach registers move/up listeners and returns the function that removes
// them again. The Selector guarantees the release function runs exactly once
// on every exit path out of the dragging state.
type ListenerHost interface {
	Attach(onMove func(deltaPx float64), onUp func()) (release func())
}

// NopListenerHost is a ListenerHost for environments that drive the Selector
// directly instead of through global listeners.
type NopListenerHost struct{}

func (NopListenerHost) Attach(onMove func(deltaPx float64), onUp func()) (release func()) {
	return func() {}
}

// Selector is the drag-interval state machine. It is single-threaded by
// contract: all methods must be called from the host's event loop.
type Selector struct {
	host     ListenerHost
	onCommit CommitFunc

	state         State
	date          time.Time
	anchorMinute  int
	currentMinute int
	release       func()
}

func NewSelector(host ListenerHost, onCommit CommitFunc) *Selector {
	if host == nil {
		host = NopListenerHost{}
	}
	return &Selector{host: host, onCommit: onCommit, state: Idle}
}

// State returns the current drag state.
func (s *Selector) State() State {
	return s.state
}

// Selection returns the transient [start,end) range of an active drag for
// rendering the selection rectangle. The second result is false when idle.
func (s *Selector) Selection() (Interval, bool) {
	if s.state != Dragging {
		return Interval{}, false
	}
	start, end := orderMinutes(s.anchorMinute, s.currentMinute)
	return Interval{Date: s.date, StartMinute: start, EndMinute: end}, true
}

// PointerDown enters the dragging state anchored at a minute snapped to the
// tick granularity. The anchor is capped one tick before the end of the
// column, so even a degenerate click near the bottom still fits its minimal
// interval inside the day. A pointer-down during an active drag is ignored;
// the host delivers at most one primary pointer.
func (s *Selector) PointerDown(date time.Time, anchorMinute int) {
	if s.state == Dragging {
		log.Debug("pointer down ignored: drag already active")
		return
	}
	anchor := timeaxis.SnapToTick(timeaxis.ClampMinute(anchorMinute))
	if anchor > timeaxis.MinutesPerDay-timeaxis.MinutesPerTick {
		anchor = timeaxis.MinutesPerDay - timeaxis.MinutesPerTick
	}
	s.state = Dragging
	s.date = date
	s.anchorMinute = anchor
	s.currentMinute = s.anchorMinute
	s.release = s.host.Attach(s.PointerMove, s.PointerUp)
}

// PointerMove recomputes the current minute from the accumulated pixel delta
// since pointer-down, using the exact inverse of the axis scale.
func (s *Selector) PointerMove(deltaPx float64) {
	if s.state != Dragging {
		return
	}
	minute := timeaxis.ClampMinute(s.anchorMinute + timeaxis.MinuteDelta(deltaPx))
	s.currentMinute = timeaxis.SnapToTick(minute)
}

// PointerUp commits the drag. A drag that never moved still commits a minimal
// one-tick interval at the anchor: a click is a degenerate drag, not an error.
func (s *Selector) PointerUp() {
	if s.state != Dragging {
		return
	}

	start, end := orderMinutes(s.anchorMinute, s.currentMinute)
	if end < start+timeaxis.MinutesPerTick {
		end = start + timeaxis.MinutesPerTick
	}
	committed := Interval{Date: s.date, StartMinute: start, EndMinute: end}

	s.reset()

	if s.onCommit != nil {
		s.onCommit(committed)
	}
}

// Teardown releases the global listeners when the hosting component unmounts
// mid-drag. Nothing is committed. Safe to call in any state, any number of
// times.
func (s *Selector) Teardown() {
	if s.state != Dragging {
		return
	}
	log.Debug("selector torn down during active drag")
	s.reset()
}

// reset releases listeners and returns to idle. Every exit path from the
// dragging state goes through here, so the release-on-exit guarantee holds.
func (s *Selector) reset() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.state = Idle
}

func orderMinutes(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
