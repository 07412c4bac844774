package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/user"
	log "github.com/sirupsen/logrus"
)

// HolidayOracle answers whether a single date is a holiday.
type HolidayOracle interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}

// View selects which grid shape to build.
type View string

const (
	WeekView  View = "week"
	MonthView View = "month"
)

type Service struct {
	oracle HolidayOracle
	clock  utils.Clock
}

func NewService(oracle HolidayOracle, clock utils.Clock) *Service {
	return &Service{oracle: oracle, clock: clock}
}

// BuildGrid produces the visible date sequence for the requested view. The
// week-start weekday comes from the current user's settings. Holiday flags are
// resolved through the oracle before the pure builders run.
func (s *Service) BuildGrid(ctx context.Context, view View, reference time.Time) ([]CalendarDay, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	today := s.clock.Now()
	predicate := s.resolveHolidays(ctx, view, reference, currentUser.Settings.WeekFirstDay)

	switch view {
	case WeekView:
		return WeekDates(reference, currentUser.Settings.WeekFirstDay, today, predicate), nil
	case MonthView:
		return MonthDates(reference, currentUser.Settings.WeekFirstDay, today, predicate), nil
	default:
		return nil, fmt.Errorf("unknown calendar view: %q", view)
	}
}

// Range returns the first and last date the given view will display, which
// callers need before issuing any range-bounded fetch.
func (s *Service) Range(ctx context.Context, view View, reference time.Time) (time.Time, time.Time, error) {
	days, err := s.BuildGrid(ctx, view, reference)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return days[0].Date, days[len(days)-1].Date, nil
}

// resolveHolidays queries the oracle for every date the grid can contain and
// captures the answers in a pure predicate. Oracle failures degrade to
// "not a holiday" instead of failing the whole grid.
func (s *Service) resolveHolidays(ctx context.Context, view View, reference time.Time, weekStart time.Weekday) HolidayPredicate {
	noHolidays := func(time.Time) bool { return false }
	if s.oracle == nil {
		return noHolidays
	}

	var days []CalendarDay
	switch view {
	case WeekView:
		days = WeekDates(reference, weekStart, s.clock.Now(), nil)
	case MonthView:
		days = MonthDates(reference, weekStart, s.clock.Now(), nil)
	default:
		return noHolidays
	}

	holidays := make(map[string]bool, len(days))
	for _, day := range days {
		isHoliday, err := s.oracle.IsHoliday(ctx, day.Date)
		if err != nil {
			log.Errorf("holiday lookup failed for %s: %v", day.Date.Format("2006-01-02"), err)
			continue
		}
		holidays[day.Date.Format("2006-01-02")] = isHoliday
	}
	return func(date time.Time) bool {
		return holidays[date.Format("2006-01-02")]
	}
}
