package grid

import (
	"time"
)

// CalendarDay is one cell of a rendered calendar grid. All flags are derived
// at build time and never persisted.
type CalendarDay struct {
	Date             time.Time
	IsSaturday       bool
	IsSunday         bool
	IsHoliday        bool
	IsInCurrentMonth bool
	IsToday          bool
}

// HolidayPredicate reports whether the given date is a holiday. The backing
// oracle is resolved ahead of time so grid construction stays pure.
type HolidayPredicate func(date time.Time) bool

// WeekDates returns exactly 7 consecutive days containing the reference date,
// starting at the configured week-start weekday.
func WeekDates(reference time.Time, weekStartDay time.Weekday, today time.Time, isHoliday HolidayPredicate) []CalendarDay {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Monday
	}

	ref := truncateToDay(reference)
	delta := (int(ref.Weekday()) - int(weekStartDay) + 7) % 7
	startOfWeek := ref.AddDate(0, 0, -delta)

	days := make([]CalendarDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := startOfWeek.AddDate(0, 0, i)
		days = append(days, newDay(date, today, isHoliday, true))
	}
	return days
}

// MonthDates returns every day of the reference month padded with leading and
// trailing days from the adjacent months so that the total count is a multiple
// of 7 and the first cell falls on the week-start weekday. Only days inside
// the reference month have IsInCurrentMonth set.
func MonthDates(reference time.Time, weekStartDay time.Weekday, today time.Time, isHoliday HolidayPredicate) []CalendarDay {
	if weekStartDay < time.Sunday || weekStartDay > time.Saturday {
		weekStartDay = time.Monday
	}

	ref := truncateToDay(reference)
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	leading := (int(firstOfMonth.Weekday()) - int(weekStartDay) + 7) % 7
	start := firstOfMonth.AddDate(0, 0, -leading)

	// Day zero of the next month is the last day of this one. Counting
	// calendrically keeps DST transition months at their full length.
	daysInMonth := time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, ref.Location()).Day()
	total := leading + daysInMonth
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	days := make([]CalendarDay, 0, total)
	for i := 0; i < total; i++ {
		date := start.AddDate(0, 0, i)
		inMonth := date.Month() == ref.Month() && date.Year() == ref.Year()
		days = append(days, newDay(date, today, isHoliday, inMonth))
	}
	return days
}

func newDay(date time.Time, today time.Time, isHoliday HolidayPredicate, inCurrentMonth bool) CalendarDay {
	holiday := false
	if isHoliday != nil {
		holiday = isHoliday(date)
	}
	return CalendarDay{
		Date:             date,
		IsSaturday:       date.Weekday() == time.Saturday,
		IsSunday:         date.Weekday() == time.Sunday,
		IsHoliday:        holiday,
		IsInCurrentMonth: inCurrentMonth,
		IsToday:          sameDay(date, today),
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
