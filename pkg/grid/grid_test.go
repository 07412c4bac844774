package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noHolidays = func(time.Time) bool { return false }

func TestWeekDates(t *testing.T) {
	today := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("returns exactly 7 consecutive dates starting on the week start day", func(t *testing.T) {
		// 2024-06-05 is a Wednesday
		reference := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

		days := WeekDates(reference, time.Monday, today, noHolidays)

		require.Len(t, days, 7)
		assert.Equal(t, time.Monday, days[0].Date.Weekday())
		assert.Equal(t, "2024-06-03", days[0].Date.Format("2006-01-02"))
		for i := 1; i < 7; i++ {
			assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
		}
	})

	t.Run("respects a Sunday week start", func(t *testing.T) {
		reference := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

		days := WeekDates(reference, time.Sunday, today, noHolidays)

		require.Len(t, days, 7)
		assert.Equal(t, "2024-06-02", days[0].Date.Format("2006-01-02"))
		assert.Equal(t, time.Sunday, days[0].Date.Weekday())
	})

	t.Run("reference on the week start day starts the week there", func(t *testing.T) {
		reference := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC) // a Monday

		days := WeekDates(reference, time.Monday, today, noHolidays)

		assert.Equal(t, "2024-06-03", days[0].Date.Format("2006-01-02"))
	})

	t.Run("marks weekend, today and holiday flags", func(t *testing.T) {
		reference := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		holidayOnThursday := func(d time.Time) bool {
			return d.Format("2006-01-02") == "2024-06-06"
		}

		days := WeekDates(reference, time.Monday, today, holidayOnThursday)

		assert.True(t, days[5].IsSaturday)
		assert.True(t, days[6].IsSunday)
		assert.True(t, days[3].IsHoliday)
		assert.True(t, days[2].IsToday)
		assert.False(t, days[0].IsToday)
	})
}

func TestMonthDates(t *testing.T) {
	today := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("count is always divisible by 7", func(t *testing.T) {
		for month := time.January; month <= time.December; month++ {
			reference := time.Date(2024, month, 15, 0, 0, 0, 0, time.UTC)
			days := MonthDates(reference, time.Monday, today, noHolidays)
			assert.Equal(t, 0, len(days)%7, "month %s produced %d days", month, len(days))
		}
	})

	t.Run("only reference-month days have IsInCurrentMonth", func(t *testing.T) {
		reference := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

		days := MonthDates(reference, time.Monday, today, noHolidays)

		for _, day := range days {
			if day.Date.Month() == time.June {
				assert.True(t, day.IsInCurrentMonth, "expected %s in current month", day.Date)
			} else {
				assert.False(t, day.IsInCurrentMonth, "expected %s outside current month", day.Date)
			}
		}
	})

	t.Run("grid starts on the week start day and covers the whole month", func(t *testing.T) {
		// June 2024 starts on a Saturday
		reference := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		days := MonthDates(reference, time.Monday, today, noHolidays)

		assert.Equal(t, time.Monday, days[0].Date.Weekday())
		assert.Equal(t, "2024-05-27", days[0].Date.Format("2006-01-02"))
		// 5 leading days + 30 June days = 35, already a full grid
		require.Len(t, days, 35)
		assert.Equal(t, "2024-06-30", days[len(days)-1].Date.Format("2006-01-02"))
	})

	t.Run("month starting on the week start day has no leading padding", func(t *testing.T) {
		// July 2024 starts on a Monday
		reference := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

		days := MonthDates(reference, time.Monday, today, noHolidays)

		assert.Equal(t, "2024-07-01", days[0].Date.Format("2006-01-02"))
		assert.True(t, days[0].IsInCurrentMonth)
	})

	t.Run("DST transition month keeps every day", func(t *testing.T) {
		// March 2024 in America/New_York loses an hour to spring-forward,
		// so the month is 743 hours long but still 31 days.
		location, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)
		reference := time.Date(2024, 3, 15, 0, 0, 0, 0, location)

		days := MonthDates(reference, time.Sunday, today, noHolidays)

		require.Equal(t, 0, len(days)%7)
		inMonth := 0
		sawLastDay := false
		for _, day := range days {
			if day.IsInCurrentMonth {
				inMonth++
			}
			if day.Date.Format("2006-01-02") == "2024-03-31" {
				sawLastDay = true
				assert.True(t, day.IsInCurrentMonth)
			}
		}
		assert.Equal(t, 31, inMonth)
		assert.True(t, sawLastDay, "March 31 missing from the month grid")
	})

	t.Run("February of a non-leap year with Thursday padding", func(t *testing.T) {
		// February 2023: 28 days, starts on a Wednesday
		reference := time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC)

		days := MonthDates(reference, time.Monday, today, noHolidays)

		require.Equal(t, 0, len(days)%7)
		assert.Equal(t, "2023-01-30", days[0].Date.Format("2006-01-02"))
		assert.Equal(t, "2023-03-05", days[len(days)-1].Date.Format("2006-01-02"))
	})
}
