package utils

import "time"

// Clock supplies the current time to everything that decides what "today"
// means, such as the grid's today flag and the date a duplicated schedule
// lands on. Services take a Clock so tests can pin the day.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock used in production wiring.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock always reports FixedNow.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

// SetNow moves the mocked time, for tests that step across days.
func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
