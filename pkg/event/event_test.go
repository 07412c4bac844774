package event

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryGetInRange(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	insert := func(name, eventType, date string, startMinute, endMinute any, completed bool) {
		_, err := db.Exec(
			`INSERT INTO external_event (name, type, date, start_minute, end_minute, completed) VALUES (?, ?, ?, ?, ?, ?)`,
			name, eventType, date, startMinute, endMinute, completed)
		require.NoError(t, err)
	}

	insert("Safety briefing", "OFFICIAL", "2024-06-03", 9*60, 10*60, false)
	insert("Team day", "TEAM", "2024-06-05", nil, nil, false)
	insert("Audit", "OTHER", "2024-06-20", 13*60, 15*60, true)

	t.Run("returns events inside the range", func(t *testing.T) {
		events, err := repo.GetInRange(ctx, date("2024-06-03"), date("2024-06-09"))
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Safety briefing", events[0].Name)
		assert.Equal(t, TypeOfficial, events[0].Type)
		require.NotNil(t, events[0].StartMinute)
		assert.Equal(t, 9*60, *events[0].StartMinute)
	})

	t.Run("all-day events have no minutes", func(t *testing.T) {
		events, err := repo.GetInRange(ctx, date("2024-06-05"), date("2024-06-05"))
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.True(t, events[0].AllDay())
	})

	t.Run("empty range", func(t *testing.T) {
		events, err := repo.GetInRange(ctx, date("2024-07-01"), date("2024-07-07"))
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestListEventsHandler(t *testing.T) {
	repo := NewRepositoryStub()
	minute := func(m int) *int { return &m }
	repo.Events = []Event{
		{Id: 1, Name: "Safety briefing", Type: TypeOfficial, Date: date("2024-06-03"), StartMinute: minute(9 * 60), EndMinute: minute(10 * 60)},
		{Id: 2, Name: "Team day", Type: TypeTeam, Date: date("2024-06-05"), Completed: true},
	}
	handler := NewHandler(NewService(repo))

	t.Run("lists events with formatted times", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/event?from=2024-06-03&to=2024-06-09", nil)
		rec := httptest.NewRecorder()
		handler.ListEvents(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var dtos []EventDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dtos))
		require.Len(t, dtos, 2)
		assert.Equal(t, "09:00", dtos[0].StartTime)
		assert.Equal(t, "10:00", dtos[0].EndTime)
		assert.Empty(t, dtos[1].StartTime)
		assert.True(t, dtos[1].Completed)
	})

	t.Run("rejects a malformed range", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/event?from=bad&to=2024-06-09", nil)
		rec := httptest.NewRecorder()
		handler.ListEvents(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func date(value string) time.Time {
	d, _ := time.Parse("2006-01-02", value)
	return d
}
