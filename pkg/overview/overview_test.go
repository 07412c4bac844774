package overview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/internal/test_utils"
	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/event"
	"github.com/crewplan/crewplan/pkg/grid"
	"github.com/crewplan/crewplan/pkg/project"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/viewmode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service   *Service
	schedules *schedule.Service
	events    *event.RepositoryStub
	projects  *project.ClientStub
}

func setup(t *testing.T) fixture {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()

	scheduleService := schedule.NewService(schedule.NewRepositoryStub(), clock, bus)
	eventRepo := event.NewRepositoryStub()
	projectClient := project.NewClientStub()

	service := NewService(
		grid.NewService(nil, clock),
		scheduleService,
		event.NewService(eventRepo),
		projectClient,
	)
	return fixture{service: service, schedules: scheduleService, events: eventRepo, projects: projectClient}
}

func TestBuild(t *testing.T) {
	ctx := test_utils.ContextWithUser(context.Background(), 1)

	t.Run("fetches everything in the grid range", func(t *testing.T) {
		f := setup(t)
		_, err := f.schedules.Create(ctx, schedule.Schedule{
			Date:        time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			StartMinute: 9 * 60,
			EndMinute:   10 * 60,
			Title:       "Morning shift",
		}, nil)
		require.NoError(t, err)
		f.events.Events = []event.Event{
			{Id: 1, Name: "Team day", Type: event.TypeTeam, Date: time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC)},
		}
		f.projects.SetProjects([]project.Project{{Id: "p1", Name: "Festival stage"}})

		overview, err := f.service.Build(ctx, grid.WeekView, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), viewmode.Individual)

		require.NoError(t, err)
		assert.Len(t, overview.Days, 7)
		assert.Len(t, overview.Schedules, 1)
		assert.Len(t, overview.Events, 1)
		assert.Len(t, overview.Projects, 1)
	})

	t.Run("a failing project directory does not fail the overview", func(t *testing.T) {
		f := setup(t)
		f.projects.SetListProjectsError(errors.New("directory down"))

		overview, err := f.service.Build(ctx, grid.WeekView, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), viewmode.Individual)

		require.NoError(t, err)
		assert.Empty(t, overview.Projects)
	})

	t.Run("a failing event source fails the overview", func(t *testing.T) {
		f := setup(t)
		f.events.ForcedError = errors.New("db down")

		_, err := f.service.Build(ctx, grid.WeekView, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), viewmode.Individual)

		assert.Error(t, err)
	})

	t.Run("month view pads to full weeks", func(t *testing.T) {
		f := setup(t)

		overview, err := f.service.Build(ctx, grid.MonthView, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), viewmode.Individual)

		require.NoError(t, err)
		assert.Zero(t, len(overview.Days)%7)
	})
}

func TestGetOverviewHandler(t *testing.T) {
	ctx := test_utils.ContextWithUser(context.Background(), 1)

	request := func(h *Handler, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.GetOverview(rec, req)
		return rec
	}

	t.Run("week view lays out blocks on the time axis", func(t *testing.T) {
		f := setup(t)
		_, err := f.schedules.Create(ctx, schedule.Schedule{
			Date:        time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			StartMinute: 9 * 60,
			EndMinute:   10 * 60,
			Title:       "Morning shift",
		}, nil)
		require.NoError(t, err)
		handler := NewHandler(f.service)

		rec := request(handler, "/api/calendar/overview?view=week&date=2024-06-05")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto OverviewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		require.Len(t, dto.Days, 7)

		var blocks []BlockDTO
		for _, day := range dto.Days {
			if day.Date == "2024-06-05" {
				blocks = day.Blocks
			}
		}
		require.Len(t, blocks, 1)
		assert.Equal(t, "schedule", blocks[0].Kind)
		assert.Equal(t, 9*48.0, blocks[0].Top)
		assert.Equal(t, 48.0, blocks[0].Height)
		assert.True(t, blocks[0].Editable)
	})

	t.Run("month view has no blocks", func(t *testing.T) {
		f := setup(t)
		handler := NewHandler(f.service)

		rec := request(handler, "/api/calendar/overview?view=month&date=2024-06-05")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto OverviewDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		for _, day := range dto.Days {
			assert.Empty(t, day.Blocks)
		}
	})

	t.Run("rejects an unknown view", func(t *testing.T) {
		f := setup(t)
		handler := NewHandler(f.service)

		rec := request(handler, "/api/calendar/overview?view=year&date=2024-06-05")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		f := setup(t)
		handler := NewHandler(f.service)

		rec := request(handler, "/api/calendar/overview?view=week&date=June")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
