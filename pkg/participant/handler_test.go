package participant

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/internal/test_utils"
	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, schedule.Schedule) {
	t.Helper()
	scheduleRepo := schedule.NewRepositoryStub()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	scheduleService := schedule.NewService(scheduleRepo, clock, bus)

	ownerCtx := test_utils.ContextWithUser(context.Background(), 1)
	created, err := scheduleService.Create(ownerCtx, schedule.Schedule{
		Date:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		StartMinute: 9 * 60,
		EndMinute:   10 * 60,
		Title:       "Morning shift",
	}, []int{2})
	require.NoError(t, err)

	handler := NewHandler(NewService(NewRepositoryStub(scheduleRepo), scheduleRepo, bus))
	router := mux.NewRouter()
	router.HandleFunc("/api/schedule/{uid}/response", handler.Respond).Methods("POST")
	router.HandleFunc("/api/schedule/{uid}/response", handler.GetSummary).Methods("GET")
	return router, created
}

func respond(router *mux.Router, userId int, uid string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/schedule/"+uid+"/response", bytes.NewBufferString(body))
	req = req.WithContext(test_utils.ContextWithUser(context.Background(), userId))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRespondHandler(t *testing.T) {
	t.Run("records a decision and returns the summary", func(t *testing.T) {
		router, created := setupHandlerTest(t)

		rec := respond(router, 2, created.Uid, `{"decision":"APPROVED"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var summary SummaryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
		assert.Equal(t, 1, summary.Approved)
		assert.Equal(t, 0, summary.Pending)
	})

	t.Run("rejects an invalid decision with field errors", func(t *testing.T) {
		router, created := setupHandlerTest(t)

		rec := respond(router, 2, created.Uid, `{"decision":"MAYBE"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("returns 403 for a non-participant", func(t *testing.T) {
		router, created := setupHandlerTest(t)

		rec := respond(router, 99, created.Uid, `{"decision":"APPROVED"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("returns 409 when flipping a decision", func(t *testing.T) {
		router, created := setupHandlerTest(t)

		require.Equal(t, http.StatusOK, respond(router, 2, created.Uid, `{"decision":"REJECTED"}`).Code)
		rec := respond(router, 2, created.Uid, `{"decision":"APPROVED"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("returns 404 for an unknown schedule", func(t *testing.T) {
		router, _ := setupHandlerTest(t)

		rec := respond(router, 2, "missing", `{"decision":"APPROVED"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetSummaryHandler(t *testing.T) {
	router, created := setupHandlerTest(t)

	req := httptest.NewRequest("GET", "/api/schedule/"+created.Uid+"/response", nil)
	req = req.WithContext(test_utils.ContextWithUser(context.Background(), 1))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summary SummaryDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, 1, summary.Pending)
}
