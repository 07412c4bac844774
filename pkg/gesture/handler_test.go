package gesture

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/pkg/timeaxis"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftRouter() *mux.Router {
	handler := NewHandler(NewService(NewDraftStore(event_bus.NewEventBus())))
	r := mux.NewRouter()
	r.HandleFunc("/api/schedule/draft", handler.CommitDrag).Methods("POST")
	r.HandleFunc("/api/schedule/draft", handler.GetDraft).Methods("GET")
	r.HandleFunc("/api/schedule/draft", handler.DiscardDraft).Methods("DELETE")
	return r
}

func TestHandler_CommitDrag(t *testing.T) {
	t.Run("commits and stores the draft", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("POST", "/api/schedule/draft",
			strings.NewReader(`{"date":"2024-06-03","anchorMinute":540,"pointerDeltaPx":48}`))
		req = req.WithContext(draftCtx)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var dto DraftDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, 540, dto.StartMinute)
		assert.Equal(t, 600, dto.EndMinute)

		req = httptest.NewRequest("GET", "/api/schedule/draft", nil)
		req = req.WithContext(draftCtx)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anchor at the bottom of the column stays inside the day", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("POST", "/api/schedule/draft",
			strings.NewReader(`{"date":"2024-06-03","anchorMinute":1439,"pointerDeltaPx":0}`))
		req = req.WithContext(draftCtx)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var dto DraftDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, timeaxis.MinutesPerDay-timeaxis.MinutesPerTick, dto.StartMinute)
		assert.Equal(t, timeaxis.MinutesPerDay, dto.EndMinute)
	})

	t.Run("without a user returns 401", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("POST", "/api/schedule/draft",
			strings.NewReader(`{"date":"2024-06-03","anchorMinute":540,"pointerDeltaPx":0}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("POST", "/api/schedule/draft",
			strings.NewReader(`{"date":"03.06.2024","anchorMinute":540,"pointerDeltaPx":0}`))
		req = req.WithContext(draftCtx)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetDraft(t *testing.T) {
	t.Run("no draft returns 404", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("GET", "/api/schedule/draft", nil)
		req = req.WithContext(draftCtx)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("without a user returns 401", func(t *testing.T) {
		router := newDraftRouter()

		req := httptest.NewRequest("GET", "/api/schedule/draft", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_DiscardDraft(t *testing.T) {
	router := newDraftRouter()

	req := httptest.NewRequest("DELETE", "/api/schedule/draft", nil)
	req = req.WithContext(draftCtx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
