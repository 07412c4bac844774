package grid

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGridRouter() *mux.Router {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC)}
	handler := NewHandler(NewService(nil, clock))
	r := mux.NewRouter()
	r.HandleFunc("/api/calendar/grid", handler.GetGrid).Methods("GET")
	return r
}

func TestHandler_GetGrid(t *testing.T) {
	gridUser := user.User{Id: 7, Username: "planner", Settings: user.Settings{WeekFirstDay: time.Monday}}

	t.Run("week view returns 7 days", func(t *testing.T) {
		router := newGridRouter()

		req := httptest.NewRequest("GET", "/api/calendar/grid?view=week&date=2024-06-05", nil)
		req = req.WithContext(user.WithUser(req.Context(), gridUser))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var days []CalendarDayDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&days))
		require.Len(t, days, 7)
		assert.Equal(t, "2024-06-03", days[0].Date)
		assert.True(t, days[2].IsToday)
	})

	t.Run("unknown view returns 400", func(t *testing.T) {
		router := newGridRouter()

		req := httptest.NewRequest("GET", "/api/calendar/grid?view=year&date=2024-06-05", nil)
		req = req.WithContext(user.WithUser(req.Context(), gridUser))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("without a user returns 401", func(t *testing.T) {
		router := newGridRouter()

		req := httptest.NewRequest("GET", "/api/calendar/grid?view=week&date=2024-06-05", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
