package holiday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/crewplan/crewplan/internal/test_utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRepository(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("store and list in range", func(t *testing.T) {
		id, err := repo.Store(ctx, Holiday{Date: date("2024-12-25"), Name: "Christmas Day"})
		require.NoError(t, err)
		assert.Greater(t, id, 0)

		_, err = repo.Store(ctx, Holiday{Date: date("2024-12-26"), Name: "Boxing Day"})
		require.NoError(t, err)
		_, err = repo.Store(ctx, Holiday{Date: date("2025-01-01"), Name: "New Year"})
		require.NoError(t, err)

		holidays, err := repo.GetInRange(ctx, date("2024-12-01"), date("2024-12-31"))
		require.NoError(t, err)
		require.Len(t, holidays, 2)
		assert.Equal(t, "Christmas Day", holidays[0].Name)
		assert.Equal(t, date("2024-12-25"), holidays[0].Date)
		assert.Equal(t, "Boxing Day", holidays[1].Name)
	})

	t.Run("exists on date", func(t *testing.T) {
		exists, err := repo.ExistsOnDate(ctx, date("2024-12-25"))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsOnDate(ctx, date("2024-12-24"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		id, err := repo.Store(ctx, Holiday{Date: date("2025-05-01"), Name: "Labour Day"})
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestServiceListInRange(t *testing.T) {
	repo := NewRepositoryStub()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, Holiday{Date: date("2024-06-06"), Name: "National Day"})
	require.NoError(t, err)

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := service.ListInRange(ctx, date("2024-06-30"), date("2024-06-01"))
		assert.Error(t, err)
	})

	t.Run("returns holidays in range", func(t *testing.T) {
		holidays, err := service.ListInRange(ctx, date("2024-06-01"), date("2024-06-30"))
		require.NoError(t, err)
		require.Len(t, holidays, 1)
		assert.Equal(t, "National Day", holidays[0].Name)
	})

	t.Run("is holiday", func(t *testing.T) {
		isHoliday, err := service.IsHoliday(ctx, date("2024-06-06"))
		require.NoError(t, err)
		assert.True(t, isHoliday)

		isHoliday, err = service.IsHoliday(ctx, date("2024-06-07"))
		require.NoError(t, err)
		assert.False(t, isHoliday)
	})
}

func TestHandler(t *testing.T) {
	newRouter := func() (*mux.Router, *RepositoryStub) {
		repo := NewRepositoryStub()
		handler := NewHandler(NewService(repo))
		r := mux.NewRouter()
		r.HandleFunc("/api/holiday", handler.ListHolidays).Methods("GET")
		r.HandleFunc("/api/holiday", handler.CreateHoliday).Methods("POST")
		r.HandleFunc("/api/holiday/{holidayId}", handler.DeleteHoliday).Methods("DELETE")
		return r, repo
	}

	t.Run("create and list", func(t *testing.T) {
		router, _ := newRouter()

		req := httptest.NewRequest("POST", "/api/holiday", strings.NewReader(`{"date":"2024-12-25","name":"Christmas Day"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created HolidayDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
		assert.Equal(t, 1, created.Id)
		assert.Equal(t, "2024-12-25", created.Date)

		req = httptest.NewRequest("GET", "/api/holiday?from=2024-12-01&to=2024-12-31", nil)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var listed []HolidayDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
		require.Len(t, listed, 1)
		assert.Equal(t, "Christmas Day", listed[0].Name)
	})

	t.Run("create with malformed date", func(t *testing.T) {
		router, _ := newRouter()

		req := httptest.NewRequest("POST", "/api/holiday", strings.NewReader(`{"date":"25.12.2024","name":"Christmas Day"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list with malformed range", func(t *testing.T) {
		router, _ := newRouter()

		req := httptest.NewRequest("GET", "/api/holiday?from=nope&to=2024-12-31", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete missing holiday", func(t *testing.T) {
		router, _ := newRouter()

		req := httptest.NewRequest("DELETE", "/api/holiday/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete existing holiday", func(t *testing.T) {
		router, repo := newRouter()
		id, err := repo.Store(context.Background(), Holiday{Date: date("2024-12-25"), Name: "Christmas Day"})
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/api/holiday/"+strconv.Itoa(id), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
