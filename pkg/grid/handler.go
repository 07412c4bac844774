package grid

import (
	"errors"
	"net/http"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/crewplan/crewplan/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

type CalendarDayDTO struct {
	Date             string `json:"date"`
	IsSaturday       bool   `json:"isSaturday"`
	IsSunday         bool   `json:"isSunday"`
	IsHoliday        bool   `json:"isHoliday"`
	IsInCurrentMonth bool   `json:"isInCurrentMonth"`
	IsToday          bool   `json:"isToday"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	viewString := r.URL.Query().Get("view")
	dateString := r.URL.Query().Get("date")

	view := View(viewString)
	if view != WeekView && view != MonthView {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view", "'view' must be either 'week' or 'month'")
		return
	}

	reference, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	days, err := h.service.BuildGrid(r.Context(), view, reference)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
			return
		}
		log.Errorf("failed to build calendar grid: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to build calendar grid", "")
		return
	}

	dtos := make([]CalendarDayDTO, 0, len(days))
	for _, day := range days {
		dtos = append(dtos, dayToDTO(day))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func dayToDTO(d CalendarDay) CalendarDayDTO {
	return CalendarDayDTO{
		Date:             d.Date.Format("2006-01-02"),
		IsSaturday:       d.IsSaturday,
		IsSunday:         d.IsSunday,
		IsHoliday:        d.IsHoliday,
		IsInCurrentMonth: d.IsInCurrentMonth,
		IsToday:          d.IsToday,
	}
}
