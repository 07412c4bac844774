package google

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CalendarItemDto struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

type ExportRequestDto struct {
	CalendarId string `json:"calendarId"`
	From       string `json:"from"`
	To         string `json:"to"`
}

type ExportResultDto struct {
	Exported int `json:"exported"`
}

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// ListCalendars handles GET /api/integrations/google/calendar
func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.service.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			rest.WriteError(w, http.StatusForbidden, "Google authentication required", "")
			return
		}
		log.Errorf("Error listing Google calendars: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list Google calendars", "")
		return
	}

	items := make([]CalendarItemDto, 0, len(calendars))
	for _, c := range calendars {
		items = append(items, CalendarItemDto{Id: c.ID, Summary: c.Summary})
	}
	rest.WriteJSON(w, http.StatusOK, items)
}

// ExportSchedules handles POST /api/integrations/google/calendar/export
func (h *Handler) ExportSchedules(w http.ResponseWriter, r *http.Request) {
	var dto ExportRequestDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	from, err := time.Parse("2006-01-02", dto.From)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in YYYY-MM-DD format")
		return
	}
	to, err := time.Parse("2006-01-02", dto.To)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in YYYY-MM-DD format")
		return
	}
	if dto.CalendarId == "" {
		dto.CalendarId = "primary"
	}

	exported, err := h.service.ExportSchedules(r.Context(), dto.CalendarId, from, to)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			rest.WriteError(w, http.StatusForbidden, "Google authentication required", "")
			return
		}
		log.Errorf("Error exporting schedules to Google Calendar: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to export schedules", "")
		return
	}

	rest.WriteJSON(w, http.StatusOK, ExportResultDto{Exported: exported})
}
