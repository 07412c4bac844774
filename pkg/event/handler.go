package event

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type EventDTO struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Completed bool   `json:"completed"`
}

// ListEvents handles GET /api/event?from=...&to=...
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in YYYY-MM-DD format")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in YYYY-MM-DD format")
		return
	}

	events, err := h.service.ListInRange(r.Context(), from, to)
	if err != nil {
		log.Errorf("Error listing events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list events", "")
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func toDTO(e Event) EventDTO {
	dto := EventDTO{
		Id:        e.Id,
		Name:      e.Name,
		Type:      string(e.Type),
		Date:      e.Date.Format("2006-01-02"),
		Completed: e.Completed,
	}
	if !e.AllDay() {
		dto.StartTime = minutesToClock(*e.StartMinute)
		dto.EndTime = minutesToClock(*e.EndMinute)
	}
	return dto
}

func minutesToClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
