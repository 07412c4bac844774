package gesture

import (
	"encoding/json"
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

type CommitDragDTO struct {
	Date           string  `json:"date"`
	AnchorMinute   int     `json:"anchorMinute"`
	PointerDeltaPx float64 `json:"pointerDeltaPx"`
}

type DraftDTO struct {
	Date        string `json:"date"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CommitDrag(w http.ResponseWriter, r *http.Request) {
	var dto CommitDragDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	interval, err := h.service.CommitDrag(r.Context(), date, dto.AnchorMinute, dto.PointerDeltaPx)
	if err != nil {
		h.writeServiceError(w, err, "Failed to commit drag gesture")
		return
	}
	rest.WriteJSON(w, http.StatusCreated, intervalToDTO(interval))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	interval, err := h.service.CurrentDraft(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoDraft) {
			rest.WriteError(w, http.StatusNotFound, "No draft interval", "")
			return
		}
		h.writeServiceError(w, err, "Failed to read draft interval")
		return
	}
	rest.WriteJSON(w, http.StatusOK, intervalToDTO(interval))
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DiscardDraft(r.Context()); err != nil {
		h.writeServiceError(w, err, "Failed to discard draft interval")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, user.ErrNoUser) {
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	log.Errorf("%s: %v", message, err)
	rest.WriteError(w, http.StatusInternalServerError, message, "")
}

func intervalToDTO(i Interval) DraftDTO {
	return DraftDTO{
		Date:        i.Date.Format("2006-01-02"),
		StartMinute: i.StartMinute,
		EndMinute:   i.EndMinute,
	}
}
