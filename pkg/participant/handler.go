package participant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ResponseDTO struct {
	Decision string `json:"decision"`
}

type SummaryDTO struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Respond handles POST /api/schedule/{uid}/response
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	var dto ResponseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	sched, err := h.service.Respond(r.Context(), uid, schedule.ParticipantStatus(dto.Decision))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	summary := sched.ParticipantSummary()
	rest.WriteJSON(w, http.StatusOK, SummaryDTO{
		Pending:  summary.Pending,
		Approved: summary.Approved,
		Rejected: summary.Rejected,
	})
}

// GetSummary handles GET /api/schedule/{uid}/response
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	summary, err := h.service.Summary(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, SummaryDTO{
		Pending:  summary.Pending,
		Approved: summary.Approved,
		Rejected: summary.Rejected,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidDecision):
		rest.WriteValidationError(w, "Validation failed", map[string]string{
			"decision": "Decision must be APPROVED or REJECTED",
		})
	case errors.Is(err, schedule.ErrScheduleNotFound):
		rest.WriteError(w, http.StatusNotFound, "Schedule not found", "")
	case errors.Is(err, ErrNotParticipant):
		rest.WriteError(w, http.StatusForbidden, "Only an invited participant may respond", "")
	case errors.Is(err, ErrAlreadyDecided):
		rest.WriteError(w, http.StatusConflict, "Decision already recorded", "A recorded decision cannot be changed")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	default:
		log.Errorf("Error handling participant response: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to record response", "")
	}
}
