package holiday

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

type HolidayDTO struct {
	Id   int    `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
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

	holidays, err := h.service.ListInRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, holiday := range holidays {
		dtos = append(dtos, holidayToDTO(holiday))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var dto HolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), Holiday{Date: date, Name: dto.Name})
	if err != nil {
		log.Errorf("failed to create holiday: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, holidayToDTO(created))
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	idString := mux.Vars(r)["holidayId"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid holiday id", "")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func holidayToDTO(h Holiday) HolidayDTO {
	return HolidayDTO{
		Id:   h.Id,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
