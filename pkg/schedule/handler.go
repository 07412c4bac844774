package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/crewplan/crewplan/pkg/user"
	"github.com/crewplan/crewplan/pkg/viewmode"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ParticipantDTO struct {
	UserId int    `json:"userId"`
	Status string `json:"status"`
}

type ParticipantSummaryDTO struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type ScheduleDTO struct {
	Uid                 string                `json:"uid,omitempty"`
	OwnerId             int                   `json:"ownerId,omitempty"`
	Date                string                `json:"date"`
	EndDate             string                `json:"endDate,omitempty"`
	StartTime           string                `json:"startTime"`
	EndTime             string                `json:"endTime"`
	Title               string                `json:"title"`
	ActivityDescription string                `json:"activityDescription,omitempty"`
	LocationText        string                `json:"locationText,omitempty"`
	TaskId              string                `json:"taskId,omitempty"`
	ProjectId           string                `json:"projectId,omitempty"`
	FreeNote            string                `json:"freeNote,omitempty"`
	ParticipantUserIds  []int                 `json:"participantUserIds,omitempty"`
	Participants        []ParticipantDTO      `json:"participants,omitempty"`
	ParticipantSummary  *ParticipantSummaryDTO `json:"participantSummary,omitempty"`
	Editable            bool                  `json:"editable"`
}

// ListSchedules handles GET /api/schedule?from=...&to=...[&ownerId=...][&mode=...][&showAll=...]
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
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

	mode, err := viewmode.Normalize(r.URL.Query().Get("mode"), r.URL.Query().Get("showAll"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", err.Error())
		return
	}

	filter := Filter{From: from, To: to}
	if ownerParam := r.URL.Query().Get("ownerId"); ownerParam != "" {
		ownerId, err := strconv.Atoi(ownerParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid ownerId", "'ownerId' must be a number")
			return
		}
		filter.OwnerId = ownerId
	}

	schedules, err := h.service.List(r.Context(), filter, mode)
	if err != nil {
		log.Errorf("Error listing schedules: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to list schedules", "")
		return
	}

	currentUserId, _ := user.CurrentId(r.Context())
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		dtos = append(dtos, toDTO(schedule, mode, currentUserId))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetSchedule handles GET /api/schedule/{uid}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	schedule, err := h.service.GetByUid(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get schedule")
		return
	}
	currentUserId, _ := user.CurrentId(r.Context())
	rest.WriteJSON(w, http.StatusOK, toDTO(schedule, viewmode.AllMembers, currentUserId))
}

// CreateSchedule handles POST /api/schedule
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	schedule, vErr := fromDTO(dto)
	if vErr.HasErrors() {
		rest.WriteValidationError(w, "Validation failed", vErr.Fields)
		return
	}

	created, err := h.service.Create(r.Context(), schedule, dto.ParticipantUserIds)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create schedule")
		return
	}

	currentUserId, _ := user.CurrentId(r.Context())
	rest.WriteJSON(w, http.StatusCreated, toDTO(created, viewmode.AllMembers, currentUserId))
}

// UpdateSchedule handles PUT /api/schedule/{uid}
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	schedule, vErr := fromDTO(dto)
	if vErr.HasErrors() {
		rest.WriteValidationError(w, "Validation failed", vErr.Fields)
		return
	}

	updated, err := h.service.Update(r.Context(), uid, schedule, dto.ParticipantUserIds)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update schedule")
		return
	}

	currentUserId, _ := user.CurrentId(r.Context())
	rest.WriteJSON(w, http.StatusOK, toDTO(updated, viewmode.AllMembers, currentUserId))
}

// DeleteSchedule handles DELETE /api/schedule/{uid}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	if err := h.service.Delete(r.Context(), uid); err != nil {
		h.writeServiceError(w, err, "Failed to delete schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateSchedule handles POST /api/schedule/{uid}/duplicate
func (h *Handler) DuplicateSchedule(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	created, err := h.service.Duplicate(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, err, "Failed to duplicate schedule")
		return
	}
	currentUserId, _ := user.CurrentId(r.Context())
	rest.WriteJSON(w, http.StatusCreated, toDTO(created, viewmode.AllMembers, currentUserId))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, message string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		rest.WriteValidationError(w, "Validation failed", vErr.Fields)
	case errors.Is(err, ErrScheduleNotFound):
		rest.WriteError(w, http.StatusNotFound, "Schedule not found", "")
	case errors.Is(err, ErrNotOwner):
		rest.WriteError(w, http.StatusForbidden, "Only the schedule owner may do this", "")
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	default:
		log.Errorf("%s: %v", message, err)
		rest.WriteError(w, http.StatusInternalServerError, message, "")
	}
}

func toDTO(schedule Schedule, mode viewmode.ViewMode, currentUserId int) ScheduleDTO {
	dto := ScheduleDTO{
		Uid:                 schedule.Uid,
		OwnerId:             schedule.OwnerId,
		Date:                schedule.Date.Format("2006-01-02"),
		StartTime:           minutesToClock(schedule.StartMinute),
		EndTime:             minutesToClock(schedule.EndMinute),
		Title:               schedule.Title,
		ActivityDescription: schedule.ActivityDescription,
		LocationText:        schedule.LocationText,
		TaskId:              schedule.TaskId,
		ProjectId:           schedule.ProjectId,
		FreeNote:            schedule.FreeNote,
		Editable:            viewmode.CanEdit(mode, schedule.OwnerId, currentUserId),
	}
	if !schedule.EndDate.IsZero() {
		dto.EndDate = schedule.EndDate.Format("2006-01-02")
	}
	for _, p := range schedule.Participants {
		dto.Participants = append(dto.Participants, ParticipantDTO{
			UserId: p.UserId,
			Status: string(p.Status),
		})
	}
	summary := schedule.ParticipantSummary()
	dto.ParticipantSummary = &ParticipantSummaryDTO{
		Pending:  summary.Pending,
		Approved: summary.Approved,
		Rejected: summary.Rejected,
	}
	return dto
}

func fromDTO(dto ScheduleDTO) (Schedule, *ValidationError) {
	vErr := &ValidationError{}
	schedule := Schedule{
		Title:               dto.Title,
		ActivityDescription: dto.ActivityDescription,
		LocationText:        dto.LocationText,
		TaskId:              dto.TaskId,
		ProjectId:           dto.ProjectId,
		FreeNote:            dto.FreeNote,
	}

	if dto.Date == "" {
		vErr.Add("date", "Date is required")
	} else if date, err := time.Parse("2006-01-02", dto.Date); err != nil {
		vErr.Add("date", "Date must be in YYYY-MM-DD format")
	} else {
		schedule.Date = date
	}

	if dto.EndDate != "" {
		if endDate, err := time.Parse("2006-01-02", dto.EndDate); err != nil {
			vErr.Add("endDate", "End date must be in YYYY-MM-DD format")
		} else {
			schedule.EndDate = endDate
		}
	}

	if minute, err := clockToMinutes(dto.StartTime); err != nil {
		vErr.Add("startTime", "Start time must be in HH:MM format")
	} else {
		schedule.StartMinute = minute
	}
	if minute, err := clockToMinutes(dto.EndTime); err != nil {
		vErr.Add("endTime", "End time must be in HH:MM format")
	} else {
		schedule.EndMinute = minute
	}

	return schedule, vErr
}

func minutesToClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func clockToMinutes(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, err
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time out of range: %s", value)
	}
	return hours*60 + minutes, nil
}
