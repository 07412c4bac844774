package overview

import (
	"fmt"
	"net/http"
	"time"

	"github.com/crewplan/crewplan/internal/rest"
	"github.com/crewplan/crewplan/pkg/event"
	"github.com/crewplan/crewplan/pkg/grid"
	"github.com/crewplan/crewplan/pkg/project"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/timeaxis"
	"github.com/crewplan/crewplan/pkg/user"
	"github.com/crewplan/crewplan/pkg/viewmode"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type BlockDTO struct {
	Kind        string  `json:"kind"`
	Ref         string  `json:"ref"`
	Title       string  `json:"title"`
	StartMinute int     `json:"startMinute"`
	EndMinute   int     `json:"endMinute"`
	Top         float64 `json:"top"`
	Height      float64 `json:"height"`
	ZIndex      int     `json:"zIndex"`
	Editable    bool    `json:"editable"`
}

type DayDTO struct {
	Date             string     `json:"date"`
	IsSaturday       bool       `json:"isSaturday"`
	IsSunday         bool       `json:"isSunday"`
	IsHoliday        bool       `json:"isHoliday"`
	IsToday          bool       `json:"isToday"`
	IsInCurrentMonth bool       `json:"isInCurrentMonth"`
	Blocks           []BlockDTO `json:"blocks,omitempty"`
}

type OverviewDTO struct {
	View     string            `json:"view"`
	Days     []DayDTO          `json:"days"`
	Projects []project.Project `json:"projects"`
}

// GetOverview handles GET /api/calendar/overview?view=...&date=...[&mode=...]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	viewParam := grid.View(r.URL.Query().Get("view"))
	if viewParam != grid.WeekView && viewParam != grid.MonthView {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view", "'view' must be either 'week' or 'month'")
		return
	}
	reference, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}
	mode, err := viewmode.Normalize(r.URL.Query().Get("mode"), r.URL.Query().Get("showAll"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", err.Error())
		return
	}

	overview, err := h.service.Build(r.Context(), viewParam, reference, mode)
	if err != nil {
		log.Errorf("Error building calendar overview: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to build calendar overview", "")
		return
	}

	currentUserId, _ := user.CurrentId(r.Context())
	dto := OverviewDTO{
		View:     string(viewParam),
		Days:     make([]DayDTO, 0, len(overview.Days)),
		Projects: overview.Projects,
	}
	if dto.Projects == nil {
		dto.Projects = []project.Project{}
	}

	for _, day := range overview.Days {
		dayDTO := DayDTO{
			Date:             day.Date.Format("2006-01-02"),
			IsSaturday:       day.IsSaturday,
			IsSunday:         day.IsSunday,
			IsHoliday:        day.IsHoliday,
			IsToday:          day.IsToday,
			IsInCurrentMonth: day.IsInCurrentMonth,
		}
		// The month view is a date grid only; blocks are laid out for the
		// week view's time axis.
		if viewParam == grid.WeekView {
			dayDTO.Blocks = dayBlocks(day.Date, overview.Schedules, overview.Events, mode, currentUserId)
		}
		dto.Days = append(dto.Days, dayDTO)
	}

	rest.WriteJSON(w, http.StatusOK, dto)
}

// dayBlocks collects the schedules and events falling on one date and runs
// them through the time axis layout. Schedules come first so later events
// stack above them within the day column.
func dayBlocks(date time.Time, schedules []schedule.Schedule, events []event.Event, mode viewmode.ViewMode, currentUserId int) []BlockDTO {
	blocks := make([]timeaxis.Block, 0, 4)
	editable := make([]bool, 0, 4)

	for _, s := range schedules {
		if !coversDate(s, date) {
			continue
		}
		blocks = append(blocks, timeaxis.Block{
			Kind:        timeaxis.ScheduleBlock,
			Ref:         s.Uid,
			Title:       s.Title,
			StartMinute: s.StartMinute,
			EndMinute:   s.EndMinute,
		})
		editable = append(editable, viewmode.CanEdit(mode, s.OwnerId, currentUserId))
	}
	for _, e := range events {
		if !sameDate(e.Date, date) || e.AllDay() {
			continue
		}
		blocks = append(blocks, timeaxis.Block{
			Kind:        timeaxis.EventBlock,
			Ref:         fmt.Sprintf("%d", e.Id),
			Title:       e.Name,
			StartMinute: *e.StartMinute,
			EndMinute:   *e.EndMinute,
		})
		editable = append(editable, false)
	}

	laid := timeaxis.LayoutDay(blocks)
	dtos := make([]BlockDTO, 0, len(laid))
	for i, b := range laid {
		dtos = append(dtos, BlockDTO{
			Kind:        string(b.Kind),
			Ref:         b.Ref,
			Title:       b.Title,
			StartMinute: b.StartMinute,
			EndMinute:   b.EndMinute,
			Top:         b.Geometry.Top,
			Height:      b.Geometry.Height,
			ZIndex:      b.ZIndex,
			Editable:    editable[i],
		})
	}
	return dtos
}

func coversDate(s schedule.Schedule, date time.Time) bool {
	end := s.EndDate
	if end.IsZero() {
		end = s.Date
	}
	return !date.Before(s.Date) && !date.After(end)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
