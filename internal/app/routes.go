package app

import (
	"github.com/crewplan/crewplan/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.ListMembers).Methods("GET")

	// Calendar grid and overview
	r.HandleFunc("/api/calendar/grid", deps.GridHandler.GetGrid).Queries("view", "{view}", "date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/overview", deps.OverviewHandler.GetOverview).Queries("view", "{view}", "date", "{date}").Methods("GET")

	// Schedules
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.ListSchedules).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.CreateSchedule).Methods("POST")
	r.HandleFunc("/api/schedule/{uid}", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/schedule/{uid}", deps.ScheduleHandler.UpdateSchedule).Methods("PUT")
	r.HandleFunc("/api/schedule/{uid}", deps.ScheduleHandler.DeleteSchedule).Methods("DELETE")
	r.HandleFunc("/api/schedule/{uid}/duplicate", deps.ScheduleHandler.DuplicateSchedule).Methods("POST")

	// Participant responses
	r.HandleFunc("/api/schedule/{uid}/response", deps.ParticipantHandler.Respond).Methods("POST")
	r.HandleFunc("/api/schedule/{uid}/response", deps.ParticipantHandler.GetSummary).Methods("GET")

	// Drag drafts
	r.HandleFunc("/api/schedule/draft", deps.GestureHandler.CommitDrag).Methods("POST")
	r.HandleFunc("/api/schedule/draft", deps.GestureHandler.GetDraft).Methods("GET")
	r.HandleFunc("/api/schedule/draft", deps.GestureHandler.DiscardDraft).Methods("DELETE")

	// External events
	r.HandleFunc("/api/event", deps.EventHandler.ListEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")

	// Holidays
	r.HandleFunc("/api/holiday", deps.HolidayHandler.ListHolidays).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/holiday", deps.HolidayHandler.CreateHoliday).Methods("POST")
	r.HandleFunc("/api/holiday/{holidayId}", deps.HolidayHandler.DeleteHoliday).Methods("DELETE")

	// Projects and tasks
	r.HandleFunc("/api/project", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/project/{projectId}/task", deps.ProjectHandler.ListTasks).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendar", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendar/export", deps.GoogleHandler.ExportSchedules).Methods("POST")
}
