package app

import (
	"database/sql"

	"github.com/crewplan/crewplan/internal/config"
	"github.com/crewplan/crewplan/internal/event_bus"
	"github.com/crewplan/crewplan/internal/utils"
	"github.com/crewplan/crewplan/pkg/event"
	"github.com/crewplan/crewplan/pkg/gesture"
	"github.com/crewplan/crewplan/pkg/google"
	"github.com/crewplan/crewplan/pkg/grid"
	"github.com/crewplan/crewplan/pkg/holiday"
	"github.com/crewplan/crewplan/pkg/overview"
	"github.com/crewplan/crewplan/pkg/participant"
	"github.com/crewplan/crewplan/pkg/project"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	HolidayRepo    holiday.Repository
	HolidayService *holiday.Service
	HolidayHandler *holiday.Handler

	GridService *grid.Service
	GridHandler *grid.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	ParticipantRepo    participant.Repository
	ParticipantService *participant.Service
	ParticipantHandler *participant.Handler

	DraftStore     *gesture.DraftStore
	GestureService *gesture.Service
	GestureHandler *gesture.Handler

	EventService *event.Service
	EventHandler *event.Handler

	ProjectClient  project.Client
	ProjectHandler *project.Handler

	OverviewService *overview.Service
	OverviewHandler *overview.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.HolidayRepo = holiday.NewRepository(db)
	deps.HolidayService = holiday.NewService(deps.HolidayRepo)
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayService)

	deps.GridService = grid.NewService(deps.HolidayService, deps.Clock)
	deps.GridHandler = grid.NewHandler(deps.GridService)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.Clock, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.ParticipantRepo = participant.NewRepository(db)
	deps.ParticipantService = participant.NewService(deps.ParticipantRepo, deps.ScheduleRepo, deps.EventBus)
	deps.ParticipantHandler = participant.NewHandler(deps.ParticipantService)

	deps.DraftStore = gesture.NewDraftStore(deps.EventBus)
	deps.GestureService = gesture.NewService(deps.DraftStore)
	deps.GestureHandler = gesture.NewHandler(deps.GestureService)

	deps.EventService = event.NewService(event.NewRepository(db))
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ProjectClient = project.NewClient(cfg.Projects.BaseUrl, cfg.Projects.Token)
	deps.ProjectHandler = project.NewHandler(deps.ProjectClient)

	deps.OverviewService = overview.NewService(deps.GridService, deps.ScheduleService, deps.EventService, deps.ProjectClient)
	deps.OverviewHandler = overview.NewHandler(deps.OverviewService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.ScheduleRepo)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
