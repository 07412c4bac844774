// Package overview composes one calendar screen: the date grid for the
// requested view plus everything rendered on it. The grid decides the
// visible range; all range-bounded fetches then run in parallel.
package overview

import (
	"context"
	"time"

	"github.com/crewplan/crewplan/pkg/event"
	"github.com/crewplan/crewplan/pkg/grid"
	"github.com/crewplan/crewplan/pkg/project"
	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/viewmode"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Overview struct {
	Days      []grid.CalendarDay
	Schedules []schedule.Schedule
	Events    []event.Event
	Projects  []project.Project
}

type Service struct {
	grid      *grid.Service
	schedules *schedule.Service
	events    *event.Service
	projects  project.Client
}

func NewService(gridService *grid.Service, schedules *schedule.Service, events *event.Service, projects project.Client) *Service {
	return &Service{
		grid:      gridService,
		schedules: schedules,
		events:    events,
		projects:  projects,
	}
}

// Build derives the grid for view+reference, then fetches schedules, events
// and projects for the grid's range concurrently. Only the grid is a hard
// dependency; a failing project directory degrades to an empty list.
func (s *Service) Build(ctx context.Context, view grid.View, reference time.Time, mode viewmode.ViewMode) (Overview, error) {
	days, err := s.grid.BuildGrid(ctx, view, reference)
	if err != nil {
		return Overview{}, err
	}
	from := days[0].Date
	to := days[len(days)-1].Date

	var overview Overview
	overview.Days = days

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedules, err := s.schedules.List(gctx, schedule.Filter{From: from, To: to}, mode)
		if err != nil {
			return err
		}
		overview.Schedules = schedules
		return nil
	})
	g.Go(func() error {
		events, err := s.events.ListInRange(gctx, from, to)
		if err != nil {
			return err
		}
		overview.Events = events
		return nil
	})
	g.Go(func() error {
		projects, err := s.projects.ListProjects(gctx)
		if err != nil {
			log.Warnf("project list unavailable for overview: %v", err)
			return nil
		}
		overview.Projects = projects
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
