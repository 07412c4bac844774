// Package google exports a member's schedules to their Google Calendar.
package google

import (
	"context"
	"fmt"
	"time"

	"github.com/crewplan/crewplan/pkg/schedule"
	"github.com/crewplan/crewplan/pkg/user"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = fmt.Errorf("user is unauthenticated, authentication is required")

type CalendarItem struct {
	ID      string
	Summary string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ExportSchedules(ctx context.Context, calendarId string, from time.Time, to time.Time) (int, error)
}

type ServiceImpl struct {
	auth      *GoogleAuth
	schedules schedule.Repository
}

func NewService(auth *GoogleAuth, schedules schedule.Repository) *ServiceImpl {
	return &ServiceImpl{auth: auth, schedules: schedules}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, userId)
	if err != nil {
		return nil, err
	}

	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}

	var items []CalendarItem
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return items, nil
}

// ExportSchedules inserts the current user's schedules in [from, to] as
// events into the given Google calendar and returns how many were exported.
func (s *ServiceImpl) ExportSchedules(ctx context.Context, calendarId string, from time.Time, to time.Time) (int, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}

	googleService, err := s.prepareGoogleService(ctx, currentUser.Id)
	if err != nil {
		return 0, err
	}

	location, err := time.LoadLocation(currentUser.Settings.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q for user %d, falling back to UTC", currentUser.Settings.Timezone, currentUser.Id)
		location = time.UTC
	}

	schedules, err := s.schedules.List(ctx, schedule.Filter{From: from, To: to, OwnerId: currentUser.Id})
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, item := range schedules {
		start := minuteOnDate(item.Date, item.StartMinute, location)
		endDate := item.Date
		if !item.EndDate.IsZero() {
			endDate = item.EndDate
		}
		end := minuteOnDate(endDate, item.EndMinute, location)

		_, err := googleService.Events.Insert(calendarId, &gcal.Event{
			Summary:     item.Title,
			Description: item.ActivityDescription,
			Location:    item.LocationText,
			Start: &gcal.EventDateTime{
				DateTime: start.Format(time.RFC3339),
			},
			End: &gcal.EventDateTime{
				DateTime: end.Format(time.RFC3339),
			},
		}).Do()
		if err != nil {
			err := fmt.Errorf("unable to insert event in Google Calendar: %v", err)
			log.Error(err)
			return exported, err
		}
		exported++
	}

	log.Infof("exported %d schedules to calendar %s for user %d", exported, calendarId, currentUser.Id)
	return exported, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context, userId int) (*gcal.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, ErrUnauthenticated
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func minuteOnDate(date time.Time, minute int, location *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, location)
}
