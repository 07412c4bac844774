package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	GetInRange(ctx context.Context, from time.Time, to time.Time) ([]Event, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, from time.Time, to time.Time) ([]Event, error) {
	query := `SELECT id, name, type, date, start_minute, end_minute, completed
              FROM external_event
              WHERE date >= ? AND date <= ?
              ORDER BY date, start_minute`

	rows, err := r.db.QueryContext(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var e Event
		var eventType string
		var dateString string
		var startMinute, endMinute sql.NullInt64
		if err := rows.Scan(&e.Id, &e.Name, &eventType, &dateString, &startMinute, &endMinute, &e.Completed); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		e.Type = EventType(eventType)
		e.Date, err = time.Parse("2006-01-02", dateString)
		if err != nil {
			return nil, fmt.Errorf("could not parse event date %q: %w", dateString, err)
		}
		if startMinute.Valid {
			minute := int(startMinute.Int64)
			e.StartMinute = &minute
		}
		if endMinute.Valid {
			minute := int(endMinute.Int64)
			e.EndMinute = &minute
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
