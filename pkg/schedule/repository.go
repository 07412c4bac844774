package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// Filter narrows a schedule list query. A zero OwnerId means no owner filter.
type Filter struct {
	From    time.Time
	To      time.Time
	OwnerId int
}

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	StoreSchedule(ctx context.Context, schedule Schedule) (int, error)
	StoreParticipant(ctx context.Context, scheduleId int, userId int, status ParticipantStatus) (int, error)
	DeleteParticipant(ctx context.Context, scheduleId int, userId int) error
	GetByUid(ctx context.Context, uid string) (Schedule, error)
	List(ctx context.Context, filter Filter) ([]Schedule, error)
	UpdateSchedule(ctx context.Context, schedule Schedule) error
	DeleteSchedule(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) StoreSchedule(ctx context.Context, schedule Schedule) (int, error) {
	query := `INSERT INTO schedule (
                            uid,
                            owner_id,
                            date,
                            end_date,
                            start_minute,
                            end_minute,
                            title,
                            activity_description,
                            location_text,
                            task_id,
                            project_id,
                            free_note,
                            created_at,
                            updated_at
						) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	result, err := stmt.ExecContext(ctx,
		schedule.Uid,
		schedule.OwnerId,
		schedule.Date.Format("2006-01-02"),
		endDateParam(schedule),
		schedule.StartMinute,
		schedule.EndMinute,
		schedule.Title,
		schedule.ActivityDescription,
		schedule.LocationText,
		schedule.TaskId,
		schedule.ProjectId,
		schedule.FreeNote,
		now,
		now,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read inserted schedule id: %w", err)
	}
	return int(id), nil
}

func (r *RepositoryImpl) StoreParticipant(ctx context.Context, scheduleId int, userId int, status ParticipantStatus) (int, error) {
	query := `INSERT INTO schedule_participant (schedule_id, user_id, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	now := time.Now().UnixMilli()
	result, err := stmt.ExecContext(ctx, scheduleId, userId, string(status), now, now)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read inserted participant id: %w", err)
	}
	return int(id), nil
}

func (r *RepositoryImpl) DeleteParticipant(ctx context.Context, scheduleId int, userId int) error {
	query := `DELETE FROM schedule_participant WHERE schedule_id = ? AND user_id = ?`
	_, err := r.getQueryer().ExecContext(ctx, query, scheduleId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (Schedule, error) {
	query := `SELECT id, uid, owner_id, date, end_date, start_minute, end_minute, title,
                     activity_description, location_text, task_id, project_id, free_note
              FROM schedule WHERE uid = ?`

	row := r.getQueryer().QueryRowContext(ctx, query, uid)
	schedule, err := scanSchedule(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Schedule{}, ErrScheduleNotFound
	} else if err != nil {
		log.Errorf("could not get schedule %s: %v", uid, err)
		return Schedule{}, err
	}

	participants, err := r.getParticipants(ctx, schedule.Id)
	if err != nil {
		return Schedule{}, err
	}
	schedule.Participants = participants
	return schedule, nil
}

func (r *RepositoryImpl) List(ctx context.Context, filter Filter) ([]Schedule, error) {
	// A schedule overlaps the range when it starts before the range end and
	// its last day is not before the range start.
	query := `SELECT id, uid, owner_id, date, end_date, start_minute, end_minute, title,
                     activity_description, location_text, task_id, project_id, free_note
              FROM schedule
              WHERE date <= ? AND COALESCE(end_date, date) >= ?`
	args := []interface{}{filter.To.Format("2006-01-02"), filter.From.Format("2006-01-02")}
	if filter.OwnerId != 0 {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerId)
	}
	query += ` ORDER BY date, start_minute`

	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query schedules: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	schedules := make([]Schedule, 0, 10)
	for rows.Next() {
		schedule, err := scanSchedule(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range schedules {
		participants, err := r.getParticipants(ctx, schedules[i].Id)
		if err != nil {
			return nil, err
		}
		schedules[i].Participants = participants
	}
	return schedules, nil
}

func (r *RepositoryImpl) UpdateSchedule(ctx context.Context, schedule Schedule) error {
	query := `UPDATE schedule SET date = ?, end_date = ?, start_minute = ?, end_minute = ?, title = ?,
                     activity_description = ?, location_text = ?, task_id = ?, project_id = ?, free_note = ?,
                     updated_at = ?
              WHERE id = ?`
	stmt, err := r.getQueryer().PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		schedule.Date.Format("2006-01-02"),
		endDateParam(schedule),
		schedule.StartMinute,
		schedule.EndMinute,
		schedule.Title,
		schedule.ActivityDescription,
		schedule.LocationText,
		schedule.TaskId,
		schedule.ProjectId,
		schedule.FreeNote,
		time.Now().UnixMilli(),
		schedule.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteSchedule(ctx context.Context, id int) error {
	// Participants are removed explicitly so the cascade does not depend on
	// the driver's foreign key enforcement being enabled.
	if _, err := r.getQueryer().ExecContext(ctx, `DELETE FROM schedule_participant WHERE schedule_id = ?`, id); err != nil {
		err := fmt.Errorf("could not delete participants: %v", err)
		log.Error(err)
		return err
	}

	result, err := r.getQueryer().ExecContext(ctx, `DELETE FROM schedule WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *RepositoryImpl) getParticipants(ctx context.Context, scheduleId int) ([]Participant, error) {
	query := `SELECT id, schedule_id, user_id, status, created_at, updated_at
              FROM schedule_participant WHERE schedule_id = ? ORDER BY id`
	rows, err := r.getQueryer().QueryContext(ctx, query, scheduleId)
	if err != nil {
		err := fmt.Errorf("could not query participants: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	participants := make([]Participant, 0, 4)
	for rows.Next() {
		var p Participant
		var status string
		var createdAtMillis, updatedAtMillis int64
		if err := rows.Scan(&p.Id, &p.ScheduleId, &p.UserId, &status, &createdAtMillis, &updatedAtMillis); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		p.Status = ParticipantStatus(status)
		p.CreatedAt = time.UnixMilli(createdAtMillis)
		p.UpdatedAt = time.UnixMilli(updatedAtMillis)
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func scanSchedule(scan func(dest ...interface{}) error) (Schedule, error) {
	var s Schedule
	var dateString string
	var endDateString sql.NullString
	err := scan(
		&s.Id,
		&s.Uid,
		&s.OwnerId,
		&dateString,
		&endDateString,
		&s.StartMinute,
		&s.EndMinute,
		&s.Title,
		&s.ActivityDescription,
		&s.LocationText,
		&s.TaskId,
		&s.ProjectId,
		&s.FreeNote,
	)
	if err != nil {
		return Schedule{}, err
	}
	s.Date, err = time.Parse("2006-01-02", dateString)
	if err != nil {
		return Schedule{}, fmt.Errorf("could not parse schedule date %q: %w", dateString, err)
	}
	if endDateString.Valid {
		s.EndDate, err = time.Parse("2006-01-02", endDateString.String)
		if err != nil {
			return Schedule{}, fmt.Errorf("could not parse schedule end date %q: %w", endDateString.String, err)
		}
	}
	return s, nil
}

func endDateParam(schedule Schedule) interface{} {
	if schedule.EndDate.IsZero() {
		return nil
	}
	return schedule.EndDate.Format("2006-01-02")
}
