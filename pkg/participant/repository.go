package participant

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crewplan/crewplan/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	UpdateStatus(ctx context.Context, scheduleId int, userId int, status schedule.ParticipantStatus) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) UpdateStatus(ctx context.Context, scheduleId int, userId int, status schedule.ParticipantStatus) error {
	query := `UPDATE schedule_participant SET status = ?, updated_at = ? WHERE schedule_id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UnixMilli(), scheduleId, userId)
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
		return ErrNotParticipant
	}
	return nil
}
