package holiday

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, holiday Holiday) (int, error)
	ExistsOnDate(ctx context.Context, date time.Time) (bool, error)
	GetInRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, holiday Holiday) (int, error) {
	query := `INSERT INTO holiday (date, name) VALUES (?, ?)`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, holiday.Date.Format("2006-01-02"), holiday.Name)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read inserted holiday id: %w", err)
	}
	return int(id), nil
}

func (r *RepositoryImpl) ExistsOnDate(ctx context.Context, date time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM holiday WHERE date = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, date.Format("2006-01-02")).Scan(&count)
	if err != nil {
		log.Errorf("failed to check holiday on %s: %v", date.Format("2006-01-02"), err)
		return false, err
	}
	return count > 0, nil
}

func (r *RepositoryImpl) GetInRange(ctx context.Context, from, to time.Time) ([]Holiday, error) {
	query := `SELECT id, date, name FROM holiday WHERE date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		err := fmt.Errorf("could not query holidays: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	holidays := make([]Holiday, 0, 10)
	for rows.Next() {
		var h Holiday
		var dateString string
		if err := rows.Scan(&h.Id, &dateString, &h.Name); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		h.Date, err = time.Parse("2006-01-02", dateString)
		if err != nil {
			return nil, fmt.Errorf("could not parse holiday date %q: %w", dateString, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holiday WHERE id = ?`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
