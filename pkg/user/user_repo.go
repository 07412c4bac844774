package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, timezone, week_first_day) VALUES (?, ?, ?, ?, ?)`
	stmt, err := u.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		int(user.Settings.WeekFirstDay),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read inserted user id: %w", err)
	}
	return int(id), nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, week_first_day FROM users WHERE id = ?`
	return u.scanOne(u.db.QueryRowContext(ctx, query, id))
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, week_first_day FROM users WHERE uid = ?`
	return u.scanOne(u.db.QueryRowContext(ctx, query, uid))
}

func (u *RepoImpl) scanOne(row *sql.Row) (User, error) {
	var user User
	var weekFirstDay int
	err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.Settings.Timezone, &weekFirstDay)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	user.Settings.WeekFirstDay = time.Weekday(weekFirstDay)
	return user, nil
}

func (u *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, week_first_day FROM users ORDER BY display_name`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0, 10)
	for rows.Next() {
		var user User
		var weekFirstDay int
		err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.Settings.Timezone, &weekFirstDay)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		user.Settings.WeekFirstDay = time.Weekday(weekFirstDay)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

func (u *RepoImpl) DeleteUser(ctx context.Context, id int) error {
	result, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
