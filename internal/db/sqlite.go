package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kube-rca/tasks/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLite implements Store over a single SQLite file.
type SQLite struct {
	db *sqlx.DB
}

type sqliteQueries struct {
	q sqlx.ExtContext
}

// sqliteUser mirrors the users row; timestamps are stored as unix millis.
type sqliteUser struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

func (u sqliteUser) toModel() *model.User {
	return &model.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    time.UnixMilli(u.CreatedAt).UTC(),
	}
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows one writer; a single connection keeps transactions serialized.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLite{db: sqlDB}, nil
}

func (s *SQLite) InTx(ctx context.Context, fn func(Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(&sqliteQueries{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL CHECK (description <> ''),
			completed INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1)),
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
		)
		`,
		`CREATE INDEX IF NOT EXISTS tasks_user_id_completed_idx ON tasks(user_id, completed)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("ensure sqlite schema: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Close() {
	_ = s.db.Close()
}

func (s *sqliteQueries) CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error) {
	var row sqliteUser
	err := sqlx.GetContext(ctx, s.q, &row, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id, username, password_hash, created_at
	`, username, passwordHash, time.Now().UTC().UnixMilli())
	if err != nil {
		return nil, sqliteError(err)
	}
	return row.toModel(), nil
}

func (s *sqliteQueries) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var row sqliteUser
	err := sqlx.GetContext(ctx, s.q, &row, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`, username)
	if err != nil {
		return nil, sqliteError(err)
	}
	return row.toModel(), nil
}

func (s *sqliteQueries) CreateTask(ctx context.Context, userID int64, description string) (*model.Task, error) {
	var task model.Task
	err := sqlx.GetContext(ctx, s.q, &task, `
		INSERT INTO tasks (description, completed, user_id)
		VALUES (?, 0, ?)
		RETURNING id, description, completed, user_id
	`, description, userID)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", sqliteError(err))
	}
	return &task, nil
}

func (s *sqliteQueries) ListTasks(ctx context.Context, userID int64, completed *bool) ([]model.Task, error) {
	query := `SELECT id, description, completed, user_id FROM tasks WHERE user_id = ?`
	args := []any{userID}
	if completed != nil {
		query += ` AND completed = ?`
		args = append(args, *completed)
	}
	query += ` ORDER BY id`

	tasks := []model.Task{}
	if err := sqlx.SelectContext(ctx, s.q, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

func (s *sqliteQueries) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := sqlx.GetContext(ctx, s.q, &task, `
		SELECT id, description, completed, user_id
		FROM tasks
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, sqliteError(err)
	}
	return &task, nil
}

func (s *sqliteQueries) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	var updated model.Task
	err := sqlx.GetContext(ctx, s.q, &updated, `
		UPDATE tasks
		SET description = ?, completed = ?
		WHERE id = ?
		RETURNING id, description, completed, user_id
	`, task.Description, task.Completed, task.ID)
	if err != nil {
		return nil, sqliteError(err)
	}
	return &updated, nil
}

func (s *sqliteQueries) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// sqliteError translates driver errors into the package sentinels.
func sqliteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", ErrDuplicate, sqliteErr.Error())
		}
		if strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicate, sqliteErr.Error())
		}
	}
	return err
}
