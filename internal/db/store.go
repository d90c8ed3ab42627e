package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/kube-rca/tasks/internal/config"
	"github.com/kube-rca/tasks/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Queries - 트랜잭션 안에서 사용하는 영속성 연산
type Queries interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	CreateTask(ctx context.Context, userID int64, description string) (*model.Task, error)
	ListTasks(ctx context.Context, userID int64, completed *bool) ([]model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

// Store hands out a transaction-scoped Queries. InTx commits when fn returns
// nil and rolls back on error, panic or context cancellation.
type Store interface {
	InTx(ctx context.Context, fn func(Queries) error) error
	EnsureSchema(ctx context.Context) error
	Close()
}

// Open connects to the configured driver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return &Postgres{Pool: pool}, nil
	case "sqlite", "":
		return OpenSQLite(cfg.Database.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
