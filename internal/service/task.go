package service

import (
	"context"

	"github.com/kube-rca/tasks/internal/apperr"
	"github.com/kube-rca/tasks/internal/db"
	"github.com/kube-rca/tasks/internal/model"
	"go.uber.org/zap"
)

const (
	msgTaskNotFound   = "Task does not exist"
	msgTaskPermission = "You don't have permission to access this task"
)

// TaskService - 할 일 비즈니스 로직. 모든 연산은 소유자 기준으로 제한된다
type TaskService struct {
	store txRunner
	log   *zap.Logger
}

func NewTaskService(store txRunner, log *zap.Logger) *TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{store: store, log: log}
}

func (s *TaskService) Create(ctx context.Context, owner *model.User, description string) (*model.Task, error) {
	if description == "" {
		return nil, apperr.Validation("description must not be empty")
	}

	var task *model.Task
	err := s.store.InTx(ctx, func(q db.Queries) error {
		created, err := q.CreateTask(ctx, owner.ID, description)
		if err != nil {
			return err
		}
		task = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// List returns the owner's tasks, optionally only those whose completion flag
// equals *completed.
func (s *TaskService) List(ctx context.Context, owner *model.User, completed *bool) ([]model.Task, error) {
	var tasks []model.Task
	err := s.store.InTx(ctx, func(q db.Queries) error {
		found, err := q.ListTasks(ctx, owner.ID, completed)
		if err != nil {
			return err
		}
		tasks = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Update applies the non-nil fields of patch. Existence is checked before
// ownership.
func (s *TaskService) Update(ctx context.Context, owner *model.User, id int64, patch model.TaskPatch) (*model.Task, error) {
	if patch.Description != nil && *patch.Description == "" {
		return nil, apperr.Validation("description must not be empty")
	}

	var updated *model.Task
	err := s.store.InTx(ctx, func(q db.Queries) error {
		task, err := s.ownedTask(ctx, q, owner, id)
		if err != nil {
			return err
		}

		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}

		updated, err = q.UpdateTask(ctx, *task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, owner *model.User, id int64) error {
	return s.store.InTx(ctx, func(q db.Queries) error {
		if _, err := s.ownedTask(ctx, q, owner, id); err != nil {
			return err
		}
		if err := q.DeleteTask(ctx, id); err != nil {
			if db.IsNotFound(err) {
				return apperr.NotFound(msgTaskNotFound)
			}
			return err
		}
		return nil
	})
}

func (s *TaskService) ownedTask(ctx context.Context, q db.Queries, owner *model.User, id int64) (*model.Task, error) {
	task, err := q.GetTask(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperr.NotFound(msgTaskNotFound)
		}
		return nil, err
	}
	if task.UserID != owner.ID {
		s.log.Warn("task access denied",
			zap.Int64("task_id", id),
			zap.Int64("user_id", owner.ID),
		)
		return nil, apperr.Permission(msgTaskPermission)
	}
	return task, nil
}
