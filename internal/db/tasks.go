package db

import (
	"context"
	"fmt"

	"github.com/kube-rca/tasks/internal/model"
)

// CreateTask - 신규 할 일 저장 (completed=false)
func (p *pgQueries) CreateTask(ctx context.Context, userID int64, description string) (*model.Task, error) {
	var task model.Task
	err := p.q.QueryRow(ctx, `
		INSERT INTO tasks (description, completed, user_id)
		VALUES ($1, FALSE, $2)
		RETURNING id, description, completed, user_id;
	`, description, userID).Scan(&task.ID, &task.Description, &task.Completed, &task.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", pgError(err))
	}
	return &task, nil
}

// ListTasks - 사용자 소유 할 일 목록 조회 (생성순)
func (p *pgQueries) ListTasks(ctx context.Context, userID int64, completed *bool) ([]model.Task, error) {
	query := `SELECT id, description, completed, user_id FROM tasks WHERE user_id = $1`
	args := []any{userID}
	if completed != nil {
		query += ` AND completed = $2`
		args = append(args, *completed)
	}
	query += ` ORDER BY id`

	rows, err := p.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(&task.ID, &task.Description, &task.Completed, &task.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// GetTask - ID로 단건 조회. 소유자 검사는 서비스에서 수행
func (p *pgQueries) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := p.q.QueryRow(ctx, `
		SELECT id, description, completed, user_id
		FROM tasks
		WHERE id = $1;
	`, id).Scan(&task.ID, &task.Description, &task.Completed, &task.UserID)
	if err != nil {
		return nil, pgError(err)
	}
	return &task, nil
}

// UpdateTask - description/completed 저장
func (p *pgQueries) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	var updated model.Task
	err := p.q.QueryRow(ctx, `
		UPDATE tasks
		SET description = $1, completed = $2
		WHERE id = $3
		RETURNING id, description, completed, user_id;
	`, task.Description, task.Completed, task.ID).Scan(&updated.ID, &updated.Description, &updated.Completed, &updated.UserID)
	if err != nil {
		return nil, pgError(err)
	}
	return &updated, nil
}

// DeleteTask - ID로 삭제
func (p *pgQueries) DeleteTask(ctx context.Context, id int64) error {
	tag, err := p.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
