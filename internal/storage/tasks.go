package storage

import (
	"context"
	"fmt"

	"github.com/fieldnote/fieldnote/internal/model"
)

// SaveTask appends a task.
func (s *Store) SaveTask(ctx context.Context, task *model.Task) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if err := validateString(task.ID, "task.ID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, description, status, created_at, due_date)
		VALUES (?, ?, ?, ?, ?)
	`, task.ID, task.Description, task.Status, task.CreatedAt, derefOrEmpty(task.DueDate))
	return wrapInsertErr(err, "tasks", task.ID)
}

// ListTasks returns all tasks, most recently inserted first.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, status, COALESCE(created_at, ''), COALESCE(due_date, '')
		FROM tasks
		ORDER BY rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		var task model.Task
		var dueDate string
		if err := rows.Scan(&task.ID, &task.Description, &task.Status, &task.CreatedAt, &dueDate); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		task.DueDate = optional(dueDate)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
