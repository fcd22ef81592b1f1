package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tasktracker/internal/common"
	"tasktracker/internal/dbx"
	"tasktracker/internal/models"
)

const taskColumns = `id, title, description, status, priority, due_date, project_id, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var (
		t   models.Task
		due sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &due, &t.ProjectID, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	t.DueDate = timePtr(due)
	return t, err
}

// ListTasks returns the user's tasks narrowed by filter, newest first.
func (s *Store) ListTasks(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if filter.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, filter.Priority)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.query(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task owned by userID.
func (s *Store) GetTask(ctx context.Context, userID, id string) (models.Task, error) {
	return s.getTask(ctx, s.db, userID, id)
}

func (s *Store) getTask(ctx context.Context, q dbx.DBTX, userID, id string) (models.Task, error) {
	t, err := scanTask(s.queryRow(ctx, q, `SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// CreateTask inserts a task for userID. Status defaults to not-started and
// priority to medium. The referenced project must be owned by userID.
func (s *Store) CreateTask(ctx context.Context, userID string, t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" || t.ProjectID == "" {
		return models.Task{}, common.Invalid("title and project_id are required")
	}
	if t.Status == "" {
		t.Status = models.StatusNotStarted
	} else if st, ok := models.ParseTaskStatus(string(t.Status)); ok {
		t.Status = st
	} else {
		return models.Task{}, common.Invalid(fmt.Sprintf("unknown status %q", t.Status))
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	} else if _, ok := models.ParseTaskPriority(string(t.Priority)); !ok {
		return models.Task{}, common.Invalid(fmt.Sprintf("unknown priority %q", t.Priority))
	}

	t.ID = uuid.NewString()
	t.UserID = userID
	t.Description = strings.TrimSpace(t.Description)
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.getProject(ctx, tx, userID, t.ProjectID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.Invalid("project not found")
			}
			return err
		}
		_, err := s.exec(ctx, tx, `INSERT INTO tasks(`+taskColumns+`) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Description, t.Status, t.Priority, nullTime(t.DueDate), t.ProjectID, t.UserID, t.CreatedAt, t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return s.GetTask(ctx, userID, t.ID)
}

// UpdateTask applies changes to a task owned by userID and refreshes
// updated_at. The new timestamp never precedes the stored one.
func (s *Store) UpdateTask(ctx context.Context, userID, id string, changes models.TaskChanges) (models.Task, error) {
	var updated models.Task
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := s.getTask(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if changes.Title != nil {
			title := strings.TrimSpace(*changes.Title)
			if title == "" {
				return common.Invalid("title must not be empty")
			}
			current.Title = title
		}
		if changes.Description != nil {
			current.Description = strings.TrimSpace(*changes.Description)
		}
		if changes.Status != nil {
			st, ok := models.ParseTaskStatus(string(*changes.Status))
			if !ok {
				return common.Invalid(fmt.Sprintf("unknown status %q", *changes.Status))
			}
			current.Status = st
		}
		if changes.Priority != nil {
			if _, ok := models.ParseTaskPriority(string(*changes.Priority)); !ok {
				return common.Invalid(fmt.Sprintf("unknown priority %q", *changes.Priority))
			}
			current.Priority = *changes.Priority
		}
		switch {
		case changes.ClearDueDate:
			current.DueDate = nil
		case changes.DueDate != nil:
			due := changes.DueDate.UTC()
			current.DueDate = &due
		}

		now := s.now()
		if now.Before(current.UpdatedAt) {
			now = current.UpdatedAt
		}
		current.UpdatedAt = now

		res, err := s.exec(ctx, tx, `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
			current.Title, current.Description, current.Status, current.Priority, nullTime(current.DueDate), current.UpdatedAt, id, userID)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		if err := expectAffected(res, "task", id); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes a task owned by userID.
func (s *Store) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := s.exec(ctx, s.db, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectAffected(res, "task", id)
}
