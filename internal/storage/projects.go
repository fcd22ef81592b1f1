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

const projectColumns = `id, name, description, color, user_id, created_at`

func scanProject(row interface{ Scan(...any) error }) (models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Color, &p.UserID, &p.CreatedAt)
	return p, err
}

// ListProjects returns the user's projects, newest first.
func (s *Store) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := s.query(ctx, s.db, `SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches a single project owned by userID.
func (s *Store) GetProject(ctx context.Context, userID, id string) (models.Project, error) {
	return s.getProject(ctx, s.db, userID, id)
}

func (s *Store) getProject(ctx context.Context, q dbx.DBTX, userID, id string) (models.Project, error) {
	p, err := scanProject(s.queryRow(ctx, q, `SELECT `+projectColumns+` FROM projects WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// CreateProject persists a new project. Description defaults to empty and
// color to models.DefaultProjectColor.
func (s *Store) CreateProject(ctx context.Context, userID, name, description, color string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, common.Invalid("project name is required")
	}
	if color == "" {
		color = models.DefaultProjectColor
	}
	if !models.ValidColor(color) {
		return models.Project{}, common.Invalid("color must be a #RRGGBB value")
	}

	id := uuid.NewString()
	_, err := s.exec(ctx, s.db, `INSERT INTO projects(id, name, description, color, user_id, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		id, name, strings.TrimSpace(description), color, userID, s.now())
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, userID, id)
}

// UpdateProject applies changes to a project owned by userID.
func (s *Store) UpdateProject(ctx context.Context, userID, id string, changes models.ProjectChanges) (models.Project, error) {
	var updated models.Project
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := s.getProject(ctx, tx, userID, id)
		if err != nil {
			return err
		}

		if changes.Name != nil {
			name := strings.TrimSpace(*changes.Name)
			if name == "" {
				return common.Invalid("project name is required")
			}
			current.Name = name
		}
		if changes.Description != nil {
			current.Description = strings.TrimSpace(*changes.Description)
		}
		if changes.Color != nil && *changes.Color != "" {
			if !models.ValidColor(*changes.Color) {
				return common.Invalid("color must be a #RRGGBB value")
			}
			current.Color = *changes.Color
		}

		res, err := s.exec(ctx, tx, `UPDATE projects SET name = ?, description = ?, color = ? WHERE id = ? AND user_id = ?`,
			current.Name, current.Description, current.Color, id, userID)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		if err := expectAffected(res, "project", id); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return models.Project{}, err
	}
	return updated, nil
}

// DeleteProject removes a project and every task referencing it in one
// transaction. When no project owned by userID matches, the transaction is
// rolled back and nothing is deleted.
func (s *Store) DeleteProject(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.exec(ctx, tx, `DELETE FROM tasks WHERE project_id = ?`, id); err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		res, err := s.exec(ctx, tx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return expectAffected(res, "project", id)
	})
}

func expectAffected(res sql.Result, kind, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, common.ErrNotFound)
	}
	return nil
}
