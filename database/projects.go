package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"taskboard/models"
)

// Older databases allow NULL in every column; reads coalesce them.
const projectColumns = `project_id, COALESCE(project_name, ''), COALESCE(active, FALSE)`

// ListProjects returns every project in insertion order.
// Returns empty slice (not nil) if there are none.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY project_id`

	rows, err := s.queryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = ?`

	project, err := scanProject(s.queryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (s *Store) CreateProject(ctx context.Context, name string, active bool) (*models.Project, error) {
	query := `
		INSERT INTO projects (project_name, active)
		VALUES (?, ?)
		RETURNING ` + projectColumns

	project, err := scanProject(s.queryRowContext(ctx, query, name, active))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Created project: %q (ID: %d) active=%t", project.Name, project.ID, project.Active)
	return project, nil
}

// UpdateProject replaces the fields that are non-nil in req.
func (s *Store) UpdateProject(ctx context.Context, id int64, req models.UpdateProjectRequest) error {
	query := `
		UPDATE projects
		SET project_name = COALESCE(?, project_name),
		    active = COALESCE(?, active)
		WHERE project_id = ?
	`

	result, err := s.execContext(ctx, query, req.Name, req.Active, id)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return expectRow(result, "project", id)
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE project_id = ?`

	result, err := s.execContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if err := expectRow(result, "project", id); err != nil {
		return err
	}

	log.Printf("Deleted project: %d", id)
	return nil
}

// DeleteProjects removes every project and reports how many were removed.
func (s *Store) DeleteProjects(ctx context.Context) (int64, error) {
	result, err := s.execContext(ctx, `DELETE FROM projects`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete projects: %w", err)
	}
	return result.RowsAffected()
}

// ActivateProject marks the project with id active and every other project
// inactive in one statement.
func (s *Store) ActivateProject(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE projects SET %s = (%s = ?)`, columnActive, columnProjectID)

	if _, err := s.execContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to activate project %d: %w", id, err)
	}
	return nil
}

// ActivateProjectByName marks every project named name active and all others
// inactive. An unknown name leaves no project active.
func (s *Store) ActivateProjectByName(ctx context.Context, name string) error {
	query := fmt.Sprintf(`UPDATE projects SET %s = (%s = ?)`, columnActive, columnProjectName)

	if _, err := s.execContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to activate project %q: %w", name, err)
	}
	return nil
}

// Helper functions

func expectRow(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Active,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
