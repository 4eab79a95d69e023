package tracker

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"taskboard/database"
	"taskboard/models"
)

// SubmitTask handles the board's add-task form. An empty task text is
// ignored. The named project (DefaultProjectName when empty) is created if
// missing, made the only active project, and receives the new task.
// It returns nil, nil when nothing was written.
func (s *Service) SubmitTask(ctx context.Context, form models.SubmitTaskForm) (*models.Task, error) {
	if form.Task == "" {
		return nil, nil
	}

	name := form.Project
	if name == "" {
		name = DefaultProjectName
	}

	status, err := parseStatusFlag(form.Status)
	if err != nil {
		return nil, err
	}

	var task *models.Task
	err = s.store.InTx(ctx, func(tx Store) error {
		projects, err := tx.ListProjects(ctx)
		if err != nil {
			return err
		}

		project := findByName(projects, name)
		if project == nil {
			project, err = tx.CreateProject(ctx, name, true)
			if err != nil {
				return err
			}
		}

		if err := tx.ActivateProjectByName(ctx, name); err != nil {
			return err
		}

		task, err = tx.CreateTask(ctx, &project.ID, form.Task, status)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit task: %w", err)
	}

	return task, nil
}

// CreateTask handles the structured API. Status defaults to true.
// The project id is stored as given, and a null project id is stored as NULL.
// A null task text is stored as empty.
func (s *Service) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	if !req.Text.Present {
		return nil, &ValidationError{Field: "task"}
	}
	if !req.ProjectID.Present {
		return nil, &ValidationError{Field: "project_id"}
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	var task *models.Task
	err := s.store.InTx(ctx, func(tx Store) error {
		var err error
		task, err = tx.CreateTask(ctx, req.ProjectID.Value, req.Text.Or(""), status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks matching filter. A malformed search is a ValidationError.
func (s *Service) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Search != "" {
		if _, err := database.NewSearchQueryParser().Parse(filter.Search); err != nil {
			return nil, &ValidationError{Field: "search", Msg: err.Error()}
		}
	}
	return s.store.ListTasks(ctx, filter)
}

func (s *Service) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// ToggleTask flips a task's status. A missing task is not an error.
func (s *Service) ToggleTask(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(tx Store) error {
		return tx.ToggleTask(ctx, id)
	})
	if IsNotFound(err) {
		log.Printf("ToggleTask: task=%d not found, ignoring", id)
		return nil
	}
	return err
}

func (s *Service) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) error {
	return s.store.InTx(ctx, func(tx Store) error {
		return tx.UpdateTask(ctx, id, req)
	})
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		return tx.DeleteTask(ctx, id)
	})
}

// RemoveTasks deletes every task of a project and keeps the project.
func (s *Service) RemoveTasks(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	err := s.store.InTx(ctx, func(tx Store) error {
		var err error
		n, err = tx.DeleteTasksByProject(ctx, projectID)
		return err
	})
	return n, err
}

// parseStatusFlag reads the form's 0/1 indicator; any non-zero integer is true.
func parseStatusFlag(raw string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false, &ValidationError{Field: "status", Msg: fmt.Sprintf("expected 0 or 1, got %q", raw)}
	}
	return n != 0, nil
}

// findByName returns the last project called name, so with duplicate names
// the newest one receives the task.
func findByName(projects []models.Project, name string) *models.Project {
	for i := len(projects) - 1; i >= 0; i-- {
		if projects[i].Name == name {
			return &projects[i]
		}
	}
	return nil
}
