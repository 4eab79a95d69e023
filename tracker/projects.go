package tracker

import (
	"context"
	"errors"
	"log"

	"taskboard/models"
)

func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *Service) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return s.store.GetProject(ctx, id)
}

// CreateProject inserts a project. Active defaults to false. A null name is
// stored as empty.
func (s *Service) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if !req.Name.Present {
		return nil, &ValidationError{Field: "name"}
	}

	active := false
	if req.Active != nil {
		active = *req.Active
	}

	var project *models.Project
	err := s.store.InTx(ctx, func(tx Store) error {
		var err error
		project, err = tx.CreateProject(ctx, req.Name.Or(""), active)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *Service) UpdateProject(ctx context.Context, id int64, req models.UpdateProjectRequest) error {
	return s.store.InTx(ctx, func(tx Store) error {
		return tx.UpdateProject(ctx, id, req)
	})
}

// DeleteProject removes only the project row. Its tasks keep pointing at the
// deleted id.
func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		return tx.DeleteProject(ctx, id)
	})
}

// ClearProject deletes a project's tasks and then the project, as one unit.
// A project id with no row still has its tasks removed.
func (s *Service) ClearProject(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(tx Store) error {
		n, err := tx.DeleteTasksByProject(ctx, id)
		if err != nil {
			return err
		}

		err = tx.DeleteProject(ctx, id)
		if err != nil && !IsNotFound(err) {
			return err
		}

		log.Printf("ClearProject: project=%d tasks_deleted=%d", id, n)
		return nil
	})
}

// DeleteAll wipes every task and then every project in one transaction.
func (s *Service) DeleteAll(ctx context.Context) error {
	err := s.store.InTx(ctx, func(tx Store) error {
		tasks, err := tx.DeleteTasks(ctx)
		if err != nil {
			return &DeleteAllError{Step: "tasks", Err: err}
		}

		projects, err := tx.DeleteProjects(ctx)
		if err != nil {
			return &DeleteAllError{Step: "projects", Err: err}
		}

		log.Printf("DeleteAll: tasks=%d projects=%d", tasks, projects)
		return nil
	})
	if err == nil {
		return nil
	}

	var stepErr *DeleteAllError
	if errors.As(err, &stepErr) {
		return err
	}
	return &DeleteAllError{Step: "commit", Err: err}
}
