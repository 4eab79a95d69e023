// Package tracker holds the board's rules: which project is active and how
// projects and tasks are created, changed, and removed together.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"taskboard/database"
	"taskboard/models"
)

// DefaultProjectName is used when a task is submitted without a project.
const DefaultProjectName = "Tasks"

// ValidationError reports a required field that was not supplied.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// DeleteAllError reports which step of DeleteAll failed. The transaction has
// been rolled back when it is returned.
type DeleteAllError struct {
	Step string
	Err  error
}

func (e *DeleteAllError) Error() string {
	return fmt.Sprintf("delete all failed at %s: %v", e.Step, e.Err)
}

func (e *DeleteAllError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means a referenced id does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Store is the storage surface the tracker works against. Outside the
// structured project update, the active flag changes only through Activator.
type Store interface {
	Activator

	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	CreateProject(ctx context.Context, name string, active bool) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, req models.UpdateProjectRequest) error
	DeleteProject(ctx context.Context, id int64) error
	DeleteProjects(ctx context.Context) (int64, error)

	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, projectID *int64, text string, status bool) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) error
	ToggleTask(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error
	DeleteTasksByProject(ctx context.Context, projectID int64) (int64, error)
	DeleteTasks(ctx context.Context) (int64, error)

	InTx(ctx context.Context, fn func(tx Store) error) error
}

// gateway adapts *database.Store to Store.
type gateway struct {
	*database.Store
}

func (g gateway) InTx(ctx context.Context, fn func(tx Store) error) error {
	return g.Store.InTx(ctx, func(tx *database.Store) error {
		return fn(gateway{tx})
	})
}

type Service struct {
	store Store
}

// New returns a Service over a database store, typically the one bound to
// the current request.
func New(store *database.Store) *Service {
	return &Service{store: Adapt(store)}
}

// Adapt wraps a database store as a Store.
func Adapt(store *database.Store) Store {
	return gateway{store}
}

// NewWithStore returns a Service over any Store implementation.
func NewWithStore(store Store) *Service {
	return &Service{store: store}
}
