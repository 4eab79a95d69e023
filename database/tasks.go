package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"taskboard/models"
	"time"
)

const taskColumns = `task_id, project_id, COALESCE(task, ''), COALESCE(status, FALSE)`

// ListTasks returns tasks in insertion order, optionally filtered by project,
// status, and search terms. Returns empty slice (not nil) if no tasks match.
func (s *Store) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	start := time.Now()
	defer func() {
		log.Printf("ListTasks: duration=%v filters=[project_id=%v status=%v search=%q]",
			time.Since(start), derefInt(filter.ProjectID), derefBool(filter.Status), filter.Search)
	}()

	qb := NewQueryBuilder(s.dialect)
	if filter.ProjectID != nil {
		qb.AddCondition(columnProjectID, *filter.ProjectID)
	}
	if filter.Status != nil {
		qb.AddCondition(columnStatus, *filter.Status)
	}
	if filter.Search != "" {
		terms, err := NewSearchQueryParser().Parse(filter.Search)
		if err != nil {
			return nil, fmt.Errorf("invalid search query: %w", err)
		}
		for _, term := range terms {
			qb.AddContains(columnTask, term)
		}
	}

	// SAFETY: All user input is parameterized. whereClause only contains safe SQL.
	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY %s`,
		taskColumns, qb.WhereClause(), columnTaskID)

	rows, err := s.queryContext(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (s *Store) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = ?`

	task, err := scanTask(s.queryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// CreateTask inserts a task. projectID is stored as given; it is not checked
// against the projects table.
func (s *Store) CreateTask(ctx context.Context, projectID *int64, text string, status bool) (*models.Task, error) {
	query := `
		INSERT INTO tasks (project_id, task, status)
		VALUES (?, ?, ?)
		RETURNING ` + taskColumns

	task, err := scanTask(s.queryRowContext(ctx, query, projectID, text, status))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Printf("Created task: %d project=%v status=%t", task.ID, derefInt(task.ProjectID), task.Status)
	return task, nil
}

// UpdateTask replaces the fields that are non-nil in req.
func (s *Store) UpdateTask(ctx context.Context, id int64, req models.UpdateTaskRequest) error {
	query := `
		UPDATE tasks
		SET task = COALESCE(?, task),
		    status = COALESCE(?, status)
		WHERE task_id = ?
	`

	result, err := s.execContext(ctx, query, req.Text, req.Status, id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return expectRow(result, "task", id)
}

// ToggleTask flips the task's status.
func (s *Store) ToggleTask(ctx context.Context, id int64) error {
	query := `UPDATE tasks SET status = NOT COALESCE(status, FALSE) WHERE task_id = ?`

	result, err := s.execContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	return expectRow(result, "task", id)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE task_id = ?`

	result, err := s.execContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := expectRow(result, "task", id); err != nil {
		return err
	}

	log.Printf("Deleted task: %d", id)
	return nil
}

// DeleteTasksByProject removes every task owned by projectID and reports how
// many were removed. The project row is untouched.
func (s *Store) DeleteTasksByProject(ctx context.Context, projectID int64) (int64, error) {
	qb := NewQueryBuilder(s.dialect)
	qb.AddCondition(columnProjectID, projectID)
	return s.deleteTasks(ctx, qb)
}

// DeleteTasks removes every task.
func (s *Store) DeleteTasks(ctx context.Context) (int64, error) {
	return s.deleteTasks(ctx, NewQueryBuilder(s.dialect))
}

func (s *Store) deleteTasks(ctx context.Context, qb *QueryBuilder) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM tasks %s`, qb.WhereClause())

	result, err := s.execContext(ctx, query, qb.Args()...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	log.Printf("Deleted tasks: count=%d filter=%q", n, qb.WhereClause())
	return n, nil
}

// Helper functions

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var projectID sql.NullInt64
	err := row.Scan(
		&task.ID,
		&projectID,
		&task.Text,
		&task.Status,
	)
	if err != nil {
		return nil, err
	}
	if projectID.Valid {
		task.ProjectID = &projectID.Int64
	}
	return &task, nil
}

func scanTasks(rows rowsScanner) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

func derefInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func derefBool(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
