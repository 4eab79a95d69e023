package tracker

import (
	"context"
	"fmt"
	"log"

	"taskboard/models"
)

// Activator is the only way the board changes which project is active.
// Both methods leave exactly the matched projects active and clear the rest.
type Activator interface {
	ActivateProject(ctx context.Context, id int64) error
	ActivateProjectByName(ctx context.Context, name string) error
}

// Board is what the HTML view renders: every project, every task, and the
// active project's id. Projects is nil when there are none.
type Board struct {
	Projects []models.Project
	Tasks    []models.Task
	ActiveID *int64
}

// Active returns the active project, or nil when the board is empty.
func (b *Board) Active() *models.Project {
	if b.ActiveID == nil {
		return nil
	}
	for i := range b.Projects {
		if b.Projects[i].ID == *b.ActiveID {
			return &b.Projects[i]
		}
	}
	return nil
}

// ActiveTasks returns the tasks that belong to the active project.
func (b *Board) ActiveTasks() []models.Task {
	tasks := []models.Task{}
	if b.ActiveID == nil {
		return tasks
	}
	for _, t := range b.Tasks {
		if t.ProjectID != nil && *t.ProjectID == *b.ActiveID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// Board loads projects and tasks and repairs the active flag so exactly one
// project is active. Repairs are committed together with the read.
func (s *Service) Board(ctx context.Context) (*Board, error) {
	board := &Board{}

	err := s.store.InTx(ctx, func(tx Store) error {
		projects, err := tx.ListProjects(ctx)
		if err != nil {
			return err
		}

		activeID, err := resolveActive(ctx, tx, projects)
		if err != nil {
			return err
		}

		tasks, err := tx.ListTasks(ctx, models.TaskFilter{})
		if err != nil {
			return err
		}

		if len(projects) > 0 {
			board.Projects = projects
		}
		board.ActiveID = activeID
		board.Tasks = tasks
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	return board, nil
}

// resolveActive picks the active project in projects (ordered by id) and
// writes through any repair needed so that storage agrees:
//
//   - no projects: nothing is active
//   - one project: it is active
//   - otherwise the first active project wins; with none active the first
//     project is activated; with several active the winner is activated
//     exclusively
//
// projects is updated in place to reflect the repaired flags.
func resolveActive(ctx context.Context, act Activator, projects []models.Project) (*int64, error) {
	if len(projects) == 0 {
		return nil, nil
	}

	winner := -1
	activeCount := 0
	for i, p := range projects {
		if p.Active {
			activeCount++
			if winner < 0 {
				winner = i
			}
		}
	}

	if winner < 0 {
		winner = 0
	}

	id := projects[winner].ID
	if activeCount != 1 {
		if err := act.ActivateProject(ctx, id); err != nil {
			return nil, err
		}
		log.Printf("Board: repaired active project id=%d previously_active=%d", id, activeCount)
		for i := range projects {
			projects[i].Active = i == winner
		}
	}

	return &id, nil
}

// SwitchProject activates the project(s) named name. An unknown name leaves
// no project active until the next Board call repairs it.
func (s *Service) SwitchProject(ctx context.Context, name string) error {
	return s.store.InTx(ctx, func(tx Store) error {
		return tx.ActivateProjectByName(ctx, name)
	})
}
