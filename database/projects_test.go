package database

import (
	"context"
	"testing"

	"taskboard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int64) *int64   { return &i }

func TestCreateProject(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			project, err := store.CreateProject(ctx, "Test Project", true)

			require.NoError(t, err)
			assert.NotZero(t, project.ID)
			assert.Equal(t, "Test Project", project.Name)
			assert.True(t, project.Active)
		})
	}
}

func TestListProjects(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			projects, err := store.ListProjects(ctx)
			require.NoError(t, err)
			assert.NotNil(t, projects)
			assert.Empty(t, projects)

			for _, name := range []string{"Project 1", "Project 2", "Project 3"} {
				_, err = store.CreateProject(ctx, name, false)
				require.NoError(t, err)
			}

			projects, err = store.ListProjects(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 3)
			assert.Equal(t, "Project 1", projects[0].Name)
			assert.Equal(t, "Project 3", projects[2].Name)
		})
	}
}

func TestGetProject(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			created, err := store.CreateProject(ctx, "Test Project", false)
			require.NoError(t, err)

			retrieved, err := store.GetProject(ctx, created.ID)
			require.NoError(t, err)

			assert.Equal(t, created, retrieved)
		})
	}
}

func TestGetProject_NotFound(t *testing.T) {
	db := OpenTestDB(t)

	_, err := db.Store().GetProject(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateProject_Partial(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			created, err := store.CreateProject(ctx, "Before", false)
			require.NoError(t, err)

			err = store.UpdateProject(ctx, created.ID, models.UpdateProjectRequest{Active: boolPtr(true)})
			require.NoError(t, err)

			got, err := store.GetProject(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Before", got.Name)
			assert.True(t, got.Active)

			err = store.UpdateProject(ctx, created.ID, models.UpdateProjectRequest{Name: strPtr("After")})
			require.NoError(t, err)

			got, err = store.GetProject(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "After", got.Name)
			assert.True(t, got.Active)
		})
	}
}

func TestUpdateProject_NotFound(t *testing.T) {
	db := OpenTestDB(t)

	err := db.Store().UpdateProject(context.Background(), 42, models.UpdateProjectRequest{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			created, err := store.CreateProject(ctx, "Test Project", false)
			require.NoError(t, err)
			task, err := store.CreateTask(ctx, &created.ID, "left behind", true)
			require.NoError(t, err)

			err = store.DeleteProject(ctx, created.ID)
			require.NoError(t, err)

			_, err = store.GetProject(ctx, created.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			// Tasks are not cascaded.
			orphan, err := store.GetTask(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, created.ID, *orphan.ProjectID)
		})
	}
}

func TestDeleteProject_NotFound(t *testing.T) {
	db := OpenTestDB(t)

	err := db.Store().DeleteProject(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivateProject(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			a, err := store.CreateProject(ctx, "A", true)
			require.NoError(t, err)
			b, err := store.CreateProject(ctx, "B", true)
			require.NoError(t, err)

			require.NoError(t, store.ActivateProject(ctx, b.ID))

			projects, err := store.ListProjects(ctx)
			require.NoError(t, err)
			assert.Equal(t, []models.Project{
				{ID: a.ID, Name: "A", Active: false},
				{ID: b.ID, Name: "B", Active: true},
			}, projects)
		})
	}
}

func TestActivateProjectByName(t *testing.T) {
	for dialect, db := range TestBackends(t) {
		t.Run(string(dialect), func(t *testing.T) {
			ctx := context.Background()
			store := db.Store()

			_, err := store.CreateProject(ctx, "Home", true)
			require.NoError(t, err)
			_, err = store.CreateProject(ctx, "Work", false)
			require.NoError(t, err)

			require.NoError(t, store.ActivateProjectByName(ctx, "Work"))
			assert.Equal(t, []string{"Work"}, activeNames(t, store))

			require.NoError(t, store.ActivateProjectByName(ctx, "Nowhere"))
			assert.Empty(t, activeNames(t, store))
		})
	}
}

func activeNames(t *testing.T, store *Store) []string {
	t.Helper()

	projects, err := store.ListProjects(context.Background())
	require.NoError(t, err)

	names := []string{}
	for _, p := range projects {
		if p.Active {
			names = append(names, p.Name)
		}
	}
	return names
}
