package models

// Project groups tasks. At most one project is active at a time; the active
// project is the tab the board shows.
type Project struct {
	ID     int64  `json:"id" db:"project_id"`
	Name   string `json:"name" db:"project_name"`
	Active bool   `json:"active" db:"active"`
}

// CreateProjectRequest is the payload for POST /api/projects.
// Name must be present; an empty string or null is accepted.
type CreateProjectRequest struct {
	Name   Optional[string] `json:"name"`
	Active *bool            `json:"active"`
}

// UpdateProjectRequest is a partial update. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}
