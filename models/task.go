package models

// Task belongs to a project through ProjectID. ProjectID may be nil or point
// at a project that no longer exists.
type Task struct {
	ID        int64  `json:"id" db:"task_id"`
	ProjectID *int64 `json:"project_id" db:"project_id"`
	Text      string `json:"task" db:"task"`
	Status    bool   `json:"status" db:"status"`
}

// CreateTaskRequest is the payload for POST /api/tasks. Both task and
// project_id must be present; either may be null.
type CreateTaskRequest struct {
	ProjectID Optional[int64]  `json:"project_id"`
	Text      Optional[string] `json:"task"`
	Status    *bool            `json:"status"`
}

// UpdateTaskRequest is a partial update. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Text   *string `json:"task"`
	Status *bool   `json:"status"`
}

// SubmitTaskForm is the board's add-task form. Status is a 0/1 indicator.
type SubmitTaskForm struct {
	Task    string `form:"task"`
	Project string `form:"project"`
	Status  string `form:"status"`
}

// TaskFilter narrows GET /api/tasks. Search matches words in the task text.
type TaskFilter struct {
	ProjectID *int64 `form:"project_id"`
	Status    *bool  `form:"status"`
	Search    string `form:"search"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
