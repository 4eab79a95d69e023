package handlers

import (
	"taskboard/database"
	"taskboard/middleware"
	"taskboard/tracker"
	"taskboard/web"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. Each request gets its own storage session.
func NewRouter(db *database.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID(), middleware.Session(db))
	r.SetHTMLTemplate(web.Templates())

	r.GET("/health", HealthCheck)

	// Board navigation: always redirects to /
	r.GET("/", Index)
	r.POST("/add", SubmitTask)
	r.GET("/close/:id", ToggleTask)
	r.GET("/delete/:id", DropTask)
	r.GET("/clear/:id", ClearProject)
	r.GET("/remove/:id", RemoveTasks)
	r.GET("/project/:name", SwitchProject)

	api := r.Group("/api")
	{
		api.GET("/projects", ListProjects)
		api.POST("/projects", CreateProject)
		api.GET("/projects/:id", GetProject)
		api.PUT("/projects/:id", UpdateProject)
		api.DELETE("/projects/:id", DeleteProject)

		api.GET("/tasks", ListTasks)
		api.POST("/tasks", CreateTask)
		api.GET("/tasks/:id", GetTask)
		api.PUT("/tasks/:id", UpdateTask)
		api.DELETE("/tasks/:id", DeleteTask)

		api.DELETE("/delete_all", DeleteAll)
	}

	return r
}

// newService builds the tracker over the request's storage session.
var newService = func(c *gin.Context) *tracker.Service {
	return tracker.New(middleware.Store(c))
}
