package handlers

import (
	"log"
	"net/http"
	"taskboard/models"

	"github.com/gin-gonic/gin"
)

// ListTasks accepts optional project_id, status and search query parameters.
func ListTasks(c *gin.Context) {
	var filter models.TaskFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := newService(c)
	tasks, err := svc.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func GetTask(c *gin.Context) {
	taskID, ok := apiID(c, "invalid task ID")
	if !ok {
		return
	}

	svc := newService(c)
	task, err := svc.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask requires the task and project_id keys; either may be null.
// Status defaults to true.
func CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Text.Present || !req.ProjectID.Present {
		log.Printf("Bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task or project_id"})
		return
	}

	svc := newService(c)
	task, err := svc.CreateTask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Task could not be created")
		return
	}

	log.Printf("Task created: %d", task.ID)
	c.JSON(http.StatusCreated, models.CreatedResponse{Message: "Task created", ID: task.ID})
}

func UpdateTask(c *gin.Context) {
	taskID, ok := apiID(c, "invalid task ID")
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if !bindPartial(c, &req) {
		return
	}

	svc := newService(c)
	if err := svc.UpdateTask(c.Request.Context(), taskID, req); err != nil {
		respondError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

func DeleteTask(c *gin.Context) {
	taskID, ok := apiID(c, "invalid task ID")
	if !ok {
		return
	}

	svc := newService(c)
	if err := svc.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
