package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"taskboard/middleware"
	"taskboard/models"
	"taskboard/tracker"

	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	svc := newService(c)

	projects, err := svc.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	projectID, ok := apiID(c, "invalid project ID")
	if !ok {
		return
	}

	svc := newService(c)
	project, err := svc.GetProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, project)
}

func CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Name.Present {
		log.Printf("Bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
		return
	}

	svc := newService(c)
	project, err := svc.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Project could not be created")
		return
	}

	log.Printf("Project created: %d", project.ID)
	c.JSON(http.StatusCreated, models.CreatedResponse{Message: "Project created", ID: project.ID})
}

func UpdateProject(c *gin.Context) {
	projectID, ok := apiID(c, "invalid project ID")
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if !bindPartial(c, &req) {
		return
	}

	svc := newService(c)
	if err := svc.UpdateProject(c.Request.Context(), projectID, req); err != nil {
		respondError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated"})
}

// DeleteProject removes the project only; its tasks are left in place.
func DeleteProject(c *gin.Context) {
	projectID, ok := apiID(c, "invalid project ID")
	if !ok {
		return
	}

	svc := newService(c)
	if err := svc.DeleteProject(c.Request.Context(), projectID); err != nil {
		respondError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// Helper functions

func apiID(c *gin.Context, invalidMsg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidMsg})
		return 0, false
	}
	return id, true
}

// bindPartial binds an optional JSON body. A missing body is an empty update.
func bindPartial(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case tracker.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case tracker.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("API error: request_id=%s path=%s error=%v",
			middleware.RequestIDFrom(c), c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
