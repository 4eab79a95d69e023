package handlers

import (
	"log"
	"net/http"
	"taskboard/middleware"

	"github.com/gin-gonic/gin"
)

// DeleteAll wipes every task and project. Failures are rolled back and
// reported with details.
func DeleteAll(c *gin.Context) {
	svc := newService(c)

	if err := svc.DeleteAll(c.Request.Context()); err != nil {
		log.Printf("DeleteAll: request_id=%s error=%v", middleware.RequestIDFrom(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete all records",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All projects and tasks deleted"})
}
