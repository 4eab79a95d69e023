package handlers

import (
	"net/http"
	"taskboard/middleware"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	if err := middleware.Store(c).Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
