package middleware

import (
	"log"
	"net/http"
	"taskboard/database"

	"github.com/gin-gonic/gin"
)

const storeKey = "store"

// Session checks out one database connection per request and releases it
// once the handler chain has finished. Handlers reach it through Store.
func Session(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := db.Acquire(c.Request.Context())
		if err != nil {
			log.Printf("Session: request_id=%s error=%v", RequestIDFrom(c), err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			c.Abort()
			return
		}
		defer func() {
			if err := session.Release(); err != nil {
				log.Printf("Session: request_id=%s release error=%v", RequestIDFrom(c), err)
			}
		}()

		c.Set(storeKey, session.Store())

		c.Next()
	}
}

// Store returns the request's storage gateway. It panics if Session did not run.
func Store(c *gin.Context) *database.Store {
	return c.MustGet(storeKey).(*database.Store)
}
