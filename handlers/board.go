package handlers

import (
	"log"
	"net/http"
	"strconv"
	"taskboard/middleware"
	"taskboard/models"
	"taskboard/tracker"

	"github.com/gin-gonic/gin"
)

// Board routes never report errors to the user. Failures are logged and the
// browser is sent back to the board.

func Index(c *gin.Context) {
	svc := newService(c)

	board, err := svc.Board(c.Request.Context())
	if err != nil {
		log.Printf("Index: request_id=%s error=%v", middleware.RequestIDFrom(c), err)
		c.String(http.StatusInternalServerError, "failed to load board")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"projects": board.Projects,
		"tasks":    board.ActiveTasks(),
		"active":   board.Active(),
	})
}

func SubmitTask(c *gin.Context) {
	var form models.SubmitTaskForm
	if err := c.ShouldBind(&form); err != nil {
		backToBoard(c, "SubmitTask", err)
		return
	}

	svc := newService(c)
	_, err := svc.SubmitTask(c.Request.Context(), form)
	backToBoard(c, "SubmitTask", err)
}

func ToggleTask(c *gin.Context) {
	id, ok := navID(c)
	if !ok {
		return
	}

	svc := newService(c)
	backToBoard(c, "ToggleTask", svc.ToggleTask(c.Request.Context(), id))
}

func DropTask(c *gin.Context) {
	id, ok := navID(c)
	if !ok {
		return
	}

	svc := newService(c)
	backToBoard(c, "DropTask", svc.DeleteTask(c.Request.Context(), id))
}

func ClearProject(c *gin.Context) {
	id, ok := navID(c)
	if !ok {
		return
	}

	svc := newService(c)
	backToBoard(c, "ClearProject", svc.ClearProject(c.Request.Context(), id))
}

func RemoveTasks(c *gin.Context) {
	id, ok := navID(c)
	if !ok {
		return
	}

	svc := newService(c)
	_, err := svc.RemoveTasks(c.Request.Context(), id)
	backToBoard(c, "RemoveTasks", err)
}

func SwitchProject(c *gin.Context) {
	svc := newService(c)
	backToBoard(c, "SwitchProject", svc.SwitchProject(c.Request.Context(), c.Param("name")))
}

// navID parses the :id parameter, redirecting to the board when it is not a number.
func navID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		backToBoard(c, "navID", err)
		return 0, false
	}
	return id, true
}

func backToBoard(c *gin.Context, op string, err error) {
	switch {
	case err == nil:
	case tracker.IsNotFound(err), tracker.IsValidation(err):
		log.Printf("%s: request_id=%s ignored=%v", op, middleware.RequestIDFrom(c), err)
	default:
		log.Printf("%s: request_id=%s error=%v", op, middleware.RequestIDFrom(c), err)
	}
	c.Redirect(http.StatusFound, "/")
}
