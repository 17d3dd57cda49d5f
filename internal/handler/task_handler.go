package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/response"
)

// TaskHandler wires HTTP endpoints to the task service.
type TaskHandler struct {
	service   *service.TaskService
	dashboard *service.DashboardService
}

// NewTaskHandler creates a new handler.
func NewTaskHandler(svc *service.TaskService, dashboard *service.DashboardService) *TaskHandler {
	return &TaskHandler{service: svc, dashboard: dashboard}
}

// List godoc
// @Summary List tasks
// @Description Fetch subjects and tasks, due date ascending, with the overdue flag stamped per request
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	overview, err := h.service.List(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, overview)
}

// Create godoc
// @Summary Create task
// @Description Register a task bound to one of the student's subjects
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body service.CreateTaskRequest true "Task payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}

	task, err := h.service.Create(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.InvalidateFor(c.Request.Context(), claims.StudentID)
	response.Created(c, task)
}

// ToggleComplete godoc
// @Summary Toggle task completion
// @Description Flip the completion flag of a task
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id}/toggle [patch]
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	task, err := h.service.ToggleComplete(c.Request.Context(), claims.StudentID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.InvalidateFor(c.Request.Context(), claims.StudentID)
	response.JSON(c, http.StatusOK, task)
}

// Delete godoc
// @Summary Delete task
// @Description Remove a task owned by the student
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.StudentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.InvalidateFor(c.Request.Context(), claims.StudentID)
	response.NoContent(c)
}
