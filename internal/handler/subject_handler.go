package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/response"
)

// SubjectHandler wires HTTP endpoints to the subject service.
type SubjectHandler struct {
	service   *service.SubjectService
	dashboard *service.DashboardService
}

// NewSubjectHandler creates a new handler.
func NewSubjectHandler(svc *service.SubjectService, dashboard *service.DashboardService) *SubjectHandler {
	return &SubjectHandler{service: svc, dashboard: dashboard}
}

// List godoc
// @Summary List subjects
// @Description Fetch the student's subjects in creation order
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	subjects, err := h.service.List(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, subjects)
}

// Create godoc
// @Summary Create subject
// @Description Register a subject with its weekly schedule
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}

	subject, err := h.service.Create(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.InvalidateFor(c.Request.Context(), claims.StudentID)
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete subject
// @Description Remove a subject owned by the student
// @Tags Subjects
// @Param id path string true "Subject ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
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
