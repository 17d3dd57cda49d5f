package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/response"
)

// StudyTipHandler wires HTTP endpoints to the study-tip service.
type StudyTipHandler struct {
	service   *service.StudyTipService
	dashboard *service.DashboardService
}

// NewStudyTipHandler creates a new handler.
func NewStudyTipHandler(svc *service.StudyTipService, dashboard *service.DashboardService) *StudyTipHandler {
	return &StudyTipHandler{service: svc, dashboard: dashboard}
}

// List godoc
// @Summary List saved study tips
// @Description Fetch saved study tips, newest first
// @Tags StudyTips
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /study-tips [get]
func (h *StudyTipHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	tips, err := h.service.List(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, tips)
}

// AssistantLink godoc
// @Summary Build assistant hand-off link
// @Description Interpolate the topic into the prompt and return the assistant URL to open
// @Tags StudyTips
// @Produce json
// @Param topic query string true "Study topic"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /study-tips/assistant-link [get]
func (h *StudyTipHandler) AssistantLink(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	link, err := h.service.BuildAssistantLink(c.Query("topic"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, link)
}

// Save godoc
// @Summary Save study tip
// @Description Bookmark a topic together with the tips pasted back from the assistant
// @Tags StudyTips
// @Accept json
// @Produce json
// @Param payload body service.SaveStudyTipRequest true "Study tip payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /study-tips [post]
func (h *StudyTipHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SaveStudyTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid study tip payload"))
		return
	}

	tip, err := h.service.Save(c.Request.Context(), claims.StudentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.dashboard.InvalidateFor(c.Request.Context(), claims.StudentID)
	response.Created(c, tip)
}

// Delete godoc
// @Summary Delete study tip
// @Description Remove a saved study tip
// @Tags StudyTips
// @Param id path string true "Study tip ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /study-tips/{id} [delete]
func (h *StudyTipHandler) Delete(c *gin.Context) {
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
