package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/response"
)

// DashboardHandler wires the home-screen summary to HTTP.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Dashboard summary
// @Description Greeting plus subject, open-task and saved-tip counts for the student
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, summary, meta)
}
