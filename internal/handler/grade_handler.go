package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/service"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/response"
)

// GradeHandler wires HTTP endpoints to the grade service.
type GradeHandler struct {
	service *service.GradeService
	reports *service.ReportService
}

// NewGradeHandler creates a new handler.
func NewGradeHandler(svc *service.GradeService, reports *service.ReportService) *GradeHandler {
	return &GradeHandler{service: svc, reports: reports}
}

// Overview godoc
// @Summary List subjects and grades
// @Description Fetch the student's subjects and recorded grades
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) Overview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, overview)
}

// SetGrade godoc
// @Summary Set grade for a subject
// @Description Record the grade typed for a subject, updating any existing entry
// @Tags Grades
// @Accept json
// @Produce json
// @Param subjectId path string true "Subject ID"
// @Param payload body service.SetGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/subjects/{subjectId} [put]
func (h *GradeHandler) SetGrade(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SetGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grade payload"))
		return
	}

	grade, err := h.service.SetGrade(c.Request.Context(), claims.StudentID, c.Param("subjectId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, grade)
}

// Delete godoc
// @Summary Delete grade
// @Description Remove a recorded grade
// @Tags Grades
// @Param id path string true "Grade ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.StudentID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Summary godoc
// @Summary Calculate average
// @Description Recompute the average of all recorded grades with the below-6.0 alert flag
// @Tags Grades
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /grades/summary [get]
func (h *GradeHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), claims.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary)
}

// Report godoc
// @Summary Export grade report
// @Description Download the per-subject grade report as CSV or PDF
// @Tags Grades
// @Param format query string false "csv or pdf" default(csv)
// @Produce text/csv
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /grades/report [get]
func (h *GradeHandler) Report(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ReportFormat(c.DefaultQuery("format", string(service.ReportFormatCSV)))
	report, err := h.reports.GradeReport(c.Request.Context(), claims.StudentID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	c.Data(http.StatusOK, report.ContentType, report.Body)
}
