package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
	"github.com/GuhGPG-IEEM/trabalhogestao/pkg/export"
)

type gradesOverviewProvider interface {
	Overview(ctx context.Context, studentID string) (*models.GradesOverview, error)
}

// ReportFormat selects the export encoding.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// GradeReport is a rendered export document.
type GradeReport struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ReportService renders the per-subject grade report as CSV or PDF.
type ReportService struct {
	grades gradesOverviewProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(grades gradesOverviewProvider, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		grades: grades,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// GradeReport builds the export for the student's current grade set. The
// summary row reuses the same derivation the summary endpoint serves.
func (s *ReportService) GradeReport(ctx context.Context, studentID string, format ReportFormat) (*GradeReport, error) {
	overview, err := s.grades.Overview(ctx, studentID)
	if err != nil {
		return nil, err
	}

	gradeBySubject := make(map[string]models.Grade, len(overview.Grades))
	for _, g := range overview.Grades {
		gradeBySubject[g.SubjectID] = g
	}

	dataset := export.Dataset{Headers: []string{"Matéria", "Nota"}}
	for _, subject := range overview.Subjects {
		row := map[string]string{"Matéria": subject.Name, "Nota": ""}
		if grade, ok := gradeBySubject[subject.ID]; ok {
			row["Nota"] = strconv.FormatFloat(grade.Value, 'f', 1, 64)
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	summary := SummarizeGrades(overview.Grades)
	average := "-"
	if summary.Average != nil {
		average = strconv.FormatFloat(*summary.Average, 'f', 2, 64)
	}
	dataset.Rows = append(dataset.Rows, map[string]string{"Matéria": "Média Final", "Nota": average})

	switch format {
	case ReportFormatCSV:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &GradeReport{ContentType: "text/csv", Filename: "notas.csv", Body: body}, nil
	case ReportFormatPDF:
		body, err := s.pdf.Render(dataset, "Boletim de Notas")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &GradeReport{ContentType: "application/pdf", Filename: "notas.pdf", Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
}
