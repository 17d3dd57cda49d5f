package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type gradeRepo interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error)
	FindBySubject(ctx context.Context, studentID, subjectID string) (*models.Grade, error)
	Insert(ctx context.Context, grade *models.Grade) error
	UpdateValue(ctx context.Context, studentID, id string, value float64, updatedAt time.Time) error
	Delete(ctx context.Context, studentID, id string) error
}

type subjectReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Subject, error)
	FindByID(ctx context.Context, studentID, id string) (*models.Subject, error)
}

// SetGradeRequest carries the raw text value typed by the student.
type SetGradeRequest struct {
	Value string `json:"value" validate:"required"`
}

const passingThreshold = 6.0

// GradeService orchestrates grade entry and the derived average/alert.
type GradeService struct {
	grades    gradeRepo
	subjects  subjectReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(grades gradeRepo, subjects subjectReader, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{grades: grades, subjects: subjects, validator: validate, logger: logger}
}

// Overview fetches the student's subjects and grades. The two reads are
// independent and run concurrently; either may legitimately come back empty.
func (s *GradeService) Overview(ctx context.Context, studentID string) (*models.GradesOverview, error) {
	var (
		subjects []models.Subject
		grades   []models.Grade
		subjErr  error
		gradeErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		subjects, subjErr = s.subjects.ListByStudent(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		grades, gradeErr = s.grades.ListByStudent(ctx, studentID)
	}()
	wg.Wait()

	if subjErr != nil {
		return nil, appErrors.Wrap(subjErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if gradeErr != nil {
		return nil, appErrors.Wrap(gradeErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	if subjects == nil {
		subjects = []models.Subject{}
	}
	if grades == nil {
		grades = []models.Grade{}
	}

	return &models.GradesOverview{Subjects: subjects, Grades: grades}, nil
}

// SetGrade records the value typed for a subject. The raw text is parsed
// as a decimal and rejected when not a number or outside [0, 10]; an
// existing row for the subject is updated, otherwise one is inserted, so
// at most one grade row ever exists per (student, subject).
func (s *GradeService) SetGrade(ctx context.Context, studentID, subjectID string, req SetGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	value, err := strconv.ParseFloat(req.Value, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade is not a number")
	}
	if math.IsNaN(value) || value < 0 || value > 10 {
		return nil, appErrors.Clone(appErrors.ErrGradeOutOfRange, "")
	}

	if _, err := s.subjects.FindByID(ctx, studentID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	existing, err := s.grades.FindBySubject(ctx, studentID, subjectID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up grade")
	}

	if existing != nil {
		now := time.Now().UTC()
		if err := s.grades.UpdateValue(ctx, studentID, existing.ID, value, now); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
		}
		existing.Value = value
		existing.UpdatedAt = now
		return existing, nil
	}

	grade := &models.Grade{
		StudentID: studentID,
		SubjectID: subjectID,
		Value:     value,
	}
	if err := s.grades.Insert(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert grade")
	}
	return grade, nil
}

// Delete removes a grade row.
func (s *GradeService) Delete(ctx context.Context, studentID, gradeID string) error {
	if err := s.grades.Delete(ctx, studentID, gradeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade")
	}
	return nil
}

// Summary recomputes the average and alert from the current grade set.
// It is derived fresh on every call, never maintained incrementally.
func (s *GradeService) Summary(ctx context.Context, studentID string) (*models.GradeSummary, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	summary := SummarizeGrades(grades)
	return &summary, nil
}

// SummarizeGrades computes the arithmetic mean of the recorded grades,
// rounded to two decimals for display. With no grades the average stays
// unset and the alert is off; otherwise the alert fires iff the average
// is strictly below the passing threshold of 6.0.
func SummarizeGrades(grades []models.Grade) models.GradeSummary {
	if len(grades) == 0 {
		return models.GradeSummary{Average: nil, Alert: false, GradeCount: 0}
	}

	var sum float64
	for _, g := range grades {
		sum += g.Value
	}
	avg := sum / float64(len(grades))
	rounded := math.RoundToEven(avg*100) / 100

	return models.GradeSummary{
		Average:    &rounded,
		Alert:      avg < passingThreshold,
		GradeCount: len(grades),
	}
}
