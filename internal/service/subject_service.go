package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type subjectRepo interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Subject, error)
	FindByID(ctx context.Context, studentID, id string) (*models.Subject, error)
	Insert(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, studentID, id string) error
}

// CreateSubjectRequest carries the creation form fields. Subjects have no
// update operation; fields are fixed at creation.
type CreateSubjectRequest struct {
	Name         string   `json:"name" validate:"required"`
	ScheduleDays []string `json:"schedule_days"`
	ScheduleTime string   `json:"schedule_time"`
}

// SubjectService manages the subject list.
type SubjectService struct {
	subjects  subjectRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(subjects subjectRepo, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{subjects: subjects, validator: validate, logger: logger}
}

// List returns the student's subjects in creation order.
func (s *SubjectService) List(ctx context.Context, studentID string) ([]models.Subject, error) {
	subjects, err := s.subjects.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

// Create validates and stores a new subject. Weekday labels must come
// from the fixed six-value set and may not repeat.
func (s *SubjectService) Create(ctx context.Context, studentID string, req CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	seen := make(map[string]struct{}, len(req.ScheduleDays))
	for _, day := range req.ScheduleDays {
		if !models.ValidWeekDay(day) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown weekday %q", day))
		}
		if _, dup := seen[day]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("weekday %q selected twice", day))
		}
		seen[day] = struct{}{}
	}

	subject := &models.Subject{
		StudentID:    studentID,
		Name:         req.Name,
		ScheduleDays: req.ScheduleDays,
		ScheduleTime: req.ScheduleTime,
	}
	if subject.ScheduleDays == nil {
		subject.ScheduleDays = []string{}
	}

	if err := s.subjects.Insert(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert subject")
	}
	return subject, nil
}

// Delete removes a subject owned by the student.
func (s *SubjectService) Delete(ctx context.Context, studentID, subjectID string) error {
	if err := s.subjects.Delete(ctx, studentID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}
