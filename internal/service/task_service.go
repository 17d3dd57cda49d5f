package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type taskRepo interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Task, error)
	FindByID(ctx context.Context, studentID, id string) (*models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	SetCompleted(ctx context.Context, studentID, id string, completed bool) error
	Delete(ctx context.Context, studentID, id string) error
}

// CreateTaskRequest carries the task creation form fields.
type CreateTaskRequest struct {
	Title     string `json:"title" validate:"required"`
	DueDate   string `json:"due_date" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
}

// TaskService manages the task list and its derived overdue state.
type TaskService struct {
	tasks     taskRepo
	subjects  subjectReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService constructs a TaskService.
func NewTaskService(tasks taskRepo, subjects subjectReader, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{tasks: tasks, subjects: subjects, validator: validate, logger: logger, now: time.Now}
}

// List fetches subjects (for the creation form) and tasks joined with
// their subject, due date ascending. The overdue flag is stamped against
// the wall clock on every call; it is never cached, so a task flips to
// overdue purely by the date changing.
func (s *TaskService) List(ctx context.Context, studentID string) (*models.TasksOverview, error) {
	var (
		subjects []models.Subject
		tasks    []models.Task
		subjErr  error
		taskErr  error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		subjects, subjErr = s.subjects.ListByStudent(ctx, studentID)
	}()
	go func() {
		defer wg.Done()
		tasks, taskErr = s.tasks.ListByStudent(ctx, studentID)
	}()
	wg.Wait()

	if subjErr != nil {
		return nil, appErrors.Wrap(subjErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	if taskErr != nil {
		return nil, appErrors.Wrap(taskErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}

	if subjects == nil {
		subjects = []models.Subject{}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	now := s.now()
	for i := range tasks {
		tasks[i].Overdue = tasks[i].OverdueAt(now)
	}

	return &models.TasksOverview{Subjects: subjects, Tasks: tasks}, nil
}

// Create validates and stores a new task. Completion always starts false.
func (s *TaskService) Create(ctx context.Context, studentID string, req CreateTaskRequest) (*models.Task, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due date must be YYYY-MM-DD")
	}

	if _, err := s.subjects.FindByID(ctx, studentID, req.SubjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	task := &models.Task{
		StudentID: studentID,
		SubjectID: req.SubjectID,
		Title:     req.Title,
		DueDate:   dueDate,
		Completed: false,
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert task")
	}

	// Re-read to attach the joined subject name, mirroring what List returns.
	stored, err := s.tasks.FindByID(ctx, studentID, task.ID)
	if err != nil {
		s.logger.Warn("failed to reload created task", zap.Error(err))
		task.Overdue = task.OverdueAt(s.now())
		return task, nil
	}
	stored.Overdue = stored.OverdueAt(s.now())
	return stored, nil
}

// ToggleComplete flips the completion flag and returns the re-joined row.
func (s *TaskService) ToggleComplete(ctx context.Context, studentID, taskID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, studentID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}

	if err := s.tasks.SetCompleted(ctx, studentID, taskID, !task.Completed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle task")
	}

	task.Completed = !task.Completed
	task.Overdue = task.OverdueAt(s.now())
	return task, nil
}

// Delete removes a task owned by the student.
func (s *TaskService) Delete(ctx context.Context, studentID, taskID string) error {
	if err := s.tasks.Delete(ctx, studentID, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}
