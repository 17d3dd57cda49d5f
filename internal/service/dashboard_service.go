package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type subjectCounter interface {
	CountByStudent(ctx context.Context, studentID string) (int, error)
}

type taskCounter interface {
	CountOpenByStudent(ctx context.Context, studentID string) (int, error)
}

type studyTipCounter interface {
	CountByStudent(ctx context.Context, studentID string) (int, error)
}

// DashboardService composes the home-screen summary, optionally served
// from cache.
type DashboardService struct {
	students studentReader
	subjects subjectCounter
	tasks    taskCounter
	tips     studyTipCounter
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService. A non-positive
// cacheTTL defers to the cache service's configured default.
func NewDashboardService(students studentReader, subjects subjectCounter, tasks taskCounter, tips studyTipCounter, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students: students,
		subjects: subjects,
		tasks:    tasks,
		tips:     tips,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary returns the dashboard payload and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context, studentID string) (*models.DashboardSummary, bool, error) {
	cacheKey := fmt.Sprintf("dashboard:%s", studentID)

	var cached models.DashboardSummary
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		// Greeting depends on the hour, so it always reflects the current clock.
		cached.Greeting = greetingFor(s.now())
		return &cached, true, nil
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	subjectCount, err := s.subjects.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count subjects")
	}
	openTasks, err := s.tasks.CountOpenByStudent(ctx, studentID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count tasks")
	}
	savedTips, err := s.tips.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count study tips")
	}

	summary := &models.DashboardSummary{
		StudentName:   student.Name,
		Greeting:      greetingFor(s.now()),
		SubjectCount:  subjectCount,
		OpenTaskCount: openTasks,
		SavedTipCount: savedTips,
		GeneratedAt:   s.now().UTC(),
	}

	if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
	}

	return summary, false, nil
}

// InvalidateFor drops the cached summary after a write for the student.
func (s *DashboardService) InvalidateFor(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("dashboard:%s", studentID)); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.String("student_id", studentID), zap.Error(err))
	}
}

func greetingFor(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Bom dia"
	case hour < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}
