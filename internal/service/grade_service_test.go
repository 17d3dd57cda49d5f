package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type mockGradeRepo struct {
	grades       []models.Grade
	bySubject    *models.Grade
	bySubjectErr error
	listErr      error
	insertErr    error
	updateErr    error
	deleteErr    error
	inserted     *models.Grade
	updatedValue float64
	updatedID    string
	deletedID    string
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.grades, nil
}

func (m *mockGradeRepo) FindBySubject(ctx context.Context, studentID, subjectID string) (*models.Grade, error) {
	if m.bySubjectErr != nil {
		return nil, m.bySubjectErr
	}
	return m.bySubject, nil
}

func (m *mockGradeRepo) Insert(ctx context.Context, grade *models.Grade) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	grade.ID = "grade-1"
	m.inserted = grade
	return nil
}

func (m *mockGradeRepo) UpdateValue(ctx context.Context, studentID, id string, value float64, updatedAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedValue = value
	return nil
}

func (m *mockGradeRepo) Delete(ctx context.Context, studentID, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

type mockSubjectReader struct {
	subjects []models.Subject
	byID     *models.Subject
	listErr  error
	findErr  error
}

func (m *mockSubjectReader) ListByStudent(ctx context.Context, studentID string) ([]models.Subject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.subjects, nil
}

func (m *mockSubjectReader) FindByID(ctx context.Context, studentID, id string) (*models.Subject, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.byID != nil {
		return m.byID, nil
	}
	return &models.Subject{ID: id, StudentID: studentID, Name: "Matemática"}, nil
}

func gradesOf(values ...float64) []models.Grade {
	grades := make([]models.Grade, 0, len(values))
	for i, v := range values {
		grades = append(grades, models.Grade{ID: string(rune('a' + i)), Value: v})
	}
	return grades
}

func TestSummarizeGradesEmpty(t *testing.T) {
	summary := SummarizeGrades(nil)
	assert.Nil(t, summary.Average)
	assert.False(t, summary.Alert)
	assert.Zero(t, summary.GradeCount)
}

func TestSummarizeGradesNoAlertAtThreshold(t *testing.T) {
	summary := SummarizeGrades(gradesOf(5, 7))
	require.NotNil(t, summary.Average)
	assert.Equal(t, 6.0, *summary.Average)
	assert.False(t, summary.Alert, "alert fires only strictly below 6.0")
	assert.Equal(t, 2, summary.GradeCount)
}

func TestSummarizeGradesAlertBelowThreshold(t *testing.T) {
	summary := SummarizeGrades(gradesOf(4, 5))
	require.NotNil(t, summary.Average)
	assert.Equal(t, 4.5, *summary.Average)
	assert.True(t, summary.Alert)
}

func TestSummarizeGradesRoundsToTwoDecimals(t *testing.T) {
	summary := SummarizeGrades(gradesOf(7, 8, 8))
	require.NotNil(t, summary.Average)
	assert.InDelta(t, 7.67, *summary.Average, 0.001)
}

func TestGradeServiceSetGradeAcceptsBoundaries(t *testing.T) {
	for _, raw := range []string{"0", "10"} {
		repo := &mockGradeRepo{bySubjectErr: sql.ErrNoRows}
		svc := NewGradeService(repo, &mockSubjectReader{}, nil, nil)

		grade, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: raw})
		require.NoError(t, err, "grade %s is inside the closed range", raw)
		require.NotNil(t, repo.inserted)
		assert.Equal(t, grade.Value, repo.inserted.Value)
	}
}

func TestGradeServiceSetGradeRejectsOutOfRange(t *testing.T) {
	for _, raw := range []string{"10.1", "-0.1", "11"} {
		svc := NewGradeService(&mockGradeRepo{}, &mockSubjectReader{}, nil, nil)

		_, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: raw})
		require.Error(t, err, "grade %s is outside the range", raw)
		assert.Equal(t, appErrors.ErrGradeOutOfRange.Code, appErrors.FromError(err).Code)
	}
}

func TestGradeServiceSetGradeRejectsNonNumeric(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, &mockSubjectReader{}, nil, nil)

	_, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: "abc"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceSetGradeRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf"} {
		repo := &mockGradeRepo{bySubjectErr: sql.ErrNoRows}
		svc := NewGradeService(repo, &mockSubjectReader{}, nil, nil)

		_, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: raw})
		require.Error(t, err, "value %s parses as a float but is not a grade", raw)
		assert.Equal(t, appErrors.ErrGradeOutOfRange.Code, appErrors.FromError(err).Code)
		assert.Nil(t, repo.inserted)
	}
}

func TestGradeServiceSetGradeUpdatesExistingRow(t *testing.T) {
	existing := &models.Grade{ID: "grade-1", StudentID: "student-1", SubjectID: "subject-1", Value: 4}
	repo := &mockGradeRepo{bySubject: existing}
	svc := NewGradeService(repo, &mockSubjectReader{}, nil, nil)

	grade, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: "8.5"})
	require.NoError(t, err)
	assert.Equal(t, "grade-1", repo.updatedID, "existing row is updated, not a second one inserted")
	assert.Equal(t, 8.5, repo.updatedValue)
	assert.Equal(t, 8.5, grade.Value)
	assert.Nil(t, repo.inserted)
}

func TestGradeServiceSetGradeInsertsWhenMissing(t *testing.T) {
	repo := &mockGradeRepo{bySubjectErr: sql.ErrNoRows}
	svc := NewGradeService(repo, &mockSubjectReader{}, nil, nil)

	grade, err := svc.SetGrade(context.Background(), "student-1", "subject-1", SetGradeRequest{Value: "7"})
	require.NoError(t, err)
	require.NotNil(t, repo.inserted)
	assert.Equal(t, "student-1", grade.StudentID)
	assert.Equal(t, "subject-1", grade.SubjectID)
	assert.Equal(t, 7.0, grade.Value)
}

func TestGradeServiceSetGradeUnknownSubject(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, &mockSubjectReader{findErr: sql.ErrNoRows}, nil, nil)

	_, err := svc.SetGrade(context.Background(), "student-1", "missing", SetGradeRequest{Value: "7"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceDeleteNotFound(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{deleteErr: sql.ErrNoRows}, &mockSubjectReader{}, nil, nil)

	err := svc.Delete(context.Background(), "student-1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradeServiceSummaryAfterDeletingLastGrade(t *testing.T) {
	repo := &mockGradeRepo{grades: gradesOf(3)}
	svc := NewGradeService(repo, &mockSubjectReader{}, nil, nil)

	summary, err := svc.Summary(context.Background(), "student-1")
	require.NoError(t, err)
	require.NotNil(t, summary.Average)
	assert.True(t, summary.Alert)

	require.NoError(t, svc.Delete(context.Background(), "student-1", "a"))
	repo.grades = nil

	summary, err = svc.Summary(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Nil(t, summary.Average, "average resets to unset once no grades remain")
	assert.False(t, summary.Alert)
}

func TestGradeServiceOverviewEmptySlices(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{}, &mockSubjectReader{}, nil, nil)

	overview, err := svc.Overview(context.Background(), "student-1")
	require.NoError(t, err)
	assert.NotNil(t, overview.Subjects)
	assert.NotNil(t, overview.Grades)
	assert.Empty(t, overview.Subjects)
	assert.Empty(t, overview.Grades)
}

func TestGradeServiceOverviewPropagatesErrors(t *testing.T) {
	svc := NewGradeService(&mockGradeRepo{listErr: errors.New("boom")}, &mockSubjectReader{}, nil, nil)

	_, err := svc.Overview(context.Background(), "student-1")
	require.Error(t, err)
}
