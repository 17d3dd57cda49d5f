package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
	appErrors "github.com/GuhGPG-IEEM/trabalhogestao/pkg/errors"
)

type mockSubjectRepo struct {
	subjects  []models.Subject
	inserted  *models.Subject
	insertErr error
	deleteErr error
}

func (m *mockSubjectRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Subject, error) {
	return m.subjects, nil
}

func (m *mockSubjectRepo) FindByID(ctx context.Context, studentID, id string) (*models.Subject, error) {
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			return &m.subjects[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockSubjectRepo) Insert(ctx context.Context, subject *models.Subject) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	subject.ID = "subject-1"
	m.inserted = subject
	return nil
}

func (m *mockSubjectRepo) Delete(ctx context.Context, studentID, id string) error {
	return m.deleteErr
}

func TestSubjectServiceCreate(t *testing.T) {
	repo := &mockSubjectRepo{}
	svc := NewSubjectService(repo, nil, nil)

	subject, err := svc.Create(context.Background(), "student-1", CreateSubjectRequest{
		Name:         "  Matemática ",
		ScheduleDays: []string{"Segunda", "Quarta"},
		ScheduleTime: "08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Matemática", subject.Name, "name is trimmed")
	assert.Equal(t, "student-1", subject.StudentID)
	assert.EqualValues(t, []string{"Segunda", "Quarta"}, []string(subject.ScheduleDays))
}

func TestSubjectServiceCreateRequiresName(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), "student-1", CreateSubjectRequest{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceCreateRejectsUnknownWeekday(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), "student-1", CreateSubjectRequest{
		Name:         "Matemática",
		ScheduleDays: []string{"Domingo"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceCreateRejectsDuplicateWeekday(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), "student-1", CreateSubjectRequest{
		Name:         "Matemática",
		ScheduleDays: []string{"Segunda", "Segunda"},
	})
	require.Error(t, err)
}

func TestSubjectServiceCreateWithoutScheduleDays(t *testing.T) {
	repo := &mockSubjectRepo{}
	svc := NewSubjectService(repo, nil, nil)

	subject, err := svc.Create(context.Background(), "student-1", CreateSubjectRequest{Name: "Física"})
	require.NoError(t, err)
	assert.NotNil(t, subject.ScheduleDays)
	assert.Empty(t, subject.ScheduleDays)
}

func TestSubjectServiceListEmpty(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{}, nil, nil)

	subjects, err := svc.List(context.Background(), "student-1")
	require.NoError(t, err)
	assert.NotNil(t, subjects)
	assert.Empty(t, subjects)
}

func TestSubjectServiceDeleteNotFound(t *testing.T) {
	svc := NewSubjectService(&mockSubjectRepo{deleteErr: sql.ErrNoRows}, nil, nil)

	err := svc.Delete(context.Background(), "student-1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
