package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGradeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "grade", "created_at", "updated_at"}).
		AddRow("g1", "student-1", "s1", 7.5, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, student_id, subject_id, grade, created_at, updated_at")).
		WithArgs("student-1").
		WillReturnRows(rows)

	grades, err := repo.ListByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 7.5, grades[0].Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingQueryObserver struct {
	labels    []string
	durations []time.Duration
}

func (o *recordingQueryObserver) ObserveDBQuery(label string, duration time.Duration) {
	o.labels = append(o.labels, label)
	o.durations = append(o.durations, duration)
}

func TestGradeRepositoryReportsQueryTimings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	observer := &recordingQueryObserver{}
	repo := NewGradeRepository(db, observer)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "grade", "created_at", "updated_at"})
	mock.ExpectQuery(regexp.QuoteMeta("FROM grades WHERE student_id = $1")).
		WithArgs("student-1").
		WillReturnRows(rows)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grades")).
		WithArgs("g1", "student-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.ListByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), "student-1", "g1"))

	require.Equal(t, []string{"grades.list", "grades.delete"}, observer.labels)
	for _, d := range observer.durations {
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}
}

func TestGradeRepositoryFindBySubjectNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM grades WHERE student_id = $1 AND subject_id = $2")).
		WithArgs("student-1", "s1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySubject(context.Background(), "student-1", "s1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryInsertAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	mock.ExpectExec("INSERT INTO grades").
		WithArgs(sqlmock.AnyArg(), "student-1", "s1", 8.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	grade := &models.Grade{StudentID: "student-1", SubjectID: "s1", Value: 8}
	require.NoError(t, repo.Insert(context.Background(), grade))
	assert.NotEmpty(t, grade.ID)
	assert.False(t, grade.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpdateValue(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE grades SET grade = $3, updated_at = $4 WHERE id = $1 AND student_id = $2")).
		WithArgs("g1", "student-1", 9.0, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateValue(context.Background(), "student-1", "g1", 9, now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpdateValueMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	now := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE grades SET")).
		WithArgs("missing", "student-1", 9.0, now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateValue(context.Background(), "student-1", "missing", 9, now)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGradeRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM grades WHERE id = $1 AND student_id = $2")).
		WithArgs("missing", "student-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "student-1", "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
