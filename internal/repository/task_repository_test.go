package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
)

func TestTaskRepositoryListByStudentJoinsSubject(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db, nil)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "title", "due_date", "completed", "created_at", "subject_name"}).
		AddRow("t1", "student-1", "s1", "Resumo", due, false, time.Now(), "História").
		AddRow("t2", "student-1", "s2", "Lista", due.AddDate(0, 0, 3), true, time.Now(), nil)
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN subjects s ON s.id = t.subject_id")).
		WithArgs("student-1").
		WillReturnRows(rows)

	tasks, err := repo.ListByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].SubjectName)
	assert.Equal(t, "História", *tasks[0].SubjectName)
	assert.Nil(t, tasks[1].SubjectName, "orphaned task keeps a nil subject name")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db, nil)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(sqlmock.AnyArg(), "student-1", "s1", "Resumo", sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	task := &models.Task{StudentID: "student-1", SubjectID: "s1", Title: "Resumo",
		DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Insert(context.Background(), task))
	assert.NotEmpty(t, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositorySetCompleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET completed = $3 WHERE id = $1 AND student_id = $2")).
		WithArgs("t1", "student-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetCompleted(context.Background(), "student-1", "t1", true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositorySetCompletedMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks SET completed")).
		WithArgs("missing", "student-1", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetCompleted(context.Background(), "student-1", "missing", true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTaskRepositoryCountOpenByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTaskRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tasks WHERE student_id = $1 AND completed = FALSE")).
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountOpenByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
