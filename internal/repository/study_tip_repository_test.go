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

func TestStudyTipRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudyTipRepository(db, nil)

	rows := sqlmock.NewRows([]string{"id", "student_id", "query", "tips", "created_at"}).
		AddRow("tip-2", "student-1", "Frações", "Pratique diariamente.", time.Now()).
		AddRow("tip-1", "student-1", "Revolução Francesa", "Monte uma linha do tempo.", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM study_tips WHERE student_id = $1 ORDER BY created_at DESC")).
		WithArgs("student-1").
		WillReturnRows(rows)

	tips, err := repo.ListByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, tips, 2)
	assert.Equal(t, "Frações", tips[0].Query)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudyTipRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudyTipRepository(db, nil)

	mock.ExpectExec("INSERT INTO study_tips").
		WithArgs(sqlmock.AnyArg(), "student-1", "Frações", "Pratique diariamente.", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	tip := &models.StudyTip{StudentID: "student-1", Query: "Frações", Tips: "Pratique diariamente."}
	require.NoError(t, repo.Insert(context.Background(), tip))
	assert.NotEmpty(t, tip.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudyTipRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudyTipRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM study_tips WHERE id = $1 AND student_id = $2")).
		WithArgs("missing", "student-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "student-1", "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudyTipRepositoryCountByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudyTipRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM study_tips WHERE student_id = $1")).
		WithArgs("student-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByStudent(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
