package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GuhGPG-IEEM/trabalhogestao/internal/models"
)

// StudyTipRepository handles saved study-tip persistence.
type StudyTipRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewStudyTipRepository creates a new study tip repository. metrics may be nil.
func NewStudyTipRepository(db *sqlx.DB, metrics QueryObserver) *StudyTipRepository {
	return &StudyTipRepository{db: db, metrics: metrics}
}

// ListByStudent returns saved tips newest first.
func (r *StudyTipRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudyTip, error) {
	defer trackQuery(r.metrics, "study_tips.list")()
	const query = `SELECT id, student_id, query, tips, created_at
        FROM study_tips WHERE student_id = $1 ORDER BY created_at DESC`
	var tips []models.StudyTip
	if err := r.db.SelectContext(ctx, &tips, query, studentID); err != nil {
		return nil, fmt.Errorf("list study tips: %w", err)
	}
	return tips, nil
}

// Insert stores a new study tip.
func (r *StudyTipRepository) Insert(ctx context.Context, tip *models.StudyTip) error {
	if tip.ID == "" {
		tip.ID = uuid.NewString()
	}
	if tip.CreatedAt.IsZero() {
		tip.CreatedAt = time.Now().UTC()
	}
	defer trackQuery(r.metrics, "study_tips.insert")()
	const query = `INSERT INTO study_tips (id, student_id, query, tips, created_at)
        VALUES (:id, :student_id, :query, :tips, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tip); err != nil {
		return fmt.Errorf("insert study tip: %w", err)
	}
	return nil
}

// Delete removes a study tip owned by the student.
func (r *StudyTipRepository) Delete(ctx context.Context, studentID, id string) error {
	defer trackQuery(r.metrics, "study_tips.delete")()
	const query = `DELETE FROM study_tips WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID)
	if err != nil {
		return fmt.Errorf("delete study tip: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStudent returns the number of saved tips.
func (r *StudyTipRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	defer trackQuery(r.metrics, "study_tips.count")()
	const query = `SELECT COUNT(*) FROM study_tips WHERE student_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		return 0, fmt.Errorf("count study tips: %w", err)
	}
	return count, nil
}
