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

// GradeRepository handles grade persistence. At most one grade row exists
// per (student, subject) pair; the service keeps that invariant through
// FindBySubject followed by UpdateValue or Insert.
type GradeRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewGradeRepository creates a new grade repository. metrics may be nil.
func NewGradeRepository(db *sqlx.DB, metrics QueryObserver) *GradeRepository {
	return &GradeRepository{db: db, metrics: metrics}
}

// ListByStudent returns all grades recorded for the student.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Grade, error) {
	defer trackQuery(r.metrics, "grades.list")()
	const query = `SELECT id, student_id, subject_id, grade, created_at, updated_at
        FROM grades WHERE student_id = $1`
	var grades []models.Grade
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindBySubject returns the grade recorded for a subject, or sql.ErrNoRows.
func (r *GradeRepository) FindBySubject(ctx context.Context, studentID, subjectID string) (*models.Grade, error) {
	defer trackQuery(r.metrics, "grades.find_by_subject")()
	const query = `SELECT id, student_id, subject_id, grade, created_at, updated_at
        FROM grades WHERE student_id = $1 AND subject_id = $2 LIMIT 1`
	var grade models.Grade
	if err := r.db.GetContext(ctx, &grade, query, studentID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find grade by subject: %w", err)
	}
	return &grade, nil
}

// Insert stores a new grade row.
func (r *GradeRepository) Insert(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	defer trackQuery(r.metrics, "grades.insert")()
	const query = `INSERT INTO grades (id, student_id, subject_id, grade, created_at, updated_at)
        VALUES (:id, :student_id, :subject_id, :grade, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("insert grade: %w", err)
	}
	return nil
}

// UpdateValue replaces the stored value of an existing grade row.
func (r *GradeRepository) UpdateValue(ctx context.Context, studentID, id string, value float64, updatedAt time.Time) error {
	defer trackQuery(r.metrics, "grades.update_value")()
	const query = `UPDATE grades SET grade = $3, updated_at = $4 WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID, value, updatedAt)
	if err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a grade owned by the student.
func (r *GradeRepository) Delete(ctx context.Context, studentID, id string) error {
	defer trackQuery(r.metrics, "grades.delete")()
	const query = `DELETE FROM grades WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID)
	if err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
