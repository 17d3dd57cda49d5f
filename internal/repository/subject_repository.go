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

// SubjectRepository handles subject persistence. Every query is scoped by
// the owning student's ID.
type SubjectRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewSubjectRepository creates a new subject repository. metrics may be nil.
func NewSubjectRepository(db *sqlx.DB, metrics QueryObserver) *SubjectRepository {
	return &SubjectRepository{db: db, metrics: metrics}
}

// ListByStudent returns the student's subjects in creation order.
func (r *SubjectRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Subject, error) {
	defer trackQuery(r.metrics, "subjects.list")()
	const query = `SELECT id, student_id, name, schedule_days, schedule_time, created_at
        FROM subjects WHERE student_id = $1 ORDER BY created_at ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, studentID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject owned by the student.
func (r *SubjectRepository) FindByID(ctx context.Context, studentID, id string) (*models.Subject, error) {
	defer trackQuery(r.metrics, "subjects.find")()
	const query = `SELECT id, student_id, name, schedule_days, schedule_time, created_at
        FROM subjects WHERE id = $1 AND student_id = $2 LIMIT 1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// Insert stores a new subject and returns it with its assigned identity.
func (r *SubjectRepository) Insert(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	defer trackQuery(r.metrics, "subjects.insert")()
	const query = `INSERT INTO subjects (id, student_id, name, schedule_days, schedule_time, created_at)
        VALUES (:id, :student_id, :name, :schedule_days, :schedule_time, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

// Delete removes a subject owned by the student.
func (r *SubjectRepository) Delete(ctx context.Context, studentID, id string) error {
	defer trackQuery(r.metrics, "subjects.delete")()
	const query = `DELETE FROM subjects WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStudent returns the number of subjects the student has.
func (r *SubjectRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	defer trackQuery(r.metrics, "subjects.count")()
	const query = `SELECT COUNT(*) FROM subjects WHERE student_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	return count, nil
}
