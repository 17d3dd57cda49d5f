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

// StudentRepository provides database access for student accounts and
// their persisted sessions.
type StudentRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewStudentRepository creates a new instance of StudentRepository.
// metrics may be nil.
func NewStudentRepository(db *sqlx.DB, metrics QueryObserver) *StudentRepository {
	return &StudentRepository{db: db, metrics: metrics}
}

// Create inserts a new student account.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	defer trackQuery(r.metrics, "students.create")()
	const query = `INSERT INTO students (id, name, email, password_hash, created_at, updated_at)
        VALUES (:id, :name, :email, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// FindByEmail returns a student by email address.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	defer trackQuery(r.metrics, "students.find_by_email")()
	const query = `SELECT id, name, email, password_hash, last_login, created_at, updated_at FROM students WHERE email = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by email: %w", err)
	}
	return &student, nil
}

// FindByID returns a student by identifier.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	defer trackQuery(r.metrics, "students.find_by_id")()
	const query = `SELECT id, name, email, password_hash, last_login, created_at, updated_at FROM students WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &student, nil
}

// UpdateName changes the display name, the only mutable profile field.
func (r *StudentRepository) UpdateName(ctx context.Context, id, name string, updatedAt time.Time) error {
	defer trackQuery(r.metrics, "students.update_name")()
	const query = `UPDATE students SET name = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, name, updatedAt); err != nil {
		return fmt.Errorf("update student name: %w", err)
	}
	return nil
}

// UpdateLastLogin updates the last_login timestamp.
func (r *StudentRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	defer trackQuery(r.metrics, "students.update_last_login")()
	const query = `UPDATE students SET last_login = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, ts, ts); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CreateRefreshToken persists a new session token.
func (r *StudentRepository) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	defer trackQuery(r.metrics, "refresh_tokens.create")()
	const query = `INSERT INTO refresh_tokens (id, student_id, token, expires_at, created_at, revoked)
        VALUES (:id, :student_id, :token, :expires_at, :created_at, :revoked)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

// FindRefreshToken looks up a session by its opaque token value.
func (r *StudentRepository) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	defer trackQuery(r.metrics, "refresh_tokens.find")()
	const query = `SELECT id, student_id, token, expires_at, created_at, revoked, revoked_at FROM refresh_tokens WHERE token = $1 LIMIT 1`
	var stored models.RefreshToken
	if err := r.db.GetContext(ctx, &stored, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &stored, nil
}

// RevokeRefreshToken invalidates a single session.
func (r *StudentRepository) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	defer trackQuery(r.metrics, "refresh_tokens.revoke")()
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, revokedAt); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeStudentRefreshTokens invalidates every session for a student.
func (r *StudentRepository) RevokeStudentRefreshTokens(ctx context.Context, studentID string) error {
	defer trackQuery(r.metrics, "refresh_tokens.revoke_all")()
	const query = `UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $2 WHERE student_id = $1 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, studentID, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke student refresh tokens: %w", err)
	}
	return nil
}
