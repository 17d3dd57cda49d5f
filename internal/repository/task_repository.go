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

// TaskRepository handles task persistence. Reads join the owning subject
// so rows come back with the subject name attached; a missing subject
// yields a NULL name, not an error.
type TaskRepository struct {
	db      *sqlx.DB
	metrics QueryObserver
}

// NewTaskRepository creates a new task repository. metrics may be nil.
func NewTaskRepository(db *sqlx.DB, metrics QueryObserver) *TaskRepository {
	return &TaskRepository{db: db, metrics: metrics}
}

// ListByStudent returns the student's tasks ordered by due date ascending.
func (r *TaskRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Task, error) {
	defer trackQuery(r.metrics, "tasks.list")()
	const query = `SELECT t.id, t.student_id, t.subject_id, t.title, t.due_date, t.completed, t.created_at, s.name AS subject_name
        FROM tasks t LEFT JOIN subjects s ON s.id = t.subject_id
        WHERE t.student_id = $1 ORDER BY t.due_date ASC`
	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, studentID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID returns a task owned by the student with its subject joined.
func (r *TaskRepository) FindByID(ctx context.Context, studentID, id string) (*models.Task, error) {
	defer trackQuery(r.metrics, "tasks.find")()
	const query = `SELECT t.id, t.student_id, t.subject_id, t.title, t.due_date, t.completed, t.created_at, s.name AS subject_name
        FROM tasks t LEFT JOIN subjects s ON s.id = t.subject_id
        WHERE t.id = $1 AND t.student_id = $2 LIMIT 1`
	var task models.Task
	if err := r.db.GetContext(ctx, &task, query, id, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// Insert stores a new task.
func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	defer trackQuery(r.metrics, "tasks.insert")()
	const query = `INSERT INTO tasks (id, student_id, subject_id, title, due_date, completed, created_at)
        VALUES (:id, :student_id, :subject_id, :title, :due_date, :completed, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// SetCompleted updates the completion flag of a task.
func (r *TaskRepository) SetCompleted(ctx context.Context, studentID, id string, completed bool) error {
	defer trackQuery(r.metrics, "tasks.set_completed")()
	const query = `UPDATE tasks SET completed = $3 WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID, completed)
	if err != nil {
		return fmt.Errorf("set task completed: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a task owned by the student.
func (r *TaskRepository) Delete(ctx context.Context, studentID, id string) error {
	defer trackQuery(r.metrics, "tasks.delete")()
	const query = `DELETE FROM tasks WHERE id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, studentID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountOpenByStudent returns the number of incomplete tasks.
func (r *TaskRepository) CountOpenByStudent(ctx context.Context, studentID string) (int, error) {
	defer trackQuery(r.metrics, "tasks.count_open")()
	const query = `SELECT COUNT(*) FROM tasks WHERE student_id = $1 AND completed = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID); err != nil {
		return 0, fmt.Errorf("count open tasks: %w", err)
	}
	return count, nil
}
