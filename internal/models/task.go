package models

import "time"

// Task represents an activity bound to a subject with a calendar due date.
type Task struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	Title       string    `db:"title" json:"title"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	Completed   bool      `db:"completed" json:"completed"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	SubjectName *string   `db:"subject_name" json:"subject_name,omitempty"`

	// Overdue is derived at request time, never persisted.
	Overdue bool `db:"-" json:"overdue"`
}

// OverdueAt reports whether the task is overdue relative to the given
// moment: the due date is strictly before that day and the task is not
// completed. A task due today is never overdue.
func (t *Task) OverdueAt(now time.Time) bool {
	if t.Completed {
		return false
	}
	due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// TasksOverview pairs the student's subjects with the task list.
type TasksOverview struct {
	Subjects []Subject `json:"subjects"`
	Tasks    []Task    `json:"tasks"`
}
