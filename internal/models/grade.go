package models

import "time"

// Grade holds the single grade recorded for a (student, subject) pair.
type Grade struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Value     float64   `db:"grade" json:"grade"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GradeSummary is the derived average and alert state. Average is nil when
// no grades are recorded; it is never zero-by-default.
type GradeSummary struct {
	Average    *float64 `json:"average"`
	Alert      bool     `json:"alert"`
	GradeCount int      `json:"grade_count"`
}

// GradesOverview pairs the student's subjects with the recorded grades.
type GradesOverview struct {
	Subjects []Subject `json:"subjects"`
	Grades   []Grade   `json:"grades"`
}
