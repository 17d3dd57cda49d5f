package models

import "time"

// StudyTip is a saved AI study-tip bookmark. Rows are immutable once
// created; the only operations are create and delete.
type StudyTip struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Query     string    `db:"query" json:"query"`
	Tips      string    `db:"tips" json:"tips"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
