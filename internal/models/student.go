package models

import "time"

// Student represents an account and its profile. Only the display name is
// mutable after sign-up.
type Student struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentInfo describes the authenticated student in responses.
type StudentInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Info projects the public view of the student.
func (s *Student) Info() StudentInfo {
	return StudentInfo{ID: s.ID, Name: s.Name, Email: s.Email}
}
