package models

import (
	"time"

	"github.com/lib/pq"
)

// WeekDays is the fixed set of schedulable weekday labels in week order.
var WeekDays = []string{"Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// Subject represents a course with an optional weekly schedule.
type Subject struct {
	ID           string         `db:"id" json:"id"`
	StudentID    string         `db:"student_id" json:"student_id"`
	Name         string         `db:"name" json:"name"`
	ScheduleDays pq.StringArray `db:"schedule_days" json:"schedule_days"`
	ScheduleTime string         `db:"schedule_time" json:"schedule_time"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// ValidWeekDay reports whether the label belongs to the fixed weekday set.
func ValidWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// ToggleWeekDay adds the day when absent and removes it when present,
// preserving the order of the remaining selection.
func ToggleWeekDay(days []string, day string) []string {
	for i, d := range days {
		if d == day {
			return append(append([]string{}, days[:i]...), days[i+1:]...)
		}
	}
	return append(append([]string{}, days...), day)
}
