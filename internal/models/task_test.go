package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskOverdueAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	yesterday := Task{DueDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)}
	assert.True(t, yesterday.OverdueAt(now))

	today := Task{DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	assert.False(t, today.OverdueAt(now), "task due today is not overdue")

	tomorrow := Task{DueDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)}
	assert.False(t, tomorrow.OverdueAt(now))

	completed := Task{DueDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Completed: true}
	assert.False(t, completed.OverdueAt(now), "completed task is never overdue")
}

func TestTaskOverdueFlipsAtMidnight(t *testing.T) {
	task := Task{DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}

	endOfDueDay := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.False(t, task.OverdueAt(endOfDueDay))

	nextMorning := time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC)
	assert.True(t, task.OverdueAt(nextMorning))
}
