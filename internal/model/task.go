package model

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single todo item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Due         *time.Time `json:"due,omitempty"`
	DeferUntil  *time.Time `json:"defer_until,omitempty"`
	Position    int        `json:"position"`
	Created     time.Time  `json:"created"`
}

// NewTask creates an empty task with a fresh ID and creation timestamp.
// ID and Created never change for the lifetime of the task.
func NewTask(title string) Task {
	return Task{
		ID:      uuid.New().String(),
		Title:   title,
		Created: time.Now(),
	}
}

// IsOverdue returns true once the task's due date has passed
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Due == nil {
		return false
	}
	return !now.Before(*t.Due)
}

// IsDeferred returns true while the task's defer date is still in the future
func (t *Task) IsDeferred(now time.Time) bool {
	if t.DeferUntil == nil {
		return false
	}
	return now.Before(*t.DeferUntil)
}
