package db

import "github.com/hollis/muster/internal/model"

// Store is the persistence capability the rest of the application
// depends on. The UI never talks to a concrete backend directly.
type Store interface {
	// LoadTasks returns all tasks in display order.
	LoadTasks() ([]model.Task, error)
	// SaveTask inserts a task or overwrites the stored one with the same id.
	SaveTask(model.Task) error
	// DeleteTask removes a task by id, returning ErrNotFound for unknown ids.
	DeleteTask(id string) error
	// Clear removes all tasks.
	Clear() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
