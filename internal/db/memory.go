package db

import (
	"fmt"
	"sort"

	"github.com/hollis/muster/internal/model"
)

// MemoryStore keeps tasks in a map. It backs --mem sessions and tests,
// and stands in when the on-disk database cannot be opened.
type MemoryStore struct {
	tasks map[string]model.Task
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]model.Task)}
}

// LoadTasks returns all tasks in display order
func (m *MemoryStore) LoadTasks() ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].Created.Before(tasks[j].Created)
	})
	return tasks, nil
}

// SaveTask inserts or overwrites the task with the same id
func (m *MemoryStore) SaveTask(t model.Task) error {
	m.tasks[t.ID] = t
	return nil
}

// DeleteTask removes a task by id, returning ErrNotFound for unknown ids
func (m *MemoryStore) DeleteTask(id string) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.tasks, id)
	return nil
}

// Clear removes all tasks
func (m *MemoryStore) Clear() error {
	m.tasks = make(map[string]model.Task)
	return nil
}
