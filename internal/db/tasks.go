package db

import (
	"fmt"
	"time"

	"github.com/hollis/muster/internal/model"
)

// LoadTasks returns all tasks in display order
func (db *DB) LoadTasks() ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, description, completed, due, defer_until, position, created_at
		FROM tasks
		ORDER BY position, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var completed int
		var due, deferUntil *string
		var created string

		err := rows.Scan(&t.ID, &t.Title, &t.Description, &completed,
			&due, &deferUntil, &t.Position, &created)
		if err != nil {
			return nil, err
		}

		t.Completed = completed == 1
		t.Due = parseTime(due)
		t.DeferUntil = parseTime(deferUntil)
		if parsed, err := time.Parse(time.RFC3339Nano, created); err == nil {
			t.Created = parsed
		}

		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveTask inserts a task or overwrites the stored row with the same id
func (db *DB) SaveTask(t model.Task) error {
	_, err := db.Exec(`
		INSERT INTO tasks (id, title, description, completed, due, defer_until, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed,
			due = excluded.due,
			defer_until = excluded.defer_until,
			position = excluded.position
	`, t.ID, t.Title, t.Description, boolInt(t.Completed),
		formatTime(t.Due), formatTime(t.DeferUntil), t.Position,
		t.Created.Format(time.RFC3339Nano))
	return err
}

// DeleteTask removes a task by id, returning ErrNotFound for unknown ids
func (db *DB) DeleteTask(id string) error {
	res, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes all tasks
func (db *DB) Clear() error {
	_, err := db.Exec(`DELETE FROM tasks`)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

func parseTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil
	}
	return &t
}
