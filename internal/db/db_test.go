package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollis/muster/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	due := time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC)
	task := model.Task{
		ID:          "task1",
		Title:       "Write migration",
		Description: "goose embedded sql",
		Completed:   false,
		Due:         &due,
		Position:    3,
		Created:     time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
	}

	if err := db.SaveTask(task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	got := tasks[0]
	if got.ID != task.ID || got.Title != task.Title || got.Description != task.Description {
		t.Errorf("loaded task %+v differs from saved %+v", got, task)
	}
	if got.Due == nil || !got.Due.Equal(due) {
		t.Errorf("Due = %v, want %v", got.Due, due)
	}
	if got.DeferUntil != nil {
		t.Errorf("DeferUntil = %v, want nil", got.DeferUntil)
	}
	if !got.Created.Equal(task.Created) {
		t.Errorf("Created = %v, want %v", got.Created, task.Created)
	}
	if got.Position != 3 {
		t.Errorf("Position = %d, want 3", got.Position)
	}
}

func TestSaveTaskOverwritesByID(t *testing.T) {
	db := openTestDB(t)

	task := model.NewTask("first title")
	if err := db.SaveTask(task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	task.Title = "second title"
	task.Completed = true
	if err := db.SaveTask(task); err != nil {
		t.Fatalf("SaveTask (update): %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1 after upsert", len(tasks))
	}
	if tasks[0].Title != "second title" || !tasks[0].Completed {
		t.Errorf("upsert did not overwrite: %+v", tasks[0])
	}
}

func TestLoadTasksOrdering(t *testing.T) {
	db := openTestDB(t)

	created := time.Now()
	for i, title := range []string{"third", "first", "second"} {
		task := model.Task{ID: title, Title: title, Created: created.Add(time.Duration(i) * time.Second)}
		switch title {
		case "first":
			task.Position = 0
		case "second":
			task.Position = 1
		case "third":
			task.Position = 2
		}
		if err := db.SaveTask(task); err != nil {
			t.Fatalf("SaveTask(%s): %v", title, err)
		}
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if tasks[i].Title != w {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, w)
		}
	}
}

func TestDeleteTask(t *testing.T) {
	db := openTestDB(t)

	task := model.NewTask("doomed")
	if err := db.SaveTask(task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	if err := db.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after delete, want 0", len(tasks))
	}

	if err := db.DeleteTask(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting a missing id: err = %v, want ErrNotFound", err)
	}
}

func TestClear(t *testing.T) {
	db := openTestDB(t)

	for _, title := range []string{"a", "b", "c"} {
		if err := db.SaveTask(model.NewTask(title)); err != nil {
			t.Fatalf("SaveTask: %v", err)
		}
	}

	if err := db.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after clear, want 0", len(tasks))
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	a := model.Task{ID: "a", Title: "alpha", Position: 1, Created: time.Now()}
	b := model.Task{ID: "b", Title: "beta", Position: 0, Created: time.Now()}
	for _, task := range []model.Task{a, b} {
		if err := m.SaveTask(task); err != nil {
			t.Fatalf("SaveTask: %v", err)
		}
	}

	tasks, err := m.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Errorf("tasks out of position order: %+v", tasks)
	}

	if err := m.DeleteTask("a"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := m.DeleteTask("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	tasks, _ = m.LoadTasks()
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after clear, want 0", len(tasks))
	}
}
