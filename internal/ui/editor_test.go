package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/muster/internal/model"
)

var editNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)

func typeInto(b *EditBuffer, s string) {
	for _, r := range s {
		b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewBufferSeedsFieldsAndFocusesTitle(t *testing.T) {
	due := time.Date(2025, 6, 12, 17, 0, 0, 0, time.Local)
	task := model.NewTask("write changelog")
	task.Description = "for the 0.3 release"
	task.Due = &due

	b := NewEditBuffer(task, false, editNow)

	if b.Focus() != FieldTitle {
		t.Errorf("initial focus = %v, want Title", b.Focus())
	}
	if got := b.Value(FieldTitle); got != "write changelog" {
		t.Errorf("title = %q", got)
	}
	if got := b.Value(FieldDescription); got != "for the 0.3 release" {
		t.Errorf("description = %q", got)
	}
	if got := b.Value(FieldDue); got != "2d" {
		t.Errorf("due seeded as %q, want relative shorthand 2d", got)
	}
	if got := b.Value(FieldDefer); got != "" {
		t.Errorf("defer seeded as %q, want empty", got)
	}
}

func TestFocusCyclesAndWraps(t *testing.T) {
	b := NewEditBuffer(model.NewTask(""), true, editNow)

	order := []Field{FieldDescription, FieldDue, FieldDefer, FieldTitle}
	for _, want := range order {
		b.NextField()
		if b.Focus() != want {
			t.Fatalf("NextField: focus = %v, want %v", b.Focus(), want)
		}
	}

	b.PrevField()
	if b.Focus() != FieldDefer {
		t.Errorf("PrevField from Title: focus = %v, want Defer Until", b.Focus())
	}
}

func TestTypingReachesOnlyFocusedField(t *testing.T) {
	b := NewEditBuffer(model.NewTask(""), true, editNow)

	typeInto(b, "pay rent")
	b.NextField()
	b.NextField()
	typeInto(b, "friday")

	if got := b.Value(FieldTitle); got != "pay rent" {
		t.Errorf("title = %q", got)
	}
	if got := b.Value(FieldDescription); got != "" {
		t.Errorf("description picked up stray input: %q", got)
	}
	if got := b.Value(FieldDue); got != "friday" {
		t.Errorf("due = %q", got)
	}
}

func TestResolveProducesValues(t *testing.T) {
	b := NewEditBuffer(model.NewTask(""), true, editNow)
	typeInto(b, "pay rent")
	b.NextField()
	b.NextField()
	typeInto(b, "tomorrow")

	res, ok := b.Resolve(editNow, 17, 8)
	if !ok {
		t.Fatalf("Resolve failed: due=%q defer=%q", b.Err(FieldDue), b.Err(FieldDefer))
	}
	if res.Title != "pay rent" {
		t.Errorf("title = %q", res.Title)
	}
	want := time.Date(2025, 6, 11, 17, 0, 0, 0, time.Local)
	if res.Due == nil || !res.Due.Equal(want) {
		t.Errorf("due = %v, want %v", res.Due, want)
	}
	if res.DeferUntil != nil {
		t.Errorf("defer = %v, want nil", res.DeferUntil)
	}
}

func TestResolveEmptyDateClears(t *testing.T) {
	due := time.Date(2025, 6, 12, 17, 0, 0, 0, time.Local)
	task := model.NewTask("t")
	task.Due = &due

	b := NewEditBuffer(task, false, editNow)
	b.NextField()
	b.NextField()
	b.inputs[FieldDue].SetValue("")

	res, ok := b.Resolve(editNow, 17, 8)
	if !ok {
		t.Fatalf("Resolve failed: %q", b.Err(FieldDue))
	}
	if res.Due != nil {
		t.Errorf("due = %v, want nil after blanking the field", res.Due)
	}
}

func TestFailedResolveKeepsRawTextAndFlagsField(t *testing.T) {
	b := NewEditBuffer(model.NewTask(""), true, editNow)
	typeInto(b, "call dentist")
	b.NextField()
	b.NextField()
	typeInto(b, "whenever")
	b.NextField()
	typeInto(b, "2d")

	_, ok := b.Resolve(editNow, 17, 8)
	if ok {
		t.Fatal("Resolve accepted an unparseable due date")
	}
	if b.Err(FieldDue) == "" {
		t.Error("due field has no inline error")
	}
	if b.Err(FieldDefer) != "" {
		t.Errorf("defer field flagged spuriously: %q", b.Err(FieldDefer))
	}
	if got := b.Value(FieldDue); got != "whenever" {
		t.Errorf("raw due text = %q, want it preserved", got)
	}
	if got := b.Value(FieldTitle); got != "call dentist" {
		t.Errorf("raw title = %q, want it preserved", got)
	}

	// Fixing the bad field and retrying clears the stale error.
	b.inputs[FieldDue].SetValue("2d")
	res, ok := b.Resolve(editNow, 17, 8)
	if !ok {
		t.Fatalf("Resolve failed after fix: %q", b.Err(FieldDue))
	}
	if b.Err(FieldDue) != "" {
		t.Errorf("stale error survived: %q", b.Err(FieldDue))
	}
	if res.Due == nil {
		t.Error("due not produced after fix")
	}
}
