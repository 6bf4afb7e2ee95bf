package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hollis/muster/internal/dates"
	"github.com/hollis/muster/internal/model"
)

// Field identifies one of the editable task fields, in tab order.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldDue
	FieldDefer

	fieldCount
)

// String returns the display label for a field
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldDescription:
		return "Description"
	case FieldDue:
		return "Due"
	case FieldDefer:
		return "Defer Until"
	default:
		return "Unknown"
	}
}

// EditBuffer holds the raw text of a task being created or edited. The
// text is only interpreted at commit time; until then every keystroke
// survives, including across a failed commit.
type EditBuffer struct {
	// TaskID is the task the buffer writes back to on commit.
	TaskID string
	// IsNew marks a task created by o/O that vanishes on cancel.
	IsNew bool

	focus  Field
	inputs [fieldCount]textinput.Model
	errs   [fieldCount]string
}

// NewEditBuffer seeds an edit buffer from a task, focused on the title.
// Date fields render as the relative shorthand the resolver reads back.
func NewEditBuffer(t model.Task, isNew bool, now time.Time) *EditBuffer {
	b := &EditBuffer{TaskID: t.ID, IsNew: isNew}

	placeholders := [fieldCount]string{
		"task title",
		"notes",
		"tomorrow, friday, 2d, 06-15",
		"when to surface this task",
	}
	seeds := [fieldCount]string{
		t.Title,
		t.Description,
		dates.FormatRelative(t.Due, now),
		dates.FormatRelative(t.DeferUntil, now),
	}

	for f := range b.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[f]
		ti.SetValue(seeds[f])
		b.inputs[f] = ti
	}

	b.inputs[FieldTitle].Focus()
	b.inputs[FieldTitle].CursorEnd()
	return b
}

// Focus returns the field currently receiving input
func (b *EditBuffer) Focus() Field {
	return b.focus
}

// Value returns the raw text of a field
func (b *EditBuffer) Value(f Field) string {
	return b.inputs[f].Value()
}

// Err returns the inline error attached to a field by a failed commit
func (b *EditBuffer) Err(f Field) string {
	return b.errs[f]
}

// View renders the focused state of a field's input
func (b *EditBuffer) View(f Field) string {
	return b.inputs[f].View()
}

// NextField moves focus forward, wrapping after the last field.
// Leaving a field never validates it.
func (b *EditBuffer) NextField() {
	b.setFocus((b.focus + 1) % fieldCount)
}

// PrevField moves focus backward, wrapping before the first field
func (b *EditBuffer) PrevField() {
	b.setFocus((b.focus + fieldCount - 1) % fieldCount)
}

func (b *EditBuffer) setFocus(f Field) {
	b.inputs[b.focus].Blur()
	b.focus = f
	b.inputs[f].Focus()
	b.inputs[f].CursorEnd()
}

// Update forwards a key event to the focused field
func (b *EditBuffer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.inputs[b.focus], cmd = b.inputs[b.focus].Update(msg)
	return cmd
}

// Resolved carries the field values of a successful commit.
type Resolved struct {
	Title       string
	Description string
	Due         *time.Time
	DeferUntil  *time.Time
}

// Resolve validates the buffer and produces the values to write back.
// Date fields go through the resolver with their configured default
// hour; an empty date clears the task's date. When any field fails, the
// failures are recorded as inline errors, no values are produced, and
// all raw text stays as typed so only the bad field needs correcting.
func (b *EditBuffer) Resolve(now time.Time, dueHour, deferHour int) (Resolved, bool) {
	for f := range b.errs {
		b.errs[f] = ""
	}

	due, err := dates.Resolve(b.inputs[FieldDue].Value(), now, dueHour)
	if err != nil {
		b.errs[FieldDue] = err.Error()
	}
	deferUntil, derr := dates.Resolve(b.inputs[FieldDefer].Value(), now, deferHour)
	if derr != nil {
		b.errs[FieldDefer] = derr.Error()
	}
	if err != nil || derr != nil {
		return Resolved{}, false
	}

	return Resolved{
		Title:       b.inputs[FieldTitle].Value(),
		Description: b.inputs[FieldDescription].Value(),
		Due:         due,
		DeferUntil:  deferUntil,
	}, true
}
