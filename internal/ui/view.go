package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/hollis/muster/internal/model"
	"github.com/hollis/muster/internal/ui/theme"
)

// View renders the full screen for the current state
func (m Model) View() string {
	styles := theme.Current.Styles

	var b strings.Builder

	title := "muster"
	if n := len(m.tasks); n > 0 {
		title = fmt.Sprintf("muster — %d task(s)", n)
	}
	b.WriteString(styles.Header.Render(title))
	b.WriteString("\n\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		return b.String()
	}

	if m.mode == ModeInsert && m.editing != nil {
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderList renders the task rows with their urgency styling
func (m Model) renderList() string {
	styles := theme.Current.Styles

	if len(m.tasks) == 0 {
		return styles.Footer.Render("no tasks — press o to add one") + "\n"
	}

	now := m.now()
	var b strings.Builder
	for i, task := range m.tasks {
		b.WriteString(m.renderTask(task, i, now))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTask renders a single task row. Urgency picks the base style;
// completion, the cursor row and the mark column layer on top of it.
func (m Model) renderTask(task model.Task, row int, now time.Time) string {
	styles := theme.Current.Styles

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	mark := " "
	if m.sel.IsMarked(row) {
		mark = styles.SelectedMark.Render(">")
	}

	rowStyle := styles.ForUrgency(model.Classify(task, now))
	if task.Completed {
		rowStyle = styles.TaskDone
	}

	title := task.Title
	if title == "" {
		title = "(untitled)"
	}

	var meta []string
	if task.Due != nil {
		meta = append(meta, "due "+humanTime(*task.Due, now))
	}
	if task.DeferUntil != nil {
		meta = append(meta, "defer "+humanTime(*task.DeferUntil, now))
	}
	if task.Description != "" {
		meta = append(meta, task.Description)
	}

	line := fmt.Sprintf("%s %s", checkbox, title)
	if len(meta) > 0 {
		line += styles.Footer.Render(" · " + strings.Join(meta, " · "))
	}
	line = rowStyle.Render(line)

	prefix := "  "
	if row == m.sel.Cursor() {
		prefix = styles.CursorRow.Render("▌ ")
	}
	return mark + prefix + line
}

// renderForm renders the edit buffer fields with the focused input
// highlighted and any commit error pinned to its field.
func (m Model) renderForm() string {
	styles := theme.Current.Styles

	var b strings.Builder
	for f := FieldTitle; f < fieldCount; f++ {
		b.WriteString(styles.FieldLabel.Render(f.String()))

		if f == m.editing.Focus() {
			b.WriteString(styles.InputFocused.Render(m.editing.View(f)))
		} else {
			b.WriteString(" " + m.editing.Value(f))
		}

		if errText := m.editing.Err(f); errText != "" {
			b.WriteString("  ")
			b.WriteString(styles.FieldError.Render(errText))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus renders the mode indicator, error text and key hints
func (m Model) renderStatus() string {
	styles := theme.Current.Styles

	mode := styles.StatusMode.Render(m.mode.String())
	if m.mode == ModeInsert && m.editing != nil {
		mode += styles.StatusBar.Render(" editing: " + m.editing.Focus().String())
	}
	if n := m.sel.MarkCount(); n > 0 {
		mode += styles.StatusBar.Render(fmt.Sprintf(" %d selected", n))
	}

	line := mode
	if m.errMsg != "" {
		line += "  " + styles.StatusError.Render(m.errMsg)
	} else if m.statusMsg != "" {
		line += "  " + styles.Footer.Render(m.statusMsg)
	}

	return line + "\n" + styles.Footer.Render(m.help.View(m.keys))
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.HelpTitle.Render("Muster Help"))
	b.WriteString("\n")

	sections := []struct {
		name string
		keys [][]string
	}{
		{"Navigation", [][]string{
			{"j / k", "Move cursor down/up"},
			{"g / G", "Go to first/last task"},
		}},
		{"Selection", [][]string{
			{"x", "Mark/unmark task for bulk actions"},
		}},
		{"Tasks", [][]string{
			{"o / O", "New task below/above cursor"},
			{"i / enter", "Edit task at cursor"},
			{"!", "Toggle done on marked tasks (or cursor)"},
			{"D", "Delete marked tasks (or cursor)"},
		}},
		{"Editing", [][]string{
			{"tab / S-tab", "Next/previous field"},
			{"enter", "Save task"},
			{"esc", "Discard changes"},
		}},
		{"General", [][]string{
			{"h / ?", "Toggle this help"},
			{"q", "Quit"},
		}},
	}

	for _, section := range sections {
		b.WriteString(styles.HelpSection.Render(section.name))
		b.WriteString("\n")
		for _, kv := range section.keys {
			b.WriteString(styles.HelpKey.Render(kv[0]))
			b.WriteString(styles.HelpDesc.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("Dates understand: today, tomorrow, friday, next friday, 2d, 3h, 06-15"))
	b.WriteString("\n")
	return b.String()
}

// humanTime renders a timestamp relative to now ("in 2d", "3h ago")
func humanTime(t, now time.Time) string {
	d := t.Sub(now)
	past := d < 0
	if past {
		d = -d
	}

	var span string
	switch {
	case d >= 24*time.Hour:
		span = fmt.Sprintf("%dd", int(d.Hours())/24)
	case d >= time.Hour:
		span = fmt.Sprintf("%dh", int(d.Hours()))
	case d >= time.Minute:
		span = fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return "now"
	}

	if past {
		return span + " ago"
	}
	return "in " + span
}
