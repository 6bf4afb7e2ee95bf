package ui

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"

	"github.com/hollis/muster/internal/db"
	"github.com/hollis/muster/internal/model"
)

// Mode is the input mode the key handler dispatches on.
type Mode int

const (
	// ModeNormal navigates the list and runs task commands.
	ModeNormal Mode = iota
	// ModeInsert types into the edit buffer of one task.
	ModeInsert
)

// String returns the display name for a mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Model
type Options struct {
	Logger    *charmlog.Logger
	DueHour   int
	DeferHour int

	// StartupWarning is shown in the status line until the first key.
	StartupWarning string

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Model is the top-level bubbletea model. It owns the task list and all
// transient UI state; every other component works on values it hands
// out and returns results for it to apply.
type Model struct {
	store  db.Store
	logger *charmlog.Logger
	keys   KeyMap
	help   help.Model

	tasks   []model.Task
	sel     Selection
	mode    Mode
	editing *EditBuffer

	showHelp  bool
	errMsg    string
	statusMsg string

	dueHour   int
	deferHour int
	now       func() time.Time

	width  int
	height int
}

// NewModel loads the task list and builds the initial state: normal
// mode, cursor on the first row, nothing marked. A failing load is not
// fatal; the session starts empty with a status message.
func NewModel(store db.Store, opts Options) Model {
	m := Model{
		store:     store,
		logger:    opts.Logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		sel:       NewSelection(),
		dueHour:   opts.DueHour,
		deferHour: opts.DeferHour,
		now:       opts.Now,
		errMsg:    opts.StartupWarning,
	}
	if m.logger == nil {
		m.logger = charmlog.New(io.Discard)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.dueHour == 0 {
		m.dueHour = 17
	}
	if m.deferHour == 0 {
		m.deferHour = 8
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		m.logger.Error("loading tasks", "err", err)
		m.errMsg = fmt.Sprintf("could not load tasks: %v", err)
		tasks = nil
	}
	m.tasks = tasks

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles one message at a time; every storage call completes
// inside the same pass, so the state a key observes is always the
// state the previous key left behind.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.statusMsg = ""

		switch m.mode {
		case ModeInsert:
			return m.handleInsertKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}

	return m, nil
}

// handleNormalKey handles keypresses in normal mode
func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.Down):
		m.sel.MoveDown(len(m.tasks))

	case key.Matches(msg, m.keys.Up):
		m.sel.MoveUp()

	case key.Matches(msg, m.keys.Top):
		m.sel.First()

	case key.Matches(msg, m.keys.Bottom):
		m.sel.Last(len(m.tasks))

	case key.Matches(msg, m.keys.Select):
		if len(m.tasks) > 0 {
			m.sel.Toggle()
		}

	case key.Matches(msg, m.keys.InsertBelow):
		m.startInsert(true)

	case key.Matches(msg, m.keys.InsertAbove):
		m.startInsert(false)

	case key.Matches(msg, m.keys.Edit):
		if len(m.tasks) > 0 {
			m.editing = NewEditBuffer(m.tasks[m.sel.Cursor()], false, m.now())
			m.mode = ModeInsert
			m.errMsg = ""
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggleCompletion()

	case key.Matches(msg, m.keys.Delete):
		m.deleteTargets()
	}

	return m, nil
}

// handleInsertKey handles keypresses in insert mode
func (m Model) handleInsertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.discardEdit()
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.commitEdit()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.editing.NextField()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.editing.PrevField()
		return m, nil
	}

	return m, m.editing.Update(msg)
}

// startInsert creates an empty task next to the cursor and opens its
// edit buffer. The task is only persisted if the buffer commits.
func (m *Model) startInsert(below bool) {
	task := model.NewTask("")

	idx := 0
	if len(m.tasks) > 0 {
		idx = m.sel.Cursor()
		if below {
			idx++
		}
	}

	m.tasks = append(m.tasks, model.Task{})
	copy(m.tasks[idx+1:], m.tasks[idx:])
	m.tasks[idx] = task

	m.sel.SetCursor(idx)
	m.sel.ClearMarks()
	m.editing = NewEditBuffer(task, true, m.now())
	m.mode = ModeInsert
	m.errMsg = ""
}

// discardEdit leaves insert mode without touching the task list,
// removing entirely a task that was created for this buffer.
func (m *Model) discardEdit() {
	if m.editing.IsNew {
		if idx, ok := m.indexOf(m.editing.TaskID); ok {
			m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
			m.sel.Clamp(len(m.tasks))
		}
	}
	m.editing = nil
	m.mode = ModeNormal
}

// commitEdit resolves the edit buffer and writes it through. The commit
// is all-or-nothing: any date that fails to parse keeps the buffer open
// with the error pinned to its field and the task untouched.
func (m *Model) commitEdit() {
	resolved, ok := m.editing.Resolve(m.now(), m.dueHour, m.deferHour)
	if !ok {
		m.errMsg = "fix the highlighted field to save"
		return
	}

	idx, found := m.indexOf(m.editing.TaskID)
	if !found {
		// The buffer's task vanished; nothing sane to write to.
		m.logger.Error("commit target missing", "id", m.editing.TaskID)
		m.editing = nil
		m.mode = ModeNormal
		return
	}

	m.tasks[idx].Title = resolved.Title
	m.tasks[idx].Description = resolved.Description
	m.tasks[idx].Due = resolved.Due
	m.tasks[idx].DeferUntil = resolved.DeferUntil

	m.errMsg = ""
	if err := m.persistPositions(); err != nil {
		// In-memory state stays authoritative for this session.
		m.logger.Error("saving task", "id", m.editing.TaskID, "err", err)
		m.errMsg = fmt.Sprintf("save failed: %v", err)
	} else {
		m.logger.Info("task saved", "id", m.editing.TaskID, "title", resolved.Title)
		m.statusMsg = "saved"
	}

	m.editing = nil
	m.mode = ModeNormal
}

// toggleCompletion flips the completed flag on every target row
func (m *Model) toggleCompletion() {
	rows := collect(m.sel.Targets(len(m.tasks)))
	if len(rows) == 0 {
		return
	}

	m.errMsg = ""
	for _, row := range rows {
		m.tasks[row].Completed = !m.tasks[row].Completed
		if err := m.store.SaveTask(m.tasks[row]); err != nil {
			m.logger.Error("saving completion toggle", "id", m.tasks[row].ID, "err", err)
			m.errMsg = fmt.Sprintf("save failed: %v", err)
		}
	}
	m.sel.ClearMarks()
}

// deleteTargets removes every target row from the list and the store.
// The store reporting "not found" is fine: the row is gone either way.
func (m *Model) deleteTargets() {
	rows := collect(m.sel.Targets(len(m.tasks)))
	if len(rows) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))

	m.errMsg = ""
	for _, row := range rows {
		id := m.tasks[row].ID
		m.tasks = append(m.tasks[:row], m.tasks[row+1:]...)

		if err := m.store.DeleteTask(id); err != nil && !errors.Is(err, db.ErrNotFound) {
			m.logger.Error("deleting task", "id", id, "err", err)
			m.errMsg = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.logger.Info("task deleted", "id", id)
		}
	}

	m.sel.ClearMarks()
	m.sel.Clamp(len(m.tasks))

	if err := m.persistPositions(); err != nil {
		m.errMsg = fmt.Sprintf("save failed: %v", err)
	}

	if m.errMsg == "" {
		if len(rows) == 1 {
			m.statusMsg = "1 task deleted"
		} else {
			m.statusMsg = fmt.Sprintf("%d tasks deleted", len(rows))
		}
	}
}

// persistPositions renumbers display positions and writes back every
// task whose stored position no longer matches, plus the task being
// committed (if any).
func (m *Model) persistPositions() error {
	editingID := ""
	if m.editing != nil {
		editingID = m.editing.TaskID
	}

	var firstErr error
	for i := range m.tasks {
		dirty := m.tasks[i].Position != i || m.tasks[i].ID == editingID
		m.tasks[i].Position = i
		if !dirty {
			continue
		}
		if err := m.store.SaveTask(m.tasks[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// indexOf finds a task's row by id
func (m *Model) indexOf(id string) (int, bool) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// Tasks returns the current display-ordered task list
func (m Model) Tasks() []model.Task {
	return m.tasks
}

// Mode returns the current input mode
func (m Model) Mode() Mode {
	return m.mode
}

// Cursor returns the cursor row
func (m Model) Cursor() int {
	return m.sel.Cursor()
}

// Editing returns the open edit buffer, or nil outside insert mode
func (m Model) Editing() *EditBuffer {
	return m.editing
}

// ErrMsg returns the message of the last failed operation
func (m Model) ErrMsg() string {
	return m.errMsg
}

// StatusMsg returns the notice of the last successful operation. It is
// cleared by the next keypress.
func (m Model) StatusMsg() string {
	return m.statusMsg
}
