package ui

// Selection tracks the cursor row and an optional set of additionally
// marked rows. The cursor is always active; the marked set only matters
// when a bulk operation asks for its targets.
type Selection struct {
	cursor int
	marked map[int]struct{}
}

// NewSelection returns a selection with the cursor on the first row
func NewSelection() Selection {
	return Selection{marked: make(map[int]struct{})}
}

// Cursor returns the current cursor row
func (s *Selection) Cursor() int {
	return s.cursor
}

// MoveDown moves the cursor one row down, clamped to the last row
func (s *Selection) MoveDown(length int) {
	if s.cursor < length-1 {
		s.cursor++
	}
}

// MoveUp moves the cursor one row up, clamped to the first row
func (s *Selection) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// First moves the cursor to the first row
func (s *Selection) First() {
	s.cursor = 0
}

// Last moves the cursor to the last row
func (s *Selection) Last(length int) {
	if length > 0 {
		s.cursor = length - 1
	} else {
		s.cursor = 0
	}
}

// SetCursor places the cursor on a specific row
func (s *Selection) SetCursor(row int) {
	s.cursor = row
}

// Clamp pulls the cursor back into [0, length) after rows vanished
func (s *Selection) Clamp(length int) {
	if length == 0 {
		s.cursor = 0
		return
	}
	if s.cursor >= length {
		s.cursor = length - 1
	}
}

// Toggle flips the cursor row in and out of the marked set
func (s *Selection) Toggle() {
	if _, ok := s.marked[s.cursor]; ok {
		delete(s.marked, s.cursor)
	} else {
		s.marked[s.cursor] = struct{}{}
	}
}

// IsMarked reports whether a row is in the marked set
func (s *Selection) IsMarked(row int) bool {
	_, ok := s.marked[row]
	return ok
}

// ClearMarks empties the marked set
func (s *Selection) ClearMarks() {
	clear(s.marked)
}

// MarkCount returns the size of the marked set
func (s *Selection) MarkCount() int {
	return len(s.marked)
}

// Targets resolves the rows a bulk operation applies to, evaluated at
// call time: the marked set when non-empty, otherwise the cursor row
// alone, or nothing when the list is empty.
func (s *Selection) Targets(length int) TargetSet {
	if len(s.marked) > 0 {
		rows := make([]int, 0, len(s.marked))
		for row := range s.marked {
			rows = append(rows, row)
		}
		return &multiTargets{rows: rows}
	}
	if length > 0 {
		return &singleTarget{row: s.cursor}
	}
	return emptyTargets{}
}

// TargetSet yields each target row exactly once, in no particular
// order. It is consumed by a single pass and cannot be restarted.
type TargetSet interface {
	// Next returns the next row, or false when the set is exhausted.
	Next() (int, bool)
}

type multiTargets struct {
	rows []int
	pos  int
}

func (m *multiTargets) Next() (int, bool) {
	if m.pos >= len(m.rows) {
		return 0, false
	}
	row := m.rows[m.pos]
	m.pos++
	return row, true
}

type singleTarget struct {
	row  int
	done bool
}

func (s *singleTarget) Next() (int, bool) {
	if s.done {
		return 0, false
	}
	s.done = true
	return s.row, true
}

type emptyTargets struct{}

func (emptyTargets) Next() (int, bool) {
	return 0, false
}

// collect drains a target set into a slice
func collect(ts TargetSet) []int {
	var rows []int
	for {
		row, ok := ts.Next()
		if !ok {
			return rows
		}
		rows = append(rows, row)
	}
}
