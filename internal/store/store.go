// Package store holds the task lists and the selection cursor that moves
// over them.
//
// A selection addresses either a parent task or, when that parent is
// expanded, one of its sub-tasks. Sub-task cursors are 1-based with 0 meaning
// the parent itself. Every list keeps its own cursor, so switching lists
// never carries a stale position across.
package store

import "github.com/frogpad/frogpad/internal/model"

const DefaultListName = "Tasks"

type Selection struct {
	List int
	Task int
	Sub  int
}

type Row struct {
	Task     model.Task
	Depth    int
	Index    int
	Sub      int
	Last     bool
	Selected bool
}

type Options struct {
	// DeleteOnCompletion removes a task when cycling lands on Finished.
	DeleteOnCompletion bool
}

type Store struct {
	lists  []model.TaskList
	active int
	opts   Options
}

func New(lists []model.TaskList, opts Options) *Store {
	s := &Store{opts: opts}
	s.Replace(lists)
	return s
}

func (s *Store) SetOptions(opts Options) { s.opts = opts }

func (s *Store) Lists() []model.TaskList { return s.lists }

func (s *Store) Len() int { return len(s.lists) }

func (s *Store) Active() int { return s.active }

func (s *Store) ActiveList() (model.TaskList, bool) {
	if len(s.lists) == 0 {
		return model.TaskList{}, false
	}
	return s.lists[s.active], true
}

func (s *Store) ListNames() []string {
	out := make([]string, len(s.lists))
	for i := range s.lists {
		out[i] = s.lists[i].Name
	}
	return out
}

func (s *Store) Selection() Selection {
	l := s.list()
	if l == nil {
		return Selection{}
	}
	return Selection{List: s.active, Task: l.Selected, Sub: s.subCursor(l)}
}

// Replace overwrites every list. Transient selection state is reset.
func (s *Store) Replace(lists []model.TaskList) {
	s.lists = model.CloneLists(lists)
	for i := range s.lists {
		s.lists[i].Selected = 0
		s.lists[i].SelectedSub = 0
		for j := range s.lists[i].Tasks {
			s.lists[i].Tasks[j].Expanded = false
		}
	}
	s.active = 0
}

// Append adds a list to the end, as an import does.
func (s *Store) Append(list model.TaskList) {
	list = list.Clone()
	list.Selected = 0
	list.SelectedSub = 0
	s.lists = append(s.lists, list)
}

// Snapshot returns a deep copy of every list.
func (s *Store) Snapshot() []model.TaskList {
	return model.CloneLists(s.lists)
}

func (s *Store) list() *model.TaskList {
	if len(s.lists) == 0 {
		return nil
	}
	return &s.lists[s.active]
}

// subCursor returns the sub-task cursor only if it currently addresses an
// existing sub-task of an expanded parent.
func (s *Store) subCursor(l *model.TaskList) int {
	if len(l.Tasks) == 0 || l.SelectedSub == 0 {
		return 0
	}
	parent := l.Tasks[l.Selected]
	if !parent.Expanded || l.SelectedSub > len(parent.SubTasks) {
		return 0
	}
	return l.SelectedSub
}

func (s *Store) NextList() {
	if len(s.lists) == 0 {
		return
	}
	s.active = (s.active + 1) % len(s.lists)
}

func (s *Store) PreviousList() {
	if len(s.lists) == 0 {
		return
	}
	s.active = (s.active + len(s.lists) - 1) % len(s.lists)
}

// Next moves down one visible row, descending into an expanded parent's
// sub-tasks and wrapping to the first row after the last.
func (s *Store) Next() {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return
	}
	parent := l.Tasks[l.Selected]
	if parent.Expanded {
		l.SelectedSub++
		if l.SelectedSub <= len(parent.SubTasks) {
			return
		}
	}
	l.SelectedSub = 0
	l.Selected = (l.Selected + 1) % len(l.Tasks)
}

// Previous moves up one visible row. Entering an expanded parent from below
// lands on its last sub-task.
func (s *Store) Previous() {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return
	}
	if l.Tasks[l.Selected].Expanded && l.SelectedSub > 0 {
		l.SelectedSub--
		return
	}
	l.Selected = (l.Selected + len(l.Tasks) - 1) % len(l.Tasks)
	l.SelectedSub = 0
	if prev := l.Tasks[l.Selected]; prev.Expanded {
		l.SelectedSub = len(prev.SubTasks)
	}
}

// ToggleExpand flips the selected parent's expansion. Collapsing always
// returns the cursor to the parent.
func (s *Store) ToggleExpand() {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return
	}
	task := &l.Tasks[l.Selected]
	task.Expanded = !task.Expanded
	if !task.Expanded {
		l.SelectedSub = 0
	}
}

func (s *Store) addressed() *model.Task {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return nil
	}
	parent := &l.Tasks[l.Selected]
	if sub := s.subCursor(l); sub > 0 {
		return &parent.SubTasks[sub-1]
	}
	return parent
}

// Addressed returns a copy of the task or sub-task under the cursor.
func (s *Store) Addressed() (model.Task, bool) {
	t := s.addressed()
	if t == nil {
		return model.Task{}, false
	}
	return t.Clone(), true
}

// SelectedParent returns a copy of the selected top-level task.
func (s *Store) SelectedParent() (model.Task, bool) {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return model.Task{}, false
	}
	return l.Tasks[l.Selected].Clone(), true
}

func (s *Store) CycleStatus() {
	t := s.addressed()
	if t == nil {
		return
	}
	t.Status = t.Status.Next()
	if s.opts.DeleteOnCompletion && t.Status == model.StatusFinished {
		s.DeleteSelected()
	}
}

// DeleteSelected removes the addressed task or sub-task and steps the
// cursor back to the nearest valid row.
func (s *Store) DeleteSelected() {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return
	}
	parent := &l.Tasks[l.Selected]
	if sub := s.subCursor(l); sub > 0 {
		parent.SubTasks = append(parent.SubTasks[:sub-1], parent.SubTasks[sub:]...)
		if sub > len(parent.SubTasks) {
			l.SelectedSub = sub - 1
		}
		return
	}
	l.Tasks = append(l.Tasks[:l.Selected], l.Tasks[l.Selected+1:]...)
	l.SelectedSub = 0
	if l.Selected >= len(l.Tasks) && l.Selected > 0 {
		l.Selected--
	}
}

func (s *Store) NewTaskList(name string) {
	s.lists = append(s.lists, model.NewTaskList(name))
}

// PushTask appends to the active list, creating a default list when the
// store is empty.
func (s *Store) PushTask(task model.Task) {
	if len(s.lists) == 0 {
		s.NewTaskList(DefaultListName)
		s.active = 0
	}
	l := s.list()
	l.Tasks = append(l.Tasks, task)
}

// PushSubTask appends task under the selected parent, expands the parent and
// moves the cursor onto the new sub-task. It reports false when no parent
// is selected.
func (s *Store) PushSubTask(task model.Task) bool {
	l := s.list()
	if l == nil || len(l.Tasks) == 0 {
		return false
	}
	task.SubTasks = nil
	task.Expanded = false
	parent := &l.Tasks[l.Selected]
	parent.SubTasks = append(parent.SubTasks, task)
	parent.Expanded = true
	l.SelectedSub = len(parent.SubTasks)
	return true
}

// ReplaceSelected overwrites the addressed entity.
func (s *Store) ReplaceSelected(task model.Task) {
	t := s.addressed()
	if t == nil {
		return
	}
	*t = task
}

// VisibleRows counts the rows Next cycles through in the active list.
func (s *Store) VisibleRows() int {
	l := s.list()
	if l == nil {
		return 0
	}
	n := 0
	for _, t := range l.Tasks {
		n++
		if t.Expanded {
			n += len(t.SubTasks)
		}
	}
	return n
}

// Rows flattens the active list for rendering.
func (s *Store) Rows() []Row {
	l := s.list()
	if l == nil {
		return nil
	}
	sel := s.Selection()
	rows := make([]Row, 0, len(l.Tasks))
	for i, t := range l.Tasks {
		rows = append(rows, Row{
			Task:     t,
			Index:    i,
			Last:     i == len(l.Tasks)-1,
			Selected: i == sel.Task && sel.Sub == 0,
		})
		if !t.Expanded {
			continue
		}
		for j, sub := range t.SubTasks {
			rows = append(rows, Row{
				Task:     sub,
				Depth:    1,
				Index:    i,
				Sub:      j + 1,
				Last:     j == len(t.SubTasks)-1,
				Selected: i == sel.Task && sel.Sub == j+1,
			})
		}
	}
	return rows
}
