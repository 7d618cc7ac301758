package model

import (
	"slices"
	"strings"
)

type TaskList struct {
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`

	// Selected is the index of the selected parent task. SelectedSub is the
	// 1-based sub-task cursor within it, 0 when the parent itself is selected.
	Selected    int `json:"-"`
	SelectedSub int `json:"-"`
}

func NewTaskList(name string, tasks ...Task) TaskList {
	if tasks == nil {
		tasks = []Task{}
	}
	return TaskList{Name: name, Tasks: tasks}
}

func (l TaskList) Validate() error {
	for i := range l.Tasks {
		if err := l.Tasks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l TaskList) Clone() TaskList {
	out := l
	out.Tasks = make([]Task, len(l.Tasks))
	for i := range l.Tasks {
		out.Tasks[i] = l.Tasks[i].Clone()
	}
	return out
}

// Equal compares name and the multiset of tasks; selection is ignored.
func (l TaskList) Equal(o TaskList) bool {
	return CompareLists(l, o) == 0
}

func CompareLists(a, b TaskList) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return slices.CompareFunc(sortedTasks(a.Tasks), sortedTasks(b.Tasks), CompareTasks)
}

func CloneLists(in []TaskList) []TaskList {
	out := make([]TaskList, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// SortLists returns a sorted copy of in.
func SortLists(in []TaskList) []TaskList {
	out := slices.Clone(in)
	slices.SortFunc(out, CompareLists)
	return out
}

// EqualLists compares two stores without regard to list or task order.
func EqualLists(a, b []TaskList) bool {
	if len(a) != len(b) {
		return false
	}
	return slices.CompareFunc(SortLists(a), SortLists(b), CompareLists) == 0
}
