package storage

import "time"

type ListRecord struct {
	ID       string
	Name     string
	Position int
	SavedAt  time.Time
	Tasks    []TaskRecord
}

// TaskRecord is one row of the tasks table. Top-level tasks have an empty
// ParentID and carry their sub-tasks in SubTasks.
type TaskRecord struct {
	ID       string
	ListID   string
	ParentID string
	Position int
	Name     string
	Status   string
	Days     int
	Hours    int
	Minutes  int
	DueDate  string
	SubTasks []TaskRecord
}
