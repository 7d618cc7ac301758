package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrInvalidDate   = errors.New("model: invalid task date")
)

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusFinished   Status = "Finished"
	// StatusDeleted is a tombstone. Cycling never reaches it.
	StatusDeleted Status = "Deleted"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusFinished, StatusDeleted:
		return true
	default:
		return false
	}
}

func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusFinished
	case StatusFinished:
		return StatusNotStarted
	case StatusDeleted:
		return StatusDeleted
	default:
		return StatusNotStarted
	}
}

func (s Status) Symbol() rune {
	switch s {
	case StatusInProgress:
		return '-'
	case StatusFinished:
		return 'x'
	case StatusDeleted:
		return 'D'
	default:
		return ' '
	}
}

func (s Status) Name() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusFinished:
		return "Finished"
	case StatusDeleted:
		return "Deleted"
	default:
		return "Not Started"
	}
}

func (s Status) rank() int {
	switch s {
	case StatusNotStarted, "":
		return 0
	case StatusInProgress:
		return 1
	case StatusFinished:
		return 2
	case StatusDeleted:
		return 3
	default:
		return 4
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = StatusNotStarted
		return nil
	}
	if !Status(raw).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	*s = Status(raw)
	return nil
}

type Duration struct {
	Days    uint16 `json:"days"`
	Hours   uint8  `json:"hours"`
	Minutes uint8  `json:"minutes"`
}

const maxDurationMinutes = int64(^uint16(0))*24*60 + 23*60 + 59

func (d Duration) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0
}

func (d Duration) TotalMinutes() int64 {
	return int64(d.Days)*24*60 + int64(d.Hours)*60 + int64(d.Minutes)
}

// AddMinutes returns d shifted by delta minutes, clamped to [0, max].
func (d Duration) AddMinutes(delta int64) Duration {
	total := d.TotalMinutes() + delta
	if total < 0 {
		total = 0
	}
	if total > maxDurationMinutes {
		total = maxDurationMinutes
	}
	return Duration{
		Days:    uint16(total / (24 * 60)),
		Hours:   uint8(total / 60 % 24),
		Minutes: uint8(total % 60),
	}
}

func (d Duration) String() string {
	if d.IsZero() {
		return "   --   "
	}
	return fmt.Sprintf("%02d:%02d:%02d", d.Days, d.Hours, d.Minutes)
}

func (d Duration) compare(o Duration) int {
	a, b := d.TotalMinutes(), o.TotalMinutes()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Task is recursive by type, but sub-tasks are only ever one level deep:
// the store never expands or addresses a sub-task's own sub-tasks.
type Task struct {
	Name     string   `json:"name"`
	Status   Status   `json:"status"`
	Duration Duration `json:"duration"`
	Date     Date     `json:"date"`
	SubTasks []Task   `json:"sub_tasks"`

	Expanded bool `json:"-"`
}

func (t Task) Validate() error {
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Date.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t.Date)
	}
	for i := range t.SubTasks {
		if err := t.SubTasks[i].Validate(); err != nil {
			return fmt.Errorf("sub_tasks[%d]: %w", i, err)
		}
	}
	return nil
}

func (t Task) Clone() Task {
	out := t
	if t.SubTasks != nil {
		out.SubTasks = make([]Task, len(t.SubTasks))
		for i := range t.SubTasks {
			out.SubTasks[i] = t.SubTasks[i].Clone()
		}
	}
	return out
}

// Equal reports structural equality with sub-tasks compared as a multiset.
// Expanded is ignored.
func (t Task) Equal(o Task) bool {
	return CompareTasks(t, o) == 0
}

// CompareTasks is a total order over tasks that ignores transient state and
// the order of sub-tasks.
func CompareTasks(a, b Task) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := a.Status.rank() - b.Status.rank(); c != 0 {
		return sign(c)
	}
	if c := a.Duration.compare(b.Duration); c != 0 {
		return c
	}
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return slices.CompareFunc(sortedTasks(a.SubTasks), sortedTasks(b.SubTasks), CompareTasks)
}

func sortedTasks(in []Task) []Task {
	out := slices.Clone(in)
	slices.SortFunc(out, CompareTasks)
	return out
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
