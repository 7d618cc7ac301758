package modal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/model"
	"github.com/frogpad/frogpad/internal/quickdate"
	"github.com/frogpad/frogpad/internal/textfield"
)

type Field int

const (
	FieldDescription Field = iota
	FieldStatus
	FieldDate
	FieldDuration
)

var fieldOrder = []Field{FieldDescription, FieldStatus, FieldDate, FieldDuration}

func (f Field) next() Field     { return fieldOrder[(int(f)+1)%len(fieldOrder)] }
func (f Field) previous() Field { return fieldOrder[(int(f)+len(fieldOrder)-1)%len(fieldOrder)] }

func (f Field) String() string {
	switch f {
	case FieldStatus:
		return "status"
	case FieldDate:
		return "date"
	case FieldDuration:
		return "duration"
	default:
		return "description"
	}
}

// Source says whether a confirmed task is new or replaces the selection.
type Source string

const (
	SourceNew        Source = "new"
	SourceNewSubTask Source = "new_sub_task"
	SourceExisting   Source = "existing"
)

const durationStep = 15

type Editor struct {
	base

	source Source
	task   model.Task
	field  Field
	clock  quickdate.Clock

	desc        *textfield.Field
	date        *textfield.Field
	editingDate bool
}

// NewEditor opens a blank task dated today. source must be SourceNew or
// SourceNewSubTask.
func NewEditor(source Source, clock quickdate.Clock) *Editor {
	return &Editor{
		source: source,
		task:   model.Task{Status: model.StatusNotStarted, Date: clock.Today()},
		clock:  clock,
		desc:   textfield.New(),
		date:   textfield.NewWithLimit(9),
	}
}

// EditTask opens an editor over a copy of task with the cursor at the end of
// its name.
func EditTask(task model.Task, clock quickdate.Clock) *Editor {
	e := &Editor{
		source: SourceExisting,
		task:   task.Clone(),
		clock:  clock,
		desc:   textfield.New(),
		date:   textfield.NewWithLimit(9),
	}
	e.desc.SetText(task.Name)
	return e
}

func (e *Editor) Title() string {
	if e.source == SourceExisting {
		return "Edit Task"
	}
	if e.source == SourceNewSubTask {
		return "New Sub-Task"
	}
	return "New Task"
}

func (e *Editor) Source() Source { return e.source }

func (e *Editor) Field() Field { return e.field }

// Task returns the task as edited so far. After confirmation the name is the
// description buffer's final contents.
func (e *Editor) Task() model.Task { return e.task }

func (e *Editor) Description() *textfield.Field { return e.desc }

// DateDraft returns the pending quick-entry text and whether one is active.
func (e *Editor) DateDraft() (*textfield.Field, bool) { return e.date, e.editingDate }

func (e *Editor) handleKey(msg tea.KeyMsg) {
	key := msg.String()
	switch e.field {
	case FieldDescription:
		e.handleDescription(msg, key)
	case FieldStatus:
		e.handleStatus(key)
	case FieldDate:
		e.handleDate(msg, key)
	case FieldDuration:
		e.handleDuration(key)
	}

	switch key {
	case "enter":
		if e.editingDate {
			e.submitDate()
			return
		}
		e.task.Name = e.desc.Take()
		e.confirm()
	case "esc":
		e.cancel()
	case "tab":
		e.leaveField()
		e.field = e.field.next()
	case "shift+tab":
		e.leaveField()
		e.field = e.field.previous()
	}
}

func (e *Editor) handleDescription(msg tea.KeyMsg, key string) {
	switch key {
	case "backspace":
		e.desc.Remove()
	case "left":
		e.desc.MoveLeft()
	case "right":
		e.desc.MoveRight()
	case "home":
		e.desc.MoveHome()
	case "end":
		e.desc.MoveEnd()
	default:
		for _, r := range typed(msg) {
			e.desc.Insert(r)
		}
	}
}

func (e *Editor) handleStatus(key string) {
	switch key {
	case "1":
		e.task.Status = model.StatusNotStarted
	case "2":
		e.task.Status = model.StatusInProgress
	case "3":
		e.task.Status = model.StatusFinished
	case "j", " ", "space":
		e.task.Status = e.task.Status.Next()
	}
}

func (e *Editor) handleDate(msg tea.KeyMsg, key string) {
	switch key {
	case "j", "down":
		e.stepDate(1)
		return
	case "k", "up":
		e.stepDate(-1)
		return
	case "/":
		if e.editingDate {
			e.submitDate()
		}
		return
	case "backspace":
		if e.editingDate {
			e.date.Remove()
		}
		return
	}
	for _, r := range typed(msg) {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			e.editingDate = true
			e.date.Insert(r)
		}
	}
}

// stepDate moves the date by n days unless that leaves the storable range.
func (e *Editor) stepDate(n int) {
	if d, ok := e.task.Date.AddDaysChecked(n); ok {
		e.task.Date = d
	}
}

func (e *Editor) handleDuration(key string) {
	switch key {
	case "j", "down":
		e.task.Duration = e.task.Duration.AddMinutes(durationStep)
	case "k", "up":
		e.task.Duration = e.task.Duration.AddMinutes(-durationStep)
	}
}

// leaveField submits a pending date draft so it never outlives the field.
func (e *Editor) leaveField() {
	if e.field == FieldDate && e.editingDate {
		e.submitDate()
	}
}

// submitDate applies the draft if it parses and discards it either way.
func (e *Editor) submitDate() {
	if d, ok := quickdate.Parse(e.date.Text(), e.clock); ok {
		e.task.Date = d
	}
	e.editingDate = false
	e.date.Clear()
}
