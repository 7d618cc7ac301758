package update

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/commands"
	"github.com/frogpad/frogpad/internal/config"
	"github.com/frogpad/frogpad/internal/modal"
	"github.com/frogpad/frogpad/internal/store"
	"github.com/frogpad/frogpad/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Down):
		m.store.Next()
	case key.Matches(msg, k.Up):
		m.store.Previous()
	case key.Matches(msg, k.PrevList):
		m.store.PreviousList()
	case key.Matches(msg, k.NextList):
		m.store.NextList()
	case key.Matches(msg, k.Add):
		m.modal.Open(modal.NewEditor(modal.SourceNew, m.clock), modal.PurposeEditTask)
	case key.Matches(msg, k.AddSub):
		if _, ok := m.store.SelectedParent(); ok {
			m.modal.Open(modal.NewEditor(modal.SourceNewSubTask, m.clock), modal.PurposeEditTask)
		}
	case key.Matches(msg, k.Edit):
		if task, ok := m.store.Addressed(); ok {
			m.modal.Open(modal.EditTask(task, m.clock), modal.PurposeEditTask)
		}
	case key.Matches(msg, k.Mark):
		m.store.CycleStatus()
	case key.Matches(msg, k.Delete):
		if _, ok := m.store.Addressed(); ok {
			m.modal.Open(modal.NewConfirm("Confirm delete", "Are you sure you want to delete?"), modal.PurposeDelete)
		}
	case key.Matches(msg, k.Expand):
		m.store.ToggleExpand()
	case key.Matches(msg, k.Yank):
		res, err := m.yank()
		if err != nil {
			next, cmd := m.setStatus(toCommandError(err).Message, true)
			return next, cmd, true
		}
		next, cmd := m.setStatus(res.Message, false)
		return next, cmd, true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m Model) handleOptionsKey(msg tea.KeyMsg) (Model, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ToggleDelete):
		m.cfg.DeleteOnCompletion = !m.cfg.DeleteOnCompletion
		m.store.SetOptions(store.Options{DeleteOnCompletion: m.cfg.DeleteOnCompletion})
		m.log.Info("option changed", "delete_on_completion", m.cfg.DeleteOnCompletion)
	case key.Matches(msg, k.MoreTime):
		if m.cfg.ErrorDisplaySeconds < config.MaxErrorDisplaySeconds {
			m.cfg.ErrorDisplaySeconds++
		}
	case key.Matches(msg, k.LessTime):
		if m.cfg.ErrorDisplaySeconds > 1 {
			m.cfg.ErrorDisplaySeconds--
		}
	default:
		return m, false
	}
	return m, true
}

func (m Model) applyEditor(e *modal.Editor) (Model, tea.Cmd) {
	task := e.Task()
	switch e.Source() {
	case modal.SourceNew:
		m.store.PushTask(task)
	case modal.SourceNewSubTask:
		if !m.store.PushSubTask(task) {
			return m.setStatus(noSelection().Message, true)
		}
	case modal.SourceExisting:
		m.store.ReplaceSelected(task)
	}
	return m, nil
}

func (m *Model) yank() (commands.Result, error) {
	task, ok := m.store.Addressed()
	if !ok {
		return commands.Result{}, noSelection()
	}
	if err := m.clipboard.WriteAll(task.Name); err != nil {
		m.log.Warn("yank", "err", err)
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeClipboard, Message: "Clipboard Unavailable"}
	}
	return commands.Result{Message: "Yanked: " + task.Name}, nil
}

func noSelection() *commands.CommandError {
	return &commands.CommandError{Code: commands.ErrCodeNoSelection, Message: "No Task Selected"}
}

func (m Model) tasksTabData() views.TasksTabData {
	rows := m.store.Rows()
	data := views.TasksTabData{
		Lists:      m.store.ListNames(),
		ActiveList: m.store.Active(),
		Rows:       make([]views.TaskRowData, len(rows)),
		Width:      m.Width,
	}
	for i, row := range rows {
		data.Rows[i] = views.TaskRowData{
			Marker:   row.Task.Status.Symbol(),
			Name:     row.Task.Name,
			Date:     row.Task.Date.Short(),
			Duration: row.Task.Duration.String(),
			Depth:    row.Depth,
			Last:     row.Last,
			Selected: row.Selected,
		}
	}
	if task, ok := m.store.Addressed(); ok {
		details := &views.DetailsData{
			Name:     task.Name,
			Status:   task.Status.Name(),
			Date:     task.Date.String(),
			Duration: task.Duration.String(),
		}
		for _, sub := range task.SubTasks {
			details.SubTasks = append(details.SubTasks, views.SubTaskData{Marker: sub.Status.Symbol(), Name: sub.Name})
		}
		data.Details = details
	}
	return data
}
