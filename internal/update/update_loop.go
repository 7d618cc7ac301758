package update

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/config"
	"github.com/frogpad/frogpad/internal/modal"
	"github.com/frogpad/frogpad/internal/persist"
	"github.com/frogpad/frogpad/internal/views"
)

// Init starts the data file load when the model owns its store.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return loadDataCmd(m.dataPath)
}

func loadDataCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lists, err := persist.BackendFor(path).LoadLists(context.Background(), path)
		return dataLoadedMsg{path: path, lists: lists, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		next, cmd := m.handleKey(typed)
		return next, cmd
	case frameMsg:
		next, cmd := m.onFrame()
		return next, cmd
	case dataLoadedMsg:
		next, cmd := m.onDataLoaded(typed)
		return next, cmd
	}
	return m, nil
}

// handleKey offers a key to the command line, then the open popup, then the
// active tab, and only then to the global bindings.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.log.Info("quit", "forced", true, "dirty", m.Dirty())
		m.Mode = ModeExiting
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if m.Mode == ModeCommand {
		return m.handleCommandKey(msg)
	}
	if m.modal.InUse() {
		out, _ := m.modal.HandleKey(msg)
		if out.Resolved() {
			return m.applyOutcome(out)
		}
		return m, nil
	}

	var (
		cmd      tea.Cmd
		consumed bool
	)
	switch m.CurrentTab {
	case TabTasks:
		m, cmd, consumed = m.handleTasksKey(msg)
	case TabOptions:
		m, consumed = m.handleOptionsKey(msg)
	}
	if consumed {
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.requestQuit()
		return m, m.quitCmd()
	case key.Matches(msg, m.keys.NextTab):
		m.CurrentTab = m.CurrentTab.next()
	case key.Matches(msg, m.keys.PrevTab):
		m.CurrentTab = m.CurrentTab.previous()
	case key.Matches(msg, m.keys.Command):
		m.Mode = ModeCommand
		m.Status = StatusBar{}
		m.command.Clear()
	}
	return m, nil
}

func (m Model) applyOutcome(out modal.Outcome) (Model, tea.Cmd) {
	switch out.Purpose {
	case modal.PurposeEditTask:
		if out.Confirmed() {
			return m.applyEditor(out.Editor())
		}
	case modal.PurposeDelete:
		if out.Confirmed() && out.Confirm().Decision() {
			m.store.DeleteSelected()
		}
	case modal.PurposeNewList:
		if !out.Confirmed() {
			return m, nil
		}
		if name := out.Prompt().Take(); strings.TrimSpace(name) != "" {
			m.store.NewTaskList(name)
		}
	case modal.PurposeSave:
		if !out.Confirmed() {
			m.log.Info("quit canceled")
			return m, nil
		}
		if !out.Confirm().Decision() {
			m.log.Info("quit", "saved", false)
			m.Mode = ModeExiting
			return m, tea.Quit
		}
		if err := m.save(m.dataPath); err != nil {
			return m.setStatus(toCommandError(err).Message, true)
		}
		m.log.Info("quit", "saved", true)
		m.Mode = ModeExiting
		return m, tea.Quit
	}
	return m, nil
}

// requestQuit exits straight away when nothing changed since the last load
// or save, and asks whether to save otherwise.
func (m *Model) requestQuit() {
	if !m.Dirty() {
		m.log.Info("quit", "dirty", false)
		m.Mode = ModeExiting
		return
	}
	m.modal.Open(modal.NewConfirm("Confirm Save", "There is unsaved work. Save now?"), modal.PurposeSave)
}

func (m Model) quitCmd() tea.Cmd {
	if m.Mode == ModeExiting {
		return tea.Quit
	}
	return nil
}

// setStatus shows text in the bottom bar and starts the frame ticker if it
// is not already running.
func (m Model) setStatus(text string, isError bool) (Model, tea.Cmd) {
	m.Status = StatusBar{Text: text, IsError: isError}
	if text == "" || m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.frameTick()
}

func (m Model) frameTick() tea.Cmd {
	rate := m.cfg.RefreshRate
	if rate <= 0 {
		rate = config.DefaultRefreshRate
	}
	return tea.Tick(time.Second/time.Duration(rate), func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) onFrame() (Model, tea.Cmd) {
	if !m.Status.Visible() {
		m.ticking = false
		return m, nil
	}
	m.Status.Frames++
	if m.Status.Frames >= m.displayTicks() {
		m.Status = StatusBar{}
		m.ticking = false
		return m, nil
	}
	return m, m.frameTick()
}

func (m Model) displayTicks() int {
	if ticks := m.cfg.ErrorDisplayTicks(); ticks > 0 {
		return ticks
	}
	return config.DefaultErrorSeconds * config.DefaultRefreshRate
}

func (m Model) onDataLoaded(msg dataLoadedMsg) (Model, tea.Cmd) {
	if !m.loading {
		m.log.Warn("ignoring late data load", "path", msg.path)
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, fs.ErrNotExist) {
			m.log.Info("no data file yet, starting empty", "path", msg.path)
			return m, nil
		}
		m.log.Error("load data file", "path", msg.path, "err", msg.err)
		return m.setStatus(toCommandError(msg.err).Message, true)
	}
	m.store.Replace(msg.lists)
	m.snapshot = m.store.Snapshot()
	m.dataPath = msg.path
	m.log.Info("loaded data file", "path", msg.path, "lists", len(msg.lists))
	return m, nil
}

func (m Model) View() string {
	if m.Mode == ModeExiting {
		return ""
	}
	var body string
	switch m.CurrentTab {
	case TabTasks:
		body = views.RenderTasksTab(m.tasksTabData())
	case TabCalendar:
		today := m.clock.Today()
		body = views.RenderCalendar(views.CalendarData{Year: today.Year, Month: today.Month, Day: today.Day, Width: m.Width})
	case TabOptions:
		body = views.RenderOptions(views.OptionsData{
			DeleteOnCompletion:  m.cfg.DeleteOnCompletion,
			ErrorDisplaySeconds: m.cfg.ErrorDisplaySeconds,
			DataFile:            m.dataPath,
			Width:               m.Width,
		})
	}

	return views.RenderApp(views.AppData{
		TitleBar:  views.RenderTitleBar(tabNames, int(m.CurrentTab), m.Width),
		Body:      body,
		Popup:     m.renderPopup(),
		BottomBar: m.renderBottomBar(),
		Width:     m.Width,
		Height:    m.Height,
	})
}

func (m Model) renderBottomBar() string {
	switch {
	case m.loading:
		return views.RenderStatus("Loading "+m.dataPath+"...", false)
	case m.Mode == ModeCommand:
		return views.RenderCommandLine(m.CommandLine(), m.command.Cursor())
	case m.Status.Visible():
		return views.RenderStatus(m.Status.Text, m.Status.IsError)
	default:
		return m.help.View(m.keys.forTab(m.CurrentTab))
	}
}

func (m Model) renderPopup() string {
	switch p := m.modal.Active().(type) {
	case *modal.Editor:
		task := p.Task()
		draft, drafting := p.DateDraft()
		return views.RenderEditor(views.EditorData{
			Title:       p.Title(),
			Description: p.Description().Text(),
			Cursor:      p.Description().Cursor(),
			Focus:       p.Field().String(),
			Status:      task.Status.Name(),
			Date:        task.Date.String(),
			DateDraft:   draft.Text(),
			DraftCursor: draft.Cursor(),
			Drafting:    drafting,
			Duration:    task.Duration.String(),
		})
	case *modal.Confirm:
		return views.RenderConfirm(views.ConfirmData{Title: p.Title(), Body: p.Body(), Yes: p.Decision()})
	case *modal.Prompt:
		return views.RenderPrompt(views.PromptData{Title: p.Title(), Input: p.Input().Text(), Cursor: p.Input().Cursor()})
	default:
		return ""
	}
}
