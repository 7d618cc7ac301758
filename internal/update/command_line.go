package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/commands"
	"github.com/frogpad/frogpad/internal/modal"
	"github.com/frogpad/frogpad/internal/persist"
)

func (m Model) handleCommandKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := m.command.Take()
		m.Mode = ModeRunning
		return m.runCommand(line)
	case "esc":
		m.command.Clear()
		m.Mode = ModeRunning
	case "backspace":
		m.command.Remove()
	case "left":
		m.command.MoveLeft()
	case "right":
		m.command.MoveRight()
	case "home":
		m.command.MoveHome()
	case "end":
		m.command.MoveEnd()
	default:
		for _, r := range typedRunes(msg) {
			m.command.Insert(r)
		}
	}
	return m, nil
}

func (m Model) runCommand(line string) (Model, tea.Cmd) {
	cmd, err := commands.Parse(line)
	if err != nil {
		return m.commandFailed(line, err)
	}
	res, err := commands.Execute(cmd, m.handlers())
	if err != nil {
		return m.commandFailed(line, err)
	}
	m.log.Debug("command", "line", line, "type", cmd.Type)
	if m.Mode == ModeExiting {
		return m, tea.Quit
	}
	if res.Message != "" {
		return m.setStatus(res.Message, false)
	}
	return m, nil
}

func (m Model) commandFailed(line string, err error) (Model, tea.Cmd) {
	ce := toCommandError(err)
	m.log.Warn("command failed", "line", line, "code", ce.Code, "err", err)
	return m.setStatus(ce.Message, true)
}

// handlers binds the command language to this model. The closures mutate m
// in place.
func (m *Model) handlers() commands.Handlers {
	ctx := context.Background()
	return commands.Handlers{
		SwitchTab: func(t commands.Type) (commands.Result, error) {
			switch t {
			case commands.TypeCalendar:
				m.CurrentTab = TabCalendar
			case commands.TypeOptions:
				m.CurrentTab = TabOptions
			default:
				m.CurrentTab = TabTasks
			}
			return commands.Result{}, nil
		},
		Quit: func(force bool) (commands.Result, error) {
			if force {
				m.log.Info("quit", "forced", true, "dirty", m.Dirty())
				m.Mode = ModeExiting
				return commands.Result{}, nil
			}
			m.requestQuit()
			return commands.Result{}, nil
		},
		NewTask: func() (commands.Result, error) {
			m.CurrentTab = TabTasks
			m.modal.Open(modal.NewEditor(modal.SourceNew, m.clock), modal.PurposeEditTask)
			return commands.Result{}, nil
		},
		NewSubTask: func() (commands.Result, error) {
			if _, ok := m.store.SelectedParent(); !ok {
				return commands.Result{}, noSelection()
			}
			m.CurrentTab = TabTasks
			m.modal.Open(modal.NewEditor(modal.SourceNewSubTask, m.clock), modal.PurposeEditTask)
			return commands.Result{}, nil
		},
		NewList: func() (commands.Result, error) {
			m.CurrentTab = TabTasks
			m.modal.Open(modal.NewPrompt("Enter TaskList Name"), modal.PurposeNewList)
			return commands.Result{}, nil
		},
		Save: func(args commands.PathArgs) (commands.Result, error) {
			path := m.resolvePath(args.Path)
			if err := m.save(path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "Saved " + path}, nil
		},
		Load: func(args commands.PathArgs) (commands.Result, error) {
			path := m.resolvePath(args.Path)
			if err := persist.LoadStore(ctx, m.store, path); err != nil {
				m.log.Error("load", "path", path, "err", err)
				return commands.Result{}, err
			}
			m.snapshot = m.store.Snapshot()
			m.dataPath = path
			m.CurrentTab = TabTasks
			m.log.Info("load", "path", path, "lists", m.store.Len())
			return commands.Result{Message: "Loaded " + path}, nil
		},
		Import: func(args commands.PathArgs) (commands.Result, error) {
			list, err := persist.ImportList(ctx, m.store, args.Path)
			if err != nil {
				m.log.Error("import", "path", args.Path, "err", err)
				return commands.Result{}, err
			}
			m.CurrentTab = TabTasks
			m.log.Info("import", "path", args.Path, "list", list.Name)
			return commands.Result{Message: fmt.Sprintf("Imported %q", list.Name)}, nil
		},
		Export: func(args commands.ExportArgs) (commands.Result, error) {
			path, err := persist.ExportList(ctx, m.store, args.Index, m.exportDir)
			if err != nil {
				m.log.Error("export", "index", args.Index, "err", err)
				return commands.Result{}, err
			}
			m.log.Info("export", "index", args.Index, "path", path)
			return commands.Result{Message: "Exported " + path}, nil
		},
		Yank: m.yank,
	}
}

func (m *Model) resolvePath(path string) string {
	if path == "" {
		return m.dataPath
	}
	return path
}

// save writes the store to path and makes it the new clean state.
func (m *Model) save(path string) error {
	if err := persist.SaveStore(context.Background(), m.store, path); err != nil {
		m.log.Error("save", "path", path, "err", err)
		return err
	}
	m.snapshot = m.store.Snapshot()
	m.dataPath = path
	m.log.Info("save", "path", path, "lists", m.store.Len())
	return nil
}

// toCommandError maps any failure onto the status-line vocabulary.
func toCommandError(err error) *commands.CommandError {
	var ce *commands.CommandError
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, persist.ErrInvalidFilePath):
		return &commands.CommandError{Code: commands.ErrCodeInvalidFilePath, Message: "Invalid File Path"}
	case errors.Is(err, persist.ErrInvalidFileFormat):
		return &commands.CommandError{Code: commands.ErrCodeInvalidFileFormat, Message: "Invalid File Format"}
	case errors.Is(err, persist.ErrInvalidIndex):
		return &commands.CommandError{Code: commands.ErrCodeInvalidIndex, Message: "Invalid Index"}
	default:
		return &commands.CommandError{Code: commands.ErrCodeStorage, Message: "Storage Error"}
	}
}

func typedRunes(msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		return msg.Runes
	case tea.KeySpace:
		return []rune{' '}
	default:
		return nil
	}
}
