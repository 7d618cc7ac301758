package commands

import "fmt"

type Result struct {
	Message string
}

// Handlers are supplied by the application. A nil handler yields a
// handler_missing error rather than a panic.
type Handlers struct {
	SwitchTab  func(Type) (Result, error)
	Quit       func(force bool) (Result, error)
	NewTask    func() (Result, error)
	NewSubTask func() (Result, error)
	NewList    func() (Result, error)
	Save       func(PathArgs) (Result, error)
	Load       func(PathArgs) (Result, error)
	Import     func(PathArgs) (Result, error)
	Export     func(ExportArgs) (Result, error)
	Yank       func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTasks, TypeCalendar, TypeOptions:
		if handlers.SwitchTab == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.SwitchTab(cmd.Type)
	case TypeQuit, TypeForceQuit:
		if handlers.Quit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Quit(cmd.Type == TypeForceQuit)
	case TypeNewTask:
		return call(cmd.Type, handlers.NewTask)
	case TypeNewSubTask:
		return call(cmd.Type, handlers.NewSubTask)
	case TypeNewList:
		return call(cmd.Type, handlers.NewList)
	case TypeYank:
		return call(cmd.Type, handlers.Yank)
	case TypeSave:
		return callPath(cmd, handlers.Save)
	case TypeLoad:
		return callPath(cmd, handlers.Load)
	case TypeImport:
		return callPath(cmd, handlers.Import)
	case TypeExport:
		if handlers.Export == nil {
			return Result{}, missing(cmd.Type)
		}
		if cmd.Export == nil {
			return Result{}, newError(ErrCodeMissingField, "Missing Field")
		}
		return handlers.Export(*cmd.Export)
	default:
		return Result{}, newError(ErrCodeUnknownCommand, fmt.Sprintf("unknown command type: %s", cmd.Type))
	}
}

func call(t Type, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(t)
	}
	return fn()
}

func callPath(cmd Command, fn func(PathArgs) (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(cmd.Type)
	}
	args := PathArgs{}
	if cmd.Path != nil {
		args = *cmd.Path
	}
	return fn(args)
}

func missing(t Type) *CommandError {
	return newError(ErrCodeHandlerMissing, fmt.Sprintf("%s handler not configured", t))
}
