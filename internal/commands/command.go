package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeTasks     Type = "tasks"
	TypeCalendar  Type = "calendar"
	TypeOptions   Type = "options"
	TypeQuit      Type = "quit"
	TypeForceQuit Type = "quit!"

	TypeNewTask    Type = "new"
	TypeNewSubTask Type = "newsub"
	TypeNewList    Type = "newlist"
	TypeSave       Type = "save"
	TypeLoad       Type = "load"
	TypeImport     Type = "import"
	TypeExport     Type = "export"
	TypeYank       Type = "yank"
)

type ErrorCode string

const (
	ErrCodeEmptyInput        ErrorCode = "empty_input"
	ErrCodeUnknownCommand    ErrorCode = "unknown_command"
	ErrCodeInvalidFilePath   ErrorCode = "invalid_file_path"
	ErrCodeInvalidFileFormat ErrorCode = "invalid_file_format"
	ErrCodeMissingField      ErrorCode = "missing_field"
	ErrCodeNotANumber        ErrorCode = "not_a_number"
	ErrCodeInvalidIndex      ErrorCode = "invalid_index"
	ErrCodeNoSelection       ErrorCode = "no_selection"
	ErrCodeClipboard         ErrorCode = "clipboard"
	ErrCodeStorage           ErrorCode = "storage"
	ErrCodeHandlerMissing    ErrorCode = "handler_missing"
)

// CommandError carries a code for callers and a Message fit for the status
// line.
type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, message string) *CommandError {
	return &CommandError{Code: code, Message: message}
}

// PathArgs is shared by save, load and import. An empty Path means the
// configured data file.
type PathArgs struct {
	Path string
}

type ExportArgs struct {
	Index int
}

type Command struct {
	Type   Type
	Raw    string
	Path   *PathArgs
	Export *ExportArgs
}

// Parse reads one command line, without the leading colon.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, newError(ErrCodeEmptyInput, "Empty Command")
	}

	parts := strings.Fields(raw)
	head := parts[0]
	args := parts[1:]

	switch head {
	case "tasks", "t":
		return parseTasks(raw, args)
	case "calendar", "c":
		return Command{Type: TypeCalendar, Raw: raw}, nil
	case "options", "o":
		return Command{Type: TypeOptions, Raw: raw}, nil
	case "quit", "q":
		return Command{Type: TypeQuit, Raw: raw}, nil
	case "quit!", "q!":
		return Command{Type: TypeForceQuit, Raw: raw}, nil
	default:
		return Command{}, unknown(raw)
	}
}

func unknown(raw string) *CommandError {
	return newError(ErrCodeUnknownCommand, fmt.Sprintf("Unknown Command: %q", raw))
}

func parseTasks(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Type: TypeTasks, Raw: raw}, nil
	}
	action := Type(args[0])
	rest := args[1:]

	switch action {
	case TypeNewTask, TypeNewSubTask, TypeNewList, TypeYank:
		return Command{Type: action, Raw: raw}, nil
	case TypeSave, TypeLoad:
		path := ""
		if len(rest) > 0 {
			path = rest[0]
		}
		return Command{Type: action, Raw: raw, Path: &PathArgs{Path: path}}, nil
	case TypeImport:
		if len(rest) == 0 {
			return Command{}, newError(ErrCodeMissingField, "Missing Field")
		}
		return Command{Type: action, Raw: raw, Path: &PathArgs{Path: rest[0]}}, nil
	case TypeExport:
		if len(rest) == 0 {
			return Command{}, newError(ErrCodeMissingField, "Missing Field")
		}
		index, err := strconv.Atoi(rest[0])
		if err != nil || index < 0 {
			return Command{}, newError(ErrCodeNotANumber, "Not A Number")
		}
		return Command{Type: action, Raw: raw, Export: &ExportArgs{Index: index}}, nil
	default:
		return Command{}, unknown(raw)
	}
}
