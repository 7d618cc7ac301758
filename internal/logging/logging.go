// Package logging builds the file logger. The terminal belongs to the UI, so
// log output never goes to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"

	"github.com/frogpad/frogpad/internal/config"
)

const prefix = "frogpad"

// New opens cfg.File for appending and returns a logfmt logger writing to
// it. An empty path yields a logger that discards everything. The returned
// close func is never nil.
func New(cfg config.LogConfig) (*charmLog.Logger, func() error, error) {
	level, err := charmLog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	path := strings.TrimSpace(cfg.File)
	if path == "" {
		return NewWriter(io.Discard, level), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(logFile, level), logFile.Close, nil
}

func NewWriter(w io.Writer, level charmLog.Level) *charmLog.Logger {
	return charmLog.NewWithOptions(w, charmLog.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       charmLog.LogfmtFormatter,
	})
}

// Discard returns a logger for tests and other callers without a sink.
func Discard() *charmLog.Logger {
	return NewWriter(io.Discard, charmLog.FatalLevel)
}
