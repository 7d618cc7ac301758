package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/config"
	"github.com/frogpad/frogpad/internal/logging"
	"github.com/frogpad/frogpad/internal/update"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "frogpad failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	logger.Info("starting", "data_file", cfg.DataFile, "refresh_rate", cfg.RefreshRate)

	m := update.NewModelWithConfig(cfg, update.Deps{Logger: logger})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited", "err", err)
		return err
	}
	logger.Info("stopped")
	return nil
}

// loadConfig layers defaults, the TOML file, FROGPAD_* variables and finally
// the command line.
func loadConfig(args []string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("frogpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath(), "path to config.toml")
	dataFile := fs.String("file", "", "task data file (.json, .db or .sqlite)")
	logFile := fs.String("log", "", "log file, overrides the config")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}
	if fs.NArg() > 1 {
		return config.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	cfg, err := config.Load(*configPath, config.Default(config.DefaultLogFile()))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg = config.FromEnv(cfg)
	switch {
	case *dataFile != "":
		cfg.DataFile = *dataFile
	case fs.NArg() == 1:
		cfg.DataFile = fs.Arg(0)
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
