package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	appName                = "frogpad"
	DefaultDataFile        = "list.json"
	DefaultErrorSeconds    = 2
	DefaultRefreshRate     = 60
	DefaultLogLevel        = "info"
	maxRefreshRate         = 240
	MaxErrorDisplaySeconds = 60
)

type Config struct {
	DataFile            string    `toml:"data_file"`
	ErrorDisplaySeconds int       `toml:"error_display_seconds"`
	RefreshRate         int       `toml:"refresh_rate"`
	DeleteOnCompletion  bool      `toml:"delete_on_completion"`
	Log                 LogConfig `toml:"log"`
}

type LogConfig struct {
	// File is the log destination. Empty disables logging.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func Default(logFile string) Config {
	return Config{
		DataFile:            DefaultDataFile,
		ErrorDisplaySeconds: DefaultErrorSeconds,
		RefreshRate:         DefaultRefreshRate,
		DeleteOnCompletion:  false,
		Log: LogConfig{
			File:  logFile,
			Level: DefaultLogLevel,
		},
	}
}

// DefaultPath is frogpad/config.toml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// DefaultLogFile is frogpad/frogpad.log under the user cache directory.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, appName+".log")
}

// Load decodes the TOML file at path over defaults. A missing or empty file
// yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data_file is required")
	}
	if c.ErrorDisplaySeconds < 1 || c.ErrorDisplaySeconds > MaxErrorDisplaySeconds {
		return fmt.Errorf("error_display_seconds must be between 1 and %d, got %d", MaxErrorDisplaySeconds, c.ErrorDisplaySeconds)
	}
	if c.RefreshRate < 1 || c.RefreshRate > maxRefreshRate {
		return fmt.Errorf("refresh_rate must be between 1 and %d, got %d", maxRefreshRate, c.RefreshRate)
	}
	if _, err := charmLog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return nil
}

// ErrorDisplayTicks is how many refresh ticks an error stays on screen.
func (c Config) ErrorDisplayTicks() int {
	return c.ErrorDisplaySeconds * c.RefreshRate
}

// FromEnv applies FROGPAD_* overrides. Malformed or out-of-range values are
// ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FROGPAD_DATA_FILE")); v != "" {
		cfg.DataFile = v
	}
	if v, ok := getEnvInt("FROGPAD_ERROR_DISPLAY_SECONDS"); ok && v > 0 && v <= MaxErrorDisplaySeconds {
		cfg.ErrorDisplaySeconds = v
	}
	if v, ok := getEnvInt("FROGPAD_REFRESH_RATE"); ok && v > 0 && v <= maxRefreshRate {
		cfg.RefreshRate = v
	}
	if v, ok := getEnvBool("FROGPAD_DELETE_ON_COMPLETION"); ok {
		cfg.DeleteOnCompletion = v
	}
	if v, ok := os.LookupEnv("FROGPAD_LOG_FILE"); ok {
		cfg.Log.File = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("FROGPAD_LOG_LEVEL")); v != "" {
		if _, err := charmLog.ParseLevel(v); err == nil {
			cfg.Log.Level = v
		}
	}
	return cfg
}
