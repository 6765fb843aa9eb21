package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	xdgAppName = "harper"
	configFile = "config.toml"
	dataFile   = "harper.txt"

	defaultCalendar = "Tasks"
	defaultLogLevel = "warn"
)

type Config struct {
	DataFile string `toml:"data_file"`
	Calendar string `toml:"calendar"`
	LogLevel string `toml:"log_level"`
}

// Dir is the directory holding the config file, the default data file and the
// calendar credentials.
func Dir() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataFile: filepath.Join(dir, dataFile),
		Calendar: defaultCalendar,
		LogLevel: defaultLogLevel,
	}, nil
}

// Load reads the config file from its default location and applies the
// HARPER_* environment overrides.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg, os.LookupEnv)
	return cfg, nil
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if cfg.Calendar == "" {
		cfg.Calendar = defaultCalendar
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	cfg.DataFile = expandHome(cfg.DataFile)
	return cfg, nil
}

// SetCalendar stores name as the default calendar. Only the calendar changes;
// the rest of the file is kept as written, without env or flag overrides.
func SetCalendar(name string) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return err
	}
	cfg.Calendar = name
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup("HARPER_DATA_FILE"); ok && v != "" {
		cfg.DataFile = expandHome(v)
	}
	if v, ok := lookup("HARPER_CALENDAR"); ok && v != "" {
		cfg.Calendar = v
	}
	if v, ok := lookup("HARPER_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
