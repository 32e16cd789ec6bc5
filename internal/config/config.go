package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"taskeasy/internal/logging"
	"taskeasy/internal/store"
	"taskeasy/internal/task"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	AppDirName            = "taskeasy"
	EnvConfigPath         = "TODO_CONFIG"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Edit       string `toml:"edit"`
	Delete     string `toml:"delete"`
	Filter     string `toml:"filter"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	NextField  string `toml:"next_field"`
	PrevField  string `toml:"prev_field"`
	CycleLeft  string `toml:"cycle_left"`
	CycleRight string `toml:"cycle_right"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	DefaultFilter string `toml:"default_filter"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks $TODO_CONFIG, then the user config dir, then the
// working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults first if the
// file does not exist. Relative paths inside it resolve against its directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = store.DefaultKey
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = string(task.FilterAll)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(path), nil
}

// Filter returns the parsed default filter.
func (c Config) Filter() task.Filter {
	f, err := task.ParseFilter(c.DefaultFilter)
	if err != nil {
		return task.FilterAll
	}
	return f
}

func (c Config) validate() error {
	if _, err := task.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

func (c Config) resolve(path string) Config {
	dir := filepath.Dir(path)
	c.DBPath = resolvePath(dir, c.DBPath)
	if c.LogPath != "" {
		c.LogPath = resolvePath(dir, c.LogPath)
	}
	return c
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		StorageKey:    store.DefaultKey,
		DefaultFilter: string(task.FilterAll),
		LogLevel:      "info",
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Edit:       "e",
			Delete:     "d",
			Filter:     "f",
			Confirm:    "enter",
			Cancel:     "esc",
			NextField:  "tab",
			PrevField:  "shift+tab",
			CycleLeft:  "left",
			CycleRight: "right",
		},
	}
}
