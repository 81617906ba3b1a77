package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"tasklist/internal/tasks"
)

const (
	AppName               = "tasklist"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultSlotKey        = "tasks"
)

type Keymap struct {
	Quit             string `toml:"quit"`
	Add              string `toml:"add"`
	Up               string `toml:"up"`
	Down             string `toml:"down"`
	Toggle           string `toml:"toggle"`
	Delete           string `toml:"delete"`
	Detail           string `toml:"detail"`
	Confirm          string `toml:"confirm"`
	Cancel           string `toml:"cancel"`
	Edit             string `toml:"edit"`
	FilterAll        string `toml:"filter_all"`
	FilterCompleted  string `toml:"filter_completed"`
	FilterIncomplete string `toml:"filter_incomplete"`
	FilterCycle      string `toml:"filter_cycle"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	SlotKey       string `toml:"slot_key"`
	DefaultFilter string `toml:"default_filter"`
	ConfirmDelete bool   `toml:"confirm_delete"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file, or a file in the
// working directory when no user config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing defaults first when the
// file does not exist yet. Relative paths inside the file are taken
// relative to the file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

// Validate rejects settings the UI cannot work with.
func (c Config) Validate() error {
	if _, err := tasks.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	bindings := map[string]string{
		"quit":    c.Keys.Quit,
		"add":     c.Keys.Add,
		"toggle":  c.Keys.Toggle,
		"delete":  c.Keys.Delete,
		"confirm": c.Keys.Confirm,
		"cancel":  c.Keys.Cancel,
		"edit":    c.Keys.Edit,
	}
	for name, key := range bindings {
		if key == "" {
			return fmt.Errorf("keys.%s is empty", name)
		}
	}
	return nil
}

// Filter returns the starting filter mode.
func (c Config) Filter() tasks.Filter {
	f, _ := tasks.ParseFilter(c.DefaultFilter)
	return f
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.SlotKey == "" {
		c.SlotKey = def.SlotKey
	}
	if strings.TrimSpace(c.DefaultFilter) == "" {
		c.DefaultFilter = def.DefaultFilter
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func (c Config) resolve(dir string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogPath != "" && !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		SlotKey:       DefaultSlotKey,
		DefaultFilter: string(tasks.FilterAll),
		ConfirmDelete: true,
		LogLevel:      "info",
		Keys: Keymap{
			Quit:             "q",
			Add:              "a",
			Up:               "k",
			Down:             "j",
			Toggle:           " ",
			Delete:           "d",
			Detail:           "i",
			Confirm:          "enter",
			Cancel:           "esc",
			Edit:             "e",
			FilterAll:        "1",
			FilterCompleted:  "2",
			FilterIncomplete: "3",
			FilterCycle:      "f",
		},
	}
}
