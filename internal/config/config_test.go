package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/tasks"
)

func TestLoadOrCreate(t *testing.T) {
	t.Run("first launch writes defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "config.toml")

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)

		_, err = os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "nested", DefaultDBName), cfg.DBPath)
		assert.Equal(t, DefaultSlotKey, cfg.SlotKey)
		assert.Equal(t, tasks.FilterAll, cfg.Filter())
		assert.True(t, cfg.ConfirmDelete)
		assert.Equal(t, " ", cfg.Keys.Toggle)
	})

	t.Run("written defaults load back unchanged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		first, err := LoadOrCreate(path)
		require.NoError(t, err)

		second, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("partial file is completed with defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
default_filter = "incomplete"
confirm_delete = false

[keys]
quit = "x"
add = "n"
toggle = "t"
delete = "D"
confirm = "enter"
cancel = "esc"
edit = "r"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, tasks.FilterIncomplete, cfg.Filter())
		assert.False(t, cfg.ConfirmDelete)
		assert.Equal(t, "x", cfg.Keys.Quit)
		assert.Equal(t, filepath.Join(dir, DefaultDBName), cfg.DBPath)
		assert.Equal(t, DefaultSlotKey, cfg.SlotKey)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("absolute db path is kept and relative log path resolved", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		db := filepath.Join(t.TempDir(), "elsewhere.db")
		content := "db_path = \"" + filepath.ToSlash(db) + "\"\nlog_path = \"todo.log\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadOrCreate(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(db), filepath.ToSlash(cfg.DBPath))
		assert.Equal(t, filepath.Join(dir, "todo.log"), cfg.LogPath)
	})

	t.Run("unknown default filter is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`default_filter = "urgent"`), 0o644))

		_, err := LoadOrCreate(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default_filter")
	})

	t.Run("invalid toml is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("db_path = "), 0o644))

		_, err := LoadOrCreate(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path := ResolveConfigPath()
	assert.Equal(t, DefaultConfigFileName, filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}
