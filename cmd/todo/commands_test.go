package main

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCmd executes the root command against the given config file.
func runCmd(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	configPath = ""
	return out.String(), err
}

// addedID extracts the id from an "add" output line.
func addedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 3)
	_, err := strconv.ParseInt(fields[2], 10, 64)
	require.NoError(t, err)
	return fields[2]
}

func TestCommands(t *testing.T) {
	t.Run("add then list", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")

		out, err := runCmd(t, cfg, "add", "Buy", "milk")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "[ ] "))
		assert.Contains(t, out, "Buy milk")

		out, err = runCmd(t, cfg, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Buy milk")
	})

	t.Run("blank add fails", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")

		_, err := runCmd(t, cfg, "add", "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("toggle and filter", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		out, err := runCmd(t, cfg, "add", "done-soon")
		require.NoError(t, err)
		id := addedID(t, out)
		_, err = runCmd(t, cfg, "add", "later")
		require.NoError(t, err)

		out, err = runCmd(t, cfg, "toggle", id)
		require.NoError(t, err)
		assert.Contains(t, out, "[x]")

		out, err = runCmd(t, cfg, "list", "--filter", "completed")
		require.NoError(t, err)
		assert.Contains(t, out, "done-soon")
		assert.NotContains(t, out, "later")

		out, err = runCmd(t, cfg, "list", "--filter", "incomplete")
		require.NoError(t, err)
		assert.Contains(t, out, "later")
		assert.NotContains(t, out, "done-soon")
	})

	t.Run("edit keeps completion", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		out, err := runCmd(t, cfg, "add", "old")
		require.NoError(t, err)
		id := addedID(t, out)
		_, err = runCmd(t, cfg, "toggle", id)
		require.NoError(t, err)

		out, err = runCmd(t, cfg, "edit", id, "new", "text")
		require.NoError(t, err)
		assert.Equal(t, "[x] "+id+"  new text\n", out)
	})

	t.Run("rm removes and reports unknown ids", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		out, err := runCmd(t, cfg, "add", "temp")
		require.NoError(t, err)
		id := addedID(t, out)

		out, err = runCmd(t, cfg, "rm", id)
		require.NoError(t, err)
		assert.Contains(t, out, "deleted "+id)

		out, err = runCmd(t, cfg, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "no tasks")

		_, err = runCmd(t, cfg, "rm", id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("reset needs confirmation and clears the list", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		_, err := runCmd(t, cfg, "add", "one")
		require.NoError(t, err)
		_, err = runCmd(t, cfg, "add", "two")
		require.NoError(t, err)

		_, err = runCmd(t, cfg, "reset")
		require.Error(t, err)
		out, err := runCmd(t, cfg, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "one")

		out, err = runCmd(t, cfg, "reset", "--yes")
		require.NoError(t, err)
		assert.Equal(t, "deleted 2 tasks\n", out)

		out, err = runCmd(t, cfg, "list")
		require.NoError(t, err)
		assert.Equal(t, "no tasks\n", out)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		_, err := runCmd(t, cfg, "toggle", "abc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid task id")
	})

	t.Run("bad filter is rejected", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "config.toml")
		_, err := runCmd(t, cfg, "list", "--filter", "urgent")
		require.Error(t, err)
	})
}
