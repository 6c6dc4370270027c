package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteJSONAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "amoy.json")

	require.NoError(t, writeJSONAtomic(path, map[string]string{"owner_key": "0x01"}, "  ", 0600))
	require.NoError(t, writeJSONAtomic(path, map[string]string{"owner_key": "0x02"}, "  ", 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"owner_key\": \"0x02\"\n}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.Equal(t, []string{"amoy.json"}, dirNames(t, dir))
}

func TestWriteJSONAtomic_CreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".nftree", "config.local.json")
	require.NoError(t, writeJSONAtomic(path, map[string]string{"network": "amoy"}, "  ", 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteJSONAtomic_FailuresLeaveNoTempFile(t *testing.T) {
	t.Run("unencodable value", func(t *testing.T) {
		dir := t.TempDir()
		err := writeJSONAtomic(filepath.Join(dir, "amoy.json"), map[string]any{"bad": make(chan int)}, "  ", 0600)
		require.Error(t, err)
		assert.Empty(t, dirNames(t, dir))
	})

	t.Run("rename onto a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "amoy.json")
		require.NoError(t, os.MkdirAll(filepath.Join(target, "occupied"), 0755))

		err := writeJSONAtomic(target, map[string]string{"owner_key": "0x01"}, "  ", 0600)
		require.Error(t, err)
		assert.Equal(t, []string{"amoy.json"}, dirNames(t, dir))
	})
}
