package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	err := AtomicWriteFile(path, []byte("hello\n"), 0o600)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestAtomicWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestAtomicWriteFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("x"), 0o644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.txt", entries[0].Name())
}

func TestAtomicWriteYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	type cfg struct {
		Version int    `yaml:"version"`
		Name    string `yaml:"name"`
	}

	require.NoError(t, AtomicWriteYAML(path, cfg{Version: 1, Name: "test"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got cfg
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, cfg{Version: 1, Name: "test"}, got)
	assert.Equal(t, byte('\n'), data[len(data)-1], "trailing newline")
}

func TestAtomicWriteYAMLUnmarshalableType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	// Channels cannot be marshaled; yaml panics, which we convert to an error.
	err := AtomicWriteYAML(path, make(chan int))
	assert.Error(t, err)
}
