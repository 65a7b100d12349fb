package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadJSON_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "test.json")

	type Data struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	original := Data{Name: "test", Count: 42}
	require.NoError(t, SaveJSON(path, original))

	var loaded Data
	require.NoError(t, LoadJSON(path, &loaded))
	assert.Equal(t, original, loaded)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadJSON_NotFound(t *testing.T) {
	t.Parallel()

	var data map[string]any
	err := LoadJSON(filepath.Join(t.TempDir(), "nonexistent.json"), &data)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadJSON_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var data map[string]any
	assert.Error(t, LoadJSON(path, &data))
}

func TestDirs_EnvOverride(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")
	t.Setenv(EnvCacheDir, cacheDir)
	t.Setenv(EnvConfigDir, "/etc/dracula-test")

	got, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, cacheDir, got)
	assert.DirExists(t, cacheDir)

	cfgDir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/etc/dracula-test", cfgDir)
}
