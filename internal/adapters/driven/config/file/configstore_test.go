package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".aptline", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("storage.backend", "sourcesdir")
	require.NoError(t, err)

	val, ok := store.Get("storage.backend")
	assert.True(t, ok)
	assert.Equal(t, "sourcesdir", val)
}

func TestConfigStore_GetMissing(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("naming.prefix", "deb"))

	assert.Zero(t, store.GetInt("naming.prefix"))
	assert.False(t, store.GetBool("naming.prefix"))
	assert.Nil(t, store.GetStringSlice("naming.prefix"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("log.verbose", true))
	require.NoError(t, store.Set("mcp.port", 8080))
	require.NoError(t, store.Set("naming.aliases", []string{"a", "b"}))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store2.GetString("storage.backend"))
	assert.True(t, store2.GetBool("log.verbose"))
	assert.Equal(t, 8080, store2.GetInt("mcp.port"))
	assert.Equal(t, []string{"a", "b"}, store2.GetStringSlice("naming.aliases"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[storage]")
	assert.NotContains(t, string(data), "storage.backend")
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[storage]\nbackend = \"memory\"\nsources_dir = \"/etc/apt/sources.list.d\"\n\n[log]\nverbose = true\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "memory", store.GetString("storage.backend"))
	assert.Equal(t, "/etc/apt/sources.list.d", store.GetString("storage.sources_dir"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("naming.prefix", "repo"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("log", "plain"))
	err = store.Set("log.verbose", true)

	assert.Error(t, err)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["naming.prefix"] = "mirror"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "mirror", store2.GetString("naming.prefix"))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("another", "value")
	assert.Error(t, err)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{
			"backend": "sqlite",
			"paths":   map[string]any{"data": "/tmp"},
		},
		"top": 1,
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, map[string]any{
		"storage.backend":    "sqlite",
		"storage.paths.data": "/tmp",
		"top":                1,
	}, flat)
}

func TestUnflattenMap(t *testing.T) {
	flat := map[string]any{
		"storage.backend":    "sqlite",
		"storage.paths.data": "/tmp",
		"top":                1,
	}

	nested, err := unflattenMap(flat)

	require.NoError(t, err)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
