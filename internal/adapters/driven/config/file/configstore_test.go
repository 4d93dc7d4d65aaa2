package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_PathInConfigDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".freemap", "config.toml"), store.Path())
}

func TestConfigStore_LogLevelRoundTrip(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("log.level", "debug"))

	assert.Equal(t, "debug", store.GetString("log.level"))

	val, ok := store.Get("log.level")
	assert.True(t, ok)
	assert.Equal(t, "debug", val)
}

func TestConfigStore_MissingKey(t *testing.T) {
	store := newStore(t)

	_, ok := store.Get("log.level")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("log.level"))
	assert.Equal(t, 0, store.GetInt("find.limit"))
	assert.False(t, store.GetBool("find.json"))
}

func TestConfigStore_TypedGettersRejectWrongTypes(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("log.level", "warn"))
	require.NoError(t, store.Set("find.limit", 25))
	require.NoError(t, store.Set("find.json", true))

	assert.Equal(t, "", store.GetString("find.limit"))
	assert.Equal(t, 0, store.GetInt("log.level"))
	assert.False(t, store.GetBool("log.level"))
}

func TestConfigStore_SetPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	first, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set("log.level", "warn"))
	require.NoError(t, first.Set("find.limit", 25))
	require.NoError(t, first.Set("find.json", true))

	second, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "warn", second.GetString("log.level"))
	assert.Equal(t, 25, second.GetInt("find.limit"))
	assert.True(t, second.GetBool("find.json"))
}

func TestConfigStore_LoadFlattensTOMLTables(t *testing.T) {
	dir := t.TempDir()
	raw := "[log]\nlevel = \"error\"\n\n[find]\nlimit = 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "error", store.GetString("log.level"))
	assert.Equal(t, 10, store.GetInt("find.limit"))
}

func TestConfigStore_MissingFileStartsEmpty(t *testing.T) {
	store := newStore(t)

	_, ok := store.Get("log.level")
	assert.False(t, ok)

	// The file only appears once something is written.
	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("log.level = "), 0600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_RestrictedPermissions(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("log.level", "info"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
