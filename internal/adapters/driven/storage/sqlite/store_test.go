package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func testSource(id, name string) domain.Source {
	return domain.Source{
		ID:         id,
		Name:       name,
		Enabled:    true,
		Types:      []domain.SourceType{domain.SourceTypeBinary},
		URIs:       []string{"http://example.com/ubuntu"},
		Suites:     []string{"focal"},
		Components: []string{"main", "universe"},
	}
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(dir, "sources.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "path")

	store, err := NewStore(nested)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nested)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var tableExists int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sources'",
	).Scan(&tableExists)
	require.NoError(t, err)
	assert.Equal(t, 1, tableExists)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SourceStore().Save(context.Background(), testSource("a", "kept")))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	got, err := second.SourceStore().Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Name)
}

func TestStore_Migrate_FailureRollsBack(t *testing.T) {
	store := setupTestStore(t)

	bad := fstest.MapFS{
		"002_broken.up.sql": {Data: []byte("CREATE TABLE broken (")},
		"README.md":         {Data: []byte("ignored")},
	}

	err := store.migrate(bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.up.sql")

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

func TestSourceStore_SaveAndGet(t *testing.T) {
	sources := setupTestStore(t).SourceStore()
	ctx := context.Background()

	src := testSource("src-1", "deb-example-com-ubuntu")
	src.Options = domain.NewOptions(
		domain.Option{Name: domain.OptionArchitectures, Value: "amd64 arm64"},
		domain.Option{Name: "Signed-By", Value: "/usr/share/keyrings/example.gpg"},
	)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src.CreatedAt = created
	src.UpdatedAt = created

	require.NoError(t, sources.Save(ctx, src))

	got, err := sources.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, src.Name, got.Name)
	assert.True(t, got.Enabled)
	assert.Equal(t, src.Types, got.Types)
	assert.Equal(t, src.URIs, got.URIs)
	assert.Equal(t, src.Suites, got.Suites)
	assert.Equal(t, src.Components, got.Components)
	assert.True(t, src.Options.Equal(got.Options))
	assert.True(t, created.Equal(got.CreatedAt))
	assert.True(t, created.Equal(got.UpdatedAt))
}

func TestSourceStore_OptionBlockPresence(t *testing.T) {
	sources := setupTestStore(t).SourceStore()
	ctx := context.Background()

	none := testSource("none", "none")
	empty := testSource("empty", "empty")
	empty.Options = domain.NewOptions()

	require.NoError(t, sources.Save(ctx, none))
	require.NoError(t, sources.Save(ctx, empty))

	gotNone, err := sources.Get(ctx, "none")
	require.NoError(t, err)
	assert.Nil(t, gotNone.Options)

	gotEmpty, err := sources.Get(ctx, "empty")
	require.NoError(t, err)
	require.NotNil(t, gotEmpty.Options)
	assert.Equal(t, 0, gotEmpty.Options.Len())
}

func TestSourceStore_SaveUpdate(t *testing.T) {
	sources := setupTestStore(t).SourceStore()
	ctx := context.Background()

	src := testSource("src-1", "original")
	require.NoError(t, sources.Save(ctx, src))

	src.Name = "updated"
	src.Enabled = false
	src.Components = []string{"main"}
	require.NoError(t, sources.Save(ctx, src))

	got, err := sources.Get(ctx, "src-1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Name)
	assert.False(t, got.Enabled)
	assert.Equal(t, []string{"main"}, got.Components)

	all, err := sources.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSourceStore_Save_EmptyID(t *testing.T) {
	sources := setupTestStore(t).SourceStore()

	err := sources.Save(context.Background(), testSource("", "x"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSourceStore_Get_NotFound(t *testing.T) {
	sources := setupTestStore(t).SourceStore()

	got, err := sources.Get(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSourceStore_Delete(t *testing.T) {
	sources := setupTestStore(t).SourceStore()
	ctx := context.Background()
	require.NoError(t, sources.Save(ctx, testSource("src-1", "a")))

	require.NoError(t, sources.Delete(ctx, "src-1"))

	_, err := sources.Get(ctx, "src-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, sources.Delete(ctx, "src-1"))
}

func TestSourceStore_List(t *testing.T) {
	sources := setupTestStore(t).SourceStore()
	ctx := context.Background()

	empty, err := sources.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, sources.Save(ctx, testSource("1", "zeta")))
	require.NoError(t, sources.Save(ctx, testSource("2", "alpha")))
	require.NoError(t, sources.Save(ctx, testSource("3", "mid")))

	all, err := sources.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name)
	assert.Equal(t, "mid", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
}
