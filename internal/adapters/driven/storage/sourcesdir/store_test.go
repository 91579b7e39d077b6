package sourcesdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/aptline/internal/adapters/driven/deb822"
	"github.com/custodia-labs/aptline/internal/core/domain"
)

const foreignFile = "Types: deb\nURIs: http://ports.example.org/\nSuites: jammy\nComponents: main\n"

func setupStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(dir, deb822.NewCodec())
	require.NoError(t, err)
	return store, dir
}

func testSource(id, name string) domain.Source {
	return domain.Source{
		ID:         id,
		Name:       name,
		Enabled:    true,
		Types:      []domain.SourceType{domain.SourceTypeBinary},
		URIs:       []string{"http://example.com/"},
		Suites:     []string{"suite"},
		Components: []string{"main"},
	}
}

func TestNewStore(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "sources.list.d")

	store, err := NewStore(nested, deb822.NewCodec())

	require.NoError(t, err)
	assert.Equal(t, nested, store.Dir())
	assert.DirExists(t, nested)
}

func TestNewStore_Errors(t *testing.T) {
	_, err := NewStore("", deb822.NewCodec())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewStore(t.TempDir(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_SaveAndGet(t *testing.T) {
	store, dir := setupStore(t)
	ctx := context.Background()
	src := testSource("id-1", "deb-example-com")
	src.Options = domain.NewOptions(domain.Option{Name: domain.OptionArchitectures, Value: "amd64"})

	require.NoError(t, store.Save(ctx, src))

	path := filepath.Join(dir, "deb-example-com.sources")
	require.FileExists(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "X-Aptline-ID: id-1\n")
	assert.Contains(t, string(data), "Architectures: amd64\n")

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, "deb-example-com", got.Name)
	assert.Equal(t, src.URIs, got.URIs)
	assert.True(t, src.Options.Equal(got.Options))
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStore_Save_InvalidInput(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, testSource("", "name")), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, testSource("id", "")), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(ctx, testSource("id", "a/b")), domain.ErrInvalidInput)
}

func TestStore_Save_RenameRemovesOldFile(t *testing.T) {
	store, dir := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSource("id-1", "old-name")))
	require.NoError(t, store.Save(ctx, testSource("id-1", "new-name")))

	assert.NoFileExists(t, filepath.Join(dir, "old-name.sources"))
	assert.FileExists(t, filepath.Join(dir, "new-name.sources"))

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_Save_NameTakenByOtherSource(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSource("id-1", "shared")))

	err := store.Save(ctx, testSource("id-2", "shared"))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStore_ForeignFileUsesStemAsID(t *testing.T) {
	store, dir := setupStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ubuntu-ports.sources"), []byte(foreignFile), 0644))

	got, err := store.Get(context.Background(), "ubuntu-ports")

	require.NoError(t, err)
	assert.Equal(t, "ubuntu-ports", got.ID)
	assert.Equal(t, "deb-ports-example-org", got.Name)
	assert.Equal(t, []string{"jammy"}, got.Suites)
}

func TestStore_List_SkipsOtherAndBrokenFiles(t *testing.T) {
	store, dir := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSource("b", "b-source")))
	require.NoError(t, store.Save(ctx, testSource("a", "a-source")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.sources"), []byte("Types: deb\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.list"), []byte("deb http://x/ y z\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sources"), 0755))

	all, err := store.List(ctx)

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-source", all[0].Name)
	assert.Equal(t, "b-source", all[1].Name)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, _ := setupStore(t)

	got, err := store.Get(context.Background(), "missing")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store, dir := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSource("id-1", "gone")))

	require.NoError(t, store.Delete(ctx, "id-1"))

	assert.NoFileExists(t, filepath.Join(dir, "gone.sources"))
	assert.NoError(t, store.Delete(ctx, "id-1"))
}

func TestStore_HandleEvent(t *testing.T) {
	store, dir := setupStore(t)
	written := filepath.Join(dir, "written.sources")
	require.NoError(t, os.WriteFile(written, []byte(foreignFile), 0644))
	broken := filepath.Join(dir, "broken.sources")
	require.NoError(t, os.WriteFile(broken, []byte(""), 0644))

	tests := []struct {
		name       string
		event      fsnotify.Event
		handled    bool
		kind       domain.SourceEventKind
		wantSource bool
	}{
		{
			name:       "create",
			event:      fsnotify.Event{Name: written, Op: fsnotify.Create},
			handled:    true,
			kind:       domain.SourceEventWritten,
			wantSource: true,
		},
		{
			name:       "write",
			event:      fsnotify.Event{Name: written, Op: fsnotify.Write},
			handled:    true,
			kind:       domain.SourceEventWritten,
			wantSource: true,
		},
		{
			name:    "write of unreadable file",
			event:   fsnotify.Event{Name: broken, Op: fsnotify.Write},
			handled: true,
			kind:    domain.SourceEventWritten,
		},
		{
			name:    "remove",
			event:   fsnotify.Event{Name: filepath.Join(dir, "gone.sources"), Op: fsnotify.Remove},
			handled: true,
			kind:    domain.SourceEventRemoved,
		},
		{
			name:    "rename",
			event:   fsnotify.Event{Name: filepath.Join(dir, "moved.sources"), Op: fsnotify.Rename},
			handled: true,
			kind:    domain.SourceEventRemoved,
		},
		{
			name:  "chmod",
			event: fsnotify.Event{Name: written, Op: fsnotify.Chmod},
		},
		{
			name:  "other suffix",
			event: fsnotify.Event{Name: filepath.Join(dir, "legacy.list"), Op: fsnotify.Write},
		},
		{
			name:  "temp file",
			event: fsnotify.Event{Name: filepath.Join(dir, ".aptline-1.sources"), Op: fsnotify.Create},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := store.handleEvent(tt.event)

			assert.Equal(t, tt.handled, ok)
			if !tt.handled {
				return
			}
			assert.Equal(t, tt.kind, ev.Kind)
			assert.Equal(t, tt.event.Name, ev.Path)
			if tt.wantSource {
				require.NotNil(t, ev.Source)
				assert.NoError(t, ev.Err)
			} else {
				assert.Nil(t, ev.Source)
			}
		})
	}
}

func TestStore_Watch(t *testing.T) {
	store, dir := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), testSource("id-1", "watched")))

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Kind != domain.SourceEventWritten || ev.Source == nil {
				continue
			}
			assert.Equal(t, filepath.Join(dir, "watched.sources"), ev.Path)
			assert.Equal(t, "id-1", ev.Source.ID)
			return
		case <-timeout:
			t.Fatal("timeout waiting for write event")
		}
	}
}

func TestStore_Watch_ClosesOnCancel(t *testing.T) {
	store, _ := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		if ok {
			for range events {
			}
		}
	case <-time.After(time.Second):
		t.Fatal("channel did not close after context cancellation")
	}
}

func TestStore_Watch_MissingDir(t *testing.T) {
	store, dir := setupStore(t)
	require.NoError(t, os.RemoveAll(dir))

	events, err := store.Watch(context.Background())

	assert.Error(t, err)
	assert.Nil(t, events)
}
