// Package sourcesdir stores each source as a deb822 .sources file in a
// directory such as /etc/apt/sources.list.d.
//
// The record ID is kept in the X-Aptline-ID field. Files written by other
// tools have no such field and use their filename stem as ID. Only the
// first paragraph of each file is read.
package sourcesdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
	"github.com/custodia-labs/aptline/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.SourceStore   = (*Store)(nil)
	_ driven.SourceWatcher = (*Store)(nil)
)

// Store is a directory of .sources files.
type Store struct {
	dir   string
	codec driven.RecordCodec
	mu    sync.Mutex
}

// entry pairs a decoded source with the file it came from.
type entry struct {
	path   string
	source domain.Source
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string, codec driven.RecordCodec) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: sources directory is empty", domain.ErrInvalidInput)
	}
	if codec == nil {
		return nil, fmt.Errorf("%w: codec is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating sources directory: %w", err)
	}
	return &Store{dir: dir, codec: codec}, nil
}

// Dir returns the directory being managed.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes source to <dir>/<name>.sources, removing the old file if
// the name changed.
func (s *Store) Save(_ context.Context, source domain.Source) error {
	if source.ID == "" || source.Name == "" {
		return fmt.Errorf("%w: source needs an ID and a name", domain.ErrInvalidInput)
	}
	if strings.ContainsRune(source.Name, filepath.Separator) {
		return fmt.Errorf("%w: name %q contains a path separator", domain.ErrInvalidInput, source.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.scan()
	if err != nil {
		return err
	}

	target := filepath.Join(s.dir, source.Filename())
	var previous string
	for _, e := range entries {
		if e.source.ID == source.ID {
			previous = e.path
			continue
		}
		if e.path == target {
			return fmt.Errorf("%w: %s is used by source %s", domain.ErrAlreadyExists, source.Filename(), e.source.ID)
		}
	}

	data, err := s.codec.Marshal(source)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(target, data); err != nil {
		return err
	}
	if previous != "" && previous != target {
		if err := os.Remove(previous); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing renamed source file: %w", err)
		}
	}
	logger.Debug("wrote %s", target)
	return nil
}

// Get retrieves a source by ID.
func (s *Store) Get(_ context.Context, id string) (*domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return &e.source, nil
}

// Delete removes the file holding the source. Unknown IDs are ignored.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.find(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing source file: %w", err)
	}
	logger.Debug("removed %s", e.path)
	return nil
}

// List returns every readable source in the directory, in filename order.
func (s *Store) List(_ context.Context) ([]domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.scan()
	if err != nil {
		return nil, err
	}
	sources := make([]domain.Source, 0, len(entries))
	for _, e := range entries {
		sources = append(sources, e.source)
	}
	return sources, nil
}

func (s *Store) find(id string) (*entry, error) {
	entries, err := s.scan()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].source.ID == id {
			return &entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// scan reads all .sources files. Unreadable files are logged and skipped.
func (s *Store) scan() ([]entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading sources directory: %w", err)
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !isSourcesFile(de.Name()) {
			continue
		}
		path := filepath.Join(s.dir, de.Name())
		src, err := s.read(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		entries = append(entries, entry{path: path, source: *src})
	}
	return entries, nil
}

func (s *Store) read(path string) (*domain.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, err := s.codec.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if src.ID == "" {
		src.ID = strings.TrimSuffix(filepath.Base(path), domain.FilenameSuffix)
	}
	if info, err := os.Stat(path); err == nil {
		src.CreatedAt = info.ModTime()
		src.UpdatedAt = info.ModTime()
	}
	return src, nil
}

func isSourcesFile(name string) bool {
	return strings.HasSuffix(name, domain.FilenameSuffix) && !strings.HasPrefix(name, ".")
}

// writeFileAtomic writes data to a temporary file and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".aptline-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Watch emits an event for every .sources file written or removed in the
// directory until ctx is cancelled, then closes the channel.
func (s *Store) Watch(ctx context.Context) (<-chan domain.SourceEvent, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(s.dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", s.dir, err)
	}

	events := make(chan domain.SourceEvent)
	go func() {
		defer close(events)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				out, ok := s.handleEvent(ev)
				if !ok {
					continue
				}
				select {
				case events <- out:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error: %v", err)
			}
		}
	}()

	return events, nil
}

// handleEvent converts a filesystem event into a source event.
// Events for other files and chmod-only events are dropped.
func (s *Store) handleEvent(ev fsnotify.Event) (domain.SourceEvent, bool) {
	if !isSourcesFile(filepath.Base(ev.Name)) {
		return domain.SourceEvent{}, false
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return domain.SourceEvent{Kind: domain.SourceEventRemoved, Path: ev.Name}, true
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		out := domain.SourceEvent{Kind: domain.SourceEventWritten, Path: ev.Name}
		src, err := s.read(ev.Name)
		if err != nil {
			out.Err = err
		} else {
			out.Source = src
		}
		return out, true
	default:
		return domain.SourceEvent{}, false
	}
}
