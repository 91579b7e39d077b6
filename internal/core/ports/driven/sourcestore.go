package driven

import (
	"context"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// SourceStore persists source records.
type SourceStore interface {
	// Save stores or updates a source.
	Save(ctx context.Context, source domain.Source) error

	// Get retrieves a source by ID.
	// Returns domain.ErrNotFound if no source has that ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// Delete removes a source.
	Delete(ctx context.Context, id string) error

	// List returns all stored sources.
	List(ctx context.Context) ([]domain.Source, error)
}

// SourceWatcher is implemented by stores whose records can change underneath
// the process, such as a directory of .sources files.
type SourceWatcher interface {
	// Watch emits an event for every external change until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.SourceEvent, error)
}
