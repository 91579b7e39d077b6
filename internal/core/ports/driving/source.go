package driving

import (
	"context"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// SourceService converts and manages APT source records.
type SourceService interface {
	// ParseLine converts a one-line descriptor into a source record.
	// The record name is derived with the configured prefix. No ID is assigned.
	ParseLine(line string) (*domain.Source, error)

	// RenderLine converts a source record into a one-line descriptor.
	RenderLine(source domain.Source) (string, error)

	// RenderLines converts a source record into one line per type, URI and suite.
	RenderLines(source domain.Source) ([]string, error)

	// Describe renders a source in deb822 form.
	Describe(source domain.Source) (string, error)

	// ParseRecord decodes a deb822 paragraph into a source record.
	ParseRecord(data []byte) (*domain.Source, error)

	// AddLine parses a one-line descriptor and stores the result.
	AddLine(ctx context.Context, line string) (*domain.Source, error)

	// Add stores a new source, assigning an ID if it has none.
	// Returns domain.ErrAlreadyExists if a source with the same name exists.
	Add(ctx context.Context, source domain.Source) (*domain.Source, error)

	// Get retrieves a source by ID.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all stored sources sorted by name.
	List(ctx context.Context) ([]domain.Source, error)

	// Update modifies an existing source.
	Update(ctx context.Context, source domain.Source) error

	// Remove deletes a source.
	Remove(ctx context.Context, id string) error

	// SetEnabled enables or disables a stored source.
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Source, error)

	// SetSourceCode adds or drops deb-src entries on a stored source.
	SetSourceCode(ctx context.Context, id string, enabled bool) (*domain.Source, error)

	// Validate returns human-readable warnings about a source.
	// An empty result means no problems were found.
	Validate(source domain.Source) []string

	// Watch reports external changes to stored sources until ctx is cancelled.
	// Returns domain.ErrWatchUnsupported if the store cannot be watched.
	Watch(ctx context.Context) (<-chan domain.SourceEvent, error)
}
