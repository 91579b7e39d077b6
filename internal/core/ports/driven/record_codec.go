package driven

import "github.com/custodia-labs/aptline/internal/core/domain"

// RecordCodec converts sources to and from their multi-line deb822 form.
type RecordCodec interface {
	// Marshal writes a source as a single deb822 paragraph.
	Marshal(source domain.Source) ([]byte, error)

	// Unmarshal reads the first deb822 paragraph in data.
	// Returns an error wrapping domain.ErrInvalidInput if no paragraph is present.
	Unmarshal(data []byte) (*domain.Source, error)
}
