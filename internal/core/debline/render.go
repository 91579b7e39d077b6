package debline

import (
	"strings"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// CheckRenderable reports whether src can be written as a single line.
// It returns a *RecordError for records with more than one URI, suite or type.
func CheckRenderable(src *domain.Source) error {
	var err error
	switch {
	case len(src.URIs) != 1:
		err = ErrTooManyURIs
	case len(src.Suites) != 1:
		err = ErrTooManySuites
	case len(src.Types) != 1:
		err = ErrTooManyTypes
	case !src.Types[0].IsValid():
		err = ErrUnknownType
	}
	if err != nil {
		return &RecordError{Name: src.Name, Err: err}
	}
	return nil
}

// Render converts a source record into a one-line descriptor.
// An option block is written only when the record has at least one option.
func Render(src domain.Source) (string, error) {
	if err := CheckRenderable(&src); err != nil {
		return "", err
	}

	parts := make([]string, 0, 7+len(src.Components))
	if !src.Enabled {
		parts = append(parts, "#")
	}
	parts = append(parts, src.Types[0].String())
	if src.Options.Len() > 0 {
		parts = append(parts, "[", EncodeOptions(src.Options), "]")
	}
	parts = append(parts, src.URIs[0], src.Suites[0])
	parts = append(parts, src.Components...)

	return strings.TrimRight(strings.Join(parts, " "), " \t"), nil
}

// Expand splits a record into one record per type, URI and suite so each can
// be rendered as a single line. Types vary slowest and suites fastest.
// A record missing types, URIs or suites expands to nothing.
func Expand(src domain.Source) []domain.Source {
	out := make([]domain.Source, 0, len(src.Types)*len(src.URIs)*len(src.Suites))
	for _, t := range src.Types {
		for _, uri := range src.URIs {
			for _, suite := range src.Suites {
				c := src.Clone()
				c.Types = []domain.SourceType{t}
				c.URIs = []string{uri}
				c.Suites = []string{suite}
				out = append(out, c)
			}
		}
	}
	return out
}
