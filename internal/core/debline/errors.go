package debline

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// Parse errors.
var (
	// ErrUnsupportedURIScheme indicates a cdrom: source, which must use the deb822 form.
	ErrUnsupportedURIScheme = errors.New("cdrom: sources are not supported in one-line form")

	// ErrMissingURI indicates no URI-like token was found on the line.
	ErrMissingURI = errors.New("no URI found")

	// ErrMalformedLine indicates the line lacks a type or suite.
	ErrMalformedLine = errors.New("malformed one-line descriptor")
)

// Render errors.
var (
	// ErrTooManyTypes indicates the record does not have exactly one type.
	ErrTooManyTypes = errors.New("one-line form requires exactly one type")

	// ErrTooManyURIs indicates the record does not have exactly one URI.
	ErrTooManyURIs = errors.New("one-line form requires exactly one URI")

	// ErrTooManySuites indicates the record does not have exactly one suite.
	ErrTooManySuites = errors.New("one-line form requires exactly one suite")

	// ErrUnknownType indicates the record type is neither deb nor deb-src.
	ErrUnknownType = errors.New("unknown source type")
)

// LineError reports a line that could not be parsed.
type LineError struct {
	// Line is the offending input, verbatim.
	Line string

	// Err is one of the parse sentinels.
	Err error
}

// Error implements error.
func (e *LineError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Line, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Is makes every LineError match domain.ErrInvalidInput.
func (e *LineError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// RecordError reports a record that cannot be rendered as one line.
type RecordError struct {
	// Name is the record name, if any.
	Name string

	// Err is one of the render sentinels.
	Err error
}

// Error implements error.
func (e *RecordError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("rendering source: %v", e.Err)
	}
	return fmt.Sprintf("rendering source %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// Is makes every RecordError match domain.ErrInvalidInput.
func (e *RecordError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}
