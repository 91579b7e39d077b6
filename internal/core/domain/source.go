package domain

import (
	"fmt"
	"strings"
	"time"
)

// SourceType identifies the kind of packages an APT source provides.
type SourceType string

// Available source types.
const (
	// SourceTypeBinary provides binary packages ("deb").
	SourceTypeBinary SourceType = "deb"

	// SourceTypeSource provides source packages ("deb-src").
	SourceTypeSource SourceType = "deb-src"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	return t == SourceTypeBinary || t == SourceTypeSource
}

// String returns the wire token for the type.
func (t SourceType) String() string {
	return string(t)
}

// ParseSourceType converts a wire token into a SourceType.
func ParseSourceType(s string) (SourceType, error) {
	t := SourceType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: source type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// FilenameSuffix is appended to a source name to build its on-disk filename.
const FilenameSuffix = ".sources"

// DefaultNamePrefix is the prefix used for names derived from one-line descriptors.
const DefaultNamePrefix = "deb-"

// Source is the structured form of an APT package source.
// The zero value is an empty, disabled record.
type Source struct {
	// ID is the unique identifier used by stores.
	ID string

	// Name is the human-readable name, usually derived from the first URI.
	Name string

	// Enabled is false when the source is commented out.
	Enabled bool

	// Types lists the kinds of packages provided. One-line descriptors carry exactly one.
	Types []SourceType

	// URIs lists the repository locations.
	URIs []string

	// Suites lists the distribution suites.
	Suites []string

	// Components lists the archive components, in input order.
	Components []string

	// Options holds the option block. Nil means no option block was present.
	Options *Options

	// CreatedAt is when the source was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the source was last stored.
	UpdatedAt time.Time
}

// HasType reports whether the source provides packages of type t.
func (s *Source) HasType(t SourceType) bool {
	for _, st := range s.Types {
		if st == t {
			return true
		}
	}
	return false
}

// SetSourceCode toggles source-package (deb-src) entries alongside binaries.
func (s *Source) SetSourceCode(enabled bool) {
	if enabled {
		s.Types = []SourceType{SourceTypeBinary, SourceTypeSource}
		return
	}
	s.Types = []SourceType{SourceTypeBinary}
}

// Clone returns a deep copy of the source.
func (s *Source) Clone() Source {
	c := *s
	c.Types = append([]SourceType(nil), s.Types...)
	c.URIs = append([]string(nil), s.URIs...)
	c.Suites = append([]string(nil), s.Suites...)
	c.Components = append([]string(nil), s.Components...)
	if s.Options != nil {
		c.Options = s.Options.Clone()
	}
	return c
}

// nameCleaner strips or dashes out characters that do not belong in a filename.
var nameCleaner = strings.NewReplacer(
	"!", "", ")", "", "(", "", "[", "", "]", "", "{", "", "}", "",
	"'", "", `"`, "", "<", "", ">", "", "?", "", "`", "",
	"@", "-", "#", "-", "$", "-", "%", "-", "^", "-", "&", "-", "*", "-",
	"+", "-", "=", "-", "|", "-", `\`, "-", ":", "-", ";", "-", ",", "-",
	".", "-", "/", "-", "~", "-", " ", "-",
)

// MakeName derives a name from the first URI.
// "http://example.com/ubuntu" with prefix "deb-" becomes "deb-example-com-ubuntu".
// Returns the bare prefix if the source has no URIs.
func (s *Source) MakeName(prefix string) string {
	if len(s.URIs) == 0 {
		return prefix
	}
	fields := strings.Fields(strings.ReplaceAll(s.URIs[0], "/", " "))
	if len(fields) > 0 {
		fields = fields[1:]
	}
	return prefix + nameCleaner.Replace(strings.Join(fields, "-"))
}

// Filename returns the on-disk filename for the source.
func (s *Source) Filename() string {
	return s.Name + FilenameSuffix
}

// DisplayName returns the name, falling back to the ID.
func (s *Source) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}
