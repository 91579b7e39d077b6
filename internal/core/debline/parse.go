package debline

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

var (
	// uriPattern matches a word, a colon, up to two slashes and a run of non-space characters.
	uriPattern = regexp.MustCompile(`\w+:(/?/?)\S+`)

	// optionsPattern matches a bracketed block not preceded by '@', '.' or '+'
	// and followed by a space. Group 1 is the block including its brackets.
	// The block may be empty.
	optionsPattern = regexp.MustCompile(`[^@.+](\[[^\[]*.*\]) `)
)

// cdromMarker identifies CD-ROM sources, which are only supported in deb822 form.
const cdromMarker = "cdrom:"

// Parse converts a one-line descriptor into a source record.
//
// When several URI-like tokens appear on the line the last one is used.
// Errors are *LineError values wrapping ErrUnsupportedURIScheme,
// ErrMissingURI or ErrMalformedLine.
func Parse(line string) (*domain.Source, error) {
	src := &domain.Source{Enabled: true}

	rest := strings.TrimSpace(line)
	if strings.HasPrefix(rest, "#") {
		src.Enabled = false
		rest = strings.TrimSpace(strings.Replace(rest, "#", "", 1))
	}

	if strings.Contains(line, cdromMarker) {
		return nil, &LineError{Line: line, Err: ErrUnsupportedURIScheme}
	}

	matches := uriPattern.FindAllStringIndex(rest, -1)
	if len(matches) == 0 {
		return nil, &LineError{Line: line, Err: ErrMissingURI}
	}
	last := matches[len(matches)-1]
	src.URIs = []string{rest[last[0]:last[1]]}
	rest = rest[:last[0]] + rest[last[1]:]

	// A bracketed word inside a trailing comment is not an option block.
	head := rest
	if i := commentStart(rest); i >= 0 {
		head = rest[:i]
	}
	if loc := optionsPattern.FindStringSubmatchIndex(head); loc != nil {
		src.Options = DecodeOptions(strings.TrimSpace(rest[loc[2]:loc[3]]))
		rest = rest[:loc[2]] + rest[loc[3]:]
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 || strings.HasPrefix(fields[1], "#") {
		return nil, &LineError{Line: line, Err: ErrMalformedLine}
	}

	src.Types = []domain.SourceType{domain.SourceTypeBinary}
	if fields[0] == domain.SourceTypeSource.String() {
		src.Types = []domain.SourceType{domain.SourceTypeSource}
	}
	src.Suites = []string{fields[1]}

	src.Components = make([]string, 0, len(fields)-2)
	for _, f := range fields[2:] {
		if strings.HasPrefix(f, "#") {
			break
		}
		src.Components = append(src.Components, f)
	}

	src.Name = src.MakeName(domain.DefaultNamePrefix)
	return src, nil
}

// commentStart returns the index of the first whitespace-separated token
// starting with '#', or -1.
func commentStart(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && (i == 0 || s[i-1] == ' ' || s[i-1] == '\t') {
			return i
		}
	}
	return -1
}
