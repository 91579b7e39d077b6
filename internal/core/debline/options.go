package debline

import (
	"strings"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// DecodeOptions decodes a bracketed option block such as
// "[ arch=amd64,armel lang=en_US ]" into canonical-keyed options.
//
// Only the first and last characters are treated as brackets, so bracket
// characters inside values survive. Keys are rewritten to canonical names
// only in key position; a value containing "lang" is left alone. Repeated
// keys are last-wins.
func DecodeOptions(block string) *domain.Options {
	opts := domain.NewOptions()

	r := []rune(block)
	if len(r) > 0 {
		r[0] = ' '
		r[len(r)-1] = ' '
	}

	for _, tok := range strings.Fields(string(r)) {
		key, rest, _ := strings.Cut(tok, "=")
		name, _ := domain.CanonicalOptionName(key)
		values := strings.Split(strings.ReplaceAll(rest, "=", ","), ",")
		opts.Set(name, strings.Join(values, " "))
	}
	return opts
}

// EncodeOptions renders options as the inside of a one-line option block,
// e.g. "arch=amd64,armel lang=en_US". The surrounding brackets are not included.
func EncodeOptions(opts *domain.Options) string {
	entries := opts.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		token, _ := domain.ShortOptionName(e.Name)
		parts = append(parts, token+"="+strings.Join(strings.Fields(e.Value), ","))
	}
	return strings.Join(parts, " ")
}
