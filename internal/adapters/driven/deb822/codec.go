package deb822

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"pault.ag/go/debian/control"

	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
)

// Field names.
const (
	FieldName       = "X-Repolib-Name"
	FieldID         = "X-Aptline-ID"
	FieldEnabled    = "Enabled"
	FieldTypes      = "Types"
	FieldURIs       = "URIs"
	FieldSuites     = "Suites"
	FieldComponents = "Components"
)

// ErrNoParagraph indicates the input held no deb822 paragraph.
var ErrNoParagraph = errors.New("no deb822 paragraph")

// Ensure Codec implements the interface.
var _ driven.RecordCodec = (*Codec)(nil)

// Codec converts sources to and from deb822 paragraphs.
type Codec struct{}

// NewCodec creates a deb822 codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Marshal writes a source as a single deb822 paragraph.
func (c *Codec) Marshal(source domain.Source) ([]byte, error) {
	if len(source.Types) == 0 || len(source.URIs) == 0 || len(source.Suites) == 0 {
		return nil, fmt.Errorf("%w: deb822 record needs types, URIs and suites", domain.ErrInvalidInput)
	}

	para := control.Paragraph{Values: map[string]string{}}
	set := func(key, value string) {
		para.Order = append(para.Order, key)
		para.Values[key] = value
	}

	if source.Name != "" {
		set(FieldName, source.Name)
	}
	if source.ID != "" {
		set(FieldID, source.ID)
	}
	set(FieldEnabled, yesNo(source.Enabled))

	types := make([]string, len(source.Types))
	for i, t := range source.Types {
		types[i] = t.String()
	}
	set(FieldTypes, strings.Join(types, " "))
	set(FieldURIs, strings.Join(source.URIs, " "))
	set(FieldSuites, strings.Join(source.Suites, " "))
	if len(source.Components) > 0 {
		set(FieldComponents, strings.Join(source.Components, " "))
	}

	for _, opt := range source.Options.Entries() {
		if isReserved(opt.Name) {
			return nil, fmt.Errorf("%w: option %q collides with a record field", domain.ErrInvalidInput, opt.Name)
		}
		set(opt.Name, opt.Value)
	}

	var buf bytes.Buffer
	if err := para.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing deb822 paragraph: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal reads the first deb822 paragraph in data.
func (c *Codec) Unmarshal(data []byte) (*domain.Source, error) {
	reader, err := control.NewParagraphReader(bufio.NewReader(bytes.NewReader(data)), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	para, err := reader.Next()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if para == nil || len(para.Order) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, ErrNoParagraph)
	}
	return fromParagraph(para)
}

func fromParagraph(para *control.Paragraph) (*domain.Source, error) {
	src := &domain.Source{Enabled: true}

	for _, key := range para.Order {
		value := strings.TrimSpace(para.Values[key])
		switch {
		case strings.EqualFold(key, FieldName), strings.EqualFold(key, "Name"):
			src.Name = value
		case strings.EqualFold(key, FieldID):
			src.ID = value
		case strings.EqualFold(key, FieldEnabled):
			src.Enabled = !strings.EqualFold(value, "no")
		case strings.EqualFold(key, FieldTypes):
			for _, tok := range strings.Fields(value) {
				t, err := domain.ParseSourceType(tok)
				if err != nil {
					return nil, err
				}
				src.Types = append(src.Types, t)
			}
		case strings.EqualFold(key, FieldURIs):
			src.URIs = strings.Fields(value)
		case strings.EqualFold(key, FieldSuites):
			src.Suites = strings.Fields(value)
		case strings.EqualFold(key, FieldComponents):
			src.Components = strings.Fields(value)
		default:
			if src.Options == nil {
				src.Options = domain.NewOptions()
			}
			name, value := optionEntry(key, value)
			src.Options.Set(name, value)
		}
	}

	switch {
	case len(src.Types) == 0:
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, FieldTypes)
	case len(src.URIs) == 0:
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, FieldURIs)
	case len(src.Suites) == 0:
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, FieldSuites)
	}

	if src.Components == nil {
		src.Components = []string{}
	}
	if src.Name == "" {
		src.Name = src.MakeName(domain.DefaultNamePrefix)
	}
	return src, nil
}

// optionEntry canonicalises a known option key case-insensitively and
// collapses its value to single spaces. Unknown options keep their value.
func optionEntry(key, value string) (string, string) {
	for _, canonical := range []string{
		domain.OptionArchitectures,
		domain.OptionLanguages,
		domain.OptionTargets,
		domain.OptionPDiffs,
		domain.OptionByHash,
	} {
		if strings.EqualFold(key, canonical) {
			return canonical, strings.Join(strings.Fields(value), " ")
		}
	}
	return key, value
}

func isReserved(key string) bool {
	for _, f := range []string{FieldName, FieldID, FieldEnabled, FieldTypes, FieldURIs, FieldSuites, FieldComponents} {
		if strings.EqualFold(key, f) {
			return true
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
