package debline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

func TestDecodeOptions(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected []domain.Option
	}{
		{
			name:     "single",
			block:    "[ arch=amd64 ]",
			expected: []domain.Option{{Name: "Architectures", Value: "amd64"}},
		},
		{
			name:     "no inner spaces",
			block:    "[arch=amd64]",
			expected: []domain.Option{{Name: "Architectures", Value: "amd64"}},
		},
		{
			name:  "several values and keys",
			block: "[ arch=amd64,armel lang=en_US ]",
			expected: []domain.Option{
				{Name: "Architectures", Value: "amd64 armel"},
				{Name: "Languages", Value: "en_US"},
			},
		},
		{
			name:     "key name inside a value is left alone",
			block:    "[ target=lang-pack ]",
			expected: []domain.Option{{Name: "Targets", Value: "lang-pack"}},
		},
		{
			name:     "unknown key passes through",
			block:    "[ signed-by=/etc/key.gpg ]",
			expected: []domain.Option{{Name: "signed-by", Value: "/etc/key.gpg"}},
		},
		{
			name:     "repeated key is last wins",
			block:    "[ arch=amd64 arch=i386 ]",
			expected: []domain.Option{{Name: "Architectures", Value: "i386"}},
		},
		{
			name:     "inner brackets survive",
			block:    "[ arch=arm][ ]",
			expected: []domain.Option{{Name: "Architectures", Value: "arm]["}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DecodeOptions(tt.block)
			assert.Equal(t, tt.expected, opts.Entries())
		})
	}
}

func TestDecodeOptions_Empty(t *testing.T) {
	opts := DecodeOptions("")
	assert.NotNil(t, opts)
	assert.Equal(t, 0, opts.Len())
}

func TestEncodeOptions(t *testing.T) {
	opts := domain.NewOptions(
		domain.Option{Name: domain.OptionArchitectures, Value: "amd64 armel"},
		domain.Option{Name: domain.OptionLanguages, Value: "en_US"},
		domain.Option{Name: domain.OptionByHash, Value: "yes"},
	)

	assert.Equal(t, "arch=amd64,armel lang=en_US by-hash=yes", EncodeOptions(opts))
	assert.Equal(t, "", EncodeOptions(nil))
}

func TestOptionsCodecLaw(t *testing.T) {
	sets := []*domain.Options{
		domain.NewOptions(domain.Option{Name: domain.OptionArchitectures, Value: "amd64"}),
		domain.NewOptions(
			domain.Option{Name: domain.OptionArchitectures, Value: "amd64 arm64 armhf"},
			domain.Option{Name: domain.OptionLanguages, Value: "en de"},
			domain.Option{Name: domain.OptionTargets, Value: "Contents-deb"},
			domain.Option{Name: domain.OptionPDiffs, Value: "no"},
		),
		domain.NewOptions(domain.Option{Name: "Trusted", Value: "yes"}),
	}

	for _, opts := range sets {
		t.Run(EncodeOptions(opts), func(t *testing.T) {
			decoded := DecodeOptions("[ " + EncodeOptions(opts) + " ]")
			assert.True(t, opts.Equal(decoded))
		})
	}
}
