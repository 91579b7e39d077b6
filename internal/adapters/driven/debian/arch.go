// Package debian validates option values against Debian naming rules
// using pault.ag/go/debian.
package debian

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pault.ag/go/debian/dependency"

	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driven"
)

// ErrInvalidArchitecture indicates a value that is not a Debian architecture.
var ErrInvalidArchitecture = errors.New("invalid architecture")

// archToken matches lowercase alphanumerics separated by single hyphens.
var archToken = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Ensure ArchValidator implements the interface.
var _ driven.OptionValidator = (*ArchValidator)(nil)

// ArchValidator checks Architectures values such as "amd64", "linux-any"
// or "gnu-linux-arm64".
type ArchValidator struct{}

// NewArchValidator creates an architecture validator.
func NewArchValidator() *ArchValidator {
	return &ArchValidator{}
}

// ValidateArchitecture returns an error if arch is not a valid Debian
// architecture name or wildcard.
func (v *ArchValidator) ValidateArchitecture(arch string) error {
	if !archToken.MatchString(arch) || strings.Count(arch, "-") > 2 {
		return invalid(arch)
	}
	parsed, err := dependency.ParseArch(arch)
	if err != nil || parsed == nil || parsed.CPU == "" {
		return invalid(arch)
	}
	return nil
}

func invalid(arch string) error {
	return fmt.Errorf("%w: %w %q", domain.ErrInvalidInput, ErrInvalidArchitecture, arch)
}
