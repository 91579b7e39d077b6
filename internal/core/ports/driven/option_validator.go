package driven

// OptionValidator checks option values against Debian naming rules.
type OptionValidator interface {
	// ValidateArchitecture returns an error if arch is not a valid Debian
	// architecture name or wildcard.
	ValidateArchitecture(arch string) error
}
