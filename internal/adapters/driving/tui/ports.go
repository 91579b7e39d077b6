// Package tui provides an interactive terminal user interface for aptline.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Source manages APT source records.
	Source driving.SourceService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(source driving.SourceService, settings driving.SettingsService) *Ports {
	return &Ports{
		Source:   source,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
