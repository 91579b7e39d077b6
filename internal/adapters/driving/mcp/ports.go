package mcp

import (
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Source converts and manages APT sources.
	Source driving.SourceService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Source == nil {
		return ErrMissingSourceService
	}
	return nil
}
