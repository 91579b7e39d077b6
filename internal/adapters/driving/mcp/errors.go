// Package mcp provides an MCP (Model Context Protocol) server adapter for aptline.
// It lets AI assistants convert between one-line and deb822 APT sources and
// manage the stored source list.
package mcp

import "errors"

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("mcp: source service is required")
