package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/aptline/internal/core/domain"
)

// SourceOutput is the JSON form of a source record.
type SourceOutput struct {
	ID         string          `json:"id,omitempty"`
	Name       string          `json:"name"`
	Enabled    bool            `json:"enabled"`
	Types      []string        `json:"types"`
	URIs       []string        `json:"uris"`
	Suites     []string        `json:"suites"`
	Components []string        `json:"components"`
	Options    []domain.Option `json:"options,omitempty"`
}

// ParseLineInput is the input schema for the parse_line tool.
type ParseLineInput struct {
	Line string `json:"line" jsonschema:"a one-line APT source, e.g. deb [ arch=amd64 ] http://deb.debian.org/debian bookworm main"`
}

// ParseLineOutput is the output schema for the parse_line tool.
type ParseLineOutput struct {
	Source   SourceOutput `json:"source"`
	Deb822   string       `json:"deb822,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// RenderLineInput is the input schema for the render_line tool.
type RenderLineInput struct {
	Enabled    bool            `json:"enabled" jsonschema:"false renders the line commented out"`
	Type       string          `json:"type" jsonschema:"deb or deb-src"`
	URI        string          `json:"uri" jsonschema:"repository URI"`
	Suite      string          `json:"suite" jsonschema:"distribution suite"`
	Components []string        `json:"components,omitempty" jsonschema:"archive components in order"`
	Options    []domain.Option `json:"options,omitempty" jsonschema:"options by canonical name, e.g. Architectures with value amd64 armel"`
}

// RenderLineOutput is the output schema for the render_line tool.
type RenderLineOutput struct {
	Line string `json:"line"`
}

// AddLineInput is the input schema for the add_line tool.
type AddLineInput struct {
	Line string `json:"line" jsonschema:"a one-line APT source to store"`
}

// AddLineOutput is the output schema for the add_line tool.
type AddLineOutput struct {
	Source SourceOutput `json:"source"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_line",
		Description: "Parse a one-line APT source into its structured deb822 form",
	}, s.handleParseLine)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_line",
		Description: "Render a structured APT source as a one-line entry",
	}, s.handleRenderLine)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_line",
		Description: "Parse a one-line APT source and add it to the stored source list",
	}, s.handleAddLine)
}

// handleParseLine handles the parse_line tool invocation.
func (s *Server) handleParseLine(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseLineInput,
) (*mcp.CallToolResult, ParseLineOutput, error) {
	src, err := s.ports.Source.ParseLine(input.Line)
	if err != nil {
		return nil, ParseLineOutput{}, err
	}

	output := ParseLineOutput{
		Source:   toOutput(*src),
		Warnings: s.ports.Source.Validate(*src),
	}
	// deb822 text is best-effort; the structured form is always returned.
	if text, err := s.ports.Source.Describe(*src); err == nil {
		output.Deb822 = text
	}

	return nil, output, nil
}

// handleRenderLine handles the render_line tool invocation.
func (s *Server) handleRenderLine(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderLineInput,
) (*mcp.CallToolResult, RenderLineOutput, error) {
	src := domain.Source{
		Enabled:    input.Enabled,
		Types:      []domain.SourceType{domain.SourceType(strings.TrimSpace(input.Type))},
		URIs:       []string{input.URI},
		Suites:     []string{input.Suite},
		Components: input.Components,
	}
	if len(input.Options) > 0 {
		src.Options = domain.NewOptions(input.Options...)
	}

	line, err := s.ports.Source.RenderLine(src)
	if err != nil {
		return nil, RenderLineOutput{}, err
	}

	return nil, RenderLineOutput{Line: line}, nil
}

// handleAddLine handles the add_line tool invocation.
func (s *Server) handleAddLine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddLineInput,
) (*mcp.CallToolResult, AddLineOutput, error) {
	src, err := s.ports.Source.AddLine(ctx, input.Line)
	if err != nil {
		return nil, AddLineOutput{}, err
	}

	return nil, AddLineOutput{Source: toOutput(*src)}, nil
}

// toOutput converts a domain source into its JSON form.
func toOutput(src domain.Source) SourceOutput {
	types := make([]string, len(src.Types))
	for i, t := range src.Types {
		types[i] = t.String()
	}
	components := src.Components
	if components == nil {
		components = []string{}
	}
	return SourceOutput{
		ID:         src.ID,
		Name:       src.Name,
		Enabled:    src.Enabled,
		Types:      types,
		URIs:       src.URIs,
		Suites:     src.Suites,
		Components: components,
		Options:    src.Options.Entries(),
	}
}
