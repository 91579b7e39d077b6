package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/aptline/internal/adapters/driving/mcp"
	"github.com/custodia-labs/aptline/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead. --port 0 with --http picks a
free port starting at 8080.

Examples:
  # Stdio mode (default)
  aptline mcp serve

  # HTTP mode
  aptline mcp serve --port 8080
  aptline mcp serve --http`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio unless --http is set)")
	mcpServeCmd.Flags().Bool("http", false, "serve over HTTP on the first free port from 8080")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	useHTTP, err := cmd.Flags().GetBool("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Source: sourceService})
	if err != nil {
		return err
	}

	if port == 0 && useHTTP {
		port, err = services.FindAvailablePort(8080, 8180)
		if err != nil {
			return err
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
