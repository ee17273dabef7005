package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
GDPR Articles 1-21.

Tools:
  retrieve_gdpr - top-k chunks for a query, with ids and scores
  ask_gdpr      - grounded answer and its source chunk ids

Resources:
  gdpr://articles          - all article summaries
  gdpr://articles/{number} - one article summary

By default the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  gdpr-rag mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  gdpr-rag mcp serve --http :8080`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationStderrProgress: "true"},
	RunE:        runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return err
	}
	if queryService == nil {
		return notConfigured("query")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Query:    queryService,
		Articles: articleService,
	})
	if err != nil {
		return err
	}

	if addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
