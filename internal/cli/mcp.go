package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/tsawler/docxtree"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server on stdio exposing two tools:

  docx_convert   convert a .docx file to a JSON content tree
  docx_metadata  read the title and author of a .docx file

Logs go to stderr; stdout carries the protocol.

Client configuration:
  {
    "mcpServers": {
      "docxtree": {
        "command": "/path/to/docxtree",
        "args": ["mcp", "--assets", "/tmp/docxtree"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("assets", "", "default directory for extracted images (empty discards them)")
	rootCmd.AddCommand(mcpCmd)
}

// newMCPServer builds the server with the docxtree tools registered.
func newMCPServer(cmd *cobra.Command) *mcp.Server {
	assetDir, _ := cmd.Flags().GetString("assets")
	verbose, _ := cmd.Flags().GetBool("verbose")

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "docxtree",
		Version: version,
	}, nil)
	docxtree.RegisterMCP(srv, docxtree.MCPConfig{
		AssetDir: assetDir,
		Logger:   newLogger(cmd.ErrOrStderr(), verbose),
	})
	return srv
}

func runMCP(cmd *cobra.Command, _ []string) error {
	return newMCPServer(cmd).Run(cmd.Context(), &mcp.StdioTransport{})
}
