package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/confsched/confsched/cmd/confsched/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for assistant integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio that lets an
assistant search the program, inspect sessions, and manage the starred
agenda.

Configure in an MCP client, for example:
  {
    "mcpServers": {
      "confsched": {
        "command": "confsched",
        "args": ["mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath, linkFlag, cmd.Flags().Changed("link")); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
