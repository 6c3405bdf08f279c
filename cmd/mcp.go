package cmd

import (
	"github.com/movelab/motifscan/internal/capture"
	"github.com/movelab/motifscan/internal/mcp"
	"github.com/movelab/motifscan/internal/runstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Motifscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to run motion motif analysis via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Validate config up front so tool calls start from a known-good
		// baseline; stdio stays reserved for the protocol itself.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := runstore.NewRunStore(cfg.RunBackend, cfg.RunDBConnect)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		return mcp.StartMCPServer(rootCtx, cfg, capture.NewCapturySource(), store)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
