package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hybridctl/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the admin operations as MCP tools on stdio",
	Long: `Expose the daemon admin operations (config, modules, logs, storage,
conflicts, diagnostics) as Model Context Protocol tools over stdio, for
editors and agents.

The protocol runs on stdout; diagnostics go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		client, mock := buildClient(cmd.Context(), cfg)
		if mock && !flagMock {
			fmt.Fprintln(os.Stderr, "daemon unreachable: serving mock data")
		}

		srv := mcpserver.NewServer(mcpserver.Config{
			ServerName:    "hybridctl",
			ServerVersion: Version,
		}, client)
		return srv.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
