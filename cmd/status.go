package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hybridctl/ui/console"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a one-shot status report",
	Long: `Run every probe once and print a compact report: overlay storage,
system facts, modules with their mount modes, path conflicts and
diagnostics. The output survives adb shell and pastes cleanly into bug
reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		client, mock := buildClient(cmd.Context(), cfg)
		report := console.Gather(cmd.Context(), client)
		report.Mock = mock
		console.Print(os.Stdout, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
