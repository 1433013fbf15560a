package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"hybridctl/ui/tui"
)

// Version is stamped by the release build via -ldflags.
var Version = "dev"

var (
	flagMock      bool
	flagDaemonBin string
	flagLogFile   string
	flagRepo      string
)

var rootCmd = &cobra.Command{
	Use:   "hybridctl",
	Short: "Admin console for the meta-hybrid mount daemon",
	Long: `hybridctl is the admin console for the meta-hybrid module mount daemon.
Run it with no arguments for the interactive TUI; use the subcommands for
scripted or machine access.

When the daemon is unreachable every command falls back to built-in mock
data, so the console can be exercised off-device.`,
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		client, mock := buildClient(cmd.Context(), cfg)
		contrib, closeCache := buildContrib(cfg)
		defer closeCache()

		return tui.Start(tui.Options{
			Client:    client,
			Contrib:   contrib,
			AppConfig: cfg,
			Version:   Version,
			Mock:      mock,
		})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "use built-in mock data instead of the daemon")
	rootCmd.PersistentFlags().StringVar(&flagDaemonBin, "daemon-bin", "", "path to the meta-hybrid binary")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "path to the daemon log file")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "GitHub repo for the Info tab (owner/name)")
}
