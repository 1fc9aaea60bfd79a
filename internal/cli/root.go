package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// NewRootCommand builds the bcbp_trmnl command tree.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "bcbp_trmnl",
		Short: "Decode and record IATA bar coded boarding passes",
		Long: `bcbp_trmnl decodes IATA Type 'M' bar coded boarding pass (BCBP) data,
format revisions 2 through 6.

It can decode payloads given on the command line or stdin, or run as a
daemon reading payloads from a scanner hub and storing them in SQLite.

Examples:
  bcbp_trmnl parse 'M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100'
  bcbp_trmnl parse --format json < scans.txt
  bcbp_trmnl fields
  bcbp_trmnl run --config /etc/bcbp_trmnl/config.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "config file (default is search in /etc/bcbp_trmnl and .)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (text, json)")

	_ = v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newParseCommand(),
		newFieldsCommand(),
		newRunCommand(v),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
