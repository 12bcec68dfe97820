// Package root contains the root command for the application
package root

import (
	"fjacquet/csv-ofx/internal/config"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, set in PersistentPreRun
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "csv-ofx",
		Short: "A CLI tool to convert bank CSV exports to OFX.",
		Long: `csv-ofx converts CSV (CAMT-derived) bank account exports to OFX documents,
with column positions tuned to German banking export conventions.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to csv-ofx!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Log = config.ConfigureLoggingFromConfig(Cfg)

			// Hand the configured logger to the conversion pipeline
			converter.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output OFX file (or directory for batch)")
}
