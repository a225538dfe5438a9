package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bizdocs/internal/config"
	"bizdocs/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "bizdocs",
	Short: "bizdocs - German business documents and service intake forms",
	Long: `bizdocs renders invoices (Rechnungen), quotes (Angebote) and delivery notes
(Lieferscheine) from JSON records into print-ready HTML, and drives the intake
forms of the service subcategories (Elektriker, Webdesign, Beratung, ...).

Every template of a document family shows the same sections in the same order:
header, parties, metadata, line items, totals, tax notice and footer. Templates
only differ in layout and styling.

Use "bizdocs serve" to run the preview and form API over HTTP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("bizdocs executed without subcommand")

		_ = cmd.Help()
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment configuration for a command.
func loadConfig(log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return nil, fmt.Errorf("invalid configuration, check your .env file: %w", err)
	}
	return cfg, nil
}
