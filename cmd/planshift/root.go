package main

import (
	"strings"

	"github.com/smallbiznis/planshift/internal/config"
	"github.com/spf13/cobra"
)

var (
	catalogPath string
	logLevel    string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "planshift",
	Short: "Model what existing customers would pay under a new plan catalog",
	Long: `planshift reads a snapshot of customers, their workspace usage and their
current billing, and prices every customer under the configured plan catalog
twice: on the cheapest plan that covers their usage, and on the plan that keeps
their current spend. Results are written as JSON, with optional CSV and PDF.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if catalogPath != "" {
			cfg.CatalogPath = strings.TrimSpace(catalogPath)
		}
		if logLevel != "" {
			cfg.LogLevel = strings.ToLower(strings.TrimSpace(logLevel))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "pricing catalog file (default: pricing.yml in /etc/planshift or .)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
