package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labelsort/internal/config"
)

var (
	outputFormat string
	strategyFlag string
	debugFlag    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labelsort",
	Short: "Reconcile scanned shipment labels against an order list",
	Long: `labelsort matches the tracking numbers printed on scanned shipment
labels against an authoritative order spreadsheet and computes a corrected
page ordering, pushing pages it could not match to the end for review.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&strategyFlag, "strategy", "", "Sort strategy (reference, suffix)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print per-page extraction details to stderr")
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if strategyFlag != "" {
		cfg.DefaultStrategy = strategyFlag
	}
	if debugFlag {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
