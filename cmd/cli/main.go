package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pep299/keyword-analyzer/internal/config"
	"github.com/pep299/keyword-analyzer/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var development bool

	rootCmd := &cobra.Command{
		Use:   "keyword-analyzer",
		Short: "Google Ads keyword analysis for shockwave therapy equipment",
		Long: `keyword-analyzer categorizes the keyword table into priority buckets,
estimates monthly budgets and writes a markdown report with JSON data.

Running without a subcommand is the same as "keyword-analyzer analyze".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, development)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&development, "dev", false, "Human readable console logging")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "analyze",
			Short: "Run the analysis and write the report and JSON data",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAnalyze(cmd, development)
			},
		},
		&cobra.Command{
			Use:   "csv",
			Short: "Export bucketed and full keyword lists from the JSON data",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCSV(cmd, development)
			},
		},
		&cobra.Command{
			Use:   "comprehensive",
			Short: "Export the extended keyword table with a competition breakdown",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runComprehensive(cmd, development)
			},
		},
	)

	return rootCmd
}

// setup loads configuration and builds the logger shared by every command
func setup(development bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, development || cfg.LogDevelopment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
