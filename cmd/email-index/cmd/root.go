// Package cmd implements the email-index command.
package cmd

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	index "github.com/zostay/go-email-index"
	"github.com/zostay/go-email-index/internal/config"
	"github.com/zostay/go-email-index/message"
)

var (
	rootCmd = &cobra.Command{
		Use:                "email-index",
		Short:              "Generate search terms for email messages",
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: writeMetrics,
	}

	configPath  string
	outputFlag  string
	logLevel    string
	jsonLogs    bool
	maxDepth    int
	metricsFile string

	cfg      *config.Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	indexer  *index.Indexer
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default is email-index/config.yaml in the user config dir)")
	flags.StringVarP(&outputFlag, "output", "o", "", "output format: text, json, or yaml")
	flags.StringVar(&logLevel, "log-level", "", "minimum level of log messages")
	flags.BoolVar(&jsonLogs, "json-logs", false, "write log messages as JSON")
	flags.IntVar(&maxDepth, "max-depth", message.DefaultMaxDepth, "how deeply to break up nested parts, -1 for no limit")
	flags.StringVar(&metricsFile, "metrics-file", "", "write indexing metrics to this file when done")

	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(mboxCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(searchCmd)
}

// Execute runs the command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration, letting flags override it, and builds the
// logger and indexer used by every command.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = config.OutputFormat(outputFlag)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("json-logs") {
		cfg.JSONLogs = jsonLogs
	}
	if flags.Changed("max-depth") {
		cfg.Parse.MaxDepth = maxDepth
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	message.Init()

	logger = cfg.Logger(os.Stderr)
	registry = prometheus.NewRegistry()
	indexer = index.New(
		index.WithLogger(logger),
		index.WithMetrics(index.NewMetrics(registry)),
		index.WithParseOptions(cfg.ParseOptions()...),
	)

	return nil
}

func writeMetrics(_ *cobra.Command, _ []string) error {
	if metricsFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(metricsFile, registry)
}
