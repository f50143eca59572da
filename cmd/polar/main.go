package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dangerclosesec/polar/internal/config"
	"github.com/spf13/cobra"
)

var cfg = config.Load()

var (
	dbConnString string
	verbose      bool
	logLevel     string
	logFormat    string
	logger       *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string (defaults to DB_* environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cfg.Log.Format, "Log format (json, text)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

var rootCmd = &cobra.Command{
	Use:           "polar",
	Short:         "Polar is a CLI tool for policy files",
	Long:          `Polar is a CLI tool for parsing, checking, serving, and versioning Polar policy files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg.Log.Level = logLevel
		cfg.Log.Format = logFormat
		logger = newLogger(cfg)
		slog.SetDefault(logger)
	},
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if strings.EqualFold(cfg.Log.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func connString() string {
	if dbConnString != "" {
		return dbConnString
	}
	return cfg.DSN()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
