package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/config"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/patterns"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobrank",
	Short: "Job ranking and enrichment-discovery batch tools",
	Long: "jobrank scores stored job postings against search campaigns, mines job text\n" +
		"for vocabulary the pattern dictionaries miss, and verifies that previously\n" +
		"ingested listings are still live. Each subcommand runs to completion and is\n" +
		"meant to be invoked by an external scheduler.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBRANK_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBRANK_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBRANK_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// loadDictionaries loads the pattern dictionaries. A failing overlay load
// degrades to the empty pattern set so discovery still runs, reporting every
// term as new.
func loadDictionaries(cfg *config.Config, logger *slog.Logger) *patterns.Dictionaries {
	if cfg.PatternsPath == "" {
		return patterns.Default()
	}
	dicts, err := patterns.Load(cfg.PatternsPath)
	if err != nil {
		logger.Error("failed to load pattern dictionaries, continuing with empty set",
			"path", cfg.PatternsPath,
			"error", err,
		)
	}
	return dicts
}

func openStore(cfg *config.Config, logger *slog.Logger) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	return s
}
