package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse discovered terms interactively",
	Long: "Runs term discovery and opens an interactive browser over the terms the\n" +
		"dictionaries do not cover yet, for manual curation.",
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	dicts := loadDictionaries(cfg, logger)
	analyzer := enrichment.NewAnalyzer(sqlStore, dicts, logger)

	terms, err := analyzer.DiscoverTerms(context.Background(),
		cfg.Discovery.Source, cfg.Discovery.MinFrequency, 0)
	if err != nil {
		logger.Error("discovery failed", "error", err)
		os.Exit(1)
	}
	terms = analyzer.FilterKnown(terms)
	if cfg.Discovery.MaxTerms > 0 && len(terms) > cfg.Discovery.MaxTerms {
		terms = terms[:cfg.Discovery.MaxTerms]
	}

	return review.Run(terms)
}
