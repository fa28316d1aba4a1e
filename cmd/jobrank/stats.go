package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print enrichment coverage statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	stats, err := analyzer.Statistics(context.Background())
	if err != nil {
		logger.Error("failed to compute statistics", "error", err)
		os.Exit(1)
	}

	fmt.Printf("total jobs:          %d\n", stats.TotalJobs)
	fmt.Printf("with description:    %d\n", stats.WithDescription)
	fmt.Printf("with skills:         %d\n", stats.WithSkills)
	fmt.Printf("with seniority:      %d\n", stats.WithSeniority)
	fmt.Printf("with both:           %d\n", stats.WithBoth)
	fmt.Printf("avg skills per job:  %.2f\n", stats.AvgSkillsPerJob)

	return nil
}
