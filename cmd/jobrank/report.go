package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full enrichment-analysis report",
	Long: "Runs term discovery, missing-seniority and missing-skills analysis, and\n" +
		"coverage statistics, and emits the combined report as JSON.",
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to this file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	report, err := analyzer.Report(context.Background(), enrichment.ReportOptions{
		Source:         cfg.Discovery.Source,
		MinFrequency:   cfg.Discovery.MinFrequency,
		MaxTerms:       cfg.Discovery.MaxTerms,
		SeniorityLimit: 100,
		SkillsLimit:    25,
	})
	if err != nil {
		logger.Error("report generation failed", "error", err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Error("failed to encode report", "error", err)
		os.Exit(1)
	}

	if reportOut == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(reportOut, append(encoded, '\n'), 0o644); err != nil {
		logger.Error("failed to write report", "path", reportOut, "error", err)
		os.Exit(1)
	}
	logger.Info("report written", "path", reportOut)

	return nil
}
