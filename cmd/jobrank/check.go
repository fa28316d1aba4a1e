package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/checker"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/ratelimit"
)

var (
	checkLimit int
	checkOrder string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify stored listings are still live",
	Long: "Looks up a batch of stored jobs in the external job-details API and marks the\n" +
		"ones the source no longer lists. Postings are never deleted.",
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkLimit, "limit", 0, "max jobs to check this run (default: config)")
	checkCmd.Flags().StringVar(&checkOrder, "order", "", "batch order: oldest_checked or newest_ingested (default: config)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Lookup.BaseURL == "" {
		logger.Error("lookup.base_url is required for the availability check")
		os.Exit(1)
	}

	limit := cfg.Availability.BatchLimit
	if checkLimit > 0 {
		limit = checkLimit
	}
	order := cfg.Availability.Order
	if checkOrder != "" {
		order, err = checker.ParseOrder(checkOrder)
		if err != nil {
			logger.Error("invalid --order value", "error", err)
			os.Exit(1)
		}
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	httpClient := &http.Client{Timeout: cfg.Lookup.Timeout}
	client := checker.NewHTTPDetailsClient(cfg.Lookup.BaseURL, cfg.Lookup.APIKey, httpClient)
	limiter := ratelimit.New(cfg.Lookup.MinDelay)

	host := cfg.Lookup.BaseURL
	if u, err := url.Parse(cfg.Lookup.BaseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	chk := checker.New(sqlStore, client, limiter, host, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := chk.Run(ctx, order, limit); err != nil {
		logger.Error("availability check failed", "error", err)
		os.Exit(1)
	}

	return nil
}
