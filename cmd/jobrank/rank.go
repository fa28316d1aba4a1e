package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/ranker"
)

var rankCampaignID string

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score stored jobs against campaigns",
	Long: "Computes the weighted composite match score of every stored job against one\n" +
		"campaign (--campaign) or all campaigns, and upserts the rankings.",
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankCampaignID, "campaign", "", "rank only this campaign ID (default: all campaigns)")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	ctx := context.Background()

	var campaigns []model.Campaign
	if rankCampaignID != "" {
		c, err := sqlStore.GetCampaign(ctx, rankCampaignID)
		if err != nil {
			logger.Error("failed to load campaign", "campaign", rankCampaignID, "error", err)
			os.Exit(1)
		}
		campaigns = []model.Campaign{c}
	} else {
		campaigns, err = sqlStore.ListCampaigns(ctx)
		if err != nil {
			logger.Error("failed to list campaigns", "error", err)
			os.Exit(1)
		}
	}

	if len(campaigns) == 0 {
		logger.Warn("no campaigns to rank")
		return nil
	}

	engine := ranker.NewEngine(
		sqlStore,
		sqlStore,
		cfg.Ranking.RecencyWindow,
		ranker.Weights(cfg.Ranking.DefaultWeights),
		logger,
	)

	configFailures := 0
	for _, c := range campaigns {
		result, err := engine.RankCampaign(ctx, c)
		if err != nil {
			logger.Error("ranking run failed", "campaign", c.ID, "error", err)
			os.Exit(1)
		}
		if result.ConfigErr != nil {
			configFailures++
		}
	}

	if configFailures > 0 {
		logger.Error("campaigns with invalid weight configuration were scored with defaults",
			"campaigns", configFailures,
		)
		os.Exit(1)
	}

	return nil
}
