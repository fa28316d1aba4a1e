package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
)

var (
	discoverSource       string
	discoverMinFrequency int
	discoverMaxTerms     int
	discoverIncludeKnown bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Mine job text for uncovered vocabulary",
	Long: "Tokenizes stored job text, counts 1- to 3-gram document frequency, and prints\n" +
		"the recurring terms the pattern dictionaries do not cover yet.",
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverSource, "source", "", "text to scan: titles, descriptions, or both (default: config)")
	discoverCmd.Flags().IntVar(&discoverMinFrequency, "min-frequency", 0, "minimum document frequency (default: config)")
	discoverCmd.Flags().IntVar(&discoverMaxTerms, "max-terms", 0, "maximum number of terms to print (default: config)")
	discoverCmd.Flags().BoolVar(&discoverIncludeKnown, "include-known", false, "also print terms already covered by the dictionaries")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	source := cfg.Discovery.Source
	if discoverSource != "" {
		source = enrichment.Source(discoverSource)
	}
	minFrequency := cfg.Discovery.MinFrequency
	if discoverMinFrequency > 0 {
		minFrequency = discoverMinFrequency
	}
	maxTerms := cfg.Discovery.MaxTerms
	if discoverMaxTerms > 0 {
		maxTerms = discoverMaxTerms
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	dicts := loadDictionaries(cfg, logger)
	analyzer := enrichment.NewAnalyzer(sqlStore, dicts, logger)

	ctx := context.Background()
	terms, err := analyzer.DiscoverTerms(ctx, source, minFrequency, 0)
	if err != nil {
		logger.Error("discovery failed", "error", err)
		os.Exit(1)
	}

	if !discoverIncludeKnown {
		terms = analyzer.FilterKnown(terms)
	}
	if maxTerms > 0 && len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	if len(terms) == 0 {
		fmt.Println("no terms found")
		return nil
	}

	fmt.Printf("%-32s %6s %6s  %s\n", "TERM", "FREQ", "NGRAM", "SOURCE")
	for _, t := range terms {
		fmt.Printf("%-32s %6d %6d  %s\n", t.Term, t.Frequency, t.NgramSize, t.Source)
	}

	return nil
}
