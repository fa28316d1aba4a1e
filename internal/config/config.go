package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/checker"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/ranker"
)

// Config is the root configuration for the jobrank batch commands.
type Config struct {
	Database     DatabaseConfig
	Lookup       LookupConfig
	Availability AvailabilityConfig
	Ranking      RankingConfig
	Discovery    DiscoveryConfig
	PatternsPath string // optional YAML dictionary overlay
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string
}

// LookupConfig controls the external job-details API client.
type LookupConfig struct {
	BaseURL  string
	APIKey   string        // expanded from env var by Load
	Timeout  time.Duration // per-call timeout
	MinDelay time.Duration // minimum gap between consecutive lookups
}

// AvailabilityConfig controls the listing-availability batch.
type AvailabilityConfig struct {
	BatchLimit int
	Order      checker.Order
}

// RankingConfig controls the ranking engine.
type RankingConfig struct {
	RecencyWindow time.Duration
	// DefaultWeights optionally overrides the system default weight set.
	// Validated at load time like any campaign weight map.
	DefaultWeights map[string]float64
}

// DiscoveryConfig holds the enrichment-discovery defaults.
type DiscoveryConfig struct {
	Source       enrichment.Source
	MinFrequency int
	MaxTerms     int
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings).
type rawConfig struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Lookup struct {
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Timeout  string `yaml:"timeout"`
		MinDelay string `yaml:"min_delay"`
	} `yaml:"lookup"`
	Availability struct {
		BatchLimit int    `yaml:"batch_limit"`
		Order      string `yaml:"order"`
	} `yaml:"availability"`
	Ranking struct {
		RecencyWindowDays int                `yaml:"recency_window_days"`
		DefaultWeights    map[string]float64 `yaml:"default_weights"`
	} `yaml:"ranking"`
	Discovery struct {
		Source       string `yaml:"source"`
		MinFrequency int    `yaml:"min_frequency"`
		MaxTerms     int    `yaml:"max_terms"`
	} `yaml:"discovery"`
	PatternsPath string `yaml:"patterns_path"`
}

// Load reads and parses the YAML config file at path, expands environment
// variables, fills defaults, validates, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{Path: raw.Database.Path},
		Lookup: LookupConfig{
			BaseURL:  raw.Lookup.BaseURL,
			APIKey:   raw.Lookup.APIKey,
			Timeout:  30 * time.Second,
			MinDelay: 1 * time.Second,
		},
		Availability: AvailabilityConfig{
			BatchLimit: raw.Availability.BatchLimit,
			Order:      checker.OrderOldestChecked,
		},
		Ranking: RankingConfig{
			RecencyWindow:  30 * 24 * time.Hour,
			DefaultWeights: raw.Ranking.DefaultWeights,
		},
		Discovery: DiscoveryConfig{
			Source:       enrichment.SourceBoth,
			MinFrequency: 2,
			MaxTerms:     50,
		},
		PatternsPath: raw.PatternsPath,
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "jobrank.db"
	}

	if raw.Lookup.Timeout != "" {
		cfg.Lookup.Timeout, err = time.ParseDuration(raw.Lookup.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse lookup.timeout %q: %w", raw.Lookup.Timeout, err)
		}
	}
	if raw.Lookup.MinDelay != "" {
		cfg.Lookup.MinDelay, err = time.ParseDuration(raw.Lookup.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse lookup.min_delay %q: %w", raw.Lookup.MinDelay, err)
		}
	}

	if cfg.Availability.BatchLimit == 0 {
		cfg.Availability.BatchLimit = 100
	}
	if raw.Availability.Order != "" {
		cfg.Availability.Order = checker.Order(raw.Availability.Order)
	}

	if raw.Ranking.RecencyWindowDays != 0 {
		cfg.Ranking.RecencyWindow = time.Duration(raw.Ranking.RecencyWindowDays) * 24 * time.Hour
	}

	if raw.Discovery.Source != "" {
		cfg.Discovery.Source = enrichment.Source(raw.Discovery.Source)
	}
	if raw.Discovery.MinFrequency != 0 {
		cfg.Discovery.MinFrequency = raw.Discovery.MinFrequency
	}
	if raw.Discovery.MaxTerms != 0 {
		cfg.Discovery.MaxTerms = raw.Discovery.MaxTerms
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Lookup.Timeout <= 0 {
		return fmt.Errorf("lookup.timeout must be positive, got %v", cfg.Lookup.Timeout)
	}
	if cfg.Lookup.MinDelay < 0 {
		return fmt.Errorf("lookup.min_delay must not be negative, got %v", cfg.Lookup.MinDelay)
	}

	if _, err := checker.ParseOrder(string(cfg.Availability.Order)); err != nil {
		return fmt.Errorf("availability.order: %w", err)
	}
	if cfg.Availability.BatchLimit < 1 {
		return fmt.Errorf("availability.batch_limit must be at least 1, got %d", cfg.Availability.BatchLimit)
	}

	if cfg.Ranking.RecencyWindow <= 0 {
		return fmt.Errorf("ranking.recency_window_days must be positive, got %v", cfg.Ranking.RecencyWindow)
	}
	if cfg.Ranking.DefaultWeights != nil {
		if _, err := ranker.ParseWeights(cfg.Ranking.DefaultWeights); err != nil {
			return fmt.Errorf("ranking.default_weights: %w", err)
		}
	}

	switch cfg.Discovery.Source {
	case enrichment.SourceTitles, enrichment.SourceDescriptions, enrichment.SourceBoth:
	default:
		return fmt.Errorf("discovery.source must be %q, %q, or %q, got %q",
			enrichment.SourceTitles, enrichment.SourceDescriptions, enrichment.SourceBoth, cfg.Discovery.Source)
	}
	if cfg.Discovery.MinFrequency < 1 {
		return fmt.Errorf("discovery.min_frequency must be at least 1, got %d", cfg.Discovery.MinFrequency)
	}
	if cfg.Discovery.MaxTerms < 1 {
		return fmt.Errorf("discovery.max_terms must be at least 1, got %d", cfg.Discovery.MaxTerms)
	}

	return nil
}
