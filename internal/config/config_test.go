package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/checker"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/enrichment"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/jobrank/jobs.db
lookup:
  base_url: https://api.example.com
  api_key: secret
  timeout: 10s
  min_delay: 2s
availability:
  batch_limit: 50
  order: newest_ingested
ranking:
  recency_window_days: 14
discovery:
  source: titles
  min_frequency: 3
  max_terms: 25
patterns_path: /etc/jobrank/patterns.yaml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Path != "/var/lib/jobrank/jobs.db" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Lookup.BaseURL != "https://api.example.com" || cfg.Lookup.APIKey != "secret" {
		t.Errorf("lookup = %+v", cfg.Lookup)
	}
	if cfg.Lookup.Timeout != 10*time.Second || cfg.Lookup.MinDelay != 2*time.Second {
		t.Errorf("lookup durations = %v / %v", cfg.Lookup.Timeout, cfg.Lookup.MinDelay)
	}
	if cfg.Availability.BatchLimit != 50 || cfg.Availability.Order != checker.OrderNewestIngested {
		t.Errorf("availability = %+v", cfg.Availability)
	}
	if cfg.Ranking.RecencyWindow != 14*24*time.Hour {
		t.Errorf("recency window = %v, want 14 days", cfg.Ranking.RecencyWindow)
	}
	if cfg.Discovery.Source != enrichment.SourceTitles || cfg.Discovery.MinFrequency != 3 || cfg.Discovery.MaxTerms != 25 {
		t.Errorf("discovery = %+v", cfg.Discovery)
	}
	if cfg.PatternsPath != "/etc/jobrank/patterns.yaml" {
		t.Errorf("patterns_path = %q", cfg.PatternsPath)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `lookup: {base_url: https://api.example.com}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.Path != "jobrank.db" {
		t.Errorf("database.path = %q, want jobrank.db", cfg.Database.Path)
	}
	if cfg.Lookup.Timeout != 30*time.Second || cfg.Lookup.MinDelay != 1*time.Second {
		t.Errorf("lookup durations = %v / %v, want 30s / 1s", cfg.Lookup.Timeout, cfg.Lookup.MinDelay)
	}
	if cfg.Availability.BatchLimit != 100 || cfg.Availability.Order != checker.OrderOldestChecked {
		t.Errorf("availability = %+v", cfg.Availability)
	}
	if cfg.Ranking.RecencyWindow != 30*24*time.Hour {
		t.Errorf("recency window = %v, want 30 days", cfg.Ranking.RecencyWindow)
	}
	if cfg.Discovery.Source != enrichment.SourceBoth || cfg.Discovery.MinFrequency != 2 || cfg.Discovery.MaxTerms != 50 {
		t.Errorf("discovery = %+v", cfg.Discovery)
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("JOBRANK_TEST_API_KEY", "from-env")

	cfg, err := Load(writeConfig(t, `
lookup:
  base_url: https://api.example.com
  api_key: ${JOBRANK_TEST_API_KEY}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lookup.APIKey != "from-env" {
		t.Errorf("api_key = %q, want from-env", cfg.Lookup.APIKey)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bad availability order",
			yaml:    "availability: {order: random}",
			wantErr: "availability.order",
		},
		{
			name:    "negative recency window",
			yaml:    "ranking: {recency_window_days: -5}",
			wantErr: "recency_window_days",
		},
		{
			name:    "bad discovery source",
			yaml:    "discovery: {source: comments}",
			wantErr: "discovery.source",
		},
		{
			name:    "bad lookup timeout",
			yaml:    "lookup: {timeout: never}",
			wantErr: "lookup.timeout",
		},
		{
			name:    "default weights do not sum to 100",
			yaml:    "ranking: {default_weights: {skills_match: 40}}",
			wantErr: "default_weights",
		},
		{
			name:    "unknown weight dimension",
			yaml:    "ranking: {default_weights: {vibes_match: 100}}",
			wantErr: "default_weights",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadValidDefaultWeightsOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
ranking:
  default_weights:
    skills_match: 60
    keyword_match: 40
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ranking.DefaultWeights["skills_match"] != 60 {
		t.Errorf("default_weights = %v", cfg.Ranking.DefaultWeights)
	}
}
