package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/patterns"
)

var loadFile string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load job postings and campaigns from a fixture file",
	Long: "Upserts job postings and campaigns from a YAML file into the store. Stands in\n" +
		"for the ingestion pipeline in local and test setups.",
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "YAML fixture file (required)")
	loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

// Fixture file shapes. Timestamps are RFC 3339.
type rawSalary struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Currency string  `yaml:"currency"`
	Period   string  `yaml:"period"`
}

type rawJob struct {
	ID             string     `yaml:"id"`
	Title          string     `yaml:"title"`
	Description    string     `yaml:"description"`
	Employer       string     `yaml:"employer"`
	EmployerSize   string     `yaml:"employer_size"`
	Location       string     `yaml:"location"`
	EmploymentType string     `yaml:"employment_type"`
	RemoteType     string     `yaml:"remote_type"`
	Salary         *rawSalary `yaml:"salary"`
	Skills         []string   `yaml:"skills"`
	Seniority      string     `yaml:"seniority"`
	PostedAt       string     `yaml:"posted_at"`
}

type rawCampaign struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Query           string             `yaml:"query"`
	Location        string             `yaml:"location"`
	Salary          *rawSalary         `yaml:"salary"`
	RemoteTypes     []string           `yaml:"remote_types"`
	Seniorities     []string           `yaml:"seniorities"`
	EmployerSizes   []string           `yaml:"employer_sizes"`
	EmploymentTypes []string           `yaml:"employment_types"`
	Skills          []string           `yaml:"skills"`
	Weights         map[string]float64 `yaml:"weights"`
}

type rawFixtures struct {
	Jobs      []rawJob      `yaml:"jobs"`
	Campaigns []rawCampaign `yaml:"campaigns"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(loadFile)
	if err != nil {
		logger.Error("failed to read fixture file", "path", loadFile, "error", err)
		os.Exit(1)
	}

	var fixtures rawFixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		logger.Error("failed to parse fixture file", "path", loadFile, "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	dicts := loadDictionaries(cfg, logger)
	ctx := context.Background()

	for _, raw := range fixtures.Jobs {
		job, err := toJob(raw, dicts)
		if err != nil {
			logger.Error("invalid job fixture", "job", raw.ID, "error", err)
			os.Exit(1)
		}
		if err := sqlStore.UpsertJob(ctx, job); err != nil {
			logger.Error("failed to upsert job", "job", raw.ID, "error", err)
			os.Exit(1)
		}
	}

	for _, raw := range fixtures.Campaigns {
		c := toCampaign(raw)
		if err := sqlStore.UpsertCampaign(ctx, c); err != nil {
			logger.Error("failed to upsert campaign", "campaign", raw.ID, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("fixtures loaded",
		"jobs", len(fixtures.Jobs),
		"campaigns", len(fixtures.Campaigns),
	)

	return nil
}

func toJob(raw rawJob, dicts *patterns.Dictionaries) (model.JobPosting, error) {
	job := model.JobPosting{
		ID:             raw.ID,
		Title:          raw.Title,
		Description:    raw.Description,
		Employer:       raw.Employer,
		EmployerSize:   raw.EmployerSize,
		Location:       raw.Location,
		EmploymentType: raw.EmploymentType,
		RemoteType:     model.RemoteTypeUnknown,
		Skills:         raw.Skills,
		Seniority:      model.SeniorityUnknown,
	}

	if raw.RemoteType != "" {
		job.RemoteType = model.RemoteType(raw.RemoteType)
	} else {
		// Fixtures often omit the remote classification; recover it from
		// the posting text the way the enrichment stage would.
		job.RemoteType = dicts.MatchRemote(raw.Title + " " + raw.Description)
	}
	if raw.Seniority != "" {
		job.Seniority = model.SeniorityLevel(raw.Seniority)
	}
	if raw.Salary != nil {
		job.Salary = &model.SalaryRange{
			Min:      raw.Salary.Min,
			Max:      raw.Salary.Max,
			Currency: raw.Salary.Currency,
			Period:   raw.Salary.Period,
		}
	}
	if raw.PostedAt != "" {
		t, err := time.Parse(time.RFC3339, raw.PostedAt)
		if err != nil {
			return model.JobPosting{}, fmt.Errorf("parse posted_at %q: %w", raw.PostedAt, err)
		}
		job.PostedAt = &t
	}

	return job, nil
}

func toCampaign(raw rawCampaign) model.Campaign {
	c := model.Campaign{
		ID:              raw.ID,
		Name:            raw.Name,
		Query:           raw.Query,
		Location:        raw.Location,
		EmployerSizes:   raw.EmployerSizes,
		EmploymentTypes: raw.EmploymentTypes,
		Skills:          raw.Skills,
		Weights:         raw.Weights,
	}

	for _, rt := range raw.RemoteTypes {
		c.RemoteTypes = append(c.RemoteTypes, model.RemoteType(rt))
	}
	for _, s := range raw.Seniorities {
		c.Seniorities = append(c.Seniorities, model.SeniorityLevel(s))
	}
	if raw.Salary != nil {
		c.Salary = &model.SalaryRange{
			Min:      raw.Salary.Min,
			Max:      raw.Salary.Max,
			Currency: raw.Salary.Currency,
			Period:   raw.Salary.Period,
		}
	}

	return c
}
