package ranker

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// Engine scores every stored job against a campaign and persists one ranking
// per (job, campaign) pair. Single-threaded, run-to-completion; the external
// scheduler owns invocation and batch-level timeouts.
type Engine struct {
	jobs     model.JobSource
	rankings model.RankingStore
	window   time.Duration // recency decay window
	defaults Weights       // fallback weight set
	now      func() time.Time
	logger   *slog.Logger
}

// NewEngine creates a ranking engine wired with its dependencies.
// recencyWindow controls the linear decay of the recency dimension.
// defaults is the fallback weight set for campaigns without (or with
// invalid) weights; pass nil for the system defaults.
func NewEngine(
	jobs model.JobSource,
	rankings model.RankingStore,
	recencyWindow time.Duration,
	defaults Weights,
	logger *slog.Logger,
) *Engine {
	if defaults == nil {
		defaults = DefaultWeights()
	}
	return &Engine{
		jobs:     jobs,
		rankings: rankings,
		window:   recencyWindow,
		defaults: defaults,
		now:      time.Now,
		logger:   logger,
	}
}

// CampaignResult aggregates the outcome of one campaign's ranking run.
type CampaignResult struct {
	CampaignID string
	Scored     int
	Skipped    int // jobs that failed scoring and were logged

	// ConfigErr is the weight-validation failure, if any. The run still
	// completes using the system default weights; the caller decides
	// whether to escalate.
	ConfigErr          error
	UsedDefaultWeights bool
}

// RankCampaign validates the campaign's weights, scores every stored job, and
// upserts the results. Invalid weights are reported through the result and
// the run falls back to the system defaults; a job that fails scoring is
// logged and skipped, never fatal to the batch.
func (e *Engine) RankCampaign(ctx context.Context, c model.Campaign) (CampaignResult, error) {
	result := CampaignResult{CampaignID: c.ID}

	weights, err := ParseWeights(c.Weights)
	if err != nil {
		e.logger.Error("invalid campaign weights, using defaults",
			"campaign", c.ID,
			"error", err,
		)
		result.ConfigErr = err
		weights = e.defaults
		result.UsedDefaultWeights = true
	} else if c.Weights == nil {
		weights = e.defaults
		result.UsedDefaultWeights = true
	}

	postings, err := e.jobs.ListJobs(ctx)
	if err != nil {
		return result, fmt.Errorf("ranking campaign %s: listing jobs: %w", c.ID, err)
	}

	rankedAt := e.now()
	for _, job := range postings {
		score, explain, err := e.Score(job, c, weights)
		if err != nil {
			e.logger.Warn("skipping job that failed scoring",
				"campaign", c.ID,
				"job", job.ID,
				"error", err,
			)
			result.Skipped++
			continue
		}

		r := model.Ranking{
			JobID:      job.ID,
			CampaignID: c.ID,
			Score:      score,
			Explain:    explain,
			RankedAt:   rankedAt,
		}
		if err := e.rankings.UpsertRanking(ctx, r); err != nil {
			return result, fmt.Errorf("ranking campaign %s: upserting job %s: %w", c.ID, job.ID, err)
		}
		result.Scored++
	}

	e.logger.Info("ranked campaign",
		"campaign", c.ID,
		"scored", result.Scored,
		"skipped", result.Skipped,
		"default_weights", result.UsedDefaultWeights,
	)

	return result, nil
}

// Score computes the composite score and the per-dimension explain map for a
// single (job, campaign) pair. Weights must already be validated.
func (e *Engine) Score(job model.JobPosting, c model.Campaign, weights Weights) (float64, map[string]float64, error) {
	if !utf8.ValidString(job.Title) || !utf8.ValidString(job.Description) {
		return 0, nil, fmt.Errorf("job %s: malformed text encoding", job.ID)
	}

	explain := map[string]float64{
		DimLocation:       locationScore(c.Location, job.Location),
		DimSalary:         salaryScore(c.Salary, job.Salary),
		DimEmployerSize:   categoricalScore(c.EmployerSizes, job.EmployerSize),
		DimSkills:         skillsScore(c.Skills, job.Skills),
		DimKeyword:        keywordScore(c.Query, job.Title, job.Description),
		DimEmploymentType: categoricalScore(c.EmploymentTypes, job.EmploymentType),
		DimSeniority:      seniorityScore(c.Seniorities, job.Seniority),
		DimRemoteType:     remoteTypeScore(c.RemoteTypes, job.RemoteType),
		DimRecency:        recencyScore(job.PostedAt, e.now(), e.window),
	}

	composite := 0.0
	for _, dim := range Dimensions {
		composite += weights[dim] / 100 * explain[dim]
	}

	return composite, explain, nil
}
