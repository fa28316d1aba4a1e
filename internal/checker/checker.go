package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/ratelimit"
)

// Order is the stable batch ordering the caller selects.
type Order string

const (
	// OrderOldestChecked visits jobs whose availability mark is stalest
	// first (never-checked jobs before everything else).
	OrderOldestChecked Order = "oldest_checked"
	// OrderNewestIngested visits the most recently ingested jobs first.
	OrderNewestIngested Order = "newest_ingested"
)

// ParseOrder validates an order string from config or a CLI flag.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case OrderOldestChecked, OrderNewestIngested:
		return Order(s), nil
	}
	return "", fmt.Errorf("order must be %q or %q, got %q",
		OrderOldestChecked, OrderNewestIngested, s)
}

// Store is the persistence surface the checker needs: a batch of candidates
// and a per-job availability mark. Marks never delete the posting row.
type Store interface {
	ListForAvailabilityCheck(ctx context.Context, order Order, limit int) ([]model.JobPosting, error)
	MarkAvailability(ctx context.Context, jobID string, available bool, checkedAt time.Time) error
}

// Counters aggregates one batch run.
type Counters struct {
	Checked     int
	Available   int
	Unavailable int
	Errors      int // ambiguous failures; mark left unchanged, retried next run
}

// Checker verifies that previously ingested postings are still live via the
// external job-details API. Calls are sequential with a shared minimum delay
// between them; a failed call never aborts the batch.
type Checker struct {
	store   Store
	client  DetailsClient
	limiter *ratelimit.Limiter
	host    string
	now     func() time.Time
	logger  *slog.Logger
}

// New creates a checker. host keys the rate limiter; pass the lookup API's
// hostname so all checkers against the same upstream share its delay.
func New(store Store, client DetailsClient, limiter *ratelimit.Limiter, host string, logger *slog.Logger) *Checker {
	return &Checker{
		store:   store,
		client:  client,
		limiter: limiter,
		host:    host,
		now:     time.Now,
		logger:  logger,
	}
}

// Run processes up to limit jobs in the given order and returns aggregate
// counters. Definitive signals (populated data, empty data, 5xx, 404) update
// the availability mark; ambiguous failures only increment Errors.
func (c *Checker) Run(ctx context.Context, order Order, limit int) (Counters, error) {
	jobs, err := c.store.ListForAvailabilityCheck(ctx, order, limit)
	if err != nil {
		return Counters{}, fmt.Errorf("availability check: listing jobs: %w", err)
	}

	var counters Counters
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}

		if err := c.limiter.Wait(ctx, c.host); err != nil {
			break
		}

		available, definitive := c.lookup(ctx, job.ID)
		if !definitive {
			counters.Errors++
			continue
		}

		if err := c.store.MarkAvailability(ctx, job.ID, available, c.now()); err != nil {
			return counters, fmt.Errorf("availability check: marking job %s: %w", job.ID, err)
		}

		counters.Checked++
		if available {
			counters.Available++
		} else {
			counters.Unavailable++
		}
	}

	c.logger.Info("availability check complete",
		"checked", counters.Checked,
		"available", counters.Available,
		"unavailable", counters.Unavailable,
		"errors", counters.Errors,
	)

	return counters, nil
}

// lookup classifies one job's lookup outcome. definitive is false for
// timeouts, network errors, and client-side statuses other than 404; those
// must never flip the availability mark.
func (c *Checker) lookup(ctx context.Context, jobID string) (available, definitive bool) {
	resp, err := c.client.JobDetails(ctx, jobID)
	if err == nil {
		// A structurally successful response with empty data means the
		// source no longer lists the job.
		return len(resp.Data) > 0, true
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		// The API contract treats 5xx as "job no longer exists", and a
		// 404 is an explicit not-found.
		if httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusNotFound {
			c.logger.Debug("lookup reports job gone", "job", jobID, "status", httpErr.StatusCode)
			return false, true
		}
		if httpErr.RetryAfter > 0 {
			c.logger.Warn("lookup throttled, leaving mark unchanged",
				"job", jobID,
				"status", httpErr.StatusCode,
				"retry_after", httpErr.RetryAfter,
			)
			return false, false
		}
	}

	c.logger.Warn("ambiguous lookup failure, leaving mark unchanged",
		"job", jobID,
		"error", err,
	)
	return false, false
}
