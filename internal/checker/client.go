package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// LookupResponse is the job-details API response shape this core depends on:
// a status string plus a data sequence that is absent, empty, or populated.
type LookupResponse struct {
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

// DetailsClient looks up a single job in the external job-details API.
type DetailsClient interface {
	JobDetails(ctx context.Context, jobID string) (*LookupResponse, error)
}

// HTTPDetailsClient calls the job-details endpoint over HTTP. Per-call
// timeouts come from the injected http.Client.
type HTTPDetailsClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPDetailsClient creates a client for the job-details API at baseURL.
// apiKey may be empty when the deployment does not require one.
func NewHTTPDetailsClient(baseURL, apiKey string, client *http.Client) *HTTPDetailsClient {
	return &HTTPDetailsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// JobDetails fetches the details payload for one job ID. Non-2xx statuses
// are returned as *model.HTTPError so the checker can classify them.
func (c *HTTPDetailsClient) JobDetails(ctx context.Context, jobID string) (*LookupResponse, error) {
	endpoint := fmt.Sprintf("%s/job-details?job_id=%s", c.baseURL, url.QueryEscape(jobID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("job details lookup for %s: %w", jobID, err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("job details lookup for %s: %w", jobID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("job details lookup for %s", jobID),
		}
	}

	var lookup LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return nil, fmt.Errorf("job details lookup for %s: decoding response: %w", jobID, err)
	}

	return &lookup, nil
}

// parseRetryAfter reads a delay-seconds Retry-After value. The HTTP-date
// form and malformed values yield zero.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
