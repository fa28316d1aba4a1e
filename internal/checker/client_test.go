package checker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

func TestJobDetailsDecodesResponse(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"OK","data":[{"job_id":"j-1"}]}`))
	}))
	defer server.Close()

	client := NewHTTPDetailsClient(server.URL, "secret", server.Client())
	resp, err := client.JobDetails(context.Background(), "j-1")
	if err != nil {
		t.Fatalf("JobDetails: %v", err)
	}

	if gotPath != "/job-details?job_id=j-1" {
		t.Errorf("request path = %q, want /job-details?job_id=j-1", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("X-API-Key = %q, want secret", gotKey)
	}
	if resp.Status != "OK" || len(resp.Data) != 1 {
		t.Errorf("response = %+v, want status OK with 1 data item", resp)
	}
}

func TestJobDetailsEscapesJobID(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("job_id")
		w.Write([]byte(`{"status":"OK","data":[]}`))
	}))
	defer server.Close()

	client := NewHTTPDetailsClient(server.URL, "", server.Client())
	if _, err := client.JobDetails(context.Background(), "a b&c"); err != nil {
		t.Fatalf("JobDetails: %v", err)
	}
	if gotID != "a b&c" {
		t.Errorf("job_id = %q, want %q", gotID, "a b&c")
	}
}

func TestJobDetailsNon200IsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPDetailsClient(server.URL, "", server.Client())
	_, err := client.JobDetails(context.Background(), "j-1")

	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", httpErr.StatusCode)
	}
}

func TestJobDetailsParsesRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"delay seconds", "30", 30 * time.Second},
		{"absent", "", 0},
		{"http date form ignored", "Tue, 25 Aug 2026 12:00:00 GMT", 0},
		{"negative ignored", "-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("Retry-After", tt.header)
				}
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer server.Close()

			client := NewHTTPDetailsClient(server.URL, "", server.Client())
			_, err := client.JobDetails(context.Background(), "j-1")

			var httpErr *model.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *model.HTTPError, got %v", err)
			}
			if httpErr.RetryAfter != tt.want {
				t.Errorf("retry after = %v, want %v", httpErr.RetryAfter, tt.want)
			}
		})
	}
}

func TestJobDetailsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":`))
	}))
	defer server.Close()

	client := NewHTTPDetailsClient(server.URL, "", server.Client())
	_, err := client.JobDetails(context.Background(), "j-1")
	if err == nil {
		t.Fatal("expected decode error")
	}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		t.Error("decode failure must not be classified as an HTTP status error")
	}
}
