package model

import (
	"context"
	"time"
)

// RemoteType classifies how location-bound a role is.
type RemoteType string

const (
	RemoteTypeRemote  RemoteType = "remote"
	RemoteTypeHybrid  RemoteType = "hybrid"
	RemoteTypeOnsite  RemoteType = "onsite"
	RemoteTypeUnknown RemoteType = "unknown"
)

// SeniorityLevel is the experience bracket assigned during enrichment.
type SeniorityLevel string

const (
	SeniorityIntern    SeniorityLevel = "intern"
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityExecutive SeniorityLevel = "executive"
	SeniorityUnknown   SeniorityLevel = "unknown"
)

// SalaryRange is the advertised pay band for a posting or the desired band on
// a campaign. Min/Max are in whole currency units per Period.
type SalaryRange struct {
	Min      float64
	Max      float64
	Currency string // ISO code, e.g. "USD"
	Period   string // "year", "month", "hour"
}

// JobPosting is one ingested job ad. Records are written by the ingestion
// pipeline and are read-only to the ranking and enrichment core; the only
// fields this repo mutates are the listing-availability pair.
type JobPosting struct {
	ID             string // external system identifier
	Title          string
	Description    string // may contain HTML from the source board
	Employer       string
	EmployerSize   string // "small", "medium", "large"; empty when unknown
	Location       string
	EmploymentType string // "fulltime", "contract", ...
	RemoteType     RemoteType
	Salary         *SalaryRange // nil when the posting has no pay data
	Skills         []string     // extracted by the enrichment stage
	Seniority      SeniorityLevel
	PostedAt       *time.Time // nullable (not all sources provide it)
	IngestedAt     time.Time

	// Listing-availability mark, maintained by the availability checker.
	// ListingAvailable is nil until the first check.
	ListingAvailable *bool
	ListingCheckedAt *time.Time
}

// JobSource provides read access to the stored posting corpus.
type JobSource interface {
	ListJobs(ctx context.Context) ([]JobPosting, error)
}

// RankingStore persists computed rankings with at-most-one row per
// (job, campaign) pair.
type RankingStore interface {
	UpsertRanking(ctx context.Context, r Ranking) error
}
