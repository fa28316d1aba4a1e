package model

import "time"

// Ranking is the computed composite match score for one job against one
// campaign, together with the per-dimension sub-scores that produced it.
// There is at most one Ranking per (JobID, CampaignID); recomputation
// overwrites the previous row.
type Ranking struct {
	JobID      string
	CampaignID string
	Score      float64            // composite, 0-100
	Explain    map[string]float64 // dimension name -> sub-score, 0-100
	RankedAt   time.Time
}

// TermSource flags where a discovered term was observed.
type TermSource string

const (
	TermSourceTitle       TermSource = "title"
	TermSourceDescription TermSource = "description"
	TermSourceBoth        TermSource = "both"
)

// DiscoveredTerm is one candidate vocabulary unit surfaced by the enrichment
// analyzer. Ephemeral: produced fresh on each analysis run, never persisted.
type DiscoveredTerm struct {
	Term         string
	Frequency    int // document frequency: distinct jobs containing the term
	NgramSize    int // 1-3
	SampleTitles []string
	Source       TermSource
}
