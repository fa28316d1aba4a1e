package enrichment

import (
	"context"
	"fmt"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// ReportOptions controls how much each analysis pass contributes to the
// combined report.
type ReportOptions struct {
	Source         Source
	MinFrequency   int
	MaxTerms       int
	SeniorityLimit int
	SkillsLimit    int
}

// ReportTerm is the serializable form of a discovered term.
type ReportTerm struct {
	Term         string   `json:"term"`
	Frequency    int      `json:"frequency"`
	NgramSize    int      `json:"ngram_size"`
	SampleTitles []string `json:"sample_titles"`
	Source       string   `json:"source"`
}

// Report is the combined enrichment-analysis payload: plain nested data,
// serializable as-is. The analyzer does not own any file I/O; callers decide
// where the report goes.
type Report struct {
	GeneratedAt      time.Time              `json:"generated_at"`
	Statistics       Stats                  `json:"statistics"`
	NewTerms         []ReportTerm           `json:"new_terms"`
	MissingSeniority MissingSeniorityResult `json:"missing_seniority"`
	MissingSkills    []CandidateSkill       `json:"missing_skills"`
	Recommendations  []string               `json:"recommendations"`
}

// coverage thresholds below which the report recommends expanding patterns.
const (
	skillsCoverageTarget    = 0.80
	seniorityCoverageTarget = 0.70
)

// Report runs every analysis pass and composes the results with heuristic
// curation recommendations.
func (a *Analyzer) Report(ctx context.Context, opts ReportOptions) (*Report, error) {
	stats, err := a.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	discovered, err := a.DiscoverTerms(ctx, opts.Source, opts.MinFrequency, 0)
	if err != nil {
		return nil, err
	}
	newTerms := a.FilterKnown(discovered)
	if opts.MaxTerms > 0 && len(newTerms) > opts.MaxTerms {
		newTerms = newTerms[:opts.MaxTerms]
	}

	seniority, err := a.MissingSeniority(ctx, opts.SeniorityLimit)
	if err != nil {
		return nil, err
	}

	skills, err := a.MissingSkills(ctx, opts.SkillsLimit)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt:      time.Now().UTC(),
		Statistics:       stats,
		NewTerms:         toReportTerms(newTerms),
		MissingSeniority: seniority,
		MissingSkills:    skills,
	}
	report.Recommendations = recommendations(stats, newTerms, seniority, skills)

	return report, nil
}

func toReportTerms(terms []model.DiscoveredTerm) []ReportTerm {
	out := make([]ReportTerm, 0, len(terms))
	for _, t := range terms {
		out = append(out, ReportTerm{
			Term:         t.Term,
			Frequency:    t.Frequency,
			NgramSize:    t.NgramSize,
			SampleTitles: t.SampleTitles,
			Source:       string(t.Source),
		})
	}
	return out
}

func recommendations(
	stats Stats,
	newTerms []model.DiscoveredTerm,
	seniority MissingSeniorityResult,
	skills []CandidateSkill,
) []string {
	var recs []string

	if stats.TotalJobs > 0 {
		skillsCoverage := float64(stats.WithSkills) / float64(stats.TotalJobs)
		if skillsCoverage < skillsCoverageTarget {
			recs = append(recs, fmt.Sprintf(
				"skills coverage is %.0f%% (target %.0f%%): expand the technical skill patterns",
				skillsCoverage*100, skillsCoverageTarget*100,
			))
		}

		seniorityCoverage := float64(stats.WithSeniority) / float64(stats.TotalJobs)
		if seniorityCoverage < seniorityCoverageTarget {
			recs = append(recs, fmt.Sprintf(
				"seniority coverage is %.0f%% (target %.0f%%): expand the seniority keyword families",
				seniorityCoverage*100, seniorityCoverageTarget*100,
			))
		}
	}

	if len(newTerms) > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d recurring terms are not covered by any dictionary; review the top candidates",
			len(newTerms),
		))
	}

	if seniority.MatchedTotal > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d postings without an assigned seniority level contain seniority keywords; re-run enrichment after curation",
			seniority.MatchedTotal,
		))
	}

	if len(skills) > 0 {
		top := skills[0]
		recs = append(recs, fmt.Sprintf(
			"%q is mentioned in %d postings but missing from %d extracted skill sets",
			top.Skill, top.Mentioned, top.Missing,
		))
	}

	return recs
}
