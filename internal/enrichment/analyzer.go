package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
	"github.com/filmozolevskiy/job-etl-project-sub001/internal/patterns"
)

// Source selects which job text the discovery pass scans.
type Source string

const (
	SourceTitles       Source = "titles"
	SourceDescriptions Source = "descriptions"
	SourceBoth         Source = "both"
)

// maxSampleTitles caps how many example titles are kept per term or group.
const maxSampleTitles = 3

// Analyzer mines stored job text for vocabulary the pattern dictionaries do
// not cover yet. Output is a pure function of the stored text and the
// dictionary state; identical inputs produce identical results.
type Analyzer struct {
	jobs   model.JobSource
	dicts  *patterns.Dictionaries
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer over the given job corpus and dictionaries.
func NewAnalyzer(jobs model.JobSource, dicts *patterns.Dictionaries, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		jobs:   jobs,
		dicts:  dicts,
		logger: logger,
	}
}

// termEntry accumulates corpus-wide stats for one distinct n-gram.
type termEntry struct {
	freq      int // document frequency
	size      int
	inTitle   bool
	inDesc    bool
	samples   []string
	sampleSet map[string]bool
}

// DiscoverTerms tokenizes the selected text of every stored job, generates
// 1- to 3-gram terms, and counts document frequency (one increment per job
// containing the term, regardless of repeats within the job). Terms below
// minFrequency are dropped; at most maxTerms are returned, ordered by
// descending frequency with ties broken by term text for determinism.
func (a *Analyzer) DiscoverTerms(ctx context.Context, source Source, minFrequency, maxTerms int) ([]model.DiscoveredTerm, error) {
	jobs, err := a.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering terms: listing jobs: %w", err)
	}

	entries := make(map[string]*termEntry)
	for _, job := range jobs {
		perJob := make(map[string]struct{ title, desc bool })

		if source == SourceTitles || source == SourceBoth {
			collectGrams(tokenize(job.Title, a.dicts), true, perJob)
		}
		if source == SourceDescriptions || source == SourceBoth {
			collectGrams(tokenize(stripHTML(job.Description), a.dicts), false, perJob)
		}

		for term, where := range perJob {
			entry, ok := entries[term]
			if !ok {
				entry = &termEntry{
					size:      strings.Count(term, " ") + 1,
					sampleSet: make(map[string]bool),
				}
				entries[term] = entry
			}
			entry.freq++
			entry.inTitle = entry.inTitle || where.title
			entry.inDesc = entry.inDesc || where.desc
			if len(entry.samples) < maxSampleTitles && !entry.sampleSet[job.Title] {
				entry.samples = append(entry.samples, job.Title)
				entry.sampleSet[job.Title] = true
			}
		}
	}

	terms := make([]model.DiscoveredTerm, 0, len(entries))
	for text, entry := range entries {
		if entry.freq < minFrequency {
			continue
		}
		terms = append(terms, model.DiscoveredTerm{
			Term:         text,
			Frequency:    entry.freq,
			NgramSize:    entry.size,
			SampleTitles: entry.samples,
			Source:       termSource(entry.inTitle, entry.inDesc),
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Frequency != terms[j].Frequency {
			return terms[i].Frequency > terms[j].Frequency
		}
		return terms[i].Term < terms[j].Term
	})

	if maxTerms > 0 && len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	a.logger.Debug("discovered terms",
		"jobs", len(jobs),
		"distinct", len(entries),
		"returned", len(terms),
	)

	return terms, nil
}

func collectGrams(tokens []string, fromTitle bool, perJob map[string]struct{ title, desc bool }) {
	for n := 1; n <= 3; n++ {
		for _, gram := range ngrams(tokens, n) {
			where := perJob[gram]
			if fromTitle {
				where.title = true
			} else {
				where.desc = true
			}
			perJob[gram] = where
		}
	}
}

func termSource(inTitle, inDesc bool) model.TermSource {
	switch {
	case inTitle && inDesc:
		return model.TermSourceBoth
	case inTitle:
		return model.TermSourceTitle
	default:
		return model.TermSourceDescription
	}
}

// FilterKnown removes terms already covered by the technical-skills or
// seniority dictionaries: a case-insensitive exact match on the whole term,
// or, for multi-word terms, any constituent word longer than 2 characters
// that is itself a known pattern.
func (a *Analyzer) FilterKnown(terms []model.DiscoveredTerm) []model.DiscoveredTerm {
	filtered := make([]model.DiscoveredTerm, 0, len(terms))
	for _, t := range terms {
		if a.isKnown(t.Term) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func (a *Analyzer) isKnown(term string) bool {
	if a.dicts.KnownSkill(term) || a.dicts.KnownSeniorityWord(term) {
		return true
	}
	words := strings.Fields(term)
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if len(w) > 2 && (a.dicts.KnownSkill(w) || a.dicts.KnownSeniorityWord(w)) {
			return true
		}
	}
	return false
}

// SeniorityGroup is one detected seniority bucket among jobs that have no
// assigned level, with example titles for human review.
type SeniorityGroup struct {
	Level        model.SeniorityLevel `json:"level"`
	Count        int                  `json:"count"`
	SampleTitles []string             `json:"sample_titles"`
}

// MissingSeniorityResult summarizes postings whose text indicates a seniority
// level the enrichment stage failed to assign.
type MissingSeniorityResult struct {
	UnassignedTotal int              `json:"unassigned_total"`
	MatchedTotal    int              `json:"matched_total"`
	Groups          []SeniorityGroup `json:"groups"`
}

// MissingSeniority finds postings with no assigned seniority level whose
// title or description nonetheless matches a seniority keyword family, and
// groups them by detected bucket. At most limit matched jobs are collected.
func (a *Analyzer) MissingSeniority(ctx context.Context, limit int) (MissingSeniorityResult, error) {
	jobs, err := a.jobs.ListJobs(ctx)
	if err != nil {
		return MissingSeniorityResult{}, fmt.Errorf("analyzing missing seniority: listing jobs: %w", err)
	}

	var result MissingSeniorityResult
	counts := make(map[model.SeniorityLevel]int)
	samples := make(map[model.SeniorityLevel][]string)

	for _, job := range jobs {
		if job.Seniority != "" && job.Seniority != model.SeniorityUnknown {
			continue
		}
		result.UnassignedTotal++

		if limit > 0 && result.MatchedTotal >= limit {
			continue
		}

		text := job.Title + " " + stripHTML(job.Description)
		levels := a.dicts.MatchSeniority(text)
		if len(levels) == 0 {
			continue
		}
		result.MatchedTotal++
		for _, level := range levels {
			counts[level]++
			if len(samples[level]) < maxSampleTitles {
				samples[level] = append(samples[level], job.Title)
			}
		}
	}

	for _, level := range []model.SeniorityLevel{
		model.SeniorityIntern,
		model.SeniorityJunior,
		model.SeniorityMid,
		model.SenioritySenior,
		model.SeniorityExecutive,
	} {
		if counts[level] == 0 {
			continue
		}
		result.Groups = append(result.Groups, SeniorityGroup{
			Level:        level,
			Count:        counts[level],
			SampleTitles: samples[level],
		})
	}

	return result, nil
}

// CandidateSkill is a curated technical term found in job text but absent
// from at least one job's extracted skill set.
type CandidateSkill struct {
	Skill     string `json:"skill"`
	Mentioned int    `json:"mentioned"` // jobs whose text mentions the term
	Missing   int    `json:"missing"`   // mentions where extraction missed it
}

// MissingSkills cross-references the curated technical-term list against job
// text and flags terms mentioned but not extracted, ordered by miss count.
func (a *Analyzer) MissingSkills(ctx context.Context, limit int) ([]CandidateSkill, error) {
	jobs, err := a.jobs.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyzing missing skills: listing jobs: %w", err)
	}

	curated := a.dicts.SkillList()
	mentioned := make(map[string]int, len(curated))
	missing := make(map[string]int, len(curated))

	for _, job := range jobs {
		text := normalizeForMatch(job.Title + " " + stripHTML(job.Description))

		extracted := make(map[string]bool, len(job.Skills))
		for _, s := range job.Skills {
			extracted[strings.ToLower(strings.TrimSpace(s))] = true
		}

		for _, skill := range curated {
			if !strings.Contains(text, " "+normalizeSkill(skill)+" ") {
				continue
			}
			mentioned[skill]++
			if !extracted[skill] {
				missing[skill]++
			}
		}
	}

	candidates := make([]CandidateSkill, 0, len(missing))
	for skill, count := range missing {
		candidates = append(candidates, CandidateSkill{
			Skill:     skill,
			Mentioned: mentioned[skill],
			Missing:   count,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Missing != candidates[j].Missing {
			return candidates[i].Missing > candidates[j].Missing
		}
		return candidates[i].Skill < candidates[j].Skill
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

// normalizeForMatch collapses text into a space-delimited lowercase word
// stream padded with sentinel spaces, so skill lookups are word-boundary
// matches rather than raw substring hits.
func normalizeForMatch(text string) string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch r {
		case '+', '#', '.', '/':
			return false
		}
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	return " " + strings.Join(words, " ") + " "
}

func normalizeSkill(skill string) string {
	return strings.Join(strings.Fields(strings.ToLower(skill)), " ")
}

// Stats reports enrichment coverage over the stored corpus.
type Stats struct {
	TotalJobs       int     `json:"total_jobs"`
	WithDescription int     `json:"with_description"`
	WithSkills      int     `json:"with_skills"`
	WithSeniority   int     `json:"with_seniority"`
	WithBoth        int     `json:"with_both"`
	AvgSkillsPerJob float64 `json:"avg_skills_per_job"`
}

// Statistics computes coverage counts for extracted skills and assigned
// seniority across all stored jobs.
func (a *Analyzer) Statistics(ctx context.Context) (Stats, error) {
	jobs, err := a.jobs.ListJobs(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("computing enrichment statistics: listing jobs: %w", err)
	}

	var stats Stats
	totalSkills := 0
	for _, job := range jobs {
		stats.TotalJobs++
		hasSkills := len(job.Skills) > 0
		hasSeniority := job.Seniority != "" && job.Seniority != model.SeniorityUnknown

		if job.Description != "" {
			stats.WithDescription++
		}
		if hasSkills {
			stats.WithSkills++
		}
		if hasSeniority {
			stats.WithSeniority++
		}
		if hasSkills && hasSeniority {
			stats.WithBoth++
		}
		totalSkills += len(job.Skills)
	}

	if stats.TotalJobs > 0 {
		stats.AvgSkillsPerJob = float64(totalSkills) / float64(stats.TotalJobs)
	}

	return stats, nil
}
