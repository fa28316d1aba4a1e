package ranker

import (
	"strings"
	"time"
	"unicode"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// neutral is the sub-score for a dimension that cannot discriminate: the
// campaign expressed no preference, or the job lacks the data to compare.
// Neutral dimensions must never penalize an otherwise good match.
const neutral = 100.0

// locationScore compares the campaign's location preference with the job's
// location string. Exact or substring match scores 100; otherwise the score
// is proportional to how many preference tokens appear in the job location.
func locationScore(pref, jobLocation string) float64 {
	if pref == "" || jobLocation == "" {
		return neutral
	}

	p := strings.ToLower(strings.TrimSpace(pref))
	l := strings.ToLower(strings.TrimSpace(jobLocation))
	if p == l || strings.Contains(l, p) || strings.Contains(p, l) {
		return 100
	}

	prefTokens := splitWords(p)
	if len(prefTokens) == 0 {
		return neutral
	}
	jobTokens := wordSet(l)

	found := 0
	for _, t := range prefTokens {
		if jobTokens[t] {
			found++
		}
	}
	return float64(found) / float64(len(prefTokens)) * 100
}

// salaryScore measures how much of the campaign's desired band the job's
// advertised band covers. Missing data on either side, a currency mismatch
// without a conversion path, or a period mismatch all neutralize the
// dimension rather than zeroing it.
func salaryScore(pref, job *model.SalaryRange) float64 {
	if pref == nil || job == nil {
		return neutral
	}
	if pref.Currency != "" && job.Currency != "" &&
		!strings.EqualFold(pref.Currency, job.Currency) {
		return neutral
	}
	if pref.Period != "" && job.Period != "" &&
		!strings.EqualFold(pref.Period, job.Period) {
		return neutral
	}

	lo := max(pref.Min, job.Min)
	hi := min(pref.Max, job.Max)
	overlap := hi - lo
	if overlap < 0 {
		return 0
	}

	width := pref.Max - pref.Min
	if width <= 0 {
		// Point preference: inside the job band or not.
		if pref.Min >= job.Min && pref.Min <= job.Max {
			return 100
		}
		return 0
	}

	ratio := overlap / width
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// skillsScore is the share of requested skills present in the job's extracted
// skill set. Intersection over requested-set size, so a job with a superset
// of the requested skills still scores 100. Zero requested skills is neutral.
func skillsScore(requested, extracted []string) float64 {
	if len(requested) == 0 {
		return neutral
	}

	have := make(map[string]bool, len(extracted))
	for _, s := range extracted {
		have[strings.ToLower(strings.TrimSpace(s))] = true
	}

	found := 0
	for _, s := range requested {
		if have[strings.ToLower(strings.TrimSpace(s))] {
			found++
		}
	}
	return float64(found) / float64(len(requested)) * 100
}

// keywordScore measures word-boundary coverage of the campaign's query terms
// in the job title and description.
func keywordScore(query, title, description string) float64 {
	terms := splitWords(strings.ToLower(query))
	if len(terms) == 0 {
		return neutral
	}

	words := wordSet(strings.ToLower(title + " " + description))

	found := 0
	for _, t := range terms {
		if words[t] {
			found++
		}
	}
	return float64(found) / float64(len(terms)) * 100
}

// categoricalScore is the shared comparator for employment type and employer
// size: exact match to any allowed value scores 100, otherwise 0. An empty
// allowed set or a missing job value is neutral.
func categoricalScore(allowed []string, value string) float64 {
	if len(allowed) == 0 || value == "" {
		return neutral
	}
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(value)) {
			return 100
		}
	}
	return 0
}

func seniorityScore(allowed []model.SeniorityLevel, value model.SeniorityLevel) float64 {
	if len(allowed) == 0 || value == "" || value == model.SeniorityUnknown {
		return neutral
	}
	for _, a := range allowed {
		if a == value {
			return 100
		}
	}
	return 0
}

func remoteTypeScore(allowed []model.RemoteType, value model.RemoteType) float64 {
	if len(allowed) == 0 || value == "" || value == model.RemoteTypeUnknown {
		return neutral
	}
	for _, a := range allowed {
		if a == value {
			return 100
		}
	}
	return 0
}

// recencyScore decays linearly from 100 (posted now) to 0 at the end of the
// window. Monotonic and clamped to [0,100]; a missing posted timestamp is
// neutral.
func recencyScore(postedAt *time.Time, now time.Time, window time.Duration) float64 {
	if postedAt == nil || window <= 0 {
		return neutral
	}

	age := now.Sub(*postedAt)
	if age <= 0 {
		return 100
	}
	if age >= window {
		return 0
	}
	return (1 - float64(age)/float64(window)) * 100
}

// splitWords lowercases and splits text on non-alphanumeric runes.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range splitWords(text) {
		set[w] = true
	}
	return set
}
