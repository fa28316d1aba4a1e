package ranker

import (
	"testing"
	"time"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

func TestLocationScore(t *testing.T) {
	tests := []struct {
		name string
		pref string
		job  string
		want float64
	}{
		{"no preference is neutral", "", "Berlin", 100},
		{"missing job location is neutral", "Berlin", "", 100},
		{"exact match", "New York, NY", "new york, ny", 100},
		{"preference contained in job location", "Remote", "Remote - US", 100},
		{"job location contained in preference", "Greater London Area", "London", 100},
		{"partial token overlap", "New York City", "York, UK", 100.0 / 3},
		{"no overlap", "Berlin", "Tokyo", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := locationScore(tt.pref, tt.job)
			if !closeTo(got, tt.want) {
				t.Errorf("locationScore(%q, %q) = %g, want %g", tt.pref, tt.job, got, tt.want)
			}
		})
	}
}

func TestSalaryScore(t *testing.T) {
	band := func(lo, hi float64, currency string) *model.SalaryRange {
		return &model.SalaryRange{Min: lo, Max: hi, Currency: currency, Period: "year"}
	}

	tests := []struct {
		name string
		pref *model.SalaryRange
		job  *model.SalaryRange
		want float64
	}{
		{"no preference is neutral", nil, band(100, 200, "USD"), 100},
		{"missing job salary is neutral", band(100, 200, "USD"), nil, 100},
		{"currency mismatch is neutral", band(100, 200, "USD"), band(100, 200, "EUR"), 100},
		{"full coverage", band(100, 200, "USD"), band(50, 250, "USD"), 100},
		{"half coverage", band(100, 200, "USD"), band(150, 300, "USD"), 50},
		{"no overlap", band(100, 200, "USD"), band(300, 400, "USD"), 0},
		{"point preference inside job band", band(150, 150, "USD"), band(100, 200, "USD"), 100},
		{"point preference outside job band", band(250, 250, "USD"), band(100, 200, "USD"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := salaryScore(tt.pref, tt.job)
			if !closeTo(got, tt.want) {
				t.Errorf("salaryScore = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		extracted []string
		want      float64
	}{
		{"no requested skills is neutral", nil, []string{"python"}, 100},
		{"all requested present", []string{"python", "sql"}, []string{"python", "sql"}, 100},
		{"superset still scores 100", []string{"python"}, []string{"python", "sql", "dbt"}, 100},
		{"half present", []string{"python", "rust"}, []string{"python"}, 50},
		{"case insensitive", []string{"Python"}, []string{"PYTHON"}, 100},
		{"none present", []string{"rust"}, []string{"python"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skillsScore(tt.requested, tt.extracted)
			if !closeTo(got, tt.want) {
				t.Errorf("skillsScore = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestKeywordScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		title string
		desc  string
		want  float64
	}{
		{"empty query is neutral", "", "Engineer", "text", 100},
		{"all terms in title", "python developer", "Senior Python Developer", "", 100},
		{"terms split across title and description", "python airflow", "Python Engineer", "we run airflow", 100},
		{"half coverage", "python rust", "Python Engineer", "", 50},
		{"word boundary, no substring hit", "java", "JavaScript Engineer", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keywordScore(tt.query, tt.title, tt.desc)
			if !closeTo(got, tt.want) {
				t.Errorf("keywordScore = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestCategoricalScore(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		value   string
		want    float64
	}{
		{"empty preference is neutral", nil, "fulltime", 100},
		{"missing value is neutral", []string{"fulltime"}, "", 100},
		{"exact match", []string{"contract", "fulltime"}, "fulltime", 100},
		{"case insensitive", []string{"Fulltime"}, "FULLTIME", 100},
		{"no match", []string{"contract"}, "fulltime", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categoricalScore(tt.allowed, tt.value)
			if got != tt.want {
				t.Errorf("categoricalScore = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSeniorityAndRemoteUnknownAreNeutral(t *testing.T) {
	if got := seniorityScore([]model.SeniorityLevel{model.SenioritySenior}, model.SeniorityUnknown); got != 100 {
		t.Errorf("seniorityScore with unknown level = %g, want 100", got)
	}
	if got := seniorityScore([]model.SeniorityLevel{model.SenioritySenior}, model.SeniorityJunior); got != 0 {
		t.Errorf("seniorityScore with mismatched level = %g, want 0", got)
	}
	if got := remoteTypeScore([]model.RemoteType{model.RemoteTypeRemote}, model.RemoteTypeUnknown); got != 100 {
		t.Errorf("remoteTypeScore with unknown type = %g, want 100", got)
	}
	if got := remoteTypeScore([]model.RemoteType{model.RemoteTypeRemote}, model.RemoteTypeOnsite); got != 0 {
		t.Errorf("remoteTypeScore with mismatched type = %g, want 0", got)
	}
}

func TestRecencyScore(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	tests := []struct {
		name     string
		postedAt *time.Time
		want     float64
	}{
		{"missing timestamp is neutral", nil, 100},
		{"posted now", ago(0), 100},
		{"future post clamps to 100", ago(-time.Hour), 100},
		{"half window", ago(15 * 24 * time.Hour), 50},
		{"window boundary", ago(30 * 24 * time.Hour), 0},
		{"beyond window clamps to 0", ago(90 * 24 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recencyScore(tt.postedAt, now, window)
			if !closeTo(got, tt.want) {
				t.Errorf("recencyScore = %g, want %g", got, tt.want)
			}
		})
	}

	// Monotonicity over the window.
	prev := 101.0
	for days := 0; days <= 35; days++ {
		score := recencyScore(ago(time.Duration(days)*24*time.Hour), now, window)
		if score > prev {
			t.Fatalf("recency score increased at day %d: %g > %g", days, score, prev)
		}
		if score < 0 || score > 100 {
			t.Fatalf("recency score out of bounds at day %d: %g", days, score)
		}
		prev = score
	}
}

func closeTo(got, want float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.0001
}
