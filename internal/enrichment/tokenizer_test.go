package enrichment

import (
	"reflect"
	"testing"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/patterns"
)

func TestTokenize(t *testing.T) {
	dicts := patterns.Default()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Senior Python-Developer needed!",
			want: []string{"senior", "python", "developer", "needed"},
		},
		{
			name: "drops short tokens",
			text: "a c go rust",
			want: []string{"go", "rust"},
		},
		{
			name: "drops purely numeric tokens",
			text: "rust 2026 401k",
			want: []string{"rust", "401k"},
		},
		{
			name: "drops stop words",
			text: "join the team as an engineer",
			want: []string{"engineer"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text, dicts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNgrams(t *testing.T) {
	tokens := []string{"senior", "python", "developer"}

	tests := []struct {
		n    int
		want []string
	}{
		{1, []string{"senior", "python", "developer"}},
		{2, []string{"senior python", "python developer"}},
		{3, []string{"senior python developer"}},
		{4, nil},
	}
	for _, tt := range tests {
		got := ngrams(tokens, tt.n)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ngrams(n=%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text passes through",
			in:   "Senior Python Developer",
			want: "Senior Python Developer",
		},
		{
			name: "tags removed",
			in:   "<p>We use <strong>Python</strong> and Go.</p>",
			want: "We use Python and Go.",
		},
		{
			name: "whitespace collapsed",
			in:   "<ul><li>Python</li>\n<li>Go</li></ul>",
			want: "Python Go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripHTML(tt.in)
			if got != tt.want {
				t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
