package patterns

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/filmozolevskiy/job-etl-project-sub001/internal/model"
)

// Dictionaries holds the matching vocabularies used by the enrichment
// analyzer and the ranking comparators: technical skills, seniority keyword
// families, and remote-work phrases. Built once at process start and never
// mutated afterwards; all lookups are read-only.
type Dictionaries struct {
	skills        map[string]bool
	skillList     []string // sorted, for curated cross-referencing
	seniority     map[model.SeniorityLevel]*regexp.Regexp
	seniorityWord map[string]bool
	remote        map[model.RemoteType][]string // phrases, most specific first
	stopWords     map[string]bool
}

// rawDictionaries is the YAML overlay shape.
type rawDictionaries struct {
	Skills    []string            `yaml:"skills"`
	Seniority map[string][]string `yaml:"seniority"`
	Remote    map[string][]string `yaml:"remote"`
	StopWords []string            `yaml:"stop_words"`
}

// Default returns the built-in dictionaries.
func Default() *Dictionaries {
	return build(defaultSkills, defaultSeniority, defaultRemote, defaultStopWords)
}

// Empty returns dictionaries with no known patterns. Used as the degraded
// state when loading fails: every discovered term is then reported as new.
func Empty() *Dictionaries {
	return build(nil, map[model.SeniorityLevel][]string{}, map[model.RemoteType][]string{}, defaultStopWords)
}

// Load reads a YAML overlay from path and merges it over the built-in
// defaults. On any read or parse failure it returns Empty() together with a
// DictionaryLoadError so the caller can log and continue.
func Load(path string) (*Dictionaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Empty(), &model.DictionaryLoadError{Path: path, Err: err}
	}

	var raw rawDictionaries
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Empty(), &model.DictionaryLoadError{Path: path, Err: err}
	}

	skills := append([]string{}, defaultSkills...)
	skills = append(skills, raw.Skills...)

	seniority := make(map[model.SeniorityLevel][]string, len(defaultSeniority))
	for level, words := range defaultSeniority {
		seniority[level] = append([]string{}, words...)
	}
	for level, words := range raw.Seniority {
		key := model.SeniorityLevel(level)
		if _, ok := defaultSeniority[key]; !ok {
			return Empty(), &model.DictionaryLoadError{
				Path: path,
				Err:  fmt.Errorf("unknown seniority level %q", level),
			}
		}
		seniority[key] = append(seniority[key], words...)
	}

	remote := make(map[model.RemoteType][]string, len(defaultRemote))
	for rt, phrases := range defaultRemote {
		remote[rt] = append([]string{}, phrases...)
	}
	for rt, phrases := range raw.Remote {
		key := model.RemoteType(rt)
		if _, ok := defaultRemote[key]; !ok {
			return Empty(), &model.DictionaryLoadError{
				Path: path,
				Err:  fmt.Errorf("unknown remote type %q", rt),
			}
		}
		remote[key] = append(remote[key], phrases...)
	}

	stop := append([]string{}, defaultStopWords...)
	stop = append(stop, raw.StopWords...)

	return build(skills, seniority, remote, stop), nil
}

func build(
	skills []string,
	seniority map[model.SeniorityLevel][]string,
	remote map[model.RemoteType][]string,
	stopWords []string,
) *Dictionaries {
	d := &Dictionaries{
		skills:        make(map[string]bool, len(skills)),
		seniority:     make(map[model.SeniorityLevel]*regexp.Regexp, len(seniority)),
		seniorityWord: make(map[string]bool),
		remote:        make(map[model.RemoteType][]string, len(remote)),
		stopWords:     make(map[string]bool, len(stopWords)),
	}

	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || d.skills[s] {
			continue
		}
		d.skills[s] = true
		d.skillList = append(d.skillList, s)
	}
	sort.Strings(d.skillList)

	for level, words := range seniority {
		escaped := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			d.seniorityWord[w] = true
			escaped = append(escaped, regexp.QuoteMeta(w))
		}
		if len(escaped) == 0 {
			continue
		}
		// Longest alternative first so "senior staff" wins over "senior".
		sort.Slice(escaped, func(i, j int) bool { return len(escaped[i]) > len(escaped[j]) })
		d.seniority[level] = regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
	}

	for rt, phrases := range remote {
		cleaned := make([]string, 0, len(phrases))
		for _, p := range phrases {
			p = strings.ToLower(strings.TrimSpace(p))
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		// Most specific phrase first for tie-breaking.
		sort.Slice(cleaned, func(i, j int) bool { return len(cleaned[i]) > len(cleaned[j]) })
		d.remote[rt] = cleaned
	}

	for _, w := range stopWords {
		d.stopWords[strings.ToLower(strings.TrimSpace(w))] = true
	}

	return d
}

// KnownSkill reports whether term is an exact (case-insensitive) entry in the
// technical-skills dictionary.
func (d *Dictionaries) KnownSkill(term string) bool {
	return d.skills[strings.ToLower(term)]
}

// KnownSeniorityWord reports whether term is one of the seniority keywords.
func (d *Dictionaries) KnownSeniorityWord(term string) bool {
	return d.seniorityWord[strings.ToLower(term)]
}

// SkillList returns the curated technical-term reference list, sorted.
// The returned slice is a copy.
func (d *Dictionaries) SkillList() []string {
	return append([]string{}, d.skillList...)
}

// IsStopWord reports whether the lowercase token is a stop word.
func (d *Dictionaries) IsStopWord(token string) bool {
	return d.stopWords[token]
}

// MatchSeniority returns the seniority buckets whose keyword family matches
// the text, in a stable order.
func (d *Dictionaries) MatchSeniority(text string) []model.SeniorityLevel {
	var matched []model.SeniorityLevel
	for _, level := range seniorityOrder {
		re, ok := d.seniority[level]
		if ok && re.MatchString(text) {
			matched = append(matched, level)
		}
	}
	return matched
}

// MatchRemote returns the remote-work classification for the text, or
// RemoteTypeUnknown when no phrase matches. Phrases are checked most specific
// first within each type; types are checked in a fixed order.
func (d *Dictionaries) MatchRemote(text string) model.RemoteType {
	lower := strings.ToLower(text)
	for _, rt := range remoteOrder {
		for _, phrase := range d.remote[rt] {
			if strings.Contains(lower, phrase) {
				return rt
			}
		}
	}
	return model.RemoteTypeUnknown
}

// seniorityOrder fixes iteration order for deterministic output.
var seniorityOrder = []model.SeniorityLevel{
	model.SeniorityIntern,
	model.SeniorityJunior,
	model.SeniorityMid,
	model.SenioritySenior,
	model.SeniorityExecutive,
}

// remoteOrder: hybrid before remote so "hybrid remote" postings classify as
// hybrid, onsite last.
var remoteOrder = []model.RemoteType{
	model.RemoteTypeHybrid,
	model.RemoteTypeRemote,
	model.RemoteTypeOnsite,
}
