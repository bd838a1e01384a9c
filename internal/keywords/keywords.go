// Package keywords implements job-description keyword extraction and
// matching against candidate resume text.
package keywords

import (
	"math"
	"strings"
)

// stopwords are common words that carry no signal for matching.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"that": {}, "this": {}, "will": {}, "you": {}, "your": {},
	"are": {}, "our": {}, "to": {}, "of": {}, "in": {},
	"a": {}, "an": {}, "on": {}, "by": {},
}

// Extract tokenizes free text into the set of significant keywords:
// lowercased, alphanumeric only, longer than three characters and not a
// stopword. Order follows first occurrence; duplicates are removed.
func Extract(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		}
	}

	seen := make(map[string]struct{})
	var keys []string
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keys = append(keys, w)
	}
	return keys
}

// Match reports which job-description keywords appear in the candidate
// text and which are missing. A keyword is present when it occurs as a
// case-insensitive substring of the candidate.
type Match struct {
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

// Compute extracts keywords from the job description and partitions
// them by containment in the candidate text.
func Compute(jobDescription, candidate string) Match {
	lower := strings.ToLower(candidate)
	m := Match{Present: []string{}, Missing: []string{}}
	for _, k := range Extract(jobDescription) {
		if strings.Contains(lower, k) {
			m.Present = append(m.Present, k)
		} else {
			m.Missing = append(m.Missing, k)
		}
	}
	return m
}

// Percent is the share of keywords present, rounded to the nearest
// integer. Zero when there are no keywords at all.
func (m Match) Percent() int {
	total := len(m.Present) + len(m.Missing)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(m.Present)) / float64(total) * 100))
}
