package search

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity for a fuzzy hit.
const DefaultThreshold = 0.6

// minFragment is the shortest query token that participates in matching.
const minFragment = 2

// Field is one searchable text with its relative weight.
type Field struct {
	Text   string
	Weight float64
}

// Matcher scores items against queries.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a matcher with the given similarity cutoff. Values
// outside (0, 1] fall back to DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// tokens splits a query and drops fragments too short to match.
func tokens(query string) []string {
	var usable []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(token)) >= minFragment {
			usable = append(usable, token)
		}
	}
	return usable
}

// Score rates fields against the query. The result is the best weighted
// field score, or 0 when nothing matches. A query with no usable tokens
// scores -1, which callers treat as "no filter".
func (m *Matcher) Score(query string, fields []Field) float64 {
	toks := tokens(query)
	if len(toks) == 0 {
		return -1
	}

	best := 0.0
	for _, field := range fields {
		if field.Text == "" || field.Weight <= 0 {
			continue
		}
		score := field.Weight * m.fieldScore(toks, strings.ToLower(field.Text))
		if score > best {
			best = score
		}
	}
	return best
}

// fieldScore averages per-token scores so multi-word queries must mostly
// match to rank a field.
func (m *Matcher) fieldScore(toks []string, text string) float64 {
	total := 0.0
	for _, token := range toks {
		total += m.tokenScore(token, text)
	}
	return total / float64(len(toks))
}

func (m *Matcher) tokenScore(token, text string) float64 {
	switch {
	case text == token:
		return 1
	case strings.HasPrefix(text, token):
		return 0.9
	case strings.Contains(text, token):
		return 0.75
	}

	best := float64(0)
	for _, word := range strings.Fields(text) {
		similarity := float64(edlib.JaroWinklerSimilarity(token, word))
		if similarity > best {
			best = similarity
		}
	}
	if best < m.threshold {
		return 0
	}
	// Scale below substring hits so approximate matches never outrank them.
	return best * 0.7
}

type ranked struct {
	index int
	score float64
}

// rank returns the input indices ordered by descending score, dropping
// non-matches. A nil result with ok=false means the query was blank and the
// caller should return its input unchanged.
func (m *Matcher) rank(query string, count int, fields func(int) []Field) ([]int, bool) {
	if len(tokens(query)) == 0 {
		return nil, false
	}
	matches := make([]ranked, 0, count)
	for i := 0; i < count; i++ {
		score := m.Score(query, fields(i))
		if score > 0 {
			matches = append(matches, ranked{index: i, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.index
	}
	return indices, true
}
