package domain

import "strings"

// MaxResults bounds every search result list.
const MaxResults = 15

// Scoring weights. These are fixed policy: changing them changes
// ranking for every existing corpus.
const (
	PhraseWeight  = 10
	KeywordWeight = 2
	BigramWeight  = 1
)

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	// Zero, negative, or anything above MaxResults means MaxResults.
	Limit int
}

// EffectiveLimit returns the limit clamped to (0, MaxResults].
func (o SearchOptions) EffectiveLimit() int {
	if o.Limit <= 0 || o.Limit > MaxResults {
		return MaxResults
	}
	return o.Limit
}

// Passage is a single ranked result as seen by callers.
// Scores and normalised text stay inside the core.
type Passage struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// FormatContext renders passages as a grounding block for a prompt:
// each passage as "[Source: name]" followed by its content,
// passages separated by a blank line.
func FormatContext(passages []Passage) string {
	var b strings.Builder
	for i, p := range passages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("[Source: ")
		b.WriteString(p.Source)
		b.WriteString("]\n")
		b.WriteString(p.Content)
	}
	return b.String()
}
