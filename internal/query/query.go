package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordRunes is the shortest keyword kept; shorter tokens are dropped.
const minKeywordRunes = 3

// Features is a parsed query.
type Features struct {
	// Phrase is the whole lowercased query, matched as a substring.
	Phrase string

	// Keywords are the distinct whitespace-delimited tokens longer
	// than two characters, in first-seen order.
	Keywords []string

	// Bigrams are the distinct overlapping two-character windows of
	// Phrase, skipping all-whitespace windows, in first-seen order.
	// Empty unless Keywords is empty or the query contains CJK.
	Bigrams []string
}

// Parse lowercases q and extracts its features.
func Parse(q string) Features {
	phrase := strings.ToLower(q)
	f := Features{
		Phrase:   phrase,
		Keywords: Keywords(phrase),
	}
	if len(f.Keywords) == 0 || ContainsCJK(phrase) {
		f.Bigrams = Bigrams(phrase)
	}
	return f
}

// Keywords splits s on whitespace runs and keeps distinct tokens of
// at least three characters.
func Keywords(s string) []string {
	fields := strings.Fields(s)
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if utf8.RuneCountInString(field) < minKeywordRunes {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, field)
	}
	return terms
}

// Bigrams returns the distinct overlapping two-character windows of s,
// sliding one character at a time. Windows made only of whitespace are
// skipped; a window with one space and one letter is kept.
func Bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	grams := make([]string, 0, len(runes)-1)
	seen := make(map[string]struct{}, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		if unicode.IsSpace(runes[i]) && unicode.IsSpace(runes[i+1]) {
			continue
		}
		gram := string(runes[i : i+2])
		if _, dup := seen[gram]; dup {
			continue
		}
		seen[gram] = struct{}{}
		grams = append(grams, gram)
	}
	return grams
}
