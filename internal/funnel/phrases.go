// Package funnel implements the sales-stage analyzer and the
// purchase-readiness validator.
package funnel

import (
	"strings"
)

// PhraseSet is a closed, curated set of phrase patterns matched
// case-insensitively against customer messages. The lists are product
// configuration, not code: they arrive from config.
type PhraseSet struct {
	phrases []string
}

// NewPhraseSet normalizes and stores the phrase list.
func NewPhraseSet(phrases []string) *PhraseSet {
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if n := normalize(p); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &PhraseSet{phrases: normalized}
}

// Matches reports whether any phrase occurs in the message.
func (s *PhraseSet) Matches(message string) bool {
	normalized := normalize(message)
	for _, p := range s.phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// normalize lowercases and folds typographic apostrophes so "I’ll take it"
// matches "i'll take it".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "’", "'")
	return s
}
