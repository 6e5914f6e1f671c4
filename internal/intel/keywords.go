package intel

import (
	"strings"
	"unicode"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// stopwords covers greetings, fillers and function words that never identify
// a product.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "you": true, "your": true,
	"have": true, "has": true, "are": true, "was": true, "were": true,
	"can": true, "could": true, "would": true, "should": true, "will": true,
	"this": true, "that": true, "these": true, "those": true, "with": true,
	"about": true, "what": true, "which": true, "when": true, "how": true,
	"hello": true, "hey": true, "thanks": true, "thank": true, "please": true,
	"looking": true, "need": true, "want": true, "some": true, "something": true,
	"interested": true, "there": true, "here": true, "just": true, "really": true,
	"any": true, "anything": true, "tell": true, "more": true, "much": true,
	"does": true, "don": true, "not": true, "but": true, "they": true,
}

// NaiveKeywords is the deterministic fallback extractor used when the text
// intelligence capability is unavailable: lowercase word split minus
// stopwords and short tokens. Cruder than the LLM extractor, but it keeps a
// degraded turn on topic.
func NaiveKeywords(text string) model.ExtractedSignal {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var signal model.ExtractedSignal
	seen := make(map[string]bool)
	for _, w := range words {
		if len(w) < 3 || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		signal = append(signal, w)
	}
	return signal
}
