// Package matcher scores catalog products against extracted keyword signals.
package matcher

import (
	"sort"
	"strings"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// Matcher is a pure scoring function over the product catalog.
type Matcher struct {
	threshold  float64
	maxResults int
}

// New creates a matcher with the given similarity threshold and result cap.
func New(threshold float64, maxResults int) *Matcher {
	return &Matcher{
		threshold:  threshold,
		maxResults: maxResults,
	}
}

// Match scores every product against the signal and returns the filtered,
// ranked results. An empty signal or catalog yields an empty list; neither is
// an error. The function has no side effects and is deterministic.
func (m *Matcher) Match(signal model.ExtractedSignal, catalog []model.Product) []model.MatchResult {
	if len(signal) == 0 || len(catalog) == 0 {
		return []model.MatchResult{}
	}

	keywords := make([]string, len(signal))
	for i, kw := range signal {
		keywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}

	type scored struct {
		result model.MatchResult
		rating float64
		index  int
	}

	var candidates []scored
	for i := range catalog {
		product := &catalog[i]
		score, matchedTags := scoreProduct(keywords, product.Tags)
		if score < m.threshold {
			continue
		}
		candidates = append(candidates, scored{
			result: model.MatchResult{
				ProductID:   product.ID,
				Score:       score,
				MatchedTags: matchedTags,
				Product:     product,
			},
			rating: product.Rating,
			index:  i,
		})
	}

	// Descending score, then descending rating, then catalog insertion order.
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].result.Score != candidates[b].result.Score {
			return candidates[a].result.Score > candidates[b].result.Score
		}
		if candidates[a].rating != candidates[b].rating {
			return candidates[a].rating > candidates[b].rating
		}
		return candidates[a].index < candidates[b].index
	})

	if m.maxResults > 0 && len(candidates) > m.maxResults {
		candidates = candidates[:m.maxResults]
	}

	results := make([]model.MatchResult, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}
	return results
}

// scoreProduct sums each tag's best keyword weight and normalizes by the
// keyword count, capped at 1.0. An exact case-insensitive match weighs 1.0; a
// substring containment in either direction weighs 0.5 when no exact match
// exists for that tag.
func scoreProduct(keywords []string, tags []string) (float64, []string) {
	if len(tags) == 0 {
		return 0, nil
	}

	var total float64
	var matchedTags []string
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}

		var best float64
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			switch {
			case kw == normalized:
				best = 1.0
			case best < 0.5 && (strings.Contains(normalized, kw) || strings.Contains(kw, normalized)):
				best = 0.5
			}
			if best == 1.0 {
				break
			}
		}

		if best > 0 {
			total += best
			matchedTags = append(matchedTags, tag)
		}
	}

	score := total / float64(len(keywords))
	if score > 1.0 {
		score = 1.0
	}
	return score, matchedTags
}
