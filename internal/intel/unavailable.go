package intel

import (
	"context"
	"errors"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// ErrUnavailable is returned by Unavailable for every call.
var ErrUnavailable = errors.New("text intelligence unavailable")

// Unavailable is the no-provider capability. Every call fails, which drops
// the whole pipeline into its deterministic fallbacks: naive keyword
// extraction, rule-only stage analysis, templated responses. Used when no
// LLM credentials are configured.
type Unavailable struct{}

// ExtractKeywords always fails.
func (Unavailable) ExtractKeywords(ctx context.Context, text string, history []model.Message) (model.ExtractedSignal, error) {
	return nil, ErrUnavailable
}

// ClassifyStage always fails.
func (Unavailable) ClassifyStage(ctx context.Context, history []model.Message, text string, matches []model.MatchResult) (*model.ExternalClassification, error) {
	return nil, ErrUnavailable
}

// GenerateResponse always fails.
func (Unavailable) GenerateResponse(ctx context.Context, history []model.Message, stage model.Stage, matches []model.MatchResult, introducePrices bool) (string, error) {
	return "", ErrUnavailable
}
