// Package intel provides the text intelligence capability: keyword
// extraction, advisory stage classification, and response generation.
//
// Everything here is best-effort. Callers treat errors and malformed output
// as "no classification" and fall back to deterministic rules; a failed call
// never fails a conversation turn.
package intel

import (
	"context"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// Capability is the contract consumed by the conversation core.
type Capability interface {
	// ExtractKeywords extracts product-relevant keywords from one customer
	// message. An empty signal marks an off-topic message.
	ExtractKeywords(ctx context.Context, text string, history []model.Message) (model.ExtractedSignal, error)

	// ClassifyStage returns the advisory stage/intent guess for the current
	// turn. The result is untrusted input to the sales-stage analyzer.
	ClassifyStage(ctx context.Context, history []model.Message, text string, matches []model.MatchResult) (*model.ExternalClassification, error)

	// GenerateResponse produces the assistant's reply conditioned on the
	// validated stage and matched products.
	GenerateResponse(ctx context.Context, history []model.Message, stage model.Stage, matches []model.MatchResult, introducePrices bool) (string, error)
}
