package funnel

import (
	"strings"

	"go.uber.org/zap"

	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/logger"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

// Analyzer combines the external classifier's advisory output with
// deterministic business rules. The classifier proposes; these rules dispose.
type Analyzer struct {
	confirmation *PhraseSet
	interest     *PhraseSet
	removal      *PhraseSet
	logger       *logger.Logger
}

// NewAnalyzer creates an analyzer with the curated phrase sets.
func NewAnalyzer(confirmation, interest, removal []string, log *logger.Logger) *Analyzer {
	return &Analyzer{
		confirmation: NewPhraseSet(confirmation),
		interest:     NewPhraseSet(interest),
		removal:      NewPhraseSet(removal),
		logger:       log,
	}
}

// Analyze produces the validated stage decision for one turn. A nil
// classification (timeout, malformed output) degrades to the deterministic
// rules alone; the turn still completes.
// names maps product IDs to display names so removal intents can target
// products matched on earlier turns; the orchestrator builds it from the
// catalog.
func (a *Analyzer) Analyze(
	prior *model.ConversationState,
	message string,
	signal model.ExtractedSignal,
	matches []model.MatchResult,
	names map[string]string,
	raw *model.ExternalClassification,
) model.StageDecision {
	baseline := prior.FunnelStage()
	explicit := a.confirmation.Matches(message)
	offTopic := len(signal) == 0 && len(matches) == 0 && !explicit

	// Price-exposure gate: readiness is impossible until the customer has
	// seen prices on a *prior* turn, and the turn that first presents prices
	// still returns false.
	introducesPrices := !prior.PricesShown && len(matches) > 0
	ready := explicit && prior.PricesShown

	if explicit && !prior.PricesShown {
		metrics.PrematureConfirmations.Inc()
		a.logger.Warn("premature purchase confirmation before price exposure",
			zap.String("customer_id", prior.CustomerID),
			zap.String("stage", string(baseline)),
		)
	}

	// Soft-interest wording ("sounds good", "tell me more") is the
	// classifier's usual false-positive trigger. Advisory readiness without
	// an explicit confirmation phrase is always discarded.
	if raw != nil && raw.IsReadyToBuy && !explicit {
		a.logger.Debug("discarding advisory readiness",
			zap.String("customer_id", prior.CustomerID),
			zap.Bool("interest_phrase", a.interest.Matches(message)),
		)
	}

	stage := a.resolveStage(baseline, raw, explicit && prior.PricesShown, offTopic)

	// Explicit confirmation after price exposure forces the terminal stage
	// regardless of what the classifier said.
	if ready {
		stage = model.StagePurchaseConfirmation
	}

	confidence := 0.5
	if raw != nil {
		confidence = clamp01(raw.Confidence)
	}
	if ready {
		confidence = 0.9
	}

	return model.StageDecision{
		Stage:                     stage,
		IsReadyToBuy:              ready,
		PricesShown:               prior.PricesShown || introducesPrices,
		InterestedProducts:        a.updateProducts(prior, message, matches, names),
		RequiresPriceIntroduction: introducesPrices,
		ExplicitConfirmation:      explicit,
		Confidence:                confidence,
	}
}

// resolveStage applies stage monotonicity to the advisory classification.
// Earlier-stage suggestions are ignored; OFF_TOPIC is always reachable; the
// terminal stage is only reachable through the explicit-confirmation
// override.
func (a *Analyzer) resolveStage(baseline model.Stage, raw *model.ExternalClassification, confirmed, offTopic bool) model.Stage {
	if offTopic {
		return model.StageOffTopic
	}
	if raw == nil {
		return baseline
	}

	suggested, ok := model.ParseStage(strings.TrimSpace(raw.Stage))
	if !ok {
		return baseline
	}

	switch {
	case suggested == model.StageOffTopic:
		return model.StageOffTopic
	case suggested == model.StagePurchaseConfirmation && !confirmed:
		// The classifier alone cannot close the funnel. Treat the
		// suggestion as purchase intent if that is still forward progress.
		if model.StagePurchaseIntent.AtOrAfter(baseline) {
			return model.StagePurchaseIntent
		}
		return baseline
	case suggested.AtOrAfter(baseline):
		return suggested
	default:
		return baseline
	}
}

// updateProducts unions matched products into the tracked set (insertion
// order preserved), then applies explicit removal intents. A removed product
// resurfaces only through a future match.
func (a *Analyzer) updateProducts(prior *model.ConversationState, message string, matches []model.MatchResult, names map[string]string) []string {
	products := make([]string, len(prior.InterestedProducts))
	copy(products, prior.InterestedProducts)

	seen := make(map[string]bool, len(products))
	for _, id := range products {
		seen[id] = true
	}
	for _, m := range matches {
		if !seen[m.ProductID] {
			products = append(products, m.ProductID)
			seen[m.ProductID] = true
		}
	}

	if !a.removal.Matches(message) {
		return products
	}

	normalized := normalize(message)
	kept := products[:0]
	for _, id := range products {
		name := names[id]
		for _, m := range matches {
			if m.ProductID == id && m.Product != nil {
				name = m.Product.Name
			}
		}
		if name != "" && strings.Contains(normalized, normalize(name)) {
			a.logger.Info("product removed by customer intent",
				zap.String("customer_id", prior.CustomerID),
				zap.String("product_id", id),
			)
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
