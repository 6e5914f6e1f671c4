package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/logger"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(
		[]string{"i'll take it", "i'll buy", "confirm my order"},
		[]string{"sounds good", "tell me more"},
		[]string{"i don't need the", "remove the"},
		&logger.Logger{Logger: zap.NewNop()},
	)
}

func priorState(stage model.Stage, pricesShown bool, products ...string) *model.ConversationState {
	state := model.NewConversationState("cust-1")
	state.CurrentStage = stage
	state.ResumeStage = stage
	state.PricesShown = pricesShown
	state.InterestedProducts = append(state.InterestedProducts, products...)
	return state
}

func match(id, name string) model.MatchResult {
	return model.MatchResult{
		ProductID: id,
		Score:     1.0,
		Product:   &model.Product{ID: id, Name: name, Price: 49.99},
	}
}

func TestAnalyzeExplicitConfirmationAfterPrices(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true, "p1")

	decision := a.Analyze(prior, "Yes, I'll take it", model.ExtractedSignal{"take"}, nil, nil, nil)

	assert.True(t, decision.IsReadyToBuy)
	assert.True(t, decision.ExplicitConfirmation)
	assert.Equal(t, model.StagePurchaseConfirmation, decision.Stage)
	assert.Equal(t, 0.9, decision.Confidence)
	assert.True(t, Validate(decision))
}

func TestAnalyzePrematureConfirmationBlocked(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageInitialInterest, false)

	// First message of a brand-new conversation is already a purchase phrase.
	decision := a.Analyze(prior, "I'll take it", nil, nil, nil, nil)

	assert.False(t, decision.IsReadyToBuy)
	assert.True(t, decision.ExplicitConfirmation)
	assert.NotEqual(t, model.StagePurchaseConfirmation, decision.Stage)
	assert.False(t, decision.PricesShown)
	assert.False(t, Validate(decision))
}

func TestAnalyzePriceIntroductionTurnNotReady(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageProductDiscovery, false)

	// The same turn matches a product for the first time and confirms.
	// Readiness requires exposure on a prior turn.
	decision := a.Analyze(prior, "perfume, I'll buy",
		model.ExtractedSignal{"perfume"},
		[]model.MatchResult{match("p1", "Midnight Oud")},
		nil, nil)

	assert.False(t, decision.IsReadyToBuy)
	assert.True(t, decision.PricesShown)
	assert.True(t, decision.RequiresPriceIntroduction)
	assert.False(t, Validate(decision))
}

func TestAnalyzeInterestPhraseDoesNotConfirm(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StagePriceEvaluation, true, "p1")

	// The classifier is fooled by soft-interest wording; the rules are not.
	raw := &model.ExternalClassification{
		Stage:        string(model.StagePurchaseConfirmation),
		IsReadyToBuy: true,
		Confidence:   0.95,
	}
	decision := a.Analyze(prior, "This sounds good!", model.ExtractedSignal{"good"}, nil, nil, raw)

	assert.False(t, decision.IsReadyToBuy)
	assert.False(t, decision.ExplicitConfirmation)
	assert.Equal(t, model.StagePurchaseIntent, decision.Stage)
	assert.False(t, Validate(decision))
}

func TestAnalyzeStageMonotonicity(t *testing.T) {
	tests := []struct {
		name      string
		prior     model.Stage
		suggested string
		want      model.Stage
	}{
		{"forward accepted", model.StageNeedClarification, "PRICE_EVALUATION", model.StagePriceEvaluation},
		{"same stage kept", model.StageConsideration, "CONSIDERATION", model.StageConsideration},
		{"backward ignored", model.StageConsideration, "INITIAL_INTEREST", model.StageConsideration},
		{"unknown ignored", model.StageConsideration, "CHECKOUT", model.StageConsideration},
		{"off topic reachable", model.StageConsideration, "OFF_TOPIC", model.StageOffTopic},
		{"terminal downgraded to intent", model.StageConsideration, "PURCHASE_CONFIRMATION", model.StagePurchaseIntent},
	}

	a := newTestAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prior := priorState(tt.prior, true)
			raw := &model.ExternalClassification{Stage: tt.suggested, Confidence: 0.8}
			decision := a.Analyze(prior, "what about delivery", model.ExtractedSignal{"delivery"}, nil, nil, raw)
			assert.Equal(t, tt.want, decision.Stage)
		})
	}
}

func TestAnalyzeOffTopicDetection(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true, "p1", "p2")

	// No signal, no matches, no confirmation phrase.
	decision := a.Analyze(prior, "haha nice weather today", nil, nil, nil, nil)

	assert.Equal(t, model.StageOffTopic, decision.Stage)
	assert.Equal(t, []string{"p1", "p2"}, decision.InterestedProducts)
	assert.False(t, decision.IsReadyToBuy)
}

func TestAnalyzeResumesFunnelAfterOffTopic(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true, "p1")
	prior.CurrentStage = model.StageOffTopic

	// Back on topic with no classifier available: land on the remembered
	// funnel position, not on the start of the funnel.
	decision := a.Analyze(prior, "so about that perfume", model.ExtractedSignal{"perfume"}, nil, nil, nil)

	assert.Equal(t, model.StageConsideration, decision.Stage)
}

func TestAnalyzeNilClassificationKeepsBaseline(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StagePriceEvaluation, true)

	decision := a.Analyze(prior, "what sizes do you have", model.ExtractedSignal{"sizes"}, nil, nil, nil)

	assert.Equal(t, model.StagePriceEvaluation, decision.Stage)
	assert.Equal(t, 0.5, decision.Confidence)
}

func TestAnalyzeConfidenceClamped(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true)

	raw := &model.ExternalClassification{Stage: "CONSIDERATION", Confidence: 3.7}
	decision := a.Analyze(prior, "still thinking", model.ExtractedSignal{"thinking"}, nil, nil, raw)
	assert.Equal(t, 1.0, decision.Confidence)

	raw.Confidence = -0.4
	decision = a.Analyze(prior, "still thinking", model.ExtractedSignal{"thinking"}, nil, nil, raw)
	assert.Equal(t, 0.0, decision.Confidence)
}

func TestAnalyzeProductUnion(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageProductDiscovery, true, "p1")

	decision := a.Analyze(prior, "show me the citrus one too",
		model.ExtractedSignal{"citrus"},
		[]model.MatchResult{match("p2", "Citrus Splash"), match("p1", "Midnight Oud")},
		nil, nil)

	// Union preserves insertion order and never duplicates.
	assert.Equal(t, []string{"p1", "p2"}, decision.InterestedProducts)
}

func TestAnalyzeProductRemoval(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true, "p1", "p2")
	names := map[string]string{"p1": "Midnight Oud", "p2": "Citrus Splash"}

	decision := a.Analyze(prior, "Actually I don't need the Midnight Oud", model.ExtractedSignal{"midnight", "oud"}, nil, names, nil)
	assert.Equal(t, []string{"p2"}, decision.InterestedProducts)

	// A removal phrase that names nothing tracked removes nothing.
	decision = a.Analyze(prior, "remove the blue widget", model.ExtractedSignal{"widget"}, nil, names, nil)
	assert.Equal(t, []string{"p1", "p2"}, decision.InterestedProducts)
}

func TestAnalyzeRemovedProductResurfacesOnNewMatch(t *testing.T) {
	a := newTestAnalyzer()
	prior := priorState(model.StageConsideration, true, "p2")

	decision := a.Analyze(prior, "on second thought, the oud one",
		model.ExtractedSignal{"oud"},
		[]model.MatchResult{match("p1", "Midnight Oud")},
		nil, nil)

	require.Len(t, decision.InterestedProducts, 2)
	assert.Equal(t, []string{"p2", "p1"}, decision.InterestedProducts)
}
