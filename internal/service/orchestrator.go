// Package service provides the conversation orchestration pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/glossline-ai/sales-agent/internal/catalog"
	"github.com/glossline-ai/sales-agent/internal/events"
	"github.com/glossline-ai/sales-agent/internal/funnel"
	"github.com/glossline-ai/sales-agent/internal/intel"
	"github.com/glossline-ai/sales-agent/internal/matcher"
	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/internal/store"
	"github.com/glossline-ai/sales-agent/pkg/logger"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

// DecisionPublisher publishes per-turn decision events. Publishing is
// best-effort; failures never fail a turn.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, event *events.DecisionEvent) error
}

// Options carries the orchestrator's tunables.
type Options struct {
	MaxConversationHistory int
	HandoverMaxTurns       int
}

// Orchestrator runs the per-message pipeline: load state, extract keywords,
// match products, analyze the stage, validate readiness, generate the reply,
// persist. Turns for the same customer are serialized; different customers
// proceed independently.
type Orchestrator struct {
	store     store.Adapter
	catalog   catalog.Accessor
	intel     intel.Capability
	matcher   *matcher.Matcher
	analyzer  *funnel.Analyzer
	publisher DecisionPublisher
	locks     *lockTable
	logger    *logger.Logger
	opts      Options
}

// NewOrchestrator wires the pipeline. publisher may be nil when event
// publishing is disabled.
func NewOrchestrator(
	storeAdapter store.Adapter,
	catalogAccessor catalog.Accessor,
	intelligence intel.Capability,
	productMatcher *matcher.Matcher,
	analyzer *funnel.Analyzer,
	publisher DecisionPublisher,
	log *logger.Logger,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		store:     storeAdapter,
		catalog:   catalogAccessor,
		intel:     intelligence,
		matcher:   productMatcher,
		analyzer:  analyzer,
		publisher: publisher,
		locks:     newLockTable(),
		logger:    log,
		opts:      opts,
	}
}

// HandleMessage processes one inbound customer message and returns the
// decision record. The per-customer critical section spans load through
// persist and is released on every exit path.
func (o *Orchestrator) HandleMessage(ctx context.Context, customerID, text string) (*model.WebhookResponse, error) {
	o.locks.acquire(customerID)
	defer o.locks.release(customerID)

	state, err := o.store.LoadState(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		state = model.NewConversationState(customerID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}

	history := make([]model.Message, len(state.Messages))
	copy(history, state.Messages)

	state.AppendMessage(model.RoleCustomer, text, o.opts.MaxConversationHistory)

	signal, err := o.intel.ExtractKeywords(ctx, text, history)
	if err != nil {
		o.logger.Warn("keyword extraction degraded to naive fallback",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		signal = intel.NaiveKeywords(text)
	}

	products, err := o.catalog.ListActiveProducts(ctx)
	if err != nil {
		o.logger.Error("catalog unavailable, matching skipped",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		products = nil
	}

	matches := o.matcher.Match(signal, products)

	classification, err := o.intel.ClassifyStage(ctx, state.Messages, text, matches)
	if err != nil {
		// Absent or malformed classification is not an error for the turn:
		// the analyzer degrades to deterministic rules.
		o.logger.Warn("stage classification unavailable",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		classification = nil
	}

	names := productNames(products)
	decision := o.analyzer.Analyze(state, text, signal, matches, names, classification)

	// Final defense-in-depth gate, independent of the analyzer's internals.
	decision.IsReadyToBuy = funnel.Validate(decision)

	responseText, err := o.intel.GenerateResponse(ctx, state.Messages, decision.Stage, matches, decision.RequiresPriceIntroduction)
	if err != nil {
		o.logger.Warn("response generation degraded to template",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		responseText = intel.FallbackResponse(decision.Stage, matches, decision.RequiresPriceIntroduction)
	}

	state.AppendMessage(model.RoleAssistant, responseText, o.opts.MaxConversationHistory)
	o.applyDecision(state, decision)

	if err := o.store.SaveState(ctx, state); err != nil {
		// Surfaced as a failed turn so the caller retries the message; no
		// silent data loss.
		return nil, fmt.Errorf("failed to persist conversation state: %w", err)
	}

	handover := o.shouldHandover(decision, state.MessageCount)
	metrics.RecordTurn(string(decision.Stage), decision.IsReadyToBuy)

	o.publish(ctx, state, decision, handover)

	o.logger.Info("turn processed",
		zap.String("customer_id", customerID),
		zap.String("stage", string(decision.Stage)),
		zap.Bool("is_ready", decision.IsReadyToBuy),
		zap.Bool("prices_shown", decision.PricesShown),
		zap.Bool("handover", handover),
		zap.Int("matched_products", len(matches)),
	)

	return &model.WebhookResponse{
		Sender:               customerID,
		ProductInterested:    summarizeProducts(decision.InterestedProducts, names),
		InterestedProductIDs: decision.InterestedProducts,
		ResponseText:         responseText,
		IsReady:              decision.IsReadyToBuy,
		ConversationStage:    decision.Stage,
		Confidence:           decision.Confidence,
		Handover:             handover,
	}, nil
}

// applyDecision folds the validated decision into the durable state.
func (o *Orchestrator) applyDecision(state *model.ConversationState, decision model.StageDecision) {
	if decision.Stage.IsFunnel() {
		state.ResumeStage = decision.Stage
	}
	state.CurrentStage = decision.Stage
	state.InterestedProducts = decision.InterestedProducts
	if decision.PricesShown {
		state.PricesShown = true
	}
	state.UpdatedAt = time.Now().UTC()
}

// shouldHandover flags turns for a human agent: a ready customer, the
// terminal stage, a conversation running long, or an analysis too uncertain
// to act on.
func (o *Orchestrator) shouldHandover(decision model.StageDecision, messageCount int) bool {
	if decision.IsReadyToBuy {
		return true
	}
	if decision.Stage == model.StagePurchaseConfirmation {
		return true
	}
	if o.opts.HandoverMaxTurns > 0 && messageCount > o.opts.HandoverMaxTurns {
		return true
	}
	if decision.Confidence < 0.3 {
		return true
	}
	return false
}

func (o *Orchestrator) publish(ctx context.Context, state *model.ConversationState, decision model.StageDecision, handover bool) {
	if o.publisher == nil {
		return
	}
	err := o.publisher.PublishDecision(ctx, &events.DecisionEvent{
		CustomerID:           state.CustomerID,
		Stage:                decision.Stage,
		IsReady:              decision.IsReadyToBuy,
		Handover:             handover,
		InterestedProductIDs: decision.InterestedProducts,
		Confidence:           decision.Confidence,
		Timestamp:            time.Now().UTC(),
	})
	if err != nil {
		o.logger.Warn("failed to publish decision event",
			zap.String("customer_id", state.CustomerID),
			zap.Error(err),
		)
	}
}

// Stats returns the operational statistics view for one customer. It reads
// the store directly, outside the turn pipeline.
func (o *Orchestrator) Stats(ctx context.Context, customerID string) (*model.ConversationStats, error) {
	state, err := o.store.LoadState(ctx, customerID)
	if errors.Is(err, store.ErrNotFound) {
		return &model.ConversationStats{
			SenderID:     customerID,
			CurrentStage: model.StageInitialInterest,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	updatedAt := state.UpdatedAt
	return &model.ConversationStats{
		SenderID:     customerID,
		CurrentStage: state.CurrentStage,
		// Readiness is recomputed per turn, never stored; this is the
		// derived view of where the conversation last landed.
		IsReady:      state.CurrentStage == model.StagePurchaseConfirmation && state.PricesShown,
		ProductCount: len(state.InterestedProducts),
		MessageCount: state.MessageCount,
		PricesShown:  state.PricesShown,
		UpdatedAt:    &updatedAt,
	}, nil
}

// Reset deletes a customer's conversation. This is the only deletion path;
// the pipeline itself never removes state.
func (o *Orchestrator) Reset(ctx context.Context, customerID string) error {
	o.locks.acquire(customerID)
	defer o.locks.release(customerID)

	return o.store.DeleteState(ctx, customerID)
}

// Recommend runs extraction and matching for a query without touching
// conversation state.
func (o *Orchestrator) Recommend(ctx context.Context, customerID, query string) ([]model.Recommendation, error) {
	signal, err := o.intel.ExtractKeywords(ctx, query, nil)
	if err != nil {
		signal = intel.NaiveKeywords(query)
	}

	products, err := o.catalog.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}

	matches := o.matcher.Match(signal, products)
	recommendations := make([]model.Recommendation, 0, len(matches))
	for _, m := range matches {
		if m.Product == nil {
			continue
		}
		recommendations = append(recommendations, model.Recommendation{
			ProductID:   m.ProductID,
			Name:        m.Product.Name,
			Price:       m.Product.Price,
			SalePrice:   m.Product.SalePrice,
			Rating:      m.Product.Rating,
			Score:       m.Score,
			MatchedTags: m.MatchedTags,
		})
	}
	return recommendations, nil
}

// summarizeProducts builds the human-readable interest summary: nil when
// empty, the single name, or "Multiple products: A, B" in insertion order.
func summarizeProducts(ids []string, names map[string]string) *string {
	if len(ids) == 0 {
		return nil
	}

	displayNames := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			displayNames = append(displayNames, name)
		} else {
			displayNames = append(displayNames, id)
		}
	}

	var summary string
	if len(displayNames) == 1 {
		summary = displayNames[0]
	} else {
		summary = "Multiple products: " + strings.Join(displayNames, ", ")
	}
	return &summary
}

func productNames(products []model.Product) map[string]string {
	names := make(map[string]string, len(products))
	for i := range products {
		names[products[i].ID] = products[i].Name
	}
	return names
}
