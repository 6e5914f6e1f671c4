package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

const (
	// StreamName is the name of the sales decision stream.
	StreamName = "SALES"

	// SubjectPrefix is the prefix for all sales subjects.
	SubjectPrefix = "sales"
)

// DecisionEvent is the per-turn record published for downstream consumers.
// The routing agent subscribes to handover subjects to pull a human agent
// into ready conversations.
type DecisionEvent struct {
	CustomerID           string      `json:"customer_id"`
	Stage                model.Stage `json:"stage"`
	IsReady              bool        `json:"is_ready"`
	Handover             bool        `json:"handover"`
	InterestedProductIDs []string    `json:"interested_product_ids"`
	Confidence           float64     `json:"confidence"`
	Timestamp            time.Time   `json:"timestamp"`
}

// Publisher publishes decision events to JetStream.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher over a connected client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// EnsureStream ensures the sales stream exists with proper configuration.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Per-turn sales decisions and handover events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// DecisionSubject returns the subject for a customer's decision events.
func DecisionSubject(customerID string) string {
	return fmt.Sprintf("%s.%s.decision", SubjectPrefix, customerID)
}

// HandoverSubject returns the subject for a customer's handover events.
func HandoverSubject(customerID string) string {
	return fmt.Sprintf("%s.%s.handover", SubjectPrefix, customerID)
}

// PublishDecision publishes the turn decision, and a handover event when the
// turn is flagged for one.
func (p *Publisher) PublishDecision(ctx context.Context, event *DecisionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal decision event: %w", err)
	}

	if _, err := p.client.JetStream().Publish(ctx, DecisionSubject(event.CustomerID), data); err != nil {
		metrics.EventsPublished.WithLabelValues("decision", "error").Inc()
		return fmt.Errorf("failed to publish decision event: %w", err)
	}
	metrics.EventsPublished.WithLabelValues("decision", "success").Inc()

	if !event.Handover {
		return nil
	}

	if _, err := p.client.JetStream().Publish(ctx, HandoverSubject(event.CustomerID), data); err != nil {
		metrics.EventsPublished.WithLabelValues("handover", "error").Inc()
		return fmt.Errorf("failed to publish handover event: %w", err)
	}
	metrics.EventsPublished.WithLabelValues("handover", "success").Inc()
	metrics.Handovers.Inc()

	return nil
}
