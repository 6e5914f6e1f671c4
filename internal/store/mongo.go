package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glossline-ai/sales-agent/internal/model"
	"github.com/glossline-ai/sales-agent/pkg/metrics"
)

const conversationsCollection = "conversations"

// MongoAdapter persists conversation state in MongoDB, one document per
// customer keyed by customer_id.
type MongoAdapter struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMongoAdapter connects to MongoDB and prepares the conversations
// collection with its unique index.
func NewMongoAdapter(ctx context.Context, uri, database string, timeout time.Duration) (*MongoAdapter, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(database).Collection(conversationsCollection)
	_, err = collection.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create customer_id index: %w", err)
	}

	return &MongoAdapter{
		collection: collection,
		timeout:    timeout,
	}, nil
}

// LoadState returns the state for a customer, or ErrNotFound.
func (a *MongoAdapter) LoadState(ctx context.Context, customerID string) (*model.ConversationState, error) {
	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var state model.ConversationState
	err := a.collection.FindOne(opCtx, bson.M{"customer_id": customerID}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.StoreErrors.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return &state, nil
}

// SaveState upserts the full state document.
func (a *MongoAdapter) SaveState(ctx context.Context, state *model.ConversationState) error {
	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	_, err := a.collection.ReplaceOne(opCtx,
		bson.M{"customer_id": state.CustomerID},
		state,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("save").Inc()
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// DeleteState removes the conversation document.
func (a *MongoAdapter) DeleteState(ctx context.Context, customerID string) error {
	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.collection.DeleteOne(opCtx, bson.M{"customer_id": customerID})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies store connectivity for readiness checks.
func (a *MongoAdapter) Ping(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.collection.Database().Client().Ping(opCtx, nil)
}
