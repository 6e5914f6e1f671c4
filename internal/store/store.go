// Package store provides the conversation store adapter.
package store

import (
	"context"
	"errors"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// ErrNotFound is returned when no conversation exists for a customer.
var ErrNotFound = errors.New("conversation not found")

// Adapter is the read/write boundary to the document-oriented conversation
// store. One conversation document per customer ID.
type Adapter interface {
	// LoadState returns the state for a customer, or ErrNotFound.
	LoadState(ctx context.Context, customerID string) (*model.ConversationState, error)

	// SaveState upserts the state document.
	SaveState(ctx context.Context, state *model.ConversationState) error

	// DeleteState removes the conversation. Used only by the explicit
	// external reset operation.
	DeleteState(ctx context.Context, customerID string) error
}
