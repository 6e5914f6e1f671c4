package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// MemoryAdapter is an in-memory conversation store used in tests and local
// development. Documents round-trip through JSON so stored state is isolated
// from caller mutations, the same way a real document store behaves.
type MemoryAdapter struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemoryAdapter creates an empty in-memory store.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{states: make(map[string][]byte)}
}

// LoadState returns a copy of the stored state, or ErrNotFound.
func (a *MemoryAdapter) LoadState(ctx context.Context, customerID string) (*model.ConversationState, error) {
	a.mu.RLock()
	raw, ok := a.states[customerID]
	a.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState stores a snapshot of the state.
func (a *MemoryAdapter) SaveState(ctx context.Context, state *model.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.states[state.CustomerID] = raw
	a.mu.Unlock()
	return nil
}

// DeleteState removes the stored state.
func (a *MemoryAdapter) DeleteState(ctx context.Context, customerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.states[customerID]; !ok {
		return ErrNotFound
	}
	delete(a.states, customerID)
	return nil
}
