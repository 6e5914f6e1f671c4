package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossline-ai/sales-agent/internal/model"
)

func TestMemoryAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	state := model.NewConversationState("cust-1")
	state.CurrentStage = model.StageConsideration
	state.ResumeStage = model.StageConsideration
	state.InterestedProducts = []string{"p1", "p2"}
	state.PricesShown = true
	state.AppendMessage(model.RoleCustomer, "hello", 20)
	state.AppendMessage(model.RoleAssistant, "hi there", 20)

	require.NoError(t, adapter.SaveState(ctx, state))

	loaded, err := adapter.LoadState(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, model.StageConsideration, loaded.CurrentStage)
	assert.Equal(t, []string{"p1", "p2"}, loaded.InterestedProducts)
	assert.True(t, loaded.PricesShown)
	assert.Equal(t, 2, loaded.MessageCount)
	require.Len(t, loaded.Messages, 2)
	assert.Equal(t, model.RoleCustomer, loaded.Messages[0].Role)
	assert.Equal(t, "hello", loaded.Messages[0].Text)
}

func TestMemoryAdapterIsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	state := model.NewConversationState("cust-1")
	state.InterestedProducts = []string{"p1"}
	require.NoError(t, adapter.SaveState(ctx, state))

	// Mutating the caller's copy must not leak into the store.
	state.InterestedProducts = append(state.InterestedProducts, "p2")

	loaded, err := adapter.LoadState(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, loaded.InterestedProducts)
}

func TestMemoryAdapterNotFound(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	_, err := adapter.LoadState(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, adapter.DeleteState(ctx, "missing"), ErrNotFound)
}

func TestMemoryAdapterDelete(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	require.NoError(t, adapter.SaveState(ctx, model.NewConversationState("cust-1")))
	require.NoError(t, adapter.DeleteState(ctx, "cust-1"))

	_, err := adapter.LoadState(ctx, "cust-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
