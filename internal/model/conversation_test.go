package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMessageEvictsOldest(t *testing.T) {
	state := NewConversationState("cust-1")

	for i := 0; i < 25; i++ {
		state.AppendMessage(RoleCustomer, fmt.Sprintf("message %d", i), 20)
	}

	assert.Len(t, state.Messages, 20)
	assert.Equal(t, "message 5", state.Messages[0].Text)
	assert.Equal(t, "message 24", state.Messages[19].Text)
	// The counter tracks lifetime volume, not window size.
	assert.Equal(t, 25, state.MessageCount)
}

func TestAppendMessageNoCapWhenZero(t *testing.T) {
	state := NewConversationState("cust-1")
	for i := 0; i < 30; i++ {
		state.AppendMessage(RoleAssistant, "hi", 0)
	}
	assert.Len(t, state.Messages, 30)
}

func TestFunnelStage(t *testing.T) {
	tests := []struct {
		name    string
		current Stage
		resume  Stage
		want    Stage
	}{
		{"on funnel", StageConsideration, StageConsideration, StageConsideration},
		{"off topic falls back to resume", StageOffTopic, StagePriceEvaluation, StagePriceEvaluation},
		{"both invalid defaults to start", StageOffTopic, Stage("BOGUS"), StageInitialInterest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewConversationState("cust-1")
			state.CurrentStage = tt.current
			state.ResumeStage = tt.resume
			assert.Equal(t, tt.want, state.FunnelStage())
		})
	}
}

func TestHasProduct(t *testing.T) {
	state := NewConversationState("cust-1")
	state.InterestedProducts = []string{"p1", "p2"}

	assert.True(t, state.HasProduct("p1"))
	assert.False(t, state.HasProduct("p3"))
}
