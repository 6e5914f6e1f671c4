package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation's ordered message log.
type Message struct {
	Role      Role      `json:"role" bson:"role"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// ConversationState is the durable per-customer record. It is mutated once
// per inbound message by the orchestrator and only ever deleted by an
// explicit external reset.
type ConversationState struct {
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	Messages   []Message `json:"messages" bson:"messages"`

	CurrentStage Stage `json:"current_stage" bson:"current_stage"`
	// ResumeStage remembers the funnel position while the conversation is
	// off-topic, so an on-topic message returns there instead of restarting.
	ResumeStage Stage `json:"resume_stage" bson:"resume_stage"`

	// InterestedProducts accumulates product IDs across turns in insertion
	// order. Explicit removal intents subtract; a new match can re-add.
	InterestedProducts []string `json:"interested_products" bson:"interested_products"`

	// PricesShown is monotonic: once true it stays true for the life of the
	// conversation.
	PricesShown bool `json:"prices_shown" bson:"prices_shown"`

	MessageCount int       `json:"message_count" bson:"message_count"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// NewConversationState creates the default state for a first-time customer.
func NewConversationState(customerID string) *ConversationState {
	now := time.Now().UTC()
	return &ConversationState{
		CustomerID:         customerID,
		Messages:           []Message{},
		CurrentStage:       StageInitialInterest,
		ResumeStage:        StageInitialInterest,
		InterestedProducts: []string{},
		PricesShown:        false,
		MessageCount:       0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// AppendMessage appends to the log, evicting the oldest entries once the cap
// is exceeded (FIFO). The message counter only ever increases.
func (s *ConversationState) AppendMessage(role Role, text string, maxLen int) {
	s.Messages = append(s.Messages, Message{
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC(),
	})
	if maxLen > 0 && len(s.Messages) > maxLen {
		s.Messages = s.Messages[len(s.Messages)-maxLen:]
	}
	s.MessageCount++
}

// FunnelStage returns the stage monotonicity baseline: the last on-funnel
// position, even while the conversation is off-topic.
func (s *ConversationState) FunnelStage() Stage {
	if s.CurrentStage.IsFunnel() {
		return s.CurrentStage
	}
	if s.ResumeStage.IsFunnel() {
		return s.ResumeStage
	}
	return StageInitialInterest
}

// HasProduct reports whether the product ID is currently tracked.
func (s *ConversationState) HasProduct(productID string) bool {
	for _, id := range s.InterestedProducts {
		if id == productID {
			return true
		}
	}
	return false
}
