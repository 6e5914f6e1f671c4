package model

import "time"

// WebhookRequest is one inbound customer message. Sender keys the
// conversation state; Recipient is opaque passthrough context.
type WebhookRequest struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// WebhookResponse is the per-turn decision record returned to the caller.
type WebhookResponse struct {
	Sender               string   `json:"sender"`
	ProductInterested    *string  `json:"product_interested"`
	InterestedProductIDs []string `json:"interested_product_ids"`
	ResponseText         string   `json:"response_text"`
	IsReady              bool     `json:"is_ready"`
	ConversationStage    Stage    `json:"conversation_stage"`
	Confidence           float64  `json:"confidence"`
	Handover             bool     `json:"handover"`
}

// ConversationStats is the operational per-customer statistics view.
type ConversationStats struct {
	SenderID     string     `json:"sender_id"`
	CurrentStage Stage      `json:"current_stage"`
	IsReady      bool       `json:"is_ready"`
	ProductCount int        `json:"product_count"`
	MessageCount int        `json:"message_count"`
	PricesShown  bool       `json:"prices_shown"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Recommendation is one ranked product suggestion.
type Recommendation struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price,omitempty"`
	Rating      float64  `json:"rating"`
	Score       float64  `json:"score"`
	MatchedTags []string `json:"matched_tags"`
}
