package intel

import (
	"fmt"
	"strings"

	"github.com/glossline-ai/sales-agent/internal/model"
)

const extractionSystemPrompt = `You are an expert at extracting keywords from retail customer messages.
Extract specific product terms, features, categories, concerns and preferences
from the customer's message. Ignore greetings, small talk and filler.
If the message has nothing to do with products, return an empty list.

Respond with only a JSON object of the form:
{"keywords": ["keyword1", "keyword2"]}`

const classificationSystemPrompt = `You are a sales analyst. Determine the customer's current sales funnel stage
from their latest message and the conversation so far.

Stages, in funnel order:
INITIAL_INTEREST - greetings, broad needs, first contact
NEED_CLARIFICATION - the customer's need is vague and must be narrowed down
PRODUCT_DISCOVERY - asking about specific products, features, options
PRICE_EVALUATION - asking about prices, budget, value
CONSIDERATION - weighing options, comparing, thinking it over
OBJECTION_HANDLING - doubts, concerns, hesitation to address
PURCHASE_INTENT - clear inclination to buy a specific product
PURCHASE_CONFIRMATION - explicit commitment to complete the purchase
OFF_TOPIC - the message is unrelated to any purchase

Respond with only a JSON object of the form:
{"stage": "STAGE_NAME", "is_ready_to_buy": false, "confidence": 0.0, "reasoning": "...", "sentiment": "..."}`

const responseSystemPrompt = `You are a friendly, knowledgeable sales assistant for an online beauty store.
Keep replies short and conversational. Never invent products or prices; only
mention the products listed in the context. Never pressure the customer.`

func formatHistory(history []model.Message, limit int) string {
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	var b strings.Builder
	for _, msg := range history {
		role := "Customer"
		if msg.Role == model.RoleAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Text)
	}
	if b.Len() == 0 {
		return "(no prior messages)"
	}
	return b.String()
}

func formatMatches(matches []model.MatchResult, withPrices bool) string {
	if len(matches) == 0 {
		return "(no matched products)"
	}
	var b strings.Builder
	for i, m := range matches {
		if m.Product == nil {
			continue
		}
		if withPrices {
			price := m.Product.EffectivePrice()
			fmt.Fprintf(&b, "%d. %s - $%.2f (rating %.1f)\n", i+1, m.Product.Name, price, m.Product.Rating)
		} else {
			fmt.Fprintf(&b, "%d. %s (rating %.1f)\n", i+1, m.Product.Name, m.Product.Rating)
		}
	}
	return b.String()
}

func classificationPrompt(history []model.Message, text string, matches []model.MatchResult) string {
	return fmt.Sprintf(
		"Conversation so far:\n%s\nMatched products:\n%s\nLatest customer message: %q",
		formatHistory(history, 10), formatMatches(matches, false), text,
	)
}

func responsePrompt(history []model.Message, stage model.Stage, matches []model.MatchResult, introducePrices bool) string {
	var instruction string
	switch {
	case introducePrices:
		instruction = "Present the matched products with their prices and invite the customer to react."
	case stage == model.StagePurchaseConfirmation:
		instruction = "Confirm the order warmly and explain that a colleague will complete the purchase."
	case stage == model.StageOffTopic:
		instruction = "Reply briefly and politely, then steer the conversation back to the products."
	default:
		instruction = "Move the conversation forward for the current stage; ask at most one question."
	}

	return fmt.Sprintf(
		"Conversation so far:\n%s\nMatched products:\n%s\nCurrent stage: %s\nInstruction: %s",
		formatHistory(history, 10), formatMatches(matches, true), stage, instruction,
	)
}
