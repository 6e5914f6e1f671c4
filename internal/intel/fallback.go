package intel

import (
	"fmt"
	"strings"

	"github.com/glossline-ai/sales-agent/internal/model"
)

// FallbackResponse returns a templated reply for the given stage, used when
// response generation is unavailable. The customer always gets some text.
func FallbackResponse(stage model.Stage, matches []model.MatchResult, introducePrices bool) string {
	if introducePrices && len(matches) > 0 {
		var b strings.Builder
		b.WriteString("Here's what I found for you: ")
		for i, m := range matches {
			if m.Product == nil {
				continue
			}
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s at $%.2f", m.Product.Name, m.Product.EffectivePrice())
		}
		b.WriteString(". Would any of these work for you?")
		return b.String()
	}

	switch stage {
	case model.StageNeedClarification:
		return "Happy to help! Could you tell me a bit more about what you're looking for?"
	case model.StageProductDiscovery:
		return "I can walk you through the options. Which product would you like to hear more about?"
	case model.StagePriceEvaluation:
		return "I can go over pricing with you. Which product are you considering?"
	case model.StageConsideration:
		return "Take your time! Let me know if you'd like me to compare any of the options."
	case model.StageObjectionHandling:
		return "I understand the hesitation. Is there anything specific I can clear up for you?"
	case model.StagePurchaseIntent:
		return "Great choice! Just say the word and I'll get your order started."
	case model.StagePurchaseConfirmation:
		return "Wonderful! I'll pass your order along and a colleague will finish it up with you shortly."
	case model.StageOffTopic:
		return "Ha, fair enough! Anyway, is there anything from our range I can help you with?"
	default:
		return "Hi there! I'm happy to help you find the right product. What are you looking for today?"
	}
}
