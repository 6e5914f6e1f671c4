package funnel

import (
	"github.com/glossline-ai/sales-agent/internal/model"
)

// Validate is the final purchase-readiness gate. It is deliberately
// independent of how the decision was produced: readiness requires prices
// already shown, an explicit confirmation phrase in the current turn, and
// the terminal funnel stage, all at once. Anything less is false.
func Validate(decision model.StageDecision) bool {
	if !decision.PricesShown {
		return false
	}
	if !decision.ExplicitConfirmation {
		return false
	}
	if decision.Stage != model.StagePurchaseConfirmation {
		return false
	}
	// The turn that first introduces prices cannot also confirm: the
	// customer has not reacted to a price they are only now seeing.
	if decision.RequiresPriceIntroduction {
		return false
	}
	return true
}
