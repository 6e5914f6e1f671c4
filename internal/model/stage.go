package model

// Stage is a discrete phase of the purchase conversation. Funnel stages
// advance in a fixed order; OffTopic sits outside the funnel and the
// conversation resumes its prior funnel stage once back on topic.
type Stage string

const (
	StageInitialInterest      Stage = "INITIAL_INTEREST"
	StageNeedClarification    Stage = "NEED_CLARIFICATION"
	StageProductDiscovery     Stage = "PRODUCT_DISCOVERY"
	StagePriceEvaluation      Stage = "PRICE_EVALUATION"
	StageConsideration        Stage = "CONSIDERATION"
	StageObjectionHandling    Stage = "OBJECTION_HANDLING"
	StagePurchaseIntent       Stage = "PURCHASE_INTENT"
	StagePurchaseConfirmation Stage = "PURCHASE_CONFIRMATION"
	StageOffTopic             Stage = "OFF_TOPIC"
)

// funnelOrder fixes the forward ordering of funnel stages. OffTopic is
// deliberately absent.
var funnelOrder = map[Stage]int{
	StageInitialInterest:      0,
	StageNeedClarification:    1,
	StageProductDiscovery:     2,
	StagePriceEvaluation:      3,
	StageConsideration:        4,
	StageObjectionHandling:    5,
	StagePurchaseIntent:       6,
	StagePurchaseConfirmation: 7,
}

// ParseStage maps a raw string to a known stage. The boolean reports whether
// the input named a valid stage; classifier output must be checked with it.
func ParseStage(s string) (Stage, bool) {
	stage := Stage(s)
	if stage == StageOffTopic {
		return stage, true
	}
	_, ok := funnelOrder[stage]
	return stage, ok
}

// IsFunnel reports whether the stage is part of the sales funnel.
func (s Stage) IsFunnel() bool {
	_, ok := funnelOrder[s]
	return ok
}

// AtOrAfter reports whether s is equal to or later than other in the funnel
// ordering. Non-funnel stages never compare as at-or-after.
func (s Stage) AtOrAfter(other Stage) bool {
	si, ok := funnelOrder[s]
	if !ok {
		return false
	}
	oi, ok := funnelOrder[other]
	if !ok {
		return false
	}
	return si >= oi
}
