package model

// ExtractedSignal is the ordered keyword sequence extracted from one customer
// message. An empty signal marks an off-topic or non-product message.
type ExtractedSignal []string

// MatchResult scores one catalog product against an extracted signal.
type MatchResult struct {
	ProductID   string   `json:"product_id"`
	Score       float64  `json:"score"`
	MatchedTags []string `json:"matched_tags"`
	Product     *Product `json:"product,omitempty"`
}

// ExternalClassification is the text-intelligence capability's best-effort
// stage and intent guess. It is advisory, untrusted input: the analyzer's
// deterministic rules decide what survives of it.
type ExternalClassification struct {
	Stage        string  `json:"stage"`
	IsReadyToBuy bool    `json:"is_ready_to_buy"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning,omitempty"`
	Sentiment    string  `json:"sentiment,omitempty"`
}

// StageDecision is the analyzer's validated per-turn outcome.
type StageDecision struct {
	Stage              Stage    `json:"stage"`
	IsReadyToBuy       bool     `json:"is_ready_to_buy"`
	PricesShown        bool     `json:"prices_shown"`
	InterestedProducts []string `json:"interested_products"`

	// RequiresPriceIntroduction marks the turn that first presents matched
	// products with prices.
	RequiresPriceIntroduction bool `json:"requires_price_introduction"`

	// ExplicitConfirmation records that a curated purchase phrase was found
	// in the current customer message. The readiness validator requires it.
	ExplicitConfirmation bool `json:"explicit_confirmation"`

	Confidence float64 `json:"confidence"`
}
