package models

// Insight is the structured result of an AI property analysis. When the
// generative provider returns malformed text, the tolerant parser fills in
// what it can and leaves the raw analysis intact.
type Insight struct {
	InvestmentScore int      `json:"investment_score"`
	Analysis        string   `json:"analysis"`
	PriceAssessment string   `json:"price_assessment"`
	Recommendations []string `json:"recommendations"`
	Fallback        bool     `json:"fallback"`
}

// MarketInsight is the structured result of an AI market outlook request.
type MarketInsight struct {
	ThreeMonth  string `json:"three_month"`
	SixMonth    string `json:"six_month"`
	TwelveMonth string `json:"twelve_month"`
	Insights    string `json:"insights"`
	Fallback    bool   `json:"fallback"`
}

// LeadScore is the structured result of an AI lead scoring request.
type LeadScore struct {
	Score           int      `json:"score"`
	Priority        string   `json:"priority"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
	Fallback        bool     `json:"fallback"`
}
