package models

// Financing types accepted by the offer calculator.
const (
	FinancingCash = "cash"
	FinancingLoan = "loan"
)

// OfferRequest carries the listing price and cost/financing assumptions for
// an offer calculation. Missing or non-finite numeric fields are treated as
// zero by the calculator rather than rejected.
type OfferRequest struct {
	ListPrice      float64 `json:"list_price"`
	TargetProfit   float64 `json:"target_profit"`
	RehabCost      float64 `json:"rehab_cost"`
	ClosingCosts   float64 `json:"closing_costs"`
	HoldingCosts   float64 `json:"holding_costs"`
	MarketingCosts float64 `json:"marketing_costs"`
	Contingency    float64 `json:"contingency"`
	FinancingType  string  `json:"financing_type"`
	LoanAmount     float64 `json:"loan_amount"`
	InterestRate   float64 `json:"interest_rate"`
	LoanTermYears  int     `json:"loan_term_years"`
}

// OfferScenario pairs one offer amount with its projected profit and ROI.
type OfferScenario struct {
	Amount          float64 `json:"amount"`
	ProjectedProfit float64 `json:"projected_profit"`
	ROIPercent      float64 `json:"roi_percent"`
}

// CostBreakdown itemizes the cost side of an offer analysis.
type CostBreakdown struct {
	Rehab       float64 `json:"rehab"`
	Closing     float64 `json:"closing"`
	Holding     float64 `json:"holding"`
	Marketing   float64 `json:"marketing"`
	Contingency float64 `json:"contingency"`
	Financing   float64 `json:"financing"`
}

// OfferAnalysis is the immutable result snapshot of one calculation.
type OfferAnalysis struct {
	AfterRepairValue float64       `json:"after_repair_value"`
	MaxOffer         float64       `json:"max_offer"`
	TotalCosts       float64       `json:"total_costs"`
	FinancingCost    float64       `json:"financing_cost"`
	Conservative     OfferScenario `json:"conservative"`
	Aggressive       OfferScenario `json:"aggressive"`
	Market           OfferScenario `json:"market"`
	Breakdown        CostBreakdown `json:"cost_breakdown"`
}

// OfferReport is the serializable export payload for a completed analysis.
type OfferReport struct {
	ReportID  string        `json:"report_id"`
	Address   string        `json:"address"`
	ListPrice float64       `json:"list_price"`
	Analysis  OfferAnalysis `json:"analysis"`
	Narrative string        `json:"narrative,omitempty"`
}
