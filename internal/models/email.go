package models

// Email template identifiers.
const (
	EmailInitialInquiry  = "initial_inquiry"
	EmailShowingRequest  = "showing_request"
	EmailOfferSubmission = "offer_submission"
	EmailFollowUp        = "follow_up"
	EmailMarketAnalysis  = "market_analysis"
	EmailCustom          = "custom"
)

// BuyerInfo describes the prospective buyer an outreach email speaks for.
type BuyerInfo struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	PreApproved bool   `json:"pre_approved"`
	CashBuyer   bool   `json:"cash_buyer"`
	Timeline    string `json:"timeline"`
}

// EmailRequest asks for a drafted outreach email of the given type.
type EmailRequest struct {
	EmailType     string    `json:"email_type"`
	Property      *Property `json:"property"`
	Buyer         BuyerInfo `json:"buyer"`
	CustomMessage string    `json:"custom_message"`
}

// EmailDraft is a generated email with its subject line split out.
type EmailDraft struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Fallback bool   `json:"fallback"`
}
