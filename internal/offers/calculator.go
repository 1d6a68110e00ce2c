// Package offers derives investor offer scenarios and profitability metrics
// from a listing price and configurable cost assumptions. The calculator is a
// pure function and cannot fail: malformed numeric input is coerced to zero.
package offers

import (
	"math"

	"dealscope/server/internal/models"
)

// Policy constants for the scenario math. The holding period backing the
// financing cost is fixed at six months rather than user-supplied.
const (
	holdingMonths          = 6
	conservativeMultiplier = 0.85
	aggressiveMultiplier   = 0.95
	marketMultiplier       = 0.92
)

// Calculate produces the full offer analysis for req. The after-repair value
// is list price plus rehab budget; the maximum offer subtracts the
// pre-financing cost subtotal, the target profit, and the financing cost from
// it. The reported TotalCosts includes the financing cost.
func Calculate(req models.OfferRequest) models.OfferAnalysis {
	listPrice := sanitize(req.ListPrice)
	targetProfit := sanitize(req.TargetProfit)
	rehab := sanitize(req.RehabCost)
	closing := sanitize(req.ClosingCosts)
	holding := sanitize(req.HoldingCosts)
	marketing := sanitize(req.MarketingCosts)
	contingency := sanitize(req.Contingency)

	arv := listPrice + rehab
	baseCosts := rehab + closing + holding + marketing + contingency
	financing := financingCost(req)
	totalCosts := baseCosts + financing

	maxOffer := arv - baseCosts - targetProfit - financing

	conservative := maxOffer * conservativeMultiplier
	aggressive := maxOffer * aggressiveMultiplier
	market := listPrice * marketMultiplier

	return models.OfferAnalysis{
		AfterRepairValue: arv,
		MaxOffer:         maxOffer,
		TotalCosts:       totalCosts,
		FinancingCost:    financing,
		Conservative:     scenario(conservative, arv, totalCosts),
		Aggressive:       scenario(aggressive, arv, totalCosts),
		Market:           scenario(market, arv, totalCosts),
		Breakdown: models.CostBreakdown{
			Rehab:       rehab,
			Closing:     closing,
			Holding:     holding,
			Marketing:   marketing,
			Contingency: contingency,
			Financing:   financing,
		},
	}
}

// financingCost computes six months of the standard fixed-rate amortized
// payment for loan purchases. Cash purchases and non-positive principals cost
// nothing regardless of the other loan fields.
func financingCost(req models.OfferRequest) float64 {
	loanAmount := sanitize(req.LoanAmount)
	if req.FinancingType != models.FinancingLoan || loanAmount <= 0 {
		return 0
	}

	monthlyRate := sanitize(req.InterestRate) / 100 / 12
	months := float64(req.LoanTermYears) * 12
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return loanAmount / months * holdingMonths
	}

	growth := math.Pow(1+monthlyRate, months)
	payment := loanAmount * (monthlyRate * growth) / (growth - 1)
	return payment * holdingMonths
}

// scenario derives the profit and ROI for one offer amount. ROI is reported
// as zero when the offer amount is not positive; dividing by it would be
// meaningless.
func scenario(amount, arv, totalCosts float64) models.OfferScenario {
	profit := arv - amount - totalCosts
	var roi float64
	if amount > 0 {
		roi = profit / amount * 100
	}
	return models.OfferScenario{
		Amount:          amount,
		ProjectedProfit: profit,
		ROIPercent:      roi,
	}
}

// sanitize coerces NaN and infinite values to zero, and clamps negative cost
// inputs to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
