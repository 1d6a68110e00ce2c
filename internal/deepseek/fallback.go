package deepseek

import (
	"strings"

	"dealscope/server/internal/models"
)

// FallbackAnalysis scores a property from basic listing metrics when the
// generative provider is unavailable. Longer time on market lowers the
// score, bounded to [60, 95].
func FallbackAnalysis(p models.Property) models.Insight {
	score := 100 - p.DaysOnMarket*2
	if score > 95 {
		score = 95
	}
	if score < 60 {
		score = 60
	}

	assessment := "Fair Market Value"
	if p.EstimatedValue > p.Price {
		assessment = "Undervalued"
	}

	return models.Insight{
		InvestmentScore: score,
		Analysis:        "AI analysis temporarily unavailable. Using basic metrics.",
		PriceAssessment: assessment,
		Recommendations: []string{
			"Review recent comparable sales",
			"Analyze neighborhood trends",
			"Consider property inspection",
		},
		Fallback: true,
	}
}

// FallbackMarketInsights is the static outlook used when the generative
// provider is unavailable.
func FallbackMarketInsights() models.MarketInsight {
	return models.MarketInsight{
		ThreeMonth:  "Market stability expected",
		SixMonth:    "Moderate growth anticipated",
		TwelveMonth: "Long-term positive outlook",
		Insights:    "AI market analysis temporarily unavailable.",
		Fallback:    true,
	}
}

// FallbackLeadScore rates a lead from its source and notes when the
// generative provider is unavailable. Referrals, pre-approved buyers and
// cash buyers score higher.
func FallbackLeadScore(lead models.Lead) models.LeadScore {
	score := 50
	if lead.Source == "Referral" {
		score += 20
	}
	notes := strings.ToLower(lead.Notes)
	if strings.Contains(notes, "pre-approved") {
		score += 15
	}
	if strings.Contains(notes, "cash") {
		score += 25
	}
	if score > 100 {
		score = 100
	}

	priority := "Low"
	switch {
	case score > 80:
		priority = "High"
	case score > 60:
		priority = "Medium"
	}

	return models.LeadScore{
		Score:           score,
		Priority:        priority,
		Analysis:        "Basic lead scoring applied.",
		Recommendations: []string{"Follow up within 24 hours", "Send property listings"},
		Fallback:        true,
	}
}
