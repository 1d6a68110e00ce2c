package email

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"dealscope/server/internal/models"
)

// TypeLabels maps email type identifiers to their display names.
var TypeLabels = map[string]string{
	models.EmailInitialInquiry:  "Initial Property Inquiry",
	models.EmailShowingRequest:  "Showing Request",
	models.EmailOfferSubmission: "Offer Submission",
	models.EmailFollowUp:        "Follow-up Email",
	models.EmailMarketAnalysis:  "Market Analysis Request",
	models.EmailCustom:          "Custom Message",
}

// formatPrice renders a dollar amount with thousands separators, matching
// how listing prices appear elsewhere in the dashboard.
func formatPrice(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func signatureBlock(b models.BuyerInfo) string {
	return fmt.Sprintf("Best regards,\n%s\n%s\n%s", b.Name, b.Phone, b.Email)
}

func renderTemplate(req models.EmailRequest) models.EmailDraft {
	p := req.Property
	b := req.Buyer

	address := "Property Address"
	mls := "N/A"
	city := "area"
	price := "List Price"
	listPrice := 400000.0
	agentName := "Listing Agent"
	if p != nil {
		if p.Address != "" {
			address = p.Address
		}
		if p.MLSNumber != "" {
			mls = p.MLSNumber
		}
		if p.City != "" {
			city = p.City
		}
		if p.Price > 0 {
			price = formatPrice(p.Price)
			listPrice = p.Price
		}
		if p.Agent.Name != "" {
			agentName = p.Agent.Name
		}
	}

	switch req.EmailType {
	case models.EmailShowingRequest:
		approval := "Working on pre-approval"
		if b.PreApproved {
			approval = "Pre-approved"
		}
		financing := "Conventional financing"
		if b.CashBuyer {
			financing = "Cash purchase"
		}
		return models.EmailDraft{
			Subject: fmt.Sprintf("Showing Request - %s", address),
			Body: fmt.Sprintf(`Dear %s,

I would like to schedule a showing for the property at %s (MLS #%s).

My availability includes:
• Weekdays after 5:00 PM
• Weekends: Saturday and Sunday, flexible timing
• Can accommodate short notice if needed

Buyer qualifications:
• %s for $%s
• %s
• Ready to move forward quickly on the right property

Please let me know what times work best for you. I'm very interested in this property and would appreciate the opportunity to view it soon.

Thank you for your time.

%s`, agentName, address, mls, approval, formatPrice(listPrice*1.1), financing, signatureBlock(b)),
			Fallback: true,
		}

	case models.EmailOfferSubmission:
		position := "strong financial position"
		if b.PreApproved {
			position = "pre-approved financing"
		}
		offer := "Conventional financing with 20% down"
		if b.CashBuyer {
			offer = "All-cash offer for quick closing"
		}
		return models.EmailDraft{
			Subject: fmt.Sprintf("Offer Submission - %s", address),
			Body: fmt.Sprintf(`Dear %s,

Following our recent showing of %s, I am pleased to submit an offer on this property.

Offer highlights:
• Serious buyer with %s
• %s
• Flexible closing date to accommodate seller needs
• Minimal contingencies

I believe this property is an excellent fit for my needs, and I'm prepared to move forward quickly. My offer letter and supporting documentation are being prepared by my agent.

Could we schedule a call to discuss the offer details and next steps? I'm available at %s or can be reached via email.

I look forward to working with you on this transaction.

%s`, agentName, address, position, offer, b.Phone, signatureBlock(b)),
			Fallback: true,
		}

	case models.EmailFollowUp:
		approval := "I have completed my financing pre-approval"
		if b.PreApproved {
			approval = "Financing pre-approval has been confirmed"
		}
		return models.EmailDraft{
			Subject: fmt.Sprintf("Follow-up on %s Inquiry", address),
			Body: fmt.Sprintf(`Dear %s,

I wanted to follow up on my previous inquiry regarding %s. I remain very interested in this property and would appreciate any updates you might have.

Since my last contact:
• %s
• I've been actively looking in this area and this property remains my top choice
• My timeline for purchasing is %s

If the property is still available, I would love to discuss next steps or schedule a showing. Please let me know if you need any additional information from me.

I appreciate your time and look forward to hearing from you.

%s`, agentName, address, approval, b.Timeline, signatureBlock(b)),
			Fallback: true,
		}

	case models.EmailMarketAnalysis:
		approval := "Financing in progress"
		if b.PreApproved {
			approval = "Pre-approved buyer"
		}
		return models.EmailDraft{
			Subject: fmt.Sprintf("Market Analysis Request - %s Area", address),
			Body: fmt.Sprintf(`Dear %s,

I hope this email finds you well. I am actively looking to purchase in the %s market and am very interested in %s.

As part of my due diligence, I would appreciate your professional insights on:
• Recent comparable sales in the neighborhood
• Current market trends and pricing
• Average days on market for similar properties
• Any upcoming developments or changes that might affect property values

About my search:
• Budget: Up to $%s
• %s
• Timeline: %s
• Serious about making a purchase in this area

Your expertise and market knowledge would be invaluable in helping me make an informed decision. Would you be available for a brief call this week to discuss?

Thank you for your time and expertise.

%s`, agentName, city, address, formatPrice(listPrice*1.2), approval, b.Timeline, signatureBlock(b)),
			Fallback: true,
		}

	case models.EmailCustom:
		body := req.CustomMessage
		if body == "" {
			body = "Please provide a custom message to generate this email."
		}
		return models.EmailDraft{Body: body, Fallback: true}

	default: // initial inquiry
		approval := "Working on financing pre-approval"
		if b.PreApproved {
			approval = "Pre-approved for financing"
		}
		financing := "Financing purchase"
		if b.CashBuyer {
			financing = "Cash buyer - can close quickly"
		}
		return models.EmailDraft{
			Subject: fmt.Sprintf("Inquiry About %s - MLS #%s", address, mls),
			Body: fmt.Sprintf(`Dear %s,

I hope this email finds you well. I am writing to express my interest in the property located at %s, listed at $%s.

About me:
• Name: %s
• Contact: %s | %s
• %s
• %s
• Timeline: Looking to purchase within %s

I would love to learn more about this property and would appreciate the opportunity to schedule a showing at your earliest convenience. Please let me know your availability this week.

I look forward to hearing from you soon.

%s`, agentName, address, price, b.Name, b.Phone, b.Email, approval, financing, b.Timeline, signatureBlock(b)),
			Fallback: true,
		}
	}
}
