// Package email drafts outreach emails for buyers: generated by the AI
// provider when available, rendered from built-in templates otherwise.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/models"
)

type Generator struct {
	deepseek *deepseek.Client
	logger   *logrus.Logger
}

func NewGenerator(ds *deepseek.Client, logger *logrus.Logger) *Generator {
	return &Generator{deepseek: ds, logger: logger}
}

// Draft produces an email of the requested type. The AI provider is asked
// first; failures fall back to the matching template.
func (g *Generator) Draft(ctx context.Context, req models.EmailRequest) models.EmailDraft {
	if req.EmailType == "" {
		req.EmailType = models.EmailInitialInquiry
	}

	if g.deepseek.Configured() {
		content, err := g.deepseek.Chat(ctx, "", buildPrompt(req), 1000, 0.7)
		if err == nil && strings.TrimSpace(content) != "" {
			subject, body := splitDraft(content)
			return models.EmailDraft{Subject: subject, Body: body}
		}
		if err != nil {
			g.logger.WithError(err).Warn("Email generation failed, using template")
		}
	}

	return renderTemplate(req)
}

func buildPrompt(req models.EmailRequest) string {
	label, ok := TypeLabels[req.EmailType]
	if !ok {
		label = TypeLabels[models.EmailInitialInquiry]
	}

	address := "Property Address"
	price := "N/A"
	details := "N/A bed, N/A bath, N/A sqft"
	agentName := "Listing Agent"
	brokerage := "Real Estate Brokerage"
	if p := req.Property; p != nil {
		if p.Address != "" {
			address = p.Address
		}
		if p.Price > 0 {
			price = formatPrice(p.Price)
		}
		details = fmt.Sprintf("%d bed, %.1f bath, %d sqft", p.Bedrooms, p.Bathrooms, p.Sqft)
		if p.Agent.Name != "" {
			agentName = p.Agent.Name
		}
		if p.Agent.Brokerage != "" {
			brokerage = p.Agent.Brokerage
		}
	}

	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}

	prompt := fmt.Sprintf(`Generate a professional real estate email for the following scenario:

Email Type: %s
Property: %s
List Price: $%s
Property Details: %s

Buyer Information:
- Name: %s
- Phone: %s
- Email: %s
- Pre-approved: %s
- Cash Buyer: %s
- Timeline: %s

Agent Information:
- Name: %s
- Brokerage: %s
`, label, address, price, details,
		req.Buyer.Name, req.Buyer.Phone, req.Buyer.Email,
		yesNo(req.Buyer.PreApproved), yesNo(req.Buyer.CashBuyer), req.Buyer.Timeline,
		agentName, brokerage)

	if req.CustomMessage != "" {
		prompt += fmt.Sprintf("\nAdditional Message: %s\n", req.CustomMessage)
	}

	prompt += `
Generate a professional, courteous, and effective email that:
1. Is appropriate for the email type
2. Includes relevant property and buyer details
3. Has a clear call to action
4. Maintains professional tone
5. Is concise but informative

Format as a complete email with subject line.`

	return prompt
}

// splitDraft separates a "Subject: ..." first line from the body.
func splitDraft(content string) (subject, body string) {
	content = strings.TrimSpace(content)
	lines := strings.SplitN(content, "\n", 2)

	if strings.HasPrefix(lines[0], "Subject:") {
		subject = strings.TrimSpace(strings.TrimPrefix(lines[0], "Subject:"))
		if len(lines) > 1 {
			body = strings.TrimSpace(lines[1])
		}
		return subject, body
	}

	return "", content
}
