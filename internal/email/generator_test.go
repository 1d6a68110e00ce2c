package email

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/server/config"
	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/models"
)

func sampleRequest(emailType string) models.EmailRequest {
	return models.EmailRequest{
		EmailType: emailType,
		Property: &models.Property{
			Address: "123 Maple Street", City: "Austin", Price: 450000,
			Bedrooms: 3, Bathrooms: 2, Sqft: 1850, MLSNumber: "MLS123456",
			Agent: models.Agent{Name: "Sarah Johnson", Brokerage: "Austin Premier Realty"},
		},
		Buyer: models.BuyerInfo{
			Name: "John Doe", Phone: "(555) 123-4567", Email: "john.doe@email.com",
			PreApproved: true, CashBuyer: false, Timeline: "30-60 days",
		},
	}
}

func offlineGenerator() *Generator {
	cfg := &config.Config{}
	cfg.DeepSeek.BaseURL = "http://localhost:0"
	cfg.DeepSeek.TimeoutS = 1
	logger := logrus.New()
	return NewGenerator(deepseek.NewClient(cfg, logger), logger)
}

func TestDraftTemplateInitialInquiry(t *testing.T) {
	draft := offlineGenerator().Draft(context.Background(), sampleRequest(models.EmailInitialInquiry))

	assert.True(t, draft.Fallback)
	assert.Equal(t, "Inquiry About 123 Maple Street - MLS #MLS123456", draft.Subject)
	assert.Contains(t, draft.Body, "Dear Sarah Johnson,")
	assert.Contains(t, draft.Body, "listed at $450,000")
	assert.Contains(t, draft.Body, "Pre-approved for financing")
	assert.Contains(t, draft.Body, "Financing purchase")
	assert.Contains(t, draft.Body, "Timeline: Looking to purchase within 30-60 days")
	assert.Contains(t, draft.Body, "Best regards,\nJohn Doe")
}

func TestDraftTemplateShowingRequest(t *testing.T) {
	draft := offlineGenerator().Draft(context.Background(), sampleRequest(models.EmailShowingRequest))

	assert.Equal(t, "Showing Request - 123 Maple Street", draft.Subject)
	assert.Contains(t, draft.Body, "MLS #MLS123456")
	// pre-approval budget is 110% of list price
	assert.Contains(t, draft.Body, "Pre-approved for $495,000")
	assert.Contains(t, draft.Body, "Conventional financing")
}

func TestDraftTemplateOfferSubmissionCashBuyer(t *testing.T) {
	req := sampleRequest(models.EmailOfferSubmission)
	req.Buyer.CashBuyer = true

	draft := offlineGenerator().Draft(context.Background(), req)
	assert.Equal(t, "Offer Submission - 123 Maple Street", draft.Subject)
	assert.Contains(t, draft.Body, "All-cash offer for quick closing")
}

func TestDraftTemplateFollowUp(t *testing.T) {
	draft := offlineGenerator().Draft(context.Background(), sampleRequest(models.EmailFollowUp))
	assert.Equal(t, "Follow-up on 123 Maple Street Inquiry", draft.Subject)
	assert.Contains(t, draft.Body, "Financing pre-approval has been confirmed")
}

func TestDraftTemplateMarketAnalysis(t *testing.T) {
	draft := offlineGenerator().Draft(context.Background(), sampleRequest(models.EmailMarketAnalysis))
	assert.Equal(t, "Market Analysis Request - 123 Maple Street Area", draft.Subject)
	assert.Contains(t, draft.Body, "the Austin market")
	// budget is 120% of list price
	assert.Contains(t, draft.Body, "Budget: Up to $540,000")
}

func TestDraftTemplateCustom(t *testing.T) {
	req := sampleRequest(models.EmailCustom)
	req.CustomMessage = "Please ask about the HOA fees."

	draft := offlineGenerator().Draft(context.Background(), req)
	assert.Empty(t, draft.Subject)
	assert.Equal(t, "Please ask about the HOA fees.", draft.Body)
}

func TestDraftTemplateCustomEmpty(t *testing.T) {
	draft := offlineGenerator().Draft(context.Background(), sampleRequest(models.EmailCustom))
	assert.Contains(t, draft.Body, "custom message")
}

func TestDraftTemplateNoProperty(t *testing.T) {
	req := models.EmailRequest{Buyer: models.BuyerInfo{Name: "John Doe", Timeline: "ASAP"}}

	draft := offlineGenerator().Draft(context.Background(), req)
	assert.Equal(t, "Inquiry About Property Address - MLS #N/A", draft.Subject)
	assert.Contains(t, draft.Body, "listed at $List Price")
}

func TestDraftUsesAIWhenAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices": [{"message": {"content": "Subject: Hello from AI\n\nDear agent,\n\nGenerated body."}}]}`)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.DeepSeek.APIKey = "test-key"
	cfg.DeepSeek.BaseURL = server.URL
	cfg.DeepSeek.Model = "deepseek-chat"
	cfg.DeepSeek.TimeoutS = 5

	logger := logrus.New()
	g := NewGenerator(deepseek.NewClient(cfg, logger), logger)

	draft := g.Draft(context.Background(), sampleRequest(models.EmailInitialInquiry))
	assert.False(t, draft.Fallback)
	assert.Equal(t, "Hello from AI", draft.Subject)
	assert.Contains(t, draft.Body, "Generated body.")
}

func TestDraftAIFailureFallsBackToTemplate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.DeepSeek.APIKey = "test-key"
	cfg.DeepSeek.BaseURL = server.URL
	cfg.DeepSeek.TimeoutS = 5

	logger := logrus.New()
	g := NewGenerator(deepseek.NewClient(cfg, logger), logger)

	draft := g.Draft(context.Background(), sampleRequest(models.EmailInitialInquiry))
	assert.True(t, draft.Fallback)
	assert.Contains(t, draft.Subject, "Inquiry About 123 Maple Street")
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{450000, "450,000"},
		{1000000, "1,000,000"},
		{999, "999"},
		{0, "0"},
		{495000.4, "495,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPrice(tt.in))
		})
	}
}

func TestSplitDraft(t *testing.T) {
	subject, body := splitDraft("Subject: Test Email\n\nBody text here.")
	assert.Equal(t, "Test Email", subject)
	assert.Equal(t, "Body text here.", body)

	subject, body = splitDraft("No subject line at all.")
	assert.Empty(t, subject)
	assert.Equal(t, "No subject line at all.", body)
}

func TestTypeLabelsComplete(t *testing.T) {
	types := []string{
		models.EmailInitialInquiry, models.EmailShowingRequest,
		models.EmailOfferSubmission, models.EmailFollowUp,
		models.EmailMarketAnalysis, models.EmailCustom,
	}
	for _, typ := range types {
		require.Contains(t, TypeLabels, typ)
	}
}
