// Package deepseek wraps the DeepSeek chat-completion API for property
// analysis, market outlooks, lead scoring and email drafting. Every
// generation has a deterministic fallback so the dashboard keeps working
// without an API key or when the provider is down.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/aitext"
	"dealscope/server/internal/models"
)

type Client struct {
	apiKey  string
	baseURL string
	model   string
	logger  *logrus.Logger
	client  *http.Client
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:  cfg.DeepSeek.APIKey,
		baseURL: cfg.DeepSeek.BaseURL,
		model:   cfg.DeepSeek.Model,
		logger:  logger,
		client:  &http.Client{Timeout: time.Duration(cfg.DeepSeek.TimeoutS) * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends one completion request and returns the assistant text.
func (c *Client) Chat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("deepseek API key is required")
	}

	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("DeepSeek request failed")
		return "", fmt.Errorf("deepseek request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("DeepSeek API error response")
		return "", fmt.Errorf("deepseek api error: %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// AnalyzeProperty asks for an investment analysis of one property. The
// deterministic fallback is used whenever the provider fails.
func (c *Client) AnalyzeProperty(ctx context.Context, p models.Property) models.Insight {
	prompt := fmt.Sprintf(`Analyze this real estate property and provide investment insights:

Property Details:
- Address: %s
- Price: $%.0f
- Size: %d sqft
- Bedrooms: %d
- Bathrooms: %.1f
- Year Built: %d
- Days on Market: %d
- Property Type: %s

Please provide:
1. Investment score (0-100)
2. Key strengths and weaknesses
3. Price analysis (overpriced/fair/underpriced)
4. Market trend prediction
5. Rental potential assessment
6. 3 specific recommendations

Format as JSON with clear sections.`,
		p.Address, p.Price, p.Sqft, p.Bedrooms, p.Bathrooms,
		p.YearBuilt, p.DaysOnMarket, p.PropertyType)

	content, err := c.Chat(ctx,
		"You are a real estate investment expert. Provide detailed, data-driven analysis in JSON format.",
		prompt, 1000, 0.7)
	if err != nil {
		c.logger.WithError(err).Warn("Property analysis failed, using fallback")
		return FallbackAnalysis(p)
	}

	return parseAnalysis(content)
}

func parseAnalysis(content string) models.Insight {
	if obj, ok := aitext.ExtractJSON(content); ok {
		insight := models.Insight{
			InvestmentScore: intField(obj, "investmentScore", "investment_score", "score"),
			Analysis:        strField(obj, "analysis"),
			PriceAssessment: strField(obj, "priceAssessment", "price_assessment"),
			Recommendations: strSliceField(obj, "recommendations"),
		}
		if insight.InvestmentScore == 0 {
			insight.InvestmentScore = aitext.ExtractScore(content)
		}
		if insight.Analysis == "" {
			insight.Analysis = content
		}
		if insight.PriceAssessment == "" {
			insight.PriceAssessment = aitext.ExtractPriceAssessment(content)
		}
		return insight
	}

	return models.Insight{
		InvestmentScore: aitext.ExtractScore(content),
		Analysis:        content,
		PriceAssessment: aitext.ExtractPriceAssessment(content),
		Recommendations: aitext.ExtractRecommendations(content),
	}
}

// MarketInsights asks for a 3/6/12 month market outlook.
func (c *Client) MarketInsights(ctx context.Context, m models.MarketData) models.MarketInsight {
	prompt := fmt.Sprintf(`Analyze this real estate market data and provide insights:

Market Data:
- Average Price: $%.0f
- Price Change: %.1f%%
- Inventory: %d properties
- Average Days on Market: %.0f

Provide market predictions for the next 3, 6, and 12 months including:
1. Price trend forecasts
2. Inventory predictions
3. Best investment opportunities
4. Risk factors to watch
5. Buyer/seller market assessment

Format as structured JSON.`,
		m.AveragePrice, m.PriceChange, m.Inventory, m.DaysOnMarket)

	content, err := c.Chat(ctx,
		"You are a real estate market analyst. Provide comprehensive market insights in JSON format.",
		prompt, 1200, 0.6)
	if err != nil {
		c.logger.WithError(err).Warn("Market analysis failed, using fallback")
		return FallbackMarketInsights()
	}

	return parseMarketInsight(content)
}

func parseMarketInsight(content string) models.MarketInsight {
	if obj, ok := aitext.ExtractJSON(content); ok {
		insight := models.MarketInsight{Insights: strField(obj, "insights", "analysis")}
		if preds, ok := obj["predictions"].(map[string]interface{}); ok {
			insight.ThreeMonth = strField(preds, "threeMonth", "three_month")
			insight.SixMonth = strField(preds, "sixMonth", "six_month")
			insight.TwelveMonth = strField(preds, "twelveMonth", "twelve_month")
		}
		if insight.Insights == "" {
			insight.Insights = content
		}
		return insight
	}

	return models.MarketInsight{
		ThreeMonth:  "Stable growth expected",
		SixMonth:    "Continued positive trends",
		TwelveMonth: "Market normalization",
		Insights:    content,
	}
}

// ScoreLead asks for a qualification score for one lead.
func (c *Client) ScoreLead(ctx context.Context, lead models.Lead) models.LeadScore {
	prompt := fmt.Sprintf(`Analyze this lead and provide scoring insights:

Lead Information:
- Name: %s
- Email: %s
- Property Interest: %s
- Source: %s
- Notes: %s
- Last Contact: %s

Provide:
1. Lead score (0-100)
2. Conversion probability
3. Priority level (High/Medium/Low)
4. Recommended next actions
5. Timeline for follow-up
6. Key factors influencing the score

Format as JSON.`,
		lead.Name, lead.Email, lead.PropertyInterest,
		lead.Source, lead.Notes, lead.LastContact)

	content, err := c.Chat(ctx,
		"You are a real estate lead analysis expert. Provide detailed lead scoring in JSON format.",
		prompt, 800, 0.5)
	if err != nil {
		c.logger.WithError(err).Warn("Lead scoring failed, using fallback")
		return FallbackLeadScore(lead)
	}

	return parseLeadScore(content)
}

func parseLeadScore(content string) models.LeadScore {
	if obj, ok := aitext.ExtractJSON(content); ok {
		score := models.LeadScore{
			Score:           intField(obj, "score", "leadScore", "lead_score"),
			Priority:        strField(obj, "priority"),
			Analysis:        strField(obj, "analysis"),
			Recommendations: strSliceField(obj, "recommendations"),
		}
		if score.Score == 0 {
			score.Score = aitext.ExtractScore(content)
		}
		if score.Priority == "" {
			score.Priority = "Medium"
		}
		if score.Analysis == "" {
			score.Analysis = content
		}
		return score
	}

	return models.LeadScore{
		Score:           aitext.ExtractScore(content),
		Priority:        "Medium",
		Analysis:        content,
		Recommendations: aitext.ExtractRecommendations(content),
	}
}

// TestConnection probes the API with a trivial completion.
func (c *Client) TestConnection(ctx context.Context) (bool, string) {
	if c.apiKey == "" {
		return false, "API key not configured"
	}

	content, err := c.Chat(ctx, "", `Hello, please respond with "Connection successful"`, 50, 0)
	if err != nil {
		return false, err.Error()
	}
	return true, strings.TrimSpace(content)
}

func strField(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func intField(obj map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		if v, ok := obj[key].(float64); ok {
			return int(v)
		}
	}
	return 0
}

func strSliceField(obj map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		raw, ok := obj[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
