package deepseek

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/server/config"
	"dealscope/server/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.DeepSeek.APIKey = "test-key"
	cfg.DeepSeek.BaseURL = server.URL
	cfg.DeepSeek.Model = "deepseek-chat"
	cfg.DeepSeek.TimeoutS = 5

	return NewClient(cfg, logrus.New())
}

func completionResponse(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestChat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.Equal(t, 0.7, req.Temperature)

		fmt.Fprint(w, completionResponse("hello back"))
	})

	content, err := client.Chat(context.Background(), "be helpful", "hello", 1000, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "hello back", content)
}

func TestChatNoAPIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.DeepSeek.BaseURL = "http://localhost:0"
	cfg.DeepSeek.TimeoutS = 1
	client := NewClient(cfg, logrus.New())

	assert.False(t, client.Configured())
	_, err := client.Chat(context.Background(), "", "hello", 100, 0)
	assert.Error(t, err)
}

func TestChatServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Chat(context.Background(), "", "hello", 100, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deepseek api error")
}

func TestAnalyzePropertyParsesJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`Here is my analysis:
{"investmentScore": 82, "analysis": "Strong rental area.", "priceAssessment": "Undervalued", "recommendations": ["Inspect the roof", "Check comps"]}`))
	})

	insight := client.AnalyzeProperty(context.Background(), models.Property{Address: "1234 Maple Street"})
	assert.Equal(t, 82, insight.InvestmentScore)
	assert.Equal(t, "Strong rental area.", insight.Analysis)
	assert.Equal(t, "Undervalued", insight.PriceAssessment)
	assert.Equal(t, []string{"Inspect the roof", "Check comps"}, insight.Recommendations)
	assert.False(t, insight.Fallback)
}

func TestAnalyzePropertyPlainText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse("This property scores 88/100. It looks underpriced.\n- Negotiate below asking price\n- Verify rental demand locally"))
	})

	insight := client.AnalyzeProperty(context.Background(), models.Property{Address: "1234 Maple Street"})
	assert.Equal(t, 88, insight.InvestmentScore)
	assert.Equal(t, "Undervalued", insight.PriceAssessment)
	assert.NotEmpty(t, insight.Recommendations)
}

func TestAnalyzePropertyFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	insight := client.AnalyzeProperty(context.Background(), models.Property{
		Price: 450000, EstimatedValue: 465000, DaysOnMarket: 12,
	})
	assert.True(t, insight.Fallback)
	assert.Equal(t, 76, insight.InvestmentScore)
	assert.Equal(t, "Undervalued", insight.PriceAssessment)
}

func TestMarketInsightsParsesPredictions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"predictions": {"threeMonth": "Flat", "sixMonth": "Up 2%", "twelveMonth": "Up 5%"}, "insights": "Inventory is tightening."}`))
	})

	insight := client.MarketInsights(context.Background(), models.MarketData{AveragePrice: 483000})
	assert.Equal(t, "Flat", insight.ThreeMonth)
	assert.Equal(t, "Up 2%", insight.SixMonth)
	assert.Equal(t, "Up 5%", insight.TwelveMonth)
	assert.Equal(t, "Inventory is tightening.", insight.Insights)
	assert.False(t, insight.Fallback)
}

func TestMarketInsightsFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	insight := client.MarketInsights(context.Background(), models.MarketData{})
	assert.True(t, insight.Fallback)
	assert.Equal(t, "Market stability expected", insight.ThreeMonth)
}

func TestScoreLeadParsesJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(`{"score": 91, "priority": "High", "analysis": "Cash buyer, ready now.", "recommendations": ["Call today"]}`))
	})

	score := client.ScoreLead(context.Background(), models.Lead{Name: "Jennifer Martinez"})
	assert.Equal(t, 91, score.Score)
	assert.Equal(t, "High", score.Priority)
	assert.False(t, score.Fallback)
}

func TestScoreLeadFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	score := client.ScoreLead(context.Background(), models.Lead{
		Source: "Referral",
		Notes:  "Pre-approved cash buyer",
	})
	assert.True(t, score.Fallback)
	assert.Equal(t, 100, score.Score, "referral + pre-approved + cash caps at 100")
	assert.Equal(t, "High", score.Priority)
}

func TestTestConnection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse("Connection successful"))
	})

	ok, msg := client.TestConnection(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Connection successful", msg)
}

func TestTestConnectionNoKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.DeepSeek.BaseURL = "http://localhost:0"
	cfg.DeepSeek.TimeoutS = 1
	client := NewClient(cfg, logrus.New())

	ok, msg := client.TestConnection(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "API key not configured", msg)
}

func TestFallbackAnalysisBounds(t *testing.T) {
	tests := []struct {
		name string
		dom  int
		want int
	}{
		{"fresh listing caps at 95", 0, 95},
		{"typical listing", 12, 76},
		{"stale listing floors at 60", 90, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight := FallbackAnalysis(models.Property{DaysOnMarket: tt.dom})
			assert.Equal(t, tt.want, insight.InvestmentScore)
		})
	}
}

func TestFallbackLeadScoreTiers(t *testing.T) {
	tests := []struct {
		name     string
		lead     models.Lead
		score    int
		priority string
	}{
		{"no signals", models.Lead{Source: "Website"}, 50, "Low"},
		{"referral only", models.Lead{Source: "Referral"}, 70, "Medium"},
		{"cash note", models.Lead{Source: "Website", Notes: "CASH offer ready"}, 75, "Medium"},
		{"referral with pre-approval", models.Lead{Source: "Referral", Notes: "Pre-approved for 500k"}, 85, "High"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FallbackLeadScore(tt.lead)
			assert.Equal(t, tt.score, score.Score)
			assert.Equal(t, tt.priority, score.Priority)
		})
	}
}
