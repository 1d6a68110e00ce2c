package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/email"
	"dealscope/server/internal/geo"
	"dealscope/server/internal/leads"
	"dealscope/server/internal/market"
	"dealscope/server/internal/models"
	"dealscope/server/internal/offers"
	"dealscope/server/internal/provider"
	"dealscope/server/internal/state"
)

type Handler struct {
	cfg       *config.Config
	container *state.Container
	provider  *provider.Provider
	market    *market.Service
	deepseek  *deepseek.Client
	email     *email.Generator
	logger    *logrus.Logger
}

func NewHandler(cfg *config.Config, container *state.Container, p *provider.Provider, mk *market.Service, ds *deepseek.Client, eg *email.Generator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		cfg:       cfg,
		container: container,
		provider:  p,
		market:    mk,
		deepseek:  ds,
		email:     eg,
		logger:    logger,
	}
}

// GetProperties returns the current collection with the active filters.
func (h *Handler) GetProperties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"properties": h.container.Properties(),
		"filters":    h.container.Filters(),
		"source":     h.container.DataSource(),
	})
}

// SearchProperties applies a filter specification and returns the matches.
func (h *Handler) SearchProperties(c *gin.Context) {
	filters := models.DefaultFilters()
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.WithError(err).Error("Failed to parse search filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search filters"})
		return
	}

	results := h.provider.Search(c.Request.Context(), filters)
	c.JSON(http.StatusOK, gin.H{
		"properties": results,
		"total":      len(results),
	})
}

// GetProperty returns one property by id and marks it selected.
func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	property, ok := h.container.PropertyByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	h.container.Select(id)
	c.JSON(http.StatusOK, property)
}

// GetViewport returns the map viewport and GeoJSON pins for the collection.
func (h *Handler) GetViewport(c *gin.Context) {
	properties := h.container.Properties()

	fallback := config.GetMarketByCity(h.cfg.DefaultCity)
	if fallback == nil {
		fallback = &config.SupportedMarkets[0]
	}

	c.JSON(http.StatusOK, gin.H{
		"viewport": geo.ComputeViewport(properties, *fallback),
		"features": geo.FeatureCollection(properties),
	})
}

// CalculateOffer runs the offer calculator over the posted request.
func (h *Handler) CalculateOffer(c *gin.Context) {
	var req models.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse offer request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer request"})
		return
	}

	c.JSON(http.StatusOK, offers.Calculate(req))
}

type reportRequest struct {
	Offer   models.OfferRequest `json:"offer"`
	Address string              `json:"address"`
}

// CreateReport calculates an offer analysis and wraps it in an export
// payload with a narrative summary.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse report request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report request"})
		return
	}

	analysis := offers.Calculate(req.Offer)
	narrative := h.reportNarrative(c, req, analysis)

	c.JSON(http.StatusOK, offers.BuildReport(req.Offer, analysis, req.Address, narrative))
}

func (h *Handler) reportNarrative(c *gin.Context, req reportRequest, analysis models.OfferAnalysis) string {
	fallback := fmt.Sprintf(
		"Recommended maximum offer of $%.0f against an after-repair value of $%.0f. The market scenario of $%.0f projects a profit of $%.0f.",
		analysis.MaxOffer, analysis.AfterRepairValue,
		analysis.Market.Amount, analysis.Market.ProjectedProfit)

	if !h.deepseek.Configured() {
		return fallback
	}

	prompt := fmt.Sprintf(`Write a short narrative summary (3-4 sentences) of this offer analysis for a property report:

Address: %s
List Price: $%.0f
After Repair Value: $%.0f
Total Costs: $%.0f
Maximum Offer: $%.0f
Market Scenario: offer $%.0f, projected profit $%.0f, ROI %.1f%%`,
		req.Address, req.Offer.ListPrice, analysis.AfterRepairValue,
		analysis.TotalCosts, analysis.MaxOffer,
		analysis.Market.Amount, analysis.Market.ProjectedProfit, analysis.Market.ROIPercent)

	narrative, err := h.deepseek.Chat(c.Request.Context(), "", prompt, 400, 0.6)
	if err != nil {
		h.logger.WithError(err).Warn("Report narrative generation failed")
		return fallback
	}
	return narrative
}

// GetLeads returns the lead book with its summary.
func (h *Handler) GetLeads(c *gin.Context) {
	book := h.container.Leads()
	c.JSON(http.StatusOK, gin.H{
		"leads":   book,
		"summary": leads.Summarize(book),
	})
}

// FilterLeads applies lead filters and returns the matches.
func (h *Handler) FilterLeads(c *gin.Context) {
	filters := models.DefaultLeadFilters()
	if err := c.ShouldBindJSON(&filters); err != nil {
		h.logger.WithError(err).Error("Failed to parse lead filters")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead filters"})
		return
	}

	matched := leads.Filter(h.container.Leads(), filters, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"leads":   matched,
		"summary": leads.Summarize(matched),
	})
}

// ScoreLead produces an AI qualification score for one lead.
func (h *Handler) ScoreLead(c *gin.Context) {
	id := c.Param("id")
	lead, ok := h.container.LeadByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, h.deepseek.ScoreLead(c.Request.Context(), lead))
}

// GetMarketStats returns the analytics overview.
func (h *Handler) GetMarketStats(c *gin.Context) {
	overview, err := h.market.Stats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market stats"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetMarketTrends returns the monthly price/volume series.
func (h *Handler) GetMarketTrends(c *gin.Context) {
	points, err := h.market.Trends()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get market trends")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get market trends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": points})
}

// GetMarketInsights returns the AI market outlook.
func (h *Handler) GetMarketInsights(c *gin.Context) {
	c.JSON(http.StatusOK, h.market.Insights(c.Request.Context()))
}

type analyzeRequest struct {
	PropertyID string           `json:"property_id"`
	Property   *models.Property `json:"property"`
}

// AnalyzeProperty produces an AI investment analysis for a property given
// by id or inline.
func (h *Handler) AnalyzeProperty(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse analyze request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analyze request"})
		return
	}

	var property models.Property
	switch {
	case req.PropertyID != "":
		found, ok := h.container.PropertyByID(req.PropertyID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		property = found
	case req.Property != nil:
		property = *req.Property
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id or property is required"})
		return
	}

	c.JSON(http.StatusOK, h.deepseek.AnalyzeProperty(c.Request.Context(), property))
}

// GenerateEmail drafts an outreach email.
func (h *Handler) GenerateEmail(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse email request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email request"})
		return
	}

	c.JSON(http.StatusOK, h.email.Draft(c.Request.Context(), req))
}

// GetStatus reports data-source connectivity and collection sizes.
func (h *Handler) GetStatus(c *gin.Context) {
	status := h.provider.Status()
	c.JSON(http.StatusOK, gin.H{
		"status":              status,
		"deepseek_configured": h.deepseek.Configured(),
		"markets":             config.GetMarketNames(),
	})
}
