// Package market assembles the analytics surface: snapshot statistics,
// price/volume trend series, type and neighborhood breakdowns, and the AI
// market outlook.
package market

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"dealscope/server/internal/deepseek"
	"dealscope/server/internal/models"
	"dealscope/server/internal/rentcast"
	"dealscope/server/internal/state"
	"dealscope/server/internal/store"
)

// Service wires the snapshot store, the market-summary provider and the
// generative outlook into the dashboard analytics endpoints. The container
// holds a single summary slot reserved for defaultCity; refreshes of other
// supported markets return their data without touching it.
type Service struct {
	store       *store.Store
	rentcast    *rentcast.Client
	deepseek    *deepseek.Client
	container   *state.Container
	defaultCity string
	logger      *logrus.Logger
}

func NewService(st *store.Store, rc *rentcast.Client, ds *deepseek.Client, container *state.Container, defaultCity string, logger *logrus.Logger) *Service {
	return &Service{
		store:       st,
		rentcast:    rc,
		deepseek:    ds,
		container:   container,
		defaultCity: defaultCity,
		logger:      logger,
	}
}

func (s *Service) isDefaultMarket(city string) bool {
	return strings.EqualFold(city, s.defaultCity)
}

// Overview is the full analytics payload for the market page.
type Overview struct {
	Stats         models.MarketStats         `json:"stats"`
	Market        models.MarketData          `json:"market"`
	Types         []models.TypeShare         `json:"types"`
	Neighborhoods []models.NeighborhoodStats `json:"neighborhoods"`
}

// Stats aggregates the current snapshot together with the cached market
// summary.
func (s *Service) Stats() (Overview, error) {
	stats, err := s.store.MarketStats()
	if err != nil {
		return Overview{}, err
	}

	types, err := s.store.TypeDistribution()
	if err != nil {
		return Overview{}, err
	}

	neighborhoods, err := s.store.NeighborhoodStats()
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Stats:         stats,
		Market:        s.container.MarketData(),
		Types:         types,
		Neighborhoods: neighborhoods,
	}, nil
}

// FallbackMarketData is the static summary used when the provider cannot be
// reached.
func FallbackMarketData() models.MarketData {
	return models.MarketData{
		AveragePrice: 483000,
		MedianPrice:  455000,
		PricePerSqft: 245,
		AverageRent:  2800,
		Inventory:    245,
		DaysOnMarket: 12,
		PriceChange:  8.5,
		MarketTrend:  "Rising",
	}
}

// Refresh pulls a fresh market summary for the given city. Only the default
// market's summary is cached in the shared container; secondary markets are
// returned to the caller without overwriting the dashboard summary. Provider
// failures fall back to the static summary without clobbering fresher data
// already cached.
func (s *Service) Refresh(ctx context.Context, city, stateCode string) models.MarketData {
	data, err := s.rentcast.MarketSummary(ctx, city, stateCode, "")
	if err != nil {
		s.logger.WithError(err).WithField("city", city).Warn("Market summary fetch failed, using fallback")
		if !s.isDefaultMarket(city) {
			return FallbackMarketData()
		}
		if cached := s.container.MarketData(); cached.AveragePrice > 0 {
			return cached
		}
		data = FallbackMarketData()
	}

	if s.isDefaultMarket(city) {
		s.container.SetMarketData(data)
	}
	return data
}

// Trends returns the monthly price and volume series. A live snapshot
// anchors the series at the snapshot average; otherwise the demo series is
// served.
func (s *Service) Trends() ([]models.TrendPoint, error) {
	stats, err := s.store.MarketStats()
	if err != nil {
		return nil, err
	}

	if stats.TotalProperties == 0 {
		return demoTrend(), nil
	}

	return buildTrend(stats.AveragePrice, s.container.MarketData()), nil
}

// Insights produces the AI market outlook for the cached summary.
func (s *Service) Insights(ctx context.Context) models.MarketInsight {
	data := s.container.MarketData()
	if data.AveragePrice == 0 {
		data = FallbackMarketData()
	}
	return s.deepseek.MarketInsights(ctx, data)
}

var trendMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}

func demoTrend() []models.TrendPoint {
	prices := []float64{425000, 435000, 445000, 455000, 465000, 475000, 483000}
	volumes := []int{145, 132, 168, 189, 201, 178, 165}

	points := make([]models.TrendPoint, len(trendMonths))
	for i, month := range trendMonths {
		points[i] = models.TrendPoint{Month: month, Price: prices[i], Volume: volumes[i]}
	}
	return points
}

// buildTrend interpolates a seven-point series ending at the snapshot
// average, spreading the year-over-year price change across the window.
func buildTrend(currentAvg float64, market models.MarketData) []models.TrendPoint {
	change := market.PriceChange
	if change == 0 {
		change = 5.2
	}
	startPrice := currentAvg / (1 + change/100)

	volume := market.Inventory
	if volume == 0 {
		volume = 165
	}

	n := len(trendMonths)
	points := make([]models.TrendPoint, n)
	for i, month := range trendMonths {
		t := float64(i) / float64(n-1)
		points[i] = models.TrendPoint{
			Month:  month,
			Price:  startPrice + (currentAvg-startPrice)*t,
			Volume: volume,
		}
	}
	return points
}
