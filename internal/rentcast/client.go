// Package rentcast wraps the RentCast property-data API: listing search,
// value and rent estimates, market summaries and comparable sales.
package rentcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/models"
)

type Client struct {
	apiKey   string
	baseURL  string
	maxLimit int
	logger   *logrus.Logger
	client   *http.Client
}

func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		apiKey:   cfg.RentCast.APIKey,
		baseURL:  cfg.RentCast.BaseURL,
		maxLimit: cfg.RentCast.MaxLimit,
		logger:   logger,
		client:   &http.Client{Timeout: time.Duration(cfg.RentCast.TimeoutS) * time.Second},
	}
}

// Configured reports whether an API key is present. Without one every call
// fails fast and callers fall back to the built-in demo data.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) makeRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("rentcast API key is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.URL.RawQuery = params.Encode()
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"params":   params.Encode(),
	}).Debug("RentCast API request")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("endpoint", endpoint).Error("RentCast request failed")
		return nil, fmt.Errorf("rentcast request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"endpoint": endpoint,
			"body":     string(body),
		}).Error("RentCast API error response")
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return body, nil
}

// APIError is a non-2xx response from the RentCast API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rentcast api error: %s", e.Status)
}

// SearchParams are the supported listing-search constraints. Zero values are
// omitted from the request.
type SearchParams struct {
	Address      string
	City         string
	State        string
	ZipCode      string
	Bedrooms     string
	Bathrooms    string
	PropertyType string
	Limit        int
}

// rentcastTypes maps dashboard property types to the names RentCast expects.
var rentcastTypes = map[string]string{
	models.TypeSingleFamily: "Single Family",
	models.TypeCondo:        "Condo",
	models.TypeTownhouse:    "Townhouse",
	models.TypeMultiFamily:  "Multi Family",
}

// SearchProperties queries for-sale listings and transforms them into the
// dashboard property shape. Listings without a positive price are dropped.
func (c *Client) SearchProperties(ctx context.Context, p SearchParams) ([]models.Property, error) {
	limit := p.Limit
	if limit <= 0 || limit > c.maxLimit {
		limit = c.maxLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if p.City != "" {
		params.Set("city", p.City)
	}
	if p.State != "" {
		params.Set("state", p.State)
	}
	if p.ZipCode != "" {
		params.Set("zipCode", p.ZipCode)
	}
	if p.Address != "" {
		params.Set("address", p.Address)
	}
	if p.Bedrooms != "" && p.Bedrooms != models.FilterAny {
		params.Set("bedrooms", p.Bedrooms)
	}
	if p.Bathrooms != "" && p.Bathrooms != models.FilterAny {
		params.Set("bathrooms", p.Bathrooms)
	}
	if p.PropertyType != "" && p.PropertyType != models.FilterAll {
		mapped, ok := rentcastTypes[p.PropertyType]
		if !ok {
			mapped = p.PropertyType
		}
		params.Set("propertyType", mapped)
	}

	body, err := c.makeRequest(ctx, "/listings/sale", params)
	if err != nil {
		return nil, err
	}

	listings, err := decodeListings(body)
	if err != nil {
		return nil, err
	}

	properties := make([]models.Property, 0, len(listings))
	for i, l := range listings {
		p := transformListing(l, i)
		if p.Price > 0 {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

// ValueEstimate is the response of the automated valuation model.
type ValueEstimate struct {
	EstimatedValue float64 `json:"estimated_value"`
	Confidence     float64 `json:"confidence"`
	RangeLow       float64 `json:"range_low"`
	RangeHigh      float64 `json:"range_high"`
}

// PropertyValue fetches a value estimate for an address.
func (c *Client) PropertyValue(ctx context.Context, address, city, state, zipCode string) (ValueEstimate, error) {
	params := locationParams(address, city, state, zipCode)

	body, err := c.makeRequest(ctx, "/avm/value", params)
	if err != nil {
		return ValueEstimate{}, err
	}

	var raw struct {
		Price         float64 `json:"price"`
		Estimate      float64 `json:"estimate"`
		Confidence    float64 `json:"confidence"`
		PriceRangeLow float64 `json:"priceRangeLow"`
		PriceRangeHi  float64 `json:"priceRangeHigh"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ValueEstimate{}, fmt.Errorf("failed to parse value response: %v", err)
	}

	value := raw.Price
	if value == 0 {
		value = raw.Estimate
	}
	return ValueEstimate{
		EstimatedValue: value,
		Confidence:     raw.Confidence,
		RangeLow:       raw.PriceRangeLow,
		RangeHigh:      raw.PriceRangeHi,
	}, nil
}

// RentEstimate is the response of the rental valuation model.
type RentEstimate struct {
	Rent       float64 `json:"rent"`
	Confidence float64 `json:"confidence"`
	RangeLow   float64 `json:"range_low"`
	RangeHigh  float64 `json:"range_high"`
}

// RentalEstimate fetches a monthly rent estimate for an address.
func (c *Client) RentalEstimate(ctx context.Context, address, city, state, zipCode string) (RentEstimate, error) {
	params := locationParams(address, city, state, zipCode)

	body, err := c.makeRequest(ctx, "/avm/rent", params)
	if err != nil {
		return RentEstimate{}, err
	}

	var raw struct {
		Rent         float64 `json:"rent"`
		Estimate     float64 `json:"estimate"`
		Confidence   float64 `json:"confidence"`
		RentRangeLow float64 `json:"rentRangeLow"`
		RentRangeHi  float64 `json:"rentRangeHigh"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return RentEstimate{}, fmt.Errorf("failed to parse rent response: %v", err)
	}

	rent := raw.Rent
	if rent == 0 {
		rent = raw.Estimate
	}
	return RentEstimate{
		Rent:       rent,
		Confidence: raw.Confidence,
		RangeLow:   raw.RentRangeLow,
		RangeHigh:  raw.RentRangeHi,
	}, nil
}

// MarketSummary fetches the market overview for a city.
func (c *Client) MarketSummary(ctx context.Context, city, state, propertyType string) (models.MarketData, error) {
	if propertyType == "" {
		propertyType = models.TypeSingleFamily
	}

	params := url.Values{}
	params.Set("city", city)
	params.Set("state", state)
	params.Set("propertyType", propertyType)

	body, err := c.makeRequest(ctx, "/markets/summary", params)
	if err != nil {
		return models.MarketData{}, err
	}

	var raw struct {
		AveragePrice float64 `json:"averagePrice"`
		MedianPrice  float64 `json:"medianPrice"`
		PricePerSqft float64 `json:"pricePerSquareFoot"`
		AverageRent  float64 `json:"averageRent"`
		Inventory    int     `json:"inventoryCount"`
		DaysOnMarket float64 `json:"averageDaysOnMarket"`
		PriceChange  float64 `json:"priceChangePercentage"`
		MarketTrend  string  `json:"marketTrend"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.MarketData{}, fmt.Errorf("failed to parse market response: %v", err)
	}

	m := models.MarketData{
		AveragePrice: raw.AveragePrice,
		MedianPrice:  raw.MedianPrice,
		PricePerSqft: raw.PricePerSqft,
		AverageRent:  raw.AverageRent,
		Inventory:    raw.Inventory,
		DaysOnMarket: raw.DaysOnMarket,
		PriceChange:  raw.PriceChange,
		MarketTrend:  raw.MarketTrend,
	}
	if m.DaysOnMarket == 0 {
		m.DaysOnMarket = 15
	}
	if m.PriceChange == 0 {
		m.PriceChange = 5.2
	}
	if m.MarketTrend == "" {
		m.MarketTrend = "Stable"
	}
	return m, nil
}

// Comparable is one comparable sale near a subject property.
type Comparable struct {
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	Sqft         int     `json:"sqft"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	SoldDate     string  `json:"sold_date"`
	DaysOnMarket int     `json:"days_on_market"`
	Distance     float64 `json:"distance"`
}

// Comparables fetches comparable sales within a radius (miles).
func (c *Client) Comparables(ctx context.Context, address, city, state, zipCode string, radius float64) ([]Comparable, error) {
	if radius <= 0 {
		radius = 0.5
	}
	params := locationParams(address, city, state, zipCode)
	params.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	body, err := c.makeRequest(ctx, "/avm/comparables", params)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Comparables []struct {
			Address      string  `json:"address"`
			Price        float64 `json:"price"`
			Sqft         int     `json:"squareFootage"`
			Bedrooms     int     `json:"bedrooms"`
			Bathrooms    float64 `json:"bathrooms"`
			SoldDate     string  `json:"soldDate"`
			DaysOnMarket int     `json:"daysOnMarket"`
			Distance     float64 `json:"distance"`
		} `json:"comparables"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse comparables response: %v", err)
	}

	out := make([]Comparable, 0, len(raw.Comparables))
	for _, comp := range raw.Comparables {
		out = append(out, Comparable{
			Address:      comp.Address,
			Price:        comp.Price,
			Sqft:         comp.Sqft,
			Bedrooms:     comp.Bedrooms,
			Bathrooms:    comp.Bathrooms,
			SoldDate:     comp.SoldDate,
			DaysOnMarket: comp.DaysOnMarket,
			Distance:     comp.Distance,
		})
	}
	return out, nil
}

// ConnectionStatus is the result of a connectivity probe.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TestConnection probes the API with a minimal Austin search and translates
// the common failure codes into actionable messages.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	if c.apiKey == "" {
		return ConnectionStatus{
			Success: false,
			Error:   "API key not configured. Please set RENTCAST_API_KEY.",
		}
	}

	params := url.Values{}
	params.Set("city", "Austin")
	params.Set("state", "TX")
	params.Set("limit", "1")

	_, err := c.makeRequest(ctx, "/listings/sale", params)
	if err == nil {
		return ConnectionStatus{Success: true, Message: "RentCast API connected successfully"}
	}

	c.logger.WithError(err).Warn("RentCast connection test failed")

	message := err.Error()
	if apiErr, ok := err.(*APIError); ok {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			message = "Invalid API key. Please check your RentCast API key."
		case http.StatusForbidden:
			message = "Access forbidden. Please verify your API key permissions."
		case http.StatusNotFound:
			message = "API endpoint not found. RentCast API may have updated."
		case http.StatusTooManyRequests:
			message = "Rate limit exceeded. Please try again later."
		}
	}

	return ConnectionStatus{Success: false, Error: message}
}

func locationParams(address, city, state, zipCode string) url.Values {
	params := url.Values{}
	if address != "" {
		params.Set("address", address)
	}
	if city != "" {
		params.Set("city", city)
	}
	if state != "" {
		params.Set("state", state)
	}
	if zipCode != "" {
		params.Set("zipCode", zipCode)
	}
	return params
}
