package models

// MarketData is the market summary shown on the dashboard, sourced from the
// property-data provider or from static defaults when the provider is
// unavailable.
type MarketData struct {
	AveragePrice float64 `json:"average_price"`
	MedianPrice  float64 `json:"median_price"`
	PricePerSqft float64 `json:"price_per_sqft"`
	AverageRent  float64 `json:"average_rent"`
	Inventory    int     `json:"inventory"`
	DaysOnMarket float64 `json:"days_on_market"`
	PriceChange  float64 `json:"price_change"`
	MarketTrend  string  `json:"market_trend"`
}

// MarketStats aggregates the in-memory listing snapshot.
type MarketStats struct {
	TotalProperties int     `json:"total_properties"`
	TotalForSale    int     `json:"total_for_sale"`
	TotalSold       int     `json:"total_sold"`
	AveragePrice    float64 `json:"average_price"`
	MedianPrice     float64 `json:"median_price"`
	PricePerSqft    float64 `json:"price_per_sqft"`
	AvgDaysOnMarket float64 `json:"avg_days_on_market"`
}

// TrendPoint is one month of the price/volume trend series.
type TrendPoint struct {
	Month  string  `json:"month"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}

// TypeShare is one slice of the property-type distribution.
type TypeShare struct {
	PropertyType string  `json:"property_type"`
	Count        int     `json:"count"`
	Percent      float64 `json:"percent"`
}

// NeighborhoodStats summarizes listings grouped by zip code.
type NeighborhoodStats struct {
	ZipCode       string  `json:"zip_code"`
	PropertyCount int     `json:"property_count"`
	AveragePrice  float64 `json:"average_price"`
	PricePerSqft  float64 `json:"price_per_sqft"`
}
