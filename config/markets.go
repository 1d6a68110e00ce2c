package config

// Market represents a supported metro market configuration
type Market struct {
	City      string    `json:"city"`
	State     string    `json:"state"`
	Center    []float64 `json:"center"`
	ZoomLevel int       `json:"zoom_level"`
}

// SupportedMarkets is a list of markets supported by the application
var SupportedMarkets = []Market{
	{
		City:      "Austin",
		State:     "TX",
		Center:    []float64{30.2672, -97.7431},
		ZoomLevel: 12,
	},
	{
		City:      "Round Rock",
		State:     "TX",
		Center:    []float64{30.5083, -97.6789},
		ZoomLevel: 12,
	},
	// Add more markets here as needed
}

// GetMarketNames returns a list of supported market city names
func GetMarketNames() []string {
	names := make([]string, len(SupportedMarkets))
	for i, m := range SupportedMarkets {
		names[i] = m.City
	}
	return names
}

// GetMarketByCity returns a market configuration by city name
func GetMarketByCity(city string) *Market {
	for _, m := range SupportedMarkets {
		if m.City == city {
			return &m
		}
	}
	return nil
}
