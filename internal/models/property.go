package models

// Property represents one real-estate listing. Records are immutable once
// created; a new search replaces the whole collection rather than mutating
// individual entries.
type Property struct {
	ID             string   `json:"id"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zip_code"`
	Price          float64  `json:"price"`
	EstimatedValue float64  `json:"estimated_value"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      float64  `json:"bathrooms"`
	Sqft           int      `json:"sqft"`
	LotSize        float64  `json:"lot_size"`
	YearBuilt      int      `json:"year_built"`
	PropertyType   string   `json:"property_type"`
	Status         string   `json:"status"`
	DaysOnMarket   int      `json:"days_on_market"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	RentEstimate   float64  `json:"rent_estimate"`
	AIScore        int      `json:"ai_score"`
	LeadPotential  string   `json:"lead_potential"`
	MLSNumber      string   `json:"mls_number"`
	Agent          Agent    `json:"listing_agent"`
}

// Agent is the listing agent attached to a property.
type Agent struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Brokerage string `json:"brokerage"`
}

// Property type values accepted by the search filter.
const (
	TypeSingleFamily = "Single Family"
	TypeCondo        = "Condo"
	TypeTownhouse    = "Townhouse"
	TypeMultiFamily  = "Multi-Family"
)

// Listing status values.
const (
	StatusForSale      = "For Sale"
	StatusRecentlySold = "Recently Sold"
)

// Filter sentinels: a field carrying its sentinel imposes no constraint.
const (
	FilterAll = "all"
	FilterAny = "any"
)

// SearchFilters represents the active search constraints. Every field is
// independently optional; the zero value of PriceRange means "no price
// constraint" only when both bounds are zero and untouched by the caller,
// so DefaultFilters should be used to build a fresh specification.
type SearchFilters struct {
	Location     string     `json:"location"`
	PriceRange   [2]float64 `json:"price_range"`
	PropertyType string     `json:"property_type"`
	Bedrooms     string     `json:"bedrooms"`
	Bathrooms    string     `json:"bathrooms"`
	YearBuilt    string     `json:"year_built"`
	LotSize      string     `json:"lot_size"`
}

// DefaultFilters returns a specification with every field at its
// no-constraint sentinel.
func DefaultFilters() SearchFilters {
	return SearchFilters{
		Location:     "",
		PriceRange:   [2]float64{0, 1000000},
		PropertyType: FilterAll,
		Bedrooms:     FilterAny,
		Bathrooms:    FilterAny,
		YearBuilt:    FilterAny,
		LotSize:      FilterAny,
	}
}
