package rentcast

import (
	"encoding/json"
	"fmt"

	"dealscope/server/internal/models"
)

// listing is a raw RentCast listing record. The API has shipped several field
// spellings over time, so alternates are carried and coalesced.
type listing struct {
	ID               string   `json:"id"`
	Address          string   `json:"address"`
	FormattedAddress string   `json:"formattedAddress"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zipCode"`
	Zip              string   `json:"zip"`
	Price            float64  `json:"price"`
	ListPrice        float64  `json:"listPrice"`
	EstimatedValue   float64  `json:"estimatedValue"`
	Bedrooms         int      `json:"bedrooms"`
	Beds             int      `json:"beds"`
	Bathrooms        float64  `json:"bathrooms"`
	Baths            float64  `json:"baths"`
	Sqft             int      `json:"sqft"`
	SquareFootage    int      `json:"squareFootage"`
	LotSize          float64  `json:"lotSize"`
	LotSizeAcres     float64  `json:"lotSizeAcres"`
	YearBuilt        int      `json:"yearBuilt"`
	PropertyType     string   `json:"propertyType"`
	Status           string   `json:"status"`
	DaysOnMarket     int      `json:"daysOnMarket"`
	PriceReduced     bool     `json:"priceReduction"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	RentEstimate     float64  `json:"rentEstimate"`
	MLSNumber        string   `json:"mlsNumber"`
	MLS              string   `json:"mls"`
	AgentName        string   `json:"agentName"`
	AgentPhone       string   `json:"agentPhone"`
	AgentEmail       string   `json:"agentEmail"`
	BrokerageName    string   `json:"brokerageName"`
}

// decodeListings accepts both the wrapped object form and a bare array.
func decodeListings(body []byte) ([]listing, error) {
	var wrapped struct {
		Listings   []listing `json:"listings"`
		Properties []listing `json:"properties"`
		Data       []listing `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		switch {
		case len(wrapped.Listings) > 0:
			return wrapped.Listings, nil
		case len(wrapped.Properties) > 0:
			return wrapped.Properties, nil
		case len(wrapped.Data) > 0:
			return wrapped.Data, nil
		}
	}

	var bare []listing
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, fmt.Errorf("unexpected listings response format")
}

func transformListing(l listing, index int) models.Property {
	p := models.Property{
		ID:            l.ID,
		Address:       coalesce(l.Address, l.FormattedAddress, "Address Not Available"),
		City:          l.City,
		State:         l.State,
		ZipCode:       coalesce(l.ZipCode, l.Zip, ""),
		Price:         coalesceF(l.Price, l.ListPrice),
		Bedrooms:      coalesceI(l.Bedrooms, l.Beds),
		Bathrooms:     coalesceF(l.Bathrooms, l.Baths),
		Sqft:          coalesceI(l.Sqft, l.SquareFootage),
		LotSize:       coalesceF(l.LotSize, l.LotSizeAcres),
		YearBuilt:     l.YearBuilt,
		PropertyType:  coalesce(l.PropertyType, "", models.TypeSingleFamily),
		Status:        coalesce(l.Status, "", models.StatusForSale),
		DaysOnMarket:  l.DaysOnMarket,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		RentEstimate:  l.RentEstimate,
		MLSNumber:     coalesce(l.MLSNumber, l.MLS, ""),
		LeadPotential: leadPotential(l),
	}

	if p.ID == "" {
		p.ID = fmt.Sprintf("rentcast_%d", index)
	}
	p.EstimatedValue = l.EstimatedValue
	if p.EstimatedValue == 0 {
		p.EstimatedValue = p.Price
	}
	if p.LotSize == 0 {
		p.LotSize = 0.25
	}
	if p.DaysOnMarket == 0 {
		p.DaysOnMarket = 15
	}
	if p.RentEstimate == 0 {
		p.RentEstimate = estimateRent(p.Sqft, p.Bedrooms)
	}

	p.Agent = models.Agent{
		Name:      coalesce(l.AgentName, "", "Contact Agent"),
		Phone:     coalesce(l.AgentPhone, "", "(555) 123-4567"),
		Email:     coalesce(l.AgentEmail, "", "agent@realestate.com"),
		Brokerage: coalesce(l.BrokerageName, "", "Real Estate Brokerage"),
	}

	return p
}

// estimateRent is a coarse monthly rent heuristic used when the listing
// carries no estimate: $1.50 per square foot plus $200 per bedroom.
func estimateRent(sqft, bedrooms int) float64 {
	if sqft == 0 {
		sqft = 1200
	}
	if bedrooms == 0 {
		bedrooms = 2
	}
	return float64(sqft)*1.5 + float64(bedrooms)*200
}

// leadPotential scores how promising a listing is as a seller lead: long time
// on market, priced under its estimate, or a recent price reduction.
func leadPotential(l listing) string {
	price := coalesceF(l.Price, l.ListPrice)

	score := 0
	if l.DaysOnMarket > 30 {
		score += 20
	}
	if l.EstimatedValue > 0 && price < l.EstimatedValue {
		score += 30
	}
	if l.PriceReduced {
		score += 25
	}

	switch {
	case score >= 50:
		return "Very High"
	case score >= 30:
		return "High"
	case score >= 15:
		return "Medium"
	default:
		return "Low"
	}
}

func coalesce(primary, secondary, fallback string) string {
	if primary != "" {
		return primary
	}
	if secondary != "" {
		return secondary
	}
	return fallback
}

func coalesceF(primary, secondary float64) float64 {
	if primary != 0 {
		return primary
	}
	return secondary
}

func coalesceI(primary, secondary int) int {
	if primary != 0 {
		return primary
	}
	return secondary
}
