package provider

import "dealscope/server/internal/models"

func coord(v float64) *float64 { return &v }

// DemoProperties is the built-in Austin listing set served when the
// property-data provider is unreachable.
func DemoProperties() []models.Property {
	return []models.Property{
		{
			ID: "1", Address: "123 Maple Street", City: "Austin", State: "TX",
			ZipCode: "78701", Price: 450000, EstimatedValue: 465000,
			Bedrooms: 3, Bathrooms: 2, Sqft: 1850, LotSize: 0.25,
			YearBuilt: 2018, PropertyType: models.TypeSingleFamily,
			Status: models.StatusForSale, DaysOnMarket: 15,
			Latitude: coord(30.2672), Longitude: coord(-97.7431),
			RentEstimate: 2800, AIScore: 92, LeadPotential: "High",
			MLSNumber: "MLS123456",
			Agent: models.Agent{
				Name: "Sarah Johnson", Phone: "(512) 555-0123",
				Email: "sarah.johnson@realestate.com", Brokerage: "Austin Premier Realty",
			},
		},
		{
			ID: "2", Address: "456 Oak Avenue", City: "Austin", State: "TX",
			ZipCode: "78702", Price: 325000, EstimatedValue: 340000,
			Bedrooms: 2, Bathrooms: 2, Sqft: 1200, LotSize: 0.15,
			YearBuilt: 2015, PropertyType: models.TypeCondo,
			Status: models.StatusForSale, DaysOnMarket: 8,
			Latitude: coord(30.2849), Longitude: coord(-97.7341),
			RentEstimate: 2200, AIScore: 87, LeadPotential: "High",
			MLSNumber: "MLS789012",
			Agent: models.Agent{
				Name: "Mike Chen", Phone: "(512) 555-0456",
				Email: "mike.chen@realestate.com", Brokerage: "Austin Premier Realty",
			},
		},
		{
			ID: "3", Address: "789 Pine Boulevard", City: "Austin", State: "TX",
			ZipCode: "78703", Price: 675000, EstimatedValue: 680000,
			Bedrooms: 4, Bathrooms: 3, Sqft: 2400, LotSize: 0.35,
			YearBuilt: 2020, PropertyType: models.TypeSingleFamily,
			Status: models.StatusRecentlySold, DaysOnMarket: 3,
			Latitude: coord(30.2711), Longitude: coord(-97.7494),
			RentEstimate: 3500, AIScore: 95, LeadPotential: "Very High",
			MLSNumber: "MLS345678",
			Agent: models.Agent{
				Name: "Emily Rodriguez", Phone: "(512) 555-0789",
				Email: "emily.rodriguez@realestate.com", Brokerage: "Austin Premier Realty",
			},
		},
		{
			ID: "4", Address: "321 Cedar Lane", City: "Austin", State: "TX",
			ZipCode: "78704", Price: 285000, EstimatedValue: 295000,
			Bedrooms: 1, Bathrooms: 1, Sqft: 850, LotSize: 0.1,
			YearBuilt: 2019, PropertyType: models.TypeCondo,
			Status: models.StatusForSale, DaysOnMarket: 22,
			Latitude: coord(30.2500), Longitude: coord(-97.7500),
			RentEstimate: 1800, AIScore: 78, LeadPotential: "Medium",
			MLSNumber: "MLS456789",
			Agent: models.Agent{
				Name: "David Wilson", Phone: "(512) 555-0321",
				Email: "david.wilson@realestate.com", Brokerage: "Austin Premier Realty",
			},
		},
		{
			ID: "5", Address: "567 Elm Drive", City: "Austin", State: "TX",
			ZipCode: "78705", Price: 850000, EstimatedValue: 875000,
			Bedrooms: 5, Bathrooms: 4, Sqft: 3200, LotSize: 0.5,
			YearBuilt: 2021, PropertyType: models.TypeSingleFamily,
			Status: models.StatusForSale, DaysOnMarket: 5,
			Latitude: coord(30.2800), Longitude: coord(-97.7600),
			RentEstimate: 4200, AIScore: 96, LeadPotential: "Very High",
			MLSNumber: "MLS567890",
			Agent: models.Agent{
				Name: "Lisa Martinez", Phone: "(512) 555-0567",
				Email: "lisa.martinez@realestate.com", Brokerage: "Austin Premier Realty",
			},
		},
	}
}

// DemoLeads is the built-in lead book.
func DemoLeads() []models.Lead {
	return []models.Lead{
		{
			ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@email.com",
			Phone: "(555) 123-4567", PropertyInterest: "123 Maple Street",
			LeadScore: 92, Status: models.LeadHot, LastContact: "2024-01-15",
			Source: "Website", Notes: "First-time buyer, pre-approved for $500k",
		},
		{
			ID: "2", Name: "Michael Chen", Email: "michael.chen@email.com",
			Phone: "(555) 234-5678", PropertyInterest: "456 Oak Avenue",
			LeadScore: 78, Status: models.LeadWarm, LastContact: "2024-01-12",
			Source: "Referral", Notes: "Looking for investment property",
		},
		{
			ID: "3", Name: "Emily Rodriguez", Email: "emily.rodriguez@email.com",
			Phone: "(555) 345-6789", PropertyInterest: "789 Pine Boulevard",
			LeadScore: 85, Status: models.LeadHot, LastContact: "2024-01-14",
			Source: "Social Media", Notes: "Relocating from California, needs quick closing",
		},
	}
}
