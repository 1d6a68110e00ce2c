package models

import "time"

// Lead is a prospective buyer/contact tracked with a qualification score
// and status tier.
type Lead struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PropertyInterest string `json:"property_interest"`
	LeadScore        int    `json:"lead_score"`
	Status           string `json:"status"`
	LastContact      string `json:"last_contact"`
	Source           string `json:"source"`
	Notes            string `json:"notes"`
}

// Lead status tiers.
const (
	LeadHot  = "Hot"
	LeadWarm = "Warm"
	LeadCold = "Cold"
)

// LeadFilters stores the lead list filter settings.
type LeadFilters struct {
	Status     string `json:"status"`
	Source     string `json:"source"`
	ScoreRange [2]int `json:"score_range"`
	DateRange  string `json:"date_range"`
}

// DefaultLeadFilters returns filters that match every lead.
func DefaultLeadFilters() LeadFilters {
	return LeadFilters{
		Status:     FilterAll,
		Source:     FilterAll,
		ScoreRange: [2]int{0, 100},
		DateRange:  FilterAll,
	}
}

// Matches reports whether a lead satisfies every active filter criterion.
// The date range is evaluated against now; LastContact values that fail to
// parse are excluded by any active date constraint.
func (f LeadFilters) Matches(lead Lead, now time.Time) bool {
	if f.Status != FilterAll && f.Status != "" && lead.Status != f.Status {
		return false
	}
	if f.Source != FilterAll && f.Source != "" && lead.Source != f.Source {
		return false
	}
	if lead.LeadScore < f.ScoreRange[0] || lead.LeadScore > f.ScoreRange[1] {
		return false
	}

	if f.DateRange != FilterAll && f.DateRange != "" {
		contact, err := time.Parse("2006-01-02", lead.LastContact)
		if err != nil {
			return false
		}

		var cutoff time.Time
		switch f.DateRange {
		case "today":
			cutoff = now.Truncate(24 * time.Hour)
		case "week":
			cutoff = now.AddDate(0, 0, -7)
		case "month":
			cutoff = now.AddDate(0, -1, 0)
		case "quarter":
			cutoff = now.AddDate(0, -3, 0)
		default:
			return false
		}
		if contact.Before(cutoff) {
			return false
		}
	}

	return true
}
