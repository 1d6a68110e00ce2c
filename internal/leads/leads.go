// Package leads filters and summarizes the lead book.
package leads

import (
	"time"

	"dealscope/server/internal/models"
)

// Filter returns the leads matching every active criterion, preserving
// order. The date-range criterion is evaluated against now.
func Filter(leads []models.Lead, f models.LeadFilters, now time.Time) []models.Lead {
	result := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if f.Matches(lead, now) {
			result = append(result, lead)
		}
	}
	return result
}

// Summary is the lead-book overview shown above the lead list.
type Summary struct {
	Total        int `json:"total"`
	Hot          int `json:"hot"`
	Warm         int `json:"warm"`
	Cold         int `json:"cold"`
	AverageScore int `json:"average_score"`
}

// Summarize counts leads per status tier and averages their scores. The
// average is rounded to the nearest integer and zero for an empty book.
func Summarize(leads []models.Lead) Summary {
	s := Summary{Total: len(leads)}
	if len(leads) == 0 {
		return s
	}

	sum := 0
	for _, lead := range leads {
		sum += lead.LeadScore
		switch lead.Status {
		case models.LeadHot:
			s.Hot++
		case models.LeadWarm:
			s.Warm++
		case models.LeadCold:
			s.Cold++
		}
	}
	s.AverageScore = (sum + len(leads)/2) / len(leads)
	return s
}
