// Package filter narrows a property collection to the records matching a
// search specification. Filtering is a pure function of its inputs: it never
// reorders, never mutates, and never fails.
package filter

import (
	"strconv"
	"strings"

	"dealscope/server/internal/models"
)

// Numeric floors for the fixed year-built and lot-size buckets.
var (
	yearBuckets = map[string]int{
		"2020+": 2020,
		"2010+": 2010,
		"2000+": 2000,
		"1990+": 1990,
	}
	lotBuckets = map[string]float64{
		"0.1+":  0.1,
		"0.25+": 0.25,
		"0.5+":  0.5,
		"1+":    1,
	}
)

// Apply returns the subset of properties satisfying every active criterion in
// f, preserving input order. A nil or empty collection yields an empty result.
// A price range with min > max legitimately matches nothing; ordering is the
// caller's responsibility.
func Apply(properties []models.Property, f models.SearchFilters) []models.Property {
	matched := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if matches(p, f) {
			matched = append(matched, p)
		}
	}
	return matched
}

// matches evaluates the criteria in a fixed order, rejecting on the first
// failure.
func matches(p models.Property, f models.SearchFilters) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Location)); term != "" {
		if !strings.Contains(strings.ToLower(p.Address), term) &&
			!strings.Contains(strings.ToLower(p.City), term) &&
			!strings.Contains(strings.ToLower(p.ZipCode), term) {
			return false
		}
	}

	if p.Price < f.PriceRange[0] || p.Price > f.PriceRange[1] {
		return false
	}

	if f.PropertyType != "" && f.PropertyType != models.FilterAll {
		if p.PropertyType != f.PropertyType {
			return false
		}
	}

	if f.Bedrooms != "" && f.Bedrooms != models.FilterAny {
		min, err := strconv.Atoi(strings.TrimSpace(f.Bedrooms))
		if err != nil || p.Bedrooms < min {
			return false
		}
	}

	if f.Bathrooms != "" && f.Bathrooms != models.FilterAny {
		min, err := strconv.ParseFloat(strings.TrimSpace(f.Bathrooms), 64)
		if err != nil || p.Bathrooms < min {
			return false
		}
	}

	if f.YearBuilt != "" && f.YearBuilt != models.FilterAny {
		// Unknown bucket values act as a literal constraint that nothing
		// satisfies, rather than being silently ignored.
		min, ok := yearBuckets[f.YearBuilt]
		if !ok || p.YearBuilt < min {
			return false
		}
	}

	if f.LotSize != "" && f.LotSize != models.FilterAny {
		min, ok := lotBuckets[f.LotSize]
		if !ok || p.LotSize < min {
			return false
		}
	}

	return true
}
