// Package aitext extracts structured fields from free-form AI-generated
// text. Every function is best-effort and returns a usable default instead of
// an error; malformed input never propagates past this package.
package aitext

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// DefaultScore is reported when no score can be found in the text.
const DefaultScore = 75

var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	scorePattern      = regexp.MustCompile(`(?i)(\d+)\s*/\s*100|score\D{0,10}(\d+)|(\d+)\s*%`)
	bulletPattern     = regexp.MustCompile(`^(\d+\.|-|\*|•)\s*`)
)

// ExtractJSON returns the first JSON object embedded in the text, decoded
// into a generic map. The boolean is false when no parsable object exists.
func ExtractJSON(text string) (map[string]interface{}, bool) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, false
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(match), &out); err != nil {
		return nil, false
	}
	return out, true
}

// ExtractScore pulls a 0-100 score out of prose such as "87/100",
// "score: 87" or "87%". Out-of-range or absent values fall back to
// DefaultScore.
func ExtractScore(text string) int {
	groups := scorePattern.FindStringSubmatch(text)
	if groups == nil {
		return DefaultScore
	}

	for _, g := range groups[1:] {
		if g == "" {
			continue
		}
		score, err := strconv.Atoi(g)
		if err != nil || score < 0 || score > 100 {
			return DefaultScore
		}
		return score
	}
	return DefaultScore
}

// ExtractRecommendations collects up to five numbered or bulleted lines of
// meaningful length.
func ExtractRecommendations(text string) []string {
	var recs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !bulletPattern.MatchString(line) || len(line) <= 10 {
			continue
		}
		recs = append(recs, strings.TrimSpace(bulletPattern.ReplaceAllString(line, "")))
		if len(recs) == 5 {
			break
		}
	}
	return recs
}

// ExtractPriceAssessment classifies prose into one of three assessments
// based on keyword presence.
func ExtractPriceAssessment(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "underpriced") || strings.Contains(lower, "undervalued"):
		return "Undervalued"
	case strings.Contains(lower, "overpriced") || strings.Contains(lower, "overvalued"):
		return "Overpriced"
	default:
		return "Fair Market Value"
	}
}
