package offers

import (
	"github.com/google/uuid"

	"dealscope/server/internal/models"
)

// BuildReport packages a completed analysis as a serializable export payload.
// The narrative is optional AI-generated prose; an empty narrative leaves the
// numeric result untouched.
func BuildReport(req models.OfferRequest, analysis models.OfferAnalysis, address, narrative string) models.OfferReport {
	if address == "" {
		address = "N/A"
	}
	return models.OfferReport{
		ReportID:  uuid.New().String(),
		Address:   address,
		ListPrice: sanitize(req.ListPrice),
		Analysis:  analysis,
		Narrative: narrative,
	}
}
