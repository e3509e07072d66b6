package usecases

import (
	"context"
	"fmt"
	"net/url"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// PlanDocument looks up the zoning plan document covering p. Unlike the
// hazard interpreters it carries no risk classification — the finding is
// purely informational.
func (s *RiskService) PlanDocument(ctx context.Context, p domain.GeoPoint) *domain.PlanFinding {
	f := s.firstFeature(ctx, s.cfg.PlanDataset, "plandoc", p)
	if f == nil {
		return &domain.PlanFinding{
			Found:   false,
			Details: "Kein Plandokument für diesen Standort gefunden.",
		}
	}

	planID := f.StringProp("PLANDOKUMENT", "PD_NUMMER", "PDNR")
	finding := &domain.PlanFinding{
		Found:       true,
		PlanID:      planID,
		Description: f.StringProp("WIDMUNG", "BESCHREIBUNG"),
		Details:     "Plandokument für diesen Standort vorhanden.",
		Geometry:    domain.ExtractGeometry(f.Geometry),
	}

	if planID != "" {
		finding.Details = fmt.Sprintf("Plandokument %s gilt für diesen Standort.", planID)
		finding.LookupURL = s.cfg.PlanLookupBase + url.QueryEscape(planID)
	}
	return finding
}
