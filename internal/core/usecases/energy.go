package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// Energy interprets energy zoning plan coverage at p. Coverage itself is
// the signal: a verordnet zone means regulatory clarity (low risk), no
// coverage means the energy supply situation is open (medium risk).
func (s *RiskService) Energy(ctx context.Context, p domain.GeoPoint) *domain.EnergyFinding {
	f := s.firstFeature(ctx, s.cfg.EnergyDataset, "energy", p)
	if f == nil {
		return &domain.EnergyFinding{
			Found:   false,
			Risk:    domain.RiskMedium,
			Details: "Kein Energieraumplan für diesen Standort verordnet.",
		}
	}

	zone := f.StringProp("WIDMUNG", "ZONE", "BEZEICHNUNG")
	details := "Standort liegt in einem verordneten Energieraumplan."
	if zone != "" {
		details = fmt.Sprintf("Standort liegt im Energieraumplan-Gebiet %q.", zone)
	}

	return &domain.EnergyFinding{
		Found:       true,
		Risk:        domain.RiskLow,
		Details:     details,
		Zone:        zone,
		DocumentURL: f.StringProp("DOKUMENT_URL", "PDF_URL"),
		MapURL:      f.StringProp("KARTE_URL", "PLAN_URL"),
		Geometry:    domain.ExtractGeometry(f.Geometry),
	}
}
