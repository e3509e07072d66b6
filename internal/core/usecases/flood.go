package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// Flood interprets the flood hazard zone dataset at p.
//
// HQ30 (30-year flood) is the highest-probability class and maps to high
// risk; HQ100 and HQ300 map to medium. A zone without a recognizable class
// stays medium: absence of a clear classification is not treated as safe.
func (s *RiskService) Flood(ctx context.Context, p domain.GeoPoint) *domain.FloodFinding {
	f := s.firstFeature(ctx, s.cfg.FloodDataset, "flood", p)
	if f == nil {
		return &domain.FloodFinding{
			Found:   false,
			Risk:    domain.RiskLow,
			Details: "Keine Hochwasser-Gefahrenzone an diesem Standort erfasst.",
		}
	}

	zone := f.StringProp("GEFAHRENZONE", "HQ_KLASSE", "ZONE")
	risk := domain.RiskMedium
	details := "Hochwasser-Gefahrenzone ohne eindeutige Klassifizierung."

	// HQ300 before HQ30: the shorter token is a prefix of the longer one.
	switch zc := strings.ToUpper(zone); {
	case strings.Contains(zc, "HQ300"), strings.Contains(zc, "HQ100"):
		risk = domain.RiskMedium
		details = fmt.Sprintf("Standort liegt in der Hochwasser-Gefahrenzone %s.", zone)
	case strings.Contains(zc, "HQ30"):
		risk = domain.RiskHigh
		details = fmt.Sprintf("Standort liegt in der Hochwasser-Gefahrenzone %s (30-jährliches Hochwasser).", zone)
	}

	return &domain.FloodFinding{
		Found:    true,
		Risk:     risk,
		Details:  details,
		Zone:     zone,
		Geometry: domain.ExtractGeometry(f.Geometry),
	}
}
