package usecases

import (
	"context"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
)

// RiskConfig names the upstream datasets the interpreters consume.
type RiskConfig struct {
	FloodDataset  string
	NoiseDataset  string
	EnergyDataset string
	PlanDataset   string

	// BufferMeters is the half-width of the search box built around the
	// query point for every interpreter fetch.
	BufferMeters float64

	// PlanLookupBase is the public zoning viewer URL; the plan document id
	// is appended to build a lookup link.
	PlanLookupBase string
}

// RiskService runs the per-domain hazard interpreters. Each interpreter
// fetches exactly one dataset, takes the first feature (upstream ordering
// breaks ties between overlapping zones), and always produces a finding —
// "no data" is a result of its own, not an error.
type RiskService struct {
	source ports.FeatureSource
	cfg    RiskConfig
}

// NewRiskService creates a new RiskService.
func NewRiskService(source ports.FeatureSource, cfg RiskConfig) *RiskService {
	if cfg.BufferMeters <= 0 {
		cfg.BufferMeters = 50
	}
	return &RiskService{source: source, cfg: cfg}
}

// firstFeature fetches the dataset scoped to a small box around p and
// returns the first feature, or nil when the dataset has no coverage or the
// upstream is degraded. The two cases are indistinguishable here on purpose.
func (s *RiskService) firstFeature(ctx context.Context, dataset, label string, p domain.GeoPoint) *domain.Feature {
	fc := s.source.Fetch(ctx, domain.FeatureQuery{
		Dataset:     dataset,
		BBox:        geospatial.BBoxParam(p.Lon, p.Lat, s.cfg.BufferMeters),
		MaxFeatures: 1,
		Label:       label,
	})
	return fc.First()
}
