package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// noiseSources maps keyword sets in the dataset's free-text fields to a
// normalized source label. Checked in order; the bare "verkehr" catch-all
// sits last so rail and air traffic match their own entries first. The raw
// text is the fallback.
var noiseSources = []struct {
	keywords []string
	label    string
}{
	{[]string{"bahn", "schiene"}, "Schienenverkehr"},
	{[]string{"flug"}, "Flugverkehr"},
	{[]string{"industrie", "gewerbe"}, "Industrie und Gewerbe"},
	{[]string{"straße", "strasse", "verkehr"}, "Straßenverkehr"},
}

// Noise interprets the environmental noise map at p. The day-evening-night
// level (L_DEN) is preferred over the night-only level; risk thresholds are
// 55 and 65 dB(A). The finer display category (gering/mittel/hoch/sehr hoch
// at 55/65/75) exists purely for presentation.
func (s *RiskService) Noise(ctx context.Context, p domain.GeoPoint) *domain.NoiseFinding {
	f := s.firstFeature(ctx, s.cfg.NoiseDataset, "noise", p)
	if f == nil {
		return &domain.NoiseFinding{
			Found:   false,
			Risk:    domain.RiskLow,
			Details: "Keine Lärmkartierung für diesen Standort vorhanden.",
		}
	}

	finding := &domain.NoiseFinding{
		Found:    true,
		Risk:     domain.RiskLow,
		Geometry: domain.ExtractGeometry(f.Geometry),
	}

	level, ok := f.FloatProp("L_DEN", "LDEN")
	if !ok {
		level, ok = f.FloatProp("L_NIGHT", "LNIGHT")
	}

	if !ok {
		finding.Details = "Lärmkartierung vorhanden, aber ohne auswertbaren Pegel."
		return finding
	}

	finding.LevelDB = level
	finding.Risk = noiseRisk(level)
	finding.Category = noiseCategory(level)
	finding.Source = noiseSource(f)
	finding.Details = fmt.Sprintf("Beurteilungspegel %.0f dB(A), Belastung %s.", level, finding.Category)
	return finding
}

func noiseRisk(level float64) domain.RiskLevel {
	switch {
	case level < 55:
		return domain.RiskLow
	case level < 65:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

func noiseCategory(level float64) string {
	switch {
	case level < 55:
		return "gering"
	case level < 65:
		return "mittel"
	case level < 75:
		return "hoch"
	default:
		return "sehr hoch"
	}
}

func noiseSource(f *domain.Feature) string {
	raw := f.StringProp("LAERMQUELLE", "QUELLE", "TYP")
	lower := strings.ToLower(raw)
	for _, src := range noiseSources {
		for _, kw := range src.keywords {
			if strings.Contains(lower, kw) {
				return src.label
			}
		}
	}
	return raw
}
