package usecases

import (
	"context"
	"testing"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

func TestNoiseNoFeature(t *testing.T) {
	f := newRiskService(sourceReturning(nil)).Noise(context.Background(), testPoint)
	if f.Found {
		t.Error("Found should be false without coverage")
	}
	if f.Risk != domain.RiskLow {
		t.Errorf("risk = %s, want low", f.Risk)
	}
}

func TestNoiseLevelThresholds(t *testing.T) {
	tests := []struct {
		level        float64
		wantRisk     domain.RiskLevel
		wantCategory string
	}{
		{45, domain.RiskLow, "gering"},
		{54.9, domain.RiskLow, "gering"},
		{55, domain.RiskMedium, "mittel"},
		{64.9, domain.RiskMedium, "mittel"},
		{65, domain.RiskHigh, "hoch"},
		{74.9, domain.RiskHigh, "hoch"},
		{75, domain.RiskHigh, "sehr hoch"},
		{82, domain.RiskHigh, "sehr hoch"},
	}

	for _, tt := range tests {
		src := sourceReturning(collection(propFeature(map[string]any{
			"L_DEN": tt.level,
		})))
		f := newRiskService(src).Noise(context.Background(), testPoint)
		if !f.Found {
			t.Fatalf("level %.1f: Found should be true", tt.level)
		}
		if f.Risk != tt.wantRisk {
			t.Errorf("level %.1f: risk = %s, want %s", tt.level, f.Risk, tt.wantRisk)
		}
		if f.Category != tt.wantCategory {
			t.Errorf("level %.1f: category = %q, want %q", tt.level, f.Category, tt.wantCategory)
		}
		if f.LevelDB != tt.level {
			t.Errorf("level = %.1f, want %.1f", f.LevelDB, tt.level)
		}
	}
}

func TestNoiseLevelFromString(t *testing.T) {
	src := sourceReturning(collection(propFeature(map[string]any{
		"LDEN": "68.5",
	})))
	f := newRiskService(src).Noise(context.Background(), testPoint)
	if f.LevelDB != 68.5 {
		t.Errorf("level = %.1f, want 68.5", f.LevelDB)
	}
	if f.Risk != domain.RiskHigh {
		t.Errorf("risk = %s, want high", f.Risk)
	}
}

func TestNoiseMappedWithoutLevel(t *testing.T) {
	src := sourceReturning(collection(propFeature(map[string]any{
		"LAERMQUELLE": "Straßenverkehr",
	})))
	f := newRiskService(src).Noise(context.Background(), testPoint)
	if !f.Found {
		t.Error("Found should be true: the area is mapped")
	}
	if f.Risk != domain.RiskLow {
		t.Errorf("risk = %s, want low when no level is given", f.Risk)
	}
	if f.LevelDB != 0 {
		t.Errorf("level = %.1f, want 0", f.LevelDB)
	}
}

func TestNoiseSourceMapping(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"strassenverkehr", "Straßenverkehr"},
		{"Straßenlärm", "Straßenverkehr"},
		{"Schienenverkehr", "Schienenverkehr"},
		{"U-Bahn", "Schienenverkehr"},
		{"Flugverkehr", "Flugverkehr"},
		{"Industrie und Gewerbe", "Industrie und Gewerbe"},
		{"Sonstiges", "Sonstiges"},
	}

	for _, tt := range tests {
		src := sourceReturning(collection(propFeature(map[string]any{
			"LAERMQUELLE": tt.raw,
			"L_DEN":       60.0,
		})))
		f := newRiskService(src).Noise(context.Background(), testPoint)
		if f.Source != tt.want {
			t.Errorf("source %q mapped to %q, want %q", tt.raw, f.Source, tt.want)
		}
	}
}
