package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// Absence of an energy zoning plan is regulatory uncertainty, so the risk
// asymmetry is inverted compared to the hazard datasets.
func TestEnergyNoFeatureIsMediumRisk(t *testing.T) {
	f := newRiskService(sourceReturning(nil)).Energy(context.Background(), testPoint)
	if f.Found {
		t.Error("Found should be false")
	}
	if f.Risk != domain.RiskMedium {
		t.Errorf("risk = %s, want medium", f.Risk)
	}
}

func TestEnergyCoverageIsLowRisk(t *testing.T) {
	src := sourceReturning(collection(propFeature(map[string]any{
		"WIDMUNG":      "Klimaschutzgebiet",
		"DOKUMENT_URL": "https://example.at/plan.pdf",
		"KARTE_URL":    "https://example.at/karte",
	})))
	f := newRiskService(src).Energy(context.Background(), testPoint)
	if !f.Found {
		t.Fatal("Found should be true")
	}
	if f.Risk != domain.RiskLow {
		t.Errorf("risk = %s, want low", f.Risk)
	}
	if f.Zone != "Klimaschutzgebiet" {
		t.Errorf("zone = %q", f.Zone)
	}
	if f.DocumentURL != "https://example.at/plan.pdf" {
		t.Errorf("document url = %q", f.DocumentURL)
	}
	if f.MapURL != "https://example.at/karte" {
		t.Errorf("map url = %q", f.MapURL)
	}
}

func TestPlanDocumentNoFeature(t *testing.T) {
	f := newRiskService(sourceReturning(nil)).PlanDocument(context.Background(), testPoint)
	if f.Found {
		t.Error("Found should be false")
	}
	if f.LookupURL != "" {
		t.Error("no lookup URL without a plan id")
	}
}

func TestPlanDocumentLookupURL(t *testing.T) {
	src := sourceReturning(collection(propFeature(map[string]any{
		"PLANDOKUMENT": "PD 7995",
		"WIDMUNG":      "W I",
	})))
	f := newRiskService(src).PlanDocument(context.Background(), testPoint)
	if !f.Found {
		t.Fatal("Found should be true")
	}
	if f.PlanID != "PD 7995" {
		t.Errorf("plan id = %q", f.PlanID)
	}
	if f.Description != "W I" {
		t.Errorf("description = %q", f.Description)
	}
	if !strings.HasPrefix(f.LookupURL, "https://www.wien.gv.at/flaechenwidmung/public/?bookmark=") {
		t.Errorf("lookup url = %q", f.LookupURL)
	}
	if strings.Contains(f.LookupURL, " ") {
		t.Errorf("lookup url must be escaped: %q", f.LookupURL)
	}
}
