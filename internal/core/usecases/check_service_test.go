package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

const (
	dsFlood     = "ogdwien:HOCHWASSEROGD"
	dsNoise     = "ogdwien:UMGEBUNGSLAERMOGD"
	dsEnergy    = "ogdwien:ENERGIERAUMPLANOGD"
	dsPlan      = "ogdwien:FLAECHENWIDMUNGOGD"
	dsAddresses = "ogdwien:ADRESSENOGD"
	dsSchool    = "ogdwien:SCHULEOGD"
)

// fakeCheckLog records inserts.
type fakeCheckLog struct {
	inserted []*domain.CheckRecord
	err      error
}

func (f *fakeCheckLog) Insert(ctx context.Context, rec *domain.CheckRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeCheckLog) Recent(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	return nil, nil
}

// fullCheckSource serves all datasets of a complete check from one fake.
func fullCheckSource(addressHits bool) *fakeSource {
	return &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			switch q.Dataset {
			case dsAddresses:
				if !addressHits {
					return collection()
				}
				return collection(pointFeature(1000, 340000, map[string]any{
					"NAME": "Mariahilfer Straße 20",
				}))
			case dsFlood:
				return collection(propFeature(map[string]any{"GEFAHRENZONE": "HQ100"}))
			case dsNoise:
				return nil // degraded
			case dsEnergy:
				return collection(propFeature(map[string]any{"WIDMUNG": "Klimaschutzgebiet"}))
			case dsPlan:
				return collection(propFeature(map[string]any{"PLANDOKUMENT": "PD 8000"}))
			case dsSchool:
				return collection()
			}
			return nil
		},
	}
}

func newCheckService(src *fakeSource, log *fakeCheckLog) *CheckService {
	addresses := NewAddressService(src, testTransformer(), nil, dsAddresses)
	risks := newRiskService(src)
	proximity := NewProximityService(src, []POICategory{{Key: "school", Dataset: dsSchool}})
	return NewCheckService(addresses, risks, proximity, log, 200)
}

func TestPerformFullCheckAggregates(t *testing.T) {
	log := &fakeCheckLog{}
	svc := newCheckService(fullCheckSource(true), log)

	result, err := svc.PerformFullCheck(context.Background(), "Mariahilfer Straße 20")
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if !result.Found {
		t.Error("Found should be true")
	}
	if result.Address == nil || result.Address.Label != "Mariahilfer Straße 20" {
		t.Errorf("address = %+v", result.Address)
	}
	if result.Flood == nil || result.Flood.Risk != domain.RiskMedium {
		t.Errorf("flood = %+v, want medium (HQ100)", result.Flood)
	}
	// Degraded noise upstream still yields a finding.
	if result.Noise == nil || result.Noise.Found {
		t.Errorf("noise = %+v, want not-found finding", result.Noise)
	}
	if result.Energy == nil || result.Energy.Risk != domain.RiskLow {
		t.Errorf("energy = %+v, want low", result.Energy)
	}
	if result.Plan == nil || result.Plan.PlanID != "PD 8000" {
		t.Errorf("plan = %+v", result.Plan)
	}
	if result.POIs == nil {
		t.Error("POIs must never be nil")
	}

	if len(log.inserted) != 1 {
		t.Fatalf("audit inserts = %d, want 1", len(log.inserted))
	}
	rec := log.inserted[0]
	if rec.Address != "Mariahilfer Straße 20" || rec.FloodRisk != "medium" {
		t.Errorf("audit record = %+v", rec)
	}
}

func TestPerformFullCheckAddressNotFound(t *testing.T) {
	svc := newCheckService(fullCheckSource(false), nil)

	_, err := svc.PerformFullCheck(context.Background(), "Gibtsnichtgasse 99")
	if !errors.Is(err, domain.ErrAddressNotFound) {
		t.Errorf("err = %v, want ErrAddressNotFound", err)
	}
}

func TestPerformFullCheckSurvivesAuditFailure(t *testing.T) {
	log := &fakeCheckLog{err: errors.New("db down")}
	svc := newCheckService(fullCheckSource(true), log)

	result, err := svc.PerformFullCheck(context.Background(), "Mariahilfer Straße 20")
	if err != nil {
		t.Fatalf("audit failure must not fail the check: %v", err)
	}
	if !result.Found {
		t.Error("Found should be true")
	}
}
