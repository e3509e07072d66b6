package usecases

import (
	"context"
	"testing"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
)

func testTransformer() *geospatial.Transformer {
	return geospatial.NewTransformer(
		domain.Bounds{MinLat: 48.05, MinLon: 16.10, MaxLat: 48.35, MaxLon: 16.60},
		domain.LocalBounds{MinX: -17500, MinY: 325000, MaxX: 17500, MaxY: 360000},
	)
}

func TestSuggestFilter(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Mariahilf", "STRNAM ILIKE 'Mariahilf%'"},
		{"Mariahilfer Straße 20", "STRNAM ILIKE 'Mariahilfer Straße%' AND HNRTEXT ILIKE '20%'"},
		{"Gasse 3a", "STRNAM ILIKE 'Gasse%' AND HNRTEXT ILIKE '3a%'"},
		{"O'Brien-Gasse", "STRNAM ILIKE 'O''Brien-Gasse%'"},
	}

	for _, tt := range tests {
		if got := SuggestFilter(tt.query); got != tt.want {
			t.Errorf("SuggestFilter(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewAddressService(sourceReturning(nil), testTransformer(), nil, "ogdwien:ADRESSENOGD")
	if _, err := svc.Search(context.Background(), "   "); err == nil {
		t.Error("empty query must error")
	}
}

func TestSearchConvertsRegisterCoordinates(t *testing.T) {
	var gotQuery domain.FeatureQuery
	src := &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			gotQuery = q
			// Register coordinates are planar survey values.
			return collection(pointFeature(1000, 340000, map[string]any{
				"NAME":    "Mariahilfer Straße 20",
				"STRNAM":  "Mariahilfer Straße",
				"HNRTEXT": "20",
				"PLZ":     "1070",
			}))
		},
	}

	svc := NewAddressService(src, testTransformer(), nil, "ogdwien:ADRESSENOGD")
	addrs, err := svc.Search(context.Background(), "Mariahilfer Straße 20")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(addrs) != 1 {
		t.Fatalf("got %d addresses, want 1", len(addrs))
	}

	if gotQuery.SRS != "EPSG:31256" {
		t.Errorf("query SRS = %q, want EPSG:31256", gotQuery.SRS)
	}
	if gotQuery.CQLFilter != "NAME ILIKE 'Mariahilfer Straße 20%'" {
		t.Errorf("cql = %q", gotQuery.CQLFilter)
	}

	loc := addrs[0].Location
	if loc.Lat < 48.05 || loc.Lat > 48.35 || loc.Lon < 16.10 || loc.Lon > 16.60 {
		t.Errorf("location outside the city envelope: %+v", loc)
	}
	if addrs[0].Label != "Mariahilfer Straße 20" {
		t.Errorf("label = %q", addrs[0].Label)
	}
}

func TestSearchDropsUnprojectableCandidates(t *testing.T) {
	src := sourceReturning(collection(
		pointFeature(999999, 999999, map[string]any{"NAME": "Kaputt"}),
		pointFeature(1000, 340000, map[string]any{"NAME": "Gut"}),
	))

	svc := NewAddressService(src, testTransformer(), nil, "ogdwien:ADRESSENOGD")
	addrs, err := svc.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(addrs) != 1 || addrs[0].Label != "Gut" {
		t.Errorf("addresses = %+v, want only the projectable one", addrs)
	}
}

func TestAutocompleteMinLength(t *testing.T) {
	called := false
	src := &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			called = true
			return nil
		},
	}
	svc := NewAddressService(src, testTransformer(), nil, "ogdwien:ADRESSENOGD")

	sugg, err := svc.Autocomplete(context.Background(), "M")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if sugg != nil {
		t.Errorf("suggestions = %v, want none", sugg)
	}
	if called {
		t.Error("upstream must not be queried below the minimum length")
	}
}

func TestAutocompleteSortsAndCaps(t *testing.T) {
	var features []domain.Feature
	for _, f := range []struct {
		street, hnr string
	}{
		{"Ziegelofengasse", "1"},
		{"Mariahilfer Straße", "20"},
		{"Mariahilfer Straße", "3"},
		{"Mariahilfer Straße", "100"},
		{"Annagasse", "5"},
	} {
		features = append(features, propFeature(map[string]any{
			"STRNAM":  f.street,
			"HNRTEXT": f.hnr,
		}))
	}
	// Pad past the cap.
	for i := 0; i < 10; i++ {
		features = append(features, propFeature(map[string]any{
			"STRNAM":  "Zzgasse",
			"HNRTEXT": "1",
		}))
	}

	svc := NewAddressService(sourceReturning(collection(features...)), testTransformer(), nil, "x")
	sugg, err := svc.Autocomplete(context.Background(), "ga")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}

	if len(sugg) != 10 {
		t.Fatalf("got %d suggestions, want capped at 10", len(sugg))
	}
	if sugg[0].Street != "Annagasse" {
		t.Errorf("first = %+v, want Annagasse", sugg[0])
	}
	// House numbers sort numerically, not lexically.
	if sugg[1].HouseNumber != "3" || sugg[2].HouseNumber != "20" || sugg[3].HouseNumber != "100" {
		t.Errorf("house number order wrong: %+v", sugg[1:4])
	}
}

func TestAutocompleteCaching(t *testing.T) {
	calls := 0
	src := &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			calls++
			return collection(propFeature(map[string]any{"STRNAM": "Mariahilfer Straße", "HNRTEXT": "20"}))
		},
	}

	svc := NewAddressService(src, testTransformer(), newFakeCache(), "x")
	for i := 0; i < 3; i++ {
		sugg, err := svc.Autocomplete(context.Background(), "Maria")
		if err != nil {
			t.Fatalf("autocomplete: %v", err)
		}
		if len(sugg) != 1 {
			t.Fatalf("got %d suggestions", len(sugg))
		}
	}
	if calls != 1 {
		t.Errorf("upstream fetched %d times, want 1 (cached)", calls)
	}
}
