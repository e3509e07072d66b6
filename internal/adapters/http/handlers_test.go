package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
)

// fakeSource implements ports.FeatureSource for handler tests.
type fakeSource struct {
	fetch func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection
}

func (f *fakeSource) Fetch(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
	return f.fetch(ctx, q)
}

func testDeps(src *fakeSource) *Dependencies {
	transformer := geospatial.NewTransformer(
		domain.Bounds{MinLat: 48.05, MinLon: 16.10, MaxLat: 48.35, MaxLon: 16.60},
		domain.LocalBounds{MinX: -17500, MinY: 325000, MaxX: 17500, MaxY: 360000},
	)
	addresses := usecases.NewAddressService(src, transformer, nil, "ogdwien:ADRESSENOGD")
	risks := usecases.NewRiskService(src, usecases.RiskConfig{
		FloodDataset:  "ogdwien:HOCHWASSEROGD",
		NoiseDataset:  "ogdwien:UMGEBUNGSLAERMOGD",
		EnergyDataset: "ogdwien:ENERGIERAUMPLANOGD",
		PlanDataset:   "ogdwien:FLAECHENWIDMUNGOGD",
	})
	proximity := usecases.NewProximityService(src, nil)
	checks := usecases.NewCheckService(addresses, risks, proximity, nil, 200)

	return &Dependencies{
		Checks:    checks,
		Addresses: addresses,
	}
}

// emptySource answers every query with an empty collection.
func emptySource() *fakeSource {
	return &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			return &domain.FeatureCollection{}
		},
	}
}

// citySource resolves addresses and serves hazard data.
func citySource() *fakeSource {
	return &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			switch q.Dataset {
			case "ogdwien:ADRESSENOGD":
				geom := json.RawMessage(`{"type":"Point","coordinates":[1000,340000]}`)
				return &domain.FeatureCollection{Features: []domain.Feature{{
					Properties: map[string]any{"NAME": "Stephansplatz 1"},
					Geometry:   geom,
				}}}
			case "ogdwien:HOCHWASSEROGD":
				return &domain.FeatureCollection{Features: []domain.Feature{{
					Properties: map[string]any{"GEFAHRENZONE": "HQ30"},
				}}}
			}
			return &domain.FeatureCollection{}
		},
	}
}

func testApp(deps *Dependencies) *fiber.App {
	app := fiber.New()
	app.Get("/v1/check", CheckHandler(deps))
	app.Get("/v1/addresses/search", AddressSearchHandler(deps))
	app.Get("/v1/addresses/autocomplete", AutocompleteHandler(deps))
	app.Post("/v1/exemption", ExemptionHandler())
	app.Get("/v1/checks/recent", RecentChecksHandler(deps))
	app.Get("/v1/health", HealthHandler(deps))
	return app
}

func doRequest(t *testing.T, app *fiber.App, req *nethttp.Request) (*nethttp.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestCheckHandlerMissingAddress(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	resp, body := doRequest(t, app, httptest.NewRequest("GET", "/v1/check", nil))
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400: %s", resp.StatusCode, body)
	}
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if apiErr.Code != "bad_request" {
		t.Errorf("code = %q", apiErr.Code)
	}
}

func TestCheckHandlerAddressNotFound(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	resp, _ := doRequest(t, app, httptest.NewRequest("GET", "/v1/check?address=Gibtsnichtgasse+1", nil))
	if resp.StatusCode != 404 {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestCheckHandlerFullResult(t *testing.T) {
	app := testApp(testDeps(citySource()))
	resp, body := doRequest(t, app, httptest.NewRequest("GET", "/v1/check?address=Stephansplatz+1", nil))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}

	var result domain.CheckResult
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !result.Found {
		t.Error("found should be true")
	}
	if result.Flood == nil || result.Flood.Risk != domain.RiskHigh {
		t.Errorf("flood = %+v, want high (HQ30)", result.Flood)
	}
	if result.POIs == nil {
		t.Error("pois must serialize as an array, not null")
	}
}

func TestAddressSearchHandler(t *testing.T) {
	app := testApp(testDeps(citySource()))
	resp, body := doRequest(t, app, httptest.NewRequest("GET", "/v1/addresses/search?q=Stephansplatz", nil))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var payload struct {
		Addresses []domain.Address `json:"addresses"`
		Count     int              `json:"count"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Count != 1 || len(payload.Addresses) != 1 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.Addresses[0].Label != "Stephansplatz 1" {
		t.Errorf("label = %q", payload.Addresses[0].Label)
	}
}

func TestAutocompleteHandlerShortQuery(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	resp, body := doRequest(t, app, httptest.NewRequest("GET", "/v1/addresses/autocomplete?q=M", nil))
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
		Count       int                 `json:"count"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Count != 0 || payload.Suggestions == nil {
		t.Errorf("short query payload = %s", body)
	}
}

func TestExemptionHandler(t *testing.T) {
	app := testApp(testDeps(emptySource()))

	reqBody := fmt.Sprintf(`{
		"category": %q,
		"amplifiedMusic": true,
		"bedCount": 40,
		"exclusiveBuilding": false
	}`, domain.CategoryLodging)
	req := httptest.NewRequest("POST", "/v1/exemption", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp, body := doRequest(t, app, req)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Excluded        bool     `json:"excluded"`
		ReasonKeys      []string `json:"reasonKeys"`
		CategoryReasons []string `json:"categoryReasons"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.Excluded {
		t.Error("excluded should be true")
	}
	if len(payload.ReasonKeys) != 1 || payload.ReasonKeys[0] != domain.ReasonAmplifiedMusic {
		t.Errorf("reasonKeys = %v", payload.ReasonKeys)
	}
	if len(payload.CategoryReasons) != 2 {
		t.Errorf("categoryReasons = %v, want bed count and shared building", payload.CategoryReasons)
	}
}

func TestExemptionHandlerNegativeBedCount(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	req := httptest.NewRequest("POST", "/v1/exemption", strings.NewReader(`{"bedCount": -1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, _ := doRequest(t, app, req)
	if resp.StatusCode != 400 {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRecentChecksHandlerNotConfigured(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	resp, _ := doRequest(t, app, httptest.NewRequest("GET", "/v1/checks/recent", nil))
	if resp.StatusCode != 503 {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestHealthHandler(t *testing.T) {
	app := testApp(testDeps(emptySource()))
	resp, body := doRequest(t, app, httptest.NewRequest("GET", "/v1/health", nil))
	if resp.StatusCode != 200 {
		t.Errorf("status = %d: %s", resp.StatusCode, body)
	}
}
