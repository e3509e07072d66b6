// Command check runs a single site check from the command line and prints
// the result as JSON. Useful for smoke tests against the live upstream:
//
//	check "Mariahilfer Straße 20"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/samirrijal/standortcheck/internal/adapters/wfs"
	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
	"github.com/samirrijal/standortcheck/internal/pkg/config"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
	"github.com/samirrijal/standortcheck/internal/pkg/logging"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: check <address>")
	}
	address := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load("standortcheck-cli")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup("warn", "text")

	source := wfs.NewClient(cfg.WFS.BaseURL, cfg.WFS.Timeout(), nil, slog.Default())
	transformer := geospatial.NewTransformer(
		domain.Bounds{
			MinLat: cfg.Bounds.Geo.MinLat, MinLon: cfg.Bounds.Geo.MinLon,
			MaxLat: cfg.Bounds.Geo.MaxLat, MaxLon: cfg.Bounds.Geo.MaxLon,
		},
		domain.LocalBounds{
			MinX: cfg.Bounds.Local.MinX, MinY: cfg.Bounds.Local.MinY,
			MaxX: cfg.Bounds.Local.MaxX, MaxY: cfg.Bounds.Local.MaxY,
		},
	)

	addressSvc := usecases.NewAddressService(source, transformer, nil, cfg.WFS.Datasets.Addresses)
	riskSvc := usecases.NewRiskService(source, usecases.RiskConfig{
		FloodDataset:   cfg.WFS.Datasets.Flood,
		NoiseDataset:   cfg.WFS.Datasets.Noise,
		EnergyDataset:  cfg.WFS.Datasets.Energy,
		PlanDataset:    cfg.WFS.Datasets.Plan,
		BufferMeters:   cfg.Check.BufferMeters,
		PlanLookupBase: cfg.Check.PlanLookup,
	})
	proximitySvc := usecases.NewProximityService(source, []usecases.POICategory{
		{Key: "kindergarten", Dataset: cfg.WFS.Datasets.Kindergarten},
		{Key: "school", Dataset: cfg.WFS.Datasets.School},
		{Key: "hospital", Dataset: cfg.WFS.Datasets.Hospital},
		{Key: "care_home", Dataset: cfg.WFS.Datasets.CareHome},
	})
	checkSvc := usecases.NewCheckService(addressSvc, riskSvc, proximitySvc, nil, cfg.Check.RadiusMeters)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := checkSvc.PerformFullCheck(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			fmt.Fprintf(os.Stderr, "address not found: %s\n", address)
			os.Exit(1)
		}
		log.Fatalf("check: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
