package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/standortcheck/internal/adapters/http"
	natsadapter "github.com/samirrijal/standortcheck/internal/adapters/nats"
	"github.com/samirrijal/standortcheck/internal/adapters/postgres"
	"github.com/samirrijal/standortcheck/internal/adapters/valkey"
	"github.com/samirrijal/standortcheck/internal/adapters/wfs"
	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
	"github.com/samirrijal/standortcheck/internal/pkg/config"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
	"github.com/samirrijal/standortcheck/internal/pkg/logging"
	"github.com/samirrijal/standortcheck/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("standortcheck-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Audit database (optional)
	var db *postgres.DB
	var checkLog ports.CheckLogRepository
	if cfg.Database.Enabled {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			slog.Warn("database unavailable, check log disabled", "error", err)
		} else {
			defer db.Close()
			checkLog = postgres.NewCheckLogRepo(db)
		}
	}

	// Cache (optional)
	var cache *valkey.Cache
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// Diagnostics sink + raw connection for the WebSocket relay (optional)
	var sink ports.DiagnosticSink
	var rawConn *nats.Conn
	if cfg.NATS.Enabled {
		s, err := natsadapter.NewSink(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, diagnostics sink disabled", "error", err)
		} else {
			defer s.Close()
			sink = s
		}
		rawConn, err = natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		}
	}

	// Upstream feature source
	source := wfs.NewClient(cfg.WFS.BaseURL, cfg.WFS.Timeout(), sink, slog.Default())

	// Coordinate transformer
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

	// Use cases
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	addressSvc := usecases.NewAddressService(source, transformer, cacheSvc, cfg.WFS.Datasets.Addresses)
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
	checkSvc := usecases.NewCheckService(addressSvc, riskSvc, proximitySvc, checkLog, cfg.Check.RadiusMeters)

	deps := &http.Dependencies{
		Checks:    checkSvc,
		Addresses: addressSvc,
		CheckLog:  checkLog,
		NATS:      rawConn,
		DB:        db,
		Cache:     cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Standortcheck API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
