package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/pkg/metrics"
)

// CheckService orchestrates a full site check: resolve the address, then
// fan out every domain interpreter plus the proximity lookup concurrently.
//
// The fan-in is best effort by design. Branches are independent, none may
// observe another's result, a slow branch is never cancelled by a fast one,
// and a degraded branch yields its own "no data" finding instead of failing
// the check. Aggregate latency is bounded by the slowest branch.
type CheckService struct {
	addresses *AddressService
	risks     *RiskService
	proximity *ProximityService
	checkLog  ports.CheckLogRepository
	tracer    trace.Tracer

	radiusMeters float64
}

// NewCheckService creates a new CheckService. checkLog may be nil.
func NewCheckService(addresses *AddressService, risks *RiskService, proximity *ProximityService, checkLog ports.CheckLogRepository, radiusMeters float64) *CheckService {
	if radiusMeters <= 0 {
		radiusMeters = defaultRadiusMeters
	}
	return &CheckService{
		addresses:    addresses,
		risks:        risks,
		proximity:    proximity,
		checkLog:     checkLog,
		tracer:       otel.Tracer("standortcheck/check"),
		radiusMeters: radiusMeters,
	}
}

// PerformFullCheck resolves addressText (first candidate wins) and returns
// the aggregated result. domain.ErrAddressNotFound is returned when the
// register has no candidate; upstream degradation never produces an error.
func (s *CheckService) PerformFullCheck(ctx context.Context, addressText string) (*domain.CheckResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "check.full")
	defer span.End()

	candidates, err := s.addresses.Search(ctx, addressText)
	if err != nil {
		metrics.ChecksTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.ChecksTotal.WithLabelValues("address_not_found").Inc()
		return nil, fmt.Errorf("%q: %w", addressText, domain.ErrAddressNotFound)
	}

	addr := candidates[0]
	point := addr.Location

	result := &domain.CheckResult{Found: true, Address: &addr}

	// One goroutine per branch, each writing only its own slot. A plain
	// WaitGroup instead of errgroup: first-error cancellation is exactly
	// the semantics this fan-out must not have.
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		ctx, span := s.tracer.Start(ctx, "check.flood")
		defer span.End()
		result.Flood = s.risks.Flood(ctx, point)
	}()
	go func() {
		defer wg.Done()
		ctx, span := s.tracer.Start(ctx, "check.noise")
		defer span.End()
		result.Noise = s.risks.Noise(ctx, point)
	}()
	go func() {
		defer wg.Done()
		ctx, span := s.tracer.Start(ctx, "check.energy")
		defer span.End()
		result.Energy = s.risks.Energy(ctx, point)
	}()
	go func() {
		defer wg.Done()
		ctx, span := s.tracer.Start(ctx, "check.plandoc")
		defer span.End()
		result.Plan = s.risks.PlanDocument(ctx, point)
	}()
	go func() {
		defer wg.Done()
		ctx, span := s.tracer.Start(ctx, "check.proximity")
		defer span.End()
		result.POIs = s.proximity.FindNearby(ctx, point, s.radiusMeters)
	}()
	wg.Wait()

	if result.POIs == nil {
		result.POIs = []domain.POI{}
	}

	elapsed := time.Since(start)
	metrics.ChecksTotal.WithLabelValues("ok").Inc()
	metrics.CheckDuration.Observe(elapsed.Seconds())

	s.logCheck(result, elapsed)
	return result, nil
}

// logCheck writes the audit row. Best effort: the check result is already
// complete, so a failed insert is logged and dropped.
func (s *CheckService) logCheck(result *domain.CheckResult, elapsed time.Duration) {
	if s.checkLog == nil {
		return
	}

	rec := &domain.CheckRecord{
		Address:    result.Address.Label,
		Location:   result.Address.Location,
		POICount:   len(result.POIs),
		DurationMS: elapsed.Milliseconds(),
	}
	if result.Flood != nil {
		rec.FloodRisk = string(result.Flood.Risk)
	}
	if result.Noise != nil {
		rec.NoiseRisk = string(result.Noise.Risk)
	}
	if result.Energy != nil {
		rec.EnergyRisk = string(result.Energy.Risk)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.checkLog.Insert(ctx, rec); err != nil {
		slog.Warn("check log insert failed", "error", err)
	}
}
