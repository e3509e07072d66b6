package ports

import (
	"context"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// FeatureSource fetches spatial features from the upstream WFS endpoint.
// It never fails: every degradation (non-2xx, wrong content type, malformed
// payload, timeout, transport error) comes back as a nil collection, and the
// adapter records a diagnostic event instead. Callers branch on nil as
// ordinary control flow.
type FeatureSource interface {
	Fetch(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection
}

// DiagnosticSink receives structured upstream degradation events. Publishing
// is best effort; a broken sink must never affect a check.
type DiagnosticSink interface {
	PublishUpstreamEvent(ctx context.Context, ev domain.UpstreamEvent) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
