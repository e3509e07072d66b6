package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// fakeSource implements ports.FeatureSource with a pluggable function.
type fakeSource struct {
	fetch func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection
}

func (f *fakeSource) Fetch(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
	return f.fetch(ctx, q)
}

// fakeCache implements ports.CacheService over a map.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("miss")
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// pointFeature builds a feature with Point geometry and the given properties.
func pointFeature(x, y float64, props map[string]any) domain.Feature {
	geom := fmt.Sprintf(`{"type":"Point","coordinates":[%g,%g]}`, x, y)
	return domain.Feature{
		Properties: props,
		Geometry:   json.RawMessage(geom),
	}
}

// propFeature builds a feature with properties only.
func propFeature(props map[string]any) domain.Feature {
	return domain.Feature{Properties: props}
}

func collection(features ...domain.Feature) *domain.FeatureCollection {
	return &domain.FeatureCollection{Features: features}
}

func sourceReturning(fc *domain.FeatureCollection) *fakeSource {
	return &fakeSource{
		fetch: func(ctx context.Context, q domain.FeatureQuery) *domain.FeatureCollection {
			return fc
		},
	}
}
