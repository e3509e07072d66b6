package usecases

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/paulmach/orb"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
)

const defaultRadiusMeters = 200

// unnamedPOI is the placeholder when none of the name fields is set.
const unnamedPOI = "Unbenannter Standort"

// POICategory binds a category key to its upstream dataset.
type POICategory struct {
	Key     string
	Dataset string
}

// ProximityService finds sensitive land uses around a point. Every category
// is fetched concurrently and isolated: a category that fails or times out
// contributes zero points without delaying or cancelling its siblings.
type ProximityService struct {
	source     ports.FeatureSource
	categories []POICategory
}

// NewProximityService creates a new ProximityService.
func NewProximityService(source ports.FeatureSource, categories []POICategory) *ProximityService {
	return &ProximityService{source: source, categories: categories}
}

// FindNearby returns all points of interest within radiusMeters of p,
// sorted ascending by distance (stable; ties keep arrival order).
func (s *ProximityService) FindNearby(ctx context.Context, p domain.GeoPoint, radiusMeters float64) []domain.POI {
	if radiusMeters <= 0 {
		radiusMeters = defaultRadiusMeters
	}

	perCategory := make([][]domain.POI, len(s.categories))
	var wg sync.WaitGroup
	for i, cat := range s.categories {
		wg.Add(1)
		go func(i int, cat POICategory) {
			defer wg.Done()
			perCategory[i] = s.fetchCategory(ctx, cat, p, radiusMeters)
		}(i, cat)
	}
	wg.Wait()

	var pois []domain.POI
	for _, batch := range perCategory {
		pois = append(pois, batch...)
	}

	sort.SliceStable(pois, func(a, b int) bool {
		return pois[a].DistanceMeters < pois[b].DistanceMeters
	})
	return pois
}

// fetchCategory fetches one dataset and filters by true distance. The bbox
// pre-filter upstream overincludes (it is a square around a circle), so
// every candidate is re-measured here.
func (s *ProximityService) fetchCategory(ctx context.Context, cat POICategory, p domain.GeoPoint, radiusMeters float64) []domain.POI {
	fc := s.source.Fetch(ctx, domain.FeatureQuery{
		Dataset: cat.Dataset,
		BBox:    geospatial.BBoxParam(p.Lon, p.Lat, radiusMeters),
		Label:   "poi:" + cat.Key,
	})
	if fc == nil {
		return nil
	}

	var pois []domain.POI
	for i := range fc.Features {
		f := &fc.Features[i]

		g := domain.ExtractGeometry(f.Geometry)
		if g == nil {
			continue
		}
		pt, ok := g.Geometry().(orb.Point)
		if !ok {
			continue
		}

		dist := geospatial.Haversine(p.Lat, p.Lon, pt.Lat(), pt.Lon())
		if dist > radiusMeters {
			continue
		}

		name := f.StringProp("NAME", "BEZEICHNUNG", "ADRESSE")
		if name == "" {
			name = unnamedPOI
		}

		pois = append(pois, domain.POI{
			Category:       cat.Key,
			Name:           name,
			DistanceMeters: int(math.Round(dist)),
			Location:       domain.GeoPoint{Lon: pt.Lon(), Lat: pt.Lat()},
		})
	}
	return pois
}
