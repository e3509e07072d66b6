package geospatial

import (
	"fmt"
	"math"

	"github.com/wroge/wgs84"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// MGI / Gauss-Krüger East (EPSG:31256): Bessel 1841 ellipsoid, Austrian
// Helmert shift, central meridian 16°20' E, false northing -5 000 000 m.
// The definition is fixed at compile time; no runtime configuration or
// network lookup affects it.
var (
	mgi = wgs84.Helmert(6377397.155, 299.1528128,
		577.326, 90.129, 463.919, 5.137, 1.474, 5.297, 2.4232)

	gaussKruegerEast = mgi.TransverseMercator(16.0+20.0/60.0, 0, 1, 0, -5000000)
)

// Transformer converts between the local survey system and WGS 84.
// Inputs are bounds-checked against a generous city envelope in their own
// system: the projection math produces plausible-looking garbage for
// far-away points (antipodal wraparound included), so out-of-envelope input
// is rejected rather than silently clamped.
type Transformer struct {
	geo   domain.Bounds
	local domain.LocalBounds

	toGeo   wgs84.Func
	toLocal wgs84.Func
}

// NewTransformer builds a transformer guarded by the given envelopes.
func NewTransformer(geo domain.Bounds, local domain.LocalBounds) *Transformer {
	return &Transformer{
		geo:     geo,
		local:   local,
		toGeo:   wgs84.Transform(gaussKruegerEast, wgs84.LonLat()),
		toLocal: wgs84.Transform(wgs84.LonLat(), gaussKruegerEast),
	}
}

// ToGeographic projects a local survey point to WGS 84.
func (t *Transformer) ToGeographic(p domain.LocalPoint) (domain.GeoPoint, error) {
	if !finite(p.X) || !finite(p.Y) {
		return domain.GeoPoint{}, fmt.Errorf("local point (%v, %v): %w", p.X, p.Y, domain.ErrInvalidCoordinate)
	}
	if !t.local.Contains(p) {
		return domain.GeoPoint{}, fmt.Errorf("local point (%.1f, %.1f): %w", p.X, p.Y, domain.ErrOutOfBounds)
	}

	lon, lat, _ := t.toGeo(p.X, p.Y, 0)
	return domain.GeoPoint{Lon: lon, Lat: lat}, nil
}

// ToLocal projects a WGS 84 point into the local survey system.
func (t *Transformer) ToLocal(p domain.GeoPoint) (domain.LocalPoint, error) {
	if !finite(p.Lon) || !finite(p.Lat) {
		return domain.LocalPoint{}, fmt.Errorf("point (%v, %v): %w", p.Lon, p.Lat, domain.ErrInvalidCoordinate)
	}
	if !t.geo.Contains(p) {
		return domain.LocalPoint{}, fmt.Errorf("point (%.5f, %.5f): %w", p.Lon, p.Lat, domain.ErrOutOfBounds)
	}

	x, y, _ := t.toLocal(p.Lon, p.Lat, 0)
	return domain.LocalPoint{X: x, Y: y}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
