package geospatial

import (
	"fmt"
	"math"
)

const (
	earthRadiusKm = 6371.0

	// Meters per degree of latitude. The longitude equivalent shrinks with
	// cos(lat); dividing by it diverges at the poles, but every caller is
	// confined to the city's latitude band where this is a non-issue.
	metersPerDegreeLat = 111320.0
)

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// BoundingBox returns a bounding box around a point with the given buffer in meters.
func BoundingBox(lat, lon, bufferMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := bufferMeters / metersPerDegreeLat
	lonDelta := bufferMeters / (metersPerDegreeLat * math.Cos(toRad(lat)))

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}

// BBoxParam renders the box around a point as the WFS bbox parameter,
// "minLon,minLat,maxLon,maxLat" in geographic degrees.
func BBoxParam(lon, lat, bufferMeters float64) string {
	minLat, minLon, maxLat, maxLon := BoundingBox(lat, lon, bufferMeters)
	return fmt.Sprintf("%.7f,%.7f,%.7f,%.7f", minLon, minLat, maxLon, maxLat)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
