package domain

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ExtractGeometry narrows a raw feature geometry to the supported shape set
// (Point, Polygon, MultiPolygon). Anything else — missing geometry, unknown
// type, malformed coordinates — yields nil, which callers must treat as
// "no geometry", never as an error. Coordinate arity is not deep-validated.
func ExtractGeometry(raw json.RawMessage) *geojson.Geometry {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var g geojson.Geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil
	}

	switch g.Geometry().(type) {
	case orb.Point, orb.Polygon, orb.MultiPolygon:
		return &g
	default:
		return nil
	}
}
