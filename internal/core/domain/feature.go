package domain

import (
	"encoding/json"
	"strconv"
)

// FeatureQuery describes a single WFS request: one dataset, scoped either by
// a bounding box or by a CQL attribute filter.
type FeatureQuery struct {
	Dataset     string // WFS typeName, e.g. "ogdwien:HOCHWASSEROGD"
	BBox        string // "minLon,minLat,maxLon,maxLat", empty if filtered
	CQLFilter   string // attribute filter, empty if bbox-scoped
	SRS         string // response coordinate system, default EPSG:4326
	MaxFeatures int    // 0 = upstream default
	Label       string // context label for diagnostics ("flood", "poi:school", ...)
}

// FeatureCollection is the decoded upstream response. A nil collection means
// the upstream was degraded or returned nothing usable; callers treat that
// the same as zero features.
type FeatureCollection struct {
	Features []Feature `json:"features"`
}

// First returns the first feature, or nil. Overlapping zones are resolved by
// upstream ordering, so the first feature is authoritative.
func (fc *FeatureCollection) First() *Feature {
	if fc == nil || len(fc.Features) == 0 {
		return nil
	}
	return &fc.Features[0]
}

// Feature is one upstream spatial feature. Geometry stays raw until a caller
// narrows it; Properties is whatever the dataset carries.
type Feature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// StringProp returns the first non-empty string value among keys.
func (f *Feature) StringProp(keys ...string) string {
	for _, k := range keys {
		switch v := f.Properties[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// FloatProp returns the first parseable numeric value among keys.
// Upstream datasets are inconsistent about typing numbers, so string
// values are parsed too.
func (f *Feature) FloatProp(keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := f.Properties[k].(type) {
		case float64:
			return v, true
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
