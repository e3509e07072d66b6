package geospatial

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	if d := Haversine(48.21, 16.37, 48.21, 16.37); d != 0 {
		t.Errorf("distance = %f, want 0", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is about 111.2 km.
	d := Haversine(48.0, 16.37, 49.0, 16.37)
	if math.Abs(d-111195) > 500 {
		t.Errorf("distance = %f, want ~111195 m", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := Haversine(48.21, 16.37, 48.25, 16.40)
	b := Haversine(48.25, 16.40, 48.21, 16.37)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("not symmetric: %f vs %f", a, b)
	}
}

func TestBoundingBoxContainsCenter(t *testing.T) {
	minLat, minLon, maxLat, maxLon := BoundingBox(48.21, 16.37, 200)
	if minLat >= 48.21 || maxLat <= 48.21 || minLon >= 16.37 || maxLon <= 16.37 {
		t.Errorf("box [%f,%f,%f,%f] does not contain center", minLat, minLon, maxLat, maxLon)
	}
	// Half-height of the box should be about bufferMeters.
	if h := Haversine(minLat, 16.37, 48.21, 16.37); math.Abs(h-200) > 5 {
		t.Errorf("half-height = %f m, want ~200", h)
	}
}

func TestBBoxParamOrder(t *testing.T) {
	param := BBoxParam(16.37, 48.21, 100)

	parts := strings.Split(param, ",")
	if len(parts) != 4 {
		t.Fatalf("param = %q, want 4 comma-separated values", param)
	}

	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			t.Fatalf("parse %q: %v", p, err)
		}
		vals[i] = v
	}

	// Lon-lat order: minLon, minLat, maxLon, maxLat.
	if !(vals[0] < 16.37 && vals[2] > 16.37) {
		t.Errorf("lon bounds wrong: %v", vals)
	}
	if !(vals[1] < 48.21 && vals[3] > 48.21) {
		t.Errorf("lat bounds wrong: %v", vals)
	}
}
