package domain

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// RiskLevel is the coarse classification attached to a site finding.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// FloodFinding reports the flood hazard zone at a location.
// Found=false means the dataset had no feature there; the finding is still
// produced with a fixed "no data" message and a conservative default risk.
type FloodFinding struct {
	Found    bool              `json:"found"`
	Risk     RiskLevel         `json:"risk"`
	Details  string            `json:"details"`
	Zone     string            `json:"zone,omitempty"`
	Geometry *geojson.Geometry `json:"geometry,omitempty"`
}

// NoiseFinding reports the mapped environmental noise level.
type NoiseFinding struct {
	Found    bool              `json:"found"`
	Risk     RiskLevel         `json:"risk"`
	Details  string            `json:"details"`
	LevelDB  float64           `json:"level_db,omitempty"`
	Category string            `json:"category,omitempty"` // gering | mittel | hoch | sehr hoch
	Source   string            `json:"source,omitempty"`   // Straßenverkehr | Schienenverkehr | ...
	Geometry *geojson.Geometry `json:"geometry,omitempty"`
}

// EnergyFinding reports energy zoning plan coverage. Coverage is regulatory
// clarity (low risk); absence is uncertainty (medium risk).
type EnergyFinding struct {
	Found       bool              `json:"found"`
	Risk        RiskLevel         `json:"risk"`
	Details     string            `json:"details"`
	Zone        string            `json:"zone,omitempty"`
	DocumentURL string            `json:"document_url,omitempty"`
	MapURL      string            `json:"map_url,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
}

// PlanFinding reports the zoning plan document covering a location.
// Purely informational; it carries no risk classification.
type PlanFinding struct {
	Found       bool              `json:"found"`
	Details     string            `json:"details"`
	PlanID      string            `json:"plan_id,omitempty"`
	Description string            `json:"description,omitempty"`
	LookupURL   string            `json:"lookup_url,omitempty"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
}

// POI is a sensitive land use near the queried location. DistanceMeters is
// the geodesic distance from the query point, rounded to whole meters, and
// never exceeds the requested search radius.
type POI struct {
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	DistanceMeters int      `json:"distance_meters"`
	Location       GeoPoint `json:"location"`
}

// Address is one geocoded candidate from the address register.
type Address struct {
	Street      string   `json:"street"`
	HouseNumber string   `json:"house_number,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	District    string   `json:"district,omitempty"`
	Label       string   `json:"label"`
	Location    GeoPoint `json:"location"`
}

// Suggestion is a lightweight autocomplete candidate.
type Suggestion struct {
	Label       string `json:"label"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number,omitempty"`
}

// CheckResult aggregates everything the orchestrator learned about a site.
// Found is true iff the address resolved; the per-domain findings keep their
// own independent found flags.
type CheckResult struct {
	Found   bool           `json:"found"`
	Address *Address       `json:"address,omitempty"`
	POIs    []POI          `json:"pois"`
	Flood   *FloodFinding  `json:"flood,omitempty"`
	Noise   *NoiseFinding  `json:"noise,omitempty"`
	Energy  *EnergyFinding `json:"energy,omitempty"`
	Plan    *PlanFinding   `json:"plan,omitempty"`
}

// CheckRecord is the audit row persisted after a completed full check.
type CheckRecord struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	Location   GeoPoint  `json:"location"`
	FloodRisk  string    `json:"flood_risk"`
	NoiseRisk  string    `json:"noise_risk"`
	EnergyRisk string    `json:"energy_risk"`
	POICount   int       `json:"poi_count"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
