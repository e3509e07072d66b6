package domain

// Facility categories the exemption rules distinguish. Only the lodging
// category carries additional checks.
const (
	CategoryLodging = "beherbergung"
)

// Reason keys contributed by the exclusion checks, in evaluation order.
// Each check maps to exactly one key, so duplicates cannot occur.
const (
	ReasonExternalVentilation = "exclusion.externalVentilation"
	ReasonRegulatedSubstances = "exclusion.regulatedSubstances"
	ReasonLabelledSubstances  = "exclusion.labelledSubstances"
	ReasonAmplifiedMusic      = "exclusion.amplifiedMusic"
	ReasonIndustrialActivity  = "exclusion.industrialActivity"

	ReasonBedCount          = "lodging.bedCount"
	ReasonSharedBuilding    = "lodging.sharedBuilding"
	ReasonWellnessFacility  = "lodging.wellnessFacility"
	ReasonFullBoardCatering = "lodging.fullBoardCatering"
)

// FacilityAttributes is the declared operating profile of a facility, as
// entered by the operator. The evaluator never mutates it.
type FacilityAttributes struct {
	Category string `json:"category,omitempty"`

	// Exclusion attributes, every category.
	ExternalVentilation bool `json:"external_ventilation"` // ventilation/cooling discharging outside
	RegulatedSubstances bool `json:"regulated_substances"` // storage regulated by substance law
	LabelledSubstances  bool `json:"labelled_substances"`  // hazard-labelled substance storage
	AmplifiedMusic      bool `json:"amplified_music"`
	IndustrialActivity  bool `json:"industrial_activity"` // industrial-emissions directive relevance

	// Lodging-only attributes.
	BedCount          int  `json:"bed_count,omitempty"`
	ExclusiveBuilding bool `json:"exclusive_building"` // building used only for the facility
	WellnessFacility  bool `json:"wellness_facility"`
	FullBoardCatering bool `json:"full_board_catering"`
}

// ExclusionVerdict is the outcome of the exemption rule evaluation.
// Excluded is true iff ReasonKeys is non-empty; keys preserve check order.
type ExclusionVerdict struct {
	Excluded   bool     `json:"excluded"`
	ReasonKeys []string `json:"reason_keys"`
}
