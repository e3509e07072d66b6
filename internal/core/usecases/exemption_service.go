package usecases

import "github.com/samirrijal/standortcheck/internal/core/domain"

// EvaluateExclusions decides whether a facility is excluded from the
// simplified permit procedure. Five independent predicates run in a fixed
// order; each contributes its own reason key when triggered, so the key
// list is order-stable and duplicate-free. Pure: identical input always
// yields identical output.
func EvaluateExclusions(attrs domain.FacilityAttributes) domain.ExclusionVerdict {
	var reasons []string

	if attrs.ExternalVentilation {
		reasons = append(reasons, domain.ReasonExternalVentilation)
	}
	if attrs.RegulatedSubstances {
		reasons = append(reasons, domain.ReasonRegulatedSubstances)
	}
	if attrs.LabelledSubstances {
		reasons = append(reasons, domain.ReasonLabelledSubstances)
	}
	if attrs.AmplifiedMusic {
		reasons = append(reasons, domain.ReasonAmplifiedMusic)
	}
	if attrs.IndustrialActivity {
		reasons = append(reasons, domain.ReasonIndustrialActivity)
	}

	return domain.ExclusionVerdict{
		Excluded:   len(reasons) > 0,
		ReasonKeys: reasons,
	}
}

// CategoryReasons checks the additional predicates that apply only to the
// lodging category. For any other category it returns nil. Pure and
// order-stable like EvaluateExclusions.
func CategoryReasons(attrs domain.FacilityAttributes, category string) []string {
	if category != domain.CategoryLodging {
		return nil
	}

	var reasons []string
	if attrs.BedCount > 30 {
		reasons = append(reasons, domain.ReasonBedCount)
	}
	if !attrs.ExclusiveBuilding {
		reasons = append(reasons, domain.ReasonSharedBuilding)
	}
	if attrs.WellnessFacility {
		reasons = append(reasons, domain.ReasonWellnessFacility)
	}
	if attrs.FullBoardCatering {
		reasons = append(reasons, domain.ReasonFullBoardCatering)
	}
	return reasons
}
