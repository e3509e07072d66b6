package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
)

// CheckHandler runs a full site check for a free-text address.
// GET /v1/check?address=Mariahilfer+Straße+20
func CheckHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		address := c.Query("address")
		if address == "" {
			return errBadRequest(c, "address query parameter is required")
		}
		if len(address) > 200 {
			return errBadRequest(c, "address too long (max 200 characters)")
		}

		result, err := deps.Checks.PerformFullCheck(c.Context(), address)
		if err != nil {
			if errors.Is(err, domain.ErrAddressNotFound) {
				return errNotFound(c, "address not found")
			}
			return errInternal(c, err.Error())
		}

		return c.JSON(result)
	}
}

// AddressSearchHandler geocodes an address query against the city register.
// GET /v1/addresses/search?q=Mariahilf
func AddressSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return errBadRequest(c, "q query parameter is required")
		}
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		addrs, err := deps.Addresses.Search(c.Context(), query)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if addrs == nil {
			addrs = []domain.Address{}
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{
			"addresses": addrs,
			"count":     len(addrs),
		})
	}
}

// AutocompleteHandler suggests addresses for a prefix query.
// GET /v1/addresses/autocomplete?q=Maria
func AutocompleteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		// Short queries yield an empty list, not an error: the UI calls
		// this on every keystroke.
		sugg, err := deps.Addresses.Autocomplete(c.Context(), query)
		if err != nil {
			return errInternal(c, err.Error())
		}
		if sugg == nil {
			sugg = []domain.Suggestion{}
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(fiber.Map{
			"suggestions": sugg,
			"count":       len(sugg),
		})
	}
}

// exemptionRequest is the POST /v1/exemption body.
type exemptionRequest struct {
	Category            string `json:"category"`
	ExternalVentilation bool   `json:"externalVentilation"`
	RegulatedSubstances bool   `json:"regulatedSubstances"`
	LabelledSubstances  bool   `json:"labelledSubstances"`
	AmplifiedMusic      bool   `json:"amplifiedMusic"`
	IndustrialActivity  bool   `json:"industrialActivity"`
	BedCount            int    `json:"bedCount"`
	ExclusiveBuilding   bool   `json:"exclusiveBuilding"`
	WellnessFacility    bool   `json:"wellnessFacility"`
	FullBoardCatering   bool   `json:"fullBoardCatering"`
}

// ExemptionHandler evaluates the exclusion rules for a facility description.
// POST /v1/exemption
func ExemptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exemptionRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.BedCount < 0 {
			return errBadRequest(c, "bedCount must not be negative")
		}

		attrs := domain.FacilityAttributes{
			Category:            req.Category,
			ExternalVentilation: req.ExternalVentilation,
			RegulatedSubstances: req.RegulatedSubstances,
			LabelledSubstances:  req.LabelledSubstances,
			AmplifiedMusic:      req.AmplifiedMusic,
			IndustrialActivity:  req.IndustrialActivity,
			BedCount:            req.BedCount,
			ExclusiveBuilding:   req.ExclusiveBuilding,
			WellnessFacility:    req.WellnessFacility,
			FullBoardCatering:   req.FullBoardCatering,
		}

		verdict := usecases.EvaluateExclusions(attrs)
		categoryReasons := usecases.CategoryReasons(attrs, req.Category)
		if verdict.ReasonKeys == nil {
			verdict.ReasonKeys = []string{}
		}
		if categoryReasons == nil {
			categoryReasons = []string{}
		}

		return c.JSON(fiber.Map{
			"excluded":        verdict.Excluded,
			"reasonKeys":      verdict.ReasonKeys,
			"categoryReasons": categoryReasons,
		})
	}
}

// RecentChecksHandler lists the latest audit records.
// GET /v1/checks/recent?offset=0&limit=20
func RecentChecksHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.CheckLog == nil {
			return errUnavailable(c, "check log not configured")
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 20)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		records, err := deps.CheckLog.Recent(c.Context(), offset+limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		total := len(records)
		if offset >= total {
			records = nil
		} else {
			records = records[offset:]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: records, Pagination: pg})
	}
}
