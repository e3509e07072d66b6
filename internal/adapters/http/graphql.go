package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	addressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"street":       &graphql.Field{Type: graphql.String},
			"house_number": &graphql.Field{Type: graphql.String},
			"postal_code":  &graphql.Field{Type: graphql.String},
			"district":     &graphql.Field{Type: graphql.String},
			"label":        &graphql.Field{Type: graphql.String},
			"location":     &graphql.Field{Type: geoPointType},
		},
	})

	suggestionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Suggestion",
		Fields: graphql.Fields{
			"label":        &graphql.Field{Type: graphql.String},
			"street":       &graphql.Field{Type: graphql.String},
			"house_number": &graphql.Field{Type: graphql.String},
		},
	})

	poiType := graphql.NewObject(graphql.ObjectConfig{
		Name: "POI",
		Fields: graphql.Fields{
			"category":        &graphql.Field{Type: graphql.String},
			"name":            &graphql.Field{Type: graphql.String},
			"distance_meters": &graphql.Field{Type: graphql.Int},
			"location":        &graphql.Field{Type: geoPointType},
		},
	})

	floodType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FloodFinding",
		Fields: graphql.Fields{
			"found":   &graphql.Field{Type: graphql.Boolean},
			"risk":    &graphql.Field{Type: graphql.String},
			"details": &graphql.Field{Type: graphql.String},
			"zone":    &graphql.Field{Type: graphql.String},
		},
	})

	noiseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "NoiseFinding",
		Fields: graphql.Fields{
			"found":    &graphql.Field{Type: graphql.Boolean},
			"risk":     &graphql.Field{Type: graphql.String},
			"details":  &graphql.Field{Type: graphql.String},
			"level_db": &graphql.Field{Type: graphql.Float},
			"category": &graphql.Field{Type: graphql.String},
			"source":   &graphql.Field{Type: graphql.String},
		},
	})

	energyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EnergyFinding",
		Fields: graphql.Fields{
			"found":        &graphql.Field{Type: graphql.Boolean},
			"risk":         &graphql.Field{Type: graphql.String},
			"details":      &graphql.Field{Type: graphql.String},
			"zone":         &graphql.Field{Type: graphql.String},
			"document_url": &graphql.Field{Type: graphql.String},
			"map_url":      &graphql.Field{Type: graphql.String},
		},
	})

	planType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PlanFinding",
		Fields: graphql.Fields{
			"found":       &graphql.Field{Type: graphql.Boolean},
			"details":     &graphql.Field{Type: graphql.String},
			"plan_id":     &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"lookup_url":  &graphql.Field{Type: graphql.String},
		},
	})

	checkResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CheckResult",
		Fields: graphql.Fields{
			"found":   &graphql.Field{Type: graphql.Boolean},
			"address": &graphql.Field{Type: addressType},
			"pois":    &graphql.Field{Type: graphql.NewList(poiType)},
			"flood":   &graphql.Field{Type: floodType},
			"noise":   &graphql.Field{Type: noiseType},
			"energy":  &graphql.Field{Type: energyType},
			"plan":    &graphql.Field{Type: planType},
		},
	})

	verdictType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ExclusionVerdict",
		Fields: graphql.Fields{
			"excluded":         &graphql.Field{Type: graphql.Boolean},
			"reason_keys":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"category_reasons": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"check": &graphql.Field{
				Type:        checkResultType,
				Description: "Run a full site check for an address",
				Args: graphql.FieldConfigArgument{
					"address": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					address := p.Args["address"].(string)
					result, err := deps.Checks.PerformFullCheck(p.Context, address)
					if errors.Is(err, domain.ErrAddressNotFound) {
						return &domain.CheckResult{Found: false, POIs: []domain.POI{}}, nil
					}
					return result, err
				},
			},
			"addresses": &graphql.Field{
				Type:        graphql.NewList(addressType),
				Description: "Geocode an address query",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					return deps.Addresses.Search(p.Context, q)
				},
			},
			"suggestions": &graphql.Field{
				Type:        graphql.NewList(suggestionType),
				Description: "Autocomplete an address prefix",
				Args: graphql.FieldConfigArgument{
					"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := p.Args["query"].(string)
					return deps.Addresses.Autocomplete(p.Context, q)
				},
			},
			"exclusions": &graphql.Field{
				Type:        verdictType,
				Description: "Evaluate permit exclusion rules for a facility",
				Args: graphql.FieldConfigArgument{
					"category":            &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
					"externalVentilation": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"regulatedSubstances": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"labelledSubstances":  &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"amplifiedMusic":      &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"industrialActivity":  &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"bedCount":            &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"exclusiveBuilding":   &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: true},
					"wellnessFacility":    &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"fullBoardCatering":   &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					attrs := domain.FacilityAttributes{
						Category:            p.Args["category"].(string),
						ExternalVentilation: p.Args["externalVentilation"].(bool),
						RegulatedSubstances: p.Args["regulatedSubstances"].(bool),
						LabelledSubstances:  p.Args["labelledSubstances"].(bool),
						AmplifiedMusic:      p.Args["amplifiedMusic"].(bool),
						IndustrialActivity:  p.Args["industrialActivity"].(bool),
						BedCount:            p.Args["bedCount"].(int),
						ExclusiveBuilding:   p.Args["exclusiveBuilding"].(bool),
						WellnessFacility:    p.Args["wellnessFacility"].(bool),
						FullBoardCatering:   p.Args["fullBoardCatering"].(bool),
					}
					verdict := usecases.EvaluateExclusions(attrs)
					return map[string]interface{}{
						"excluded":         verdict.Excluded,
						"reason_keys":      verdict.ReasonKeys,
						"category_reasons": usecases.CategoryReasons(attrs, attrs.Category),
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
