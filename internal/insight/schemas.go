package insight

import "github.com/sashabaranov/go-openai/jsonschema"

var stringList = jsonschema.Definition{
	Type:  jsonschema.Array,
	Items: &jsonschema.Definition{Type: jsonschema.String},
}

func insightSchema(withExperiments bool) *jsonschema.Definition {
	props := map[string]jsonschema.Definition{
		"opportunities":       stringList,
		"threats":             stringList,
		"strategicAdvice":     {Type: jsonschema.String},
		"dataQualityScore":    {Type: jsonschema.Integer, Description: "0-100"},
		"dataQualityFeedback": {Type: jsonschema.String},
	}
	required := []string{"opportunities", "threats", "strategicAdvice", "dataQualityScore", "dataQualityFeedback"}

	if withExperiments {
		props["prototypingExperiments"] = jsonschema.Definition{
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"hypothesis": {Type: jsonschema.String},
					"method":     {Type: jsonschema.String},
					"metric":     {Type: jsonschema.String},
				},
				Required: []string{"hypothesis", "method", "metric"},
			},
		}
		required = append(required, "prototypingExperiments")
	}

	return &jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: props,
		Required:   required,
	}
}

func compareSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"executiveSummary": {Type: jsonschema.String},
			"commonPatterns":   stringList,
			"outliers":         stringList,
			"aggregatedStats": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"label":       {Type: jsonschema.String},
						"count":       {Type: jsonschema.Integer},
						"description": {Type: jsonschema.String},
					},
					Required: []string{"label", "count", "description"},
				},
			},
			"aggregateScore": {Type: jsonschema.Integer, Description: "0-100"},
		},
		Required: []string{"executiveSummary", "commonPatterns", "outliers", "aggregatedStats", "aggregateScore"},
	}
}
