package narrative

import "github.com/abhisek/voltscope/internal/llm"

// InsightSchema defines the JSON schema for a structured chart insight.
var InsightSchema = &llm.Schema{
	Name:        "chart-insight",
	Description: "A one or two sentence insight about an energy chart, with a trend label",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The insight, max 2 sentences, active voice",
				"minLength":   1,
			},
			"trend": map[string]any{
				"type":        "string",
				"description": "Whether the trend is good or bad for the energy transition",
				"enum":        []any{"positive", "negative", "neutral"},
			},
		},
		"required":             []any{"content", "trend"},
		"additionalProperties": false,
	},
}
