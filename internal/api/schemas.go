package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Request body schemas. Validation happens here, at the edge, so nothing
// malformed reaches the orchestrator.
var (
	chatSchema = mustSchema(`{
		"type": "object",
		"additionalProperties": false,
		"required": ["query"],
		"properties": {
			"query":      {"type": "string", "minLength": 5, "maxLength": 1000},
			"session_id": {"type": "string", "minLength": 1, "maxLength": 128},
			"user_id":    {"type": "string", "maxLength": 128}
		}
	}`)

	analyzeSchema = mustSchema(`{
		"type": "object",
		"additionalProperties": false,
		"required": ["country", "industry"],
		"properties": {
			"country":       {"type": "string", "minLength": 2, "maxLength": 100},
			"industry":      {"type": "string", "minLength": 2, "maxLength": 100},
			"analysis_type": {"type": "string", "enum": ["market", "risk", "comprehensive"]}
		}
	}`)

	compareSchema = mustSchema(`{
		"type": "object",
		"additionalProperties": false,
		"required": ["countries", "industry"],
		"properties": {
			"countries": {
				"type": "array",
				"minItems": 2,
				"maxItems": 5,
				"items": {"type": "string", "minLength": 2, "maxLength": 100}
			},
			"industry": {"type": "string", "minLength": 2, "maxLength": 100}
		}
	}`)
)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("api: compile schema: %v", err))
	}
	return s
}
