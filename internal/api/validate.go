package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// responseSchema describes the JSON a successful call must return.
type responseSchema struct {
	Name       string
	Definition map[string]any
}

var messageSchema = &responseSchema{
	Name: "message-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{"type": "string"},
		},
	},
}

var questionsSchema = &responseSchema{
	Name: "questions-response",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "Question"},
					"properties": map[string]any{
						"id":       map[string]any{"type": []any{"integer", "string"}},
						"Question": map[string]any{"type": "string"},
						"Label":    map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

var scoreReportSchema = &responseSchema{
	Name: "score-report",
	Definition: map[string]any{
		"type": "object",
		"required": []any{
			"feedback", "total_score", "remembering_score",
			"understanding_score", "applying_score", "average_time_taken",
		},
		"properties": map[string]any{
			"feedback":            map[string]any{"type": "string"},
			"total_score":         map[string]any{"type": "number"},
			"remembering_score":   map[string]any{"type": "number", "minimum": 0},
			"understanding_score": map[string]any{"type": "number", "minimum": 0},
			"applying_score":      map[string]any{"type": "number", "minimum": 0},
			"average_time_taken":  map[string]any{"type": "number"},
			"correct_answers":     map[string]any{"type": "integer"},
			"incorrect_answers":   map[string]any{"type": "integer"},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateBody checks raw against schema. Returns *ErrMalformed on failure.
func validateBody(op Operation, schema *responseSchema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrMalformed{Operation: op, Body: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrMalformed{Operation: op, Body: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrMalformed{Operation: op, Body: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compiledSchema(schema *responseSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not a Go map with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
