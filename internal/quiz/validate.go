package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// definitionSchema is the JSON shape a test definition must satisfy before
// it is decoded. Bounds checks that need cross-field knowledge (correct
// indices vs. answer count) happen afterwards in Validate.
var definitionSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "questions"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"difficulty":  map[string]any{"type": "string"},
		"duration":    map[string]any{"type": "string"},
		"author":      map[string]any{"type": "string"},
		"mode":        map[string]any{"enum": []any{"exam", "tutorial"}},
		"scoring": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"excellent":    map[string]any{"type": "integer"},
				"good":         map[string]any{"type": "integer"},
				"satisfactory": map[string]any{"type": "integer"},
			},
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "answers", "correct"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"type":     map[string]any{"enum": []any{"single", "multiple"}},
					"answers": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correct": map[string]any{
						"anyOf": []any{
							map[string]any{"type": "integer"},
							map[string]any{
								"type":     "array",
								"minItems": 1,
								"items":    map[string]any{"type": "integer"},
							},
						},
					},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiledDefinitionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler expects a parsed JSON value; round-trip through
		// encoding/json to get a clean representation.
		b, err := json.Marshal(definitionSchema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://test-definition.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// Decode validates raw JSON against the definition schema and decodes it
// into a Definition. Returns *ValidationError on malformed input.
func Decode(raw []byte) (*Definition, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ValidationError{Message: "not valid JSON", Err: err}
	}

	schema, err := compiledDefinitionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile definition schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ValidationError{Message: "schema check failed", Err: err}
	}

	var d Definition
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &ValidationError{Message: "decode failed", Err: err}
	}

	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the structural invariants of a decoded definition:
// non-empty title, at least one question, at least two answers per question,
// every correct index within bounds. Returns *ValidationError on failure.
func Validate(d *Definition) error {
	if d == nil {
		return &ValidationError{Message: "nil definition"}
	}
	if d.Title == "" {
		return &ValidationError{Message: "missing title"}
	}
	if len(d.Questions) == 0 {
		return &ValidationError{Message: "no questions"}
	}
	for i, q := range d.Questions {
		if q.Prompt == "" {
			return &ValidationError{Message: fmt.Sprintf("question %d has no prompt", i+1)}
		}
		if len(q.Answers) < 2 {
			return &ValidationError{Message: fmt.Sprintf("question %d has fewer than two answers", i+1)}
		}
		if !q.Correct.InBounds(len(q.Answers)) {
			return &ValidationError{Message: fmt.Sprintf("question %d has an out-of-range correct index", i+1)}
		}
		if q.Type == TypeSingle && len(q.Correct.Indices) != 1 {
			return &ValidationError{Message: fmt.Sprintf("question %d is single-choice but lists multiple correct indices", i+1)}
		}
	}
	return nil
}
