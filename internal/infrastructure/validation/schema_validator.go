// Package validation checks block configuration against JSON Schema documents.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "config.schema.json"

// SchemaValidator validates block config with JSON Schema (draft 2020-12 unless
// the schema declares another draft).
type SchemaValidator struct{}

// NewSchemaValidator creates a new schema validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{}
}

// ValidateConfig returns one message per schema violation found in config.
// A nil config is validated as an empty object.
func (v *SchemaValidator) ValidateConfig(schema []byte, config map[string]any) ([]string, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	doc, err := toJSONValue(config)
	if err != nil {
		return nil, err
	}

	err = compiled.Validate(doc)
	if err == nil {
		return nil, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	messages := collectViolations(validationErr)
	if len(messages) == 0 {
		messages = []string{"(root): validation failed"}
	}
	return messages, nil
}

// toJSONValue round-trips config through encoding/json so that numbers and
// containers have the types the validator expects.
func toJSONValue(config map[string]any) (any, error) {
	if config == nil {
		config = map[string]any{}
	}

	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}
	return doc, nil
}

// collectViolations flattens the leaf causes into "location: message" lines.
func collectViolations(err *jsonschema.ValidationError) []string {
	var messages []string

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)

	sort.Strings(messages)
	return messages
}
