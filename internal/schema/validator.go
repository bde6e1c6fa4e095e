package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Validator handles JSON schema validation for imported documents.
// It caches compiled schemas for performance.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks if the JSON document string matches the provided schema.
// The schema can be a map[string]any, a string (JSON), or a struct.
func (v *Validator) Validate(schemaData any, docJSON string) error {
	schemaLoader, err := v.getSchemaLoader(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	documentLoader := gojsonschema.NewStringLoader(docJSON)

	result, err := schemaLoader.Validate(documentLoader)
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed:\n- %s", dumpErrors(errs))
}

func (v *Validator) getSchemaLoader(schemaData any) (*gojsonschema.Schema, error) {
	// Create a stable key for caching.
	// For map/structs, we marshal to JSON.
	jsonBytes, err := json.Marshal(schemaData)
	if err != nil {
		return nil, err
	}
	key := string(jsonBytes)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	loader := gojsonschema.NewBytesLoader(jsonBytes)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, err
	}

	v.cache.Store(key, schema)
	return schema, nil
}

func dumpErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0]
	}
	// return first 3 errors to avoid massive output
	truncated := ""
	if len(errs) > 3 {
		truncated = fmt.Sprintf("... and %d more", len(errs)-3)
		errs = errs[:3]
	}

	result := ""
	for i, e := range errs {
		if i > 0 {
			result += "\n- "
		}
		result += e
	}
	return result + truncated
}
