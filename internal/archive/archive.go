// Package archive moves whole collections in and out of the journal as
// JSON or YAML documents, e.g. for backups or transferring a journal to
// another machine. Imports are schema-checked before the store is
// touched, so a malformed file never half-applies.
package archive

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/memoria/internal/schema"
	"github.com/jeanpaul/memoria/internal/store"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// collectionSchema describes an exported collection: an array of records
// each carrying the three user fields. Ids and creation timestamps are
// optional on the way in — imports mint fresh ones.
var collectionSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type":     "object",
		"required": []string{"imageContent", "date", "comment"},
		"properties": map[string]any{
			"docId":        map[string]any{"type": "string"},
			"imageContent": map[string]any{"type": "string", "minLength": 1},
			"date":         map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"comment":      map[string]any{"type": "string", "minLength": 1},
			"timestamp":    map[string]any{"type": "string"},
		},
	},
}

var validator = schema.NewValidator()

// Export writes the collection to w in the requested format.
func Export(w io.Writer, memories []store.Memory, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(memories)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(memories)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

// Import parses and validates an exported document, returning the field
// sets in document order. Nothing is written to any store here; callers
// create records through the normal path so every import gets fresh ids.
func Import(r io.Reader, format string) ([]store.Fields, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	// Validation runs on JSON, so YAML documents are converted first.
	docJSON := raw
	if format == FormatYAML {
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("parse yaml archive: %w", err)
		}
		if docJSON, err = json.Marshal(generic); err != nil {
			return nil, fmt.Errorf("convert yaml archive: %w", err)
		}
	} else if format != FormatJSON {
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}

	if err := validator.Validate(collectionSchema, string(docJSON)); err != nil {
		return nil, err
	}

	var memories []store.Memory
	if err := json.Unmarshal(docJSON, &memories); err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}

	fields := make([]store.Fields, len(memories))
	for i, m := range memories {
		fields[i] = store.Fields{
			ImageContent: m.ImageContent,
			Date:         m.Date,
			Comment:      m.Comment,
		}
	}
	return fields, nil
}
