// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const configSchema = `{
  "type": "object",
  "required": ["filename", "prefix", "title", "document_outline"],
  "properties": {
    "filename": {"type": "string", "minLength": 1},
    "prefix": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "document_outline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "start_pattern"],
        "properties": {
          "id": {"type": "string", "pattern": "^[^/\\\\\\s]+$"},
          "heading": {"type": ["string", "null"]},
          "start_pattern": {"type": "string", "minLength": 1},
          "end_pattern": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

const mapSchema = `{
  "type": "object",
  "properties": {
    "document_name": {"type": "string"},
    "prefix": {"type": "string"},
    "module_order": {"type": ["array", "null"], "items": {"type": "string"}},
    "modules": {
      "type": ["object", "null"],
      "additionalProperties": {
        "type": "object",
        "properties": {
          "heading": {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]},
          "start_pattern": {"type": ["string", "null"]},
          "end_pattern": {"type": ["string", "null"]},
          "index": {"type": "integer"}
        }
      }
    }
  }
}`

var (
	configValidator = mustCompile("configuration.json", configSchema)
	mapValidator    = mustCompile("module-map.json", mapSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("loading %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// ValidationError reports a structurally invalid configuration or map
// document.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid document %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// validate checks a YAML-decoded document against schema. The document is
// round-tripped through JSON so that the validator sees JSON value types.
func validate(schema *jsonschema.Schema, path string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Path: path, Err: fmt.Errorf("not representable as JSON: %w", err)}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &ValidationError{Path: path, Err: err}
	}
	if err := schema.Validate(v); err != nil {
		return &ValidationError{Path: path, Err: err}
	}
	return nil
}
