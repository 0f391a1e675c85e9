package config

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains the shapes and ranges a config file may use.
// Unknown keys are rejected so typos fail loudly instead of silently
// falling back to defaults.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "weights": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "complexity": {"type": "number", "minimum": 0},
        "state": {"type": "number", "minimum": 0},
        "comments": {"type": "number", "minimum": 0},
        "duplication": {"type": "number", "minimum": 0},
        "structure": {"type": "number", "minimum": 0},
        "error_handling": {"type": "number", "minimum": 0},
        "naming": {"type": "number", "minimum": 0}
      }
    },
    "analysis": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "top_files": {"type": "integer", "minimum": 0},
        "max_issues": {"type": "integer", "minimum": 0},
        "workers": {"type": "integer", "minimum": 0},
        "max_file_size": {"type": "integer", "minimum": 0},
        "skip_index": {"type": "boolean"}
      }
    },
    "exclude": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "patterns": {"type": "array", "items": {"type": "string"}},
        "extensions": {"type": "array", "items": {"type": "string"}},
        "dirs": {"type": "array", "items": {"type": "string"}},
        "gitignore": {"type": "boolean"}
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"type": "string", "enum": ["text", "json", "markdown"]},
        "color": {"type": "boolean"},
        "verbose": {"type": "boolean"}
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the config schema once; the schema is a
// constant so a compile failure is a programming error surfaced on
// first use.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(configSchema))
		if err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("mess://config.schema.json", doc); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("mess://config.schema.json")
	})
	return schema, schemaErr
}

// validateRaw checks a parsed config document against the schema.
func validateRaw(raw map[string]any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	return sch.Validate(normalize(raw))
}

// normalize converts parser output into the plain JSON value types the
// schema validator expects. TOML and YAML parsers produce int64 and
// nested typed maps that Validate would reject as non-JSON.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}
