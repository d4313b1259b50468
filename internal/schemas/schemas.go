// Package schemas holds the JSON schema for the configuration file and
// validates decoded config files against it.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed config.schema.json
var configSchema []byte

// ConfigSchema returns a copy of the embedded config file schema.
func ConfigSchema() []byte {
	out := make([]byte, len(configSchema))
	copy(out, configSchema)
	return out
}

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	errResolve  error
)

func resolvedConfigSchema() (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		var schema jsonschema.Schema
		if err := json.Unmarshal(configSchema, &schema); err != nil {
			errResolve = fmt.Errorf("parse config schema: %w", err)
			return
		}
		resolved, errResolve = schema.Resolve(&jsonschema.ResolveOptions{})
		if errResolve != nil {
			errResolve = fmt.Errorf("resolve config schema: %w", errResolve)
		}
	})
	return resolved, errResolve
}

// ValidateConfig checks a decoded config file against the schema.
// raw is the nested map a TOML parser produces.
func ValidateConfig(raw map[string]any) error {
	if len(raw) == 0 {
		return nil
	}
	schema, err := resolvedConfigSchema()
	if err != nil {
		return err
	}
	value, err := toJSONValue(raw)
	if err != nil {
		return fmt.Errorf("convert config to JSON value: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("config schema validation failed: %w", err)
	}
	return nil
}

// toJSONValue round-trips value through JSON so that integers become
// float64 and typed slices become []any, as the validator expects.
func toJSONValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
