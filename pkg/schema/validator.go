// Package schema validates finalized monster records against the monsters
// JSON Schema.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/simonboy77/osrsbox-enchanced-monsters/pkg/monsters"
)

// Validator holds a compiled monsters schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator loads and compiles a schema file.
func NewValidator(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	schema, err := jsonschema.CompileString(path, string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks one record against the schema. A valid record returns
// nil; violations are per-record errors, never batch failures.
func (v *Validator) Validate(m *monsters.Monster) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	return v.schema.Validate(decoded)
}
