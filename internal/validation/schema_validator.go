// Package validation checks structured setting values against the JSON
// schemas embedded under schemas/. A schema named <key>.json applies to the
// setting with that key.
package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/osse101/GameVault_Go/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaDir = "schemas"

// SchemaValidator validates JSON documents by setting key
type SchemaValidator interface {
	// Has reports whether key has a schema
	Has(key string) bool
	// Validate checks data against the schema for key. Keys without a
	// schema always pass. Failures wrap domain.ErrInvalidInput.
	Validate(key string, data []byte) error
	// Keys lists the keys that have a schema, sorted
	Keys() []string
}

type validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewSchemaValidator compiles every embedded schema
func NewSchemaValidator() (SchemaValidator, error) {
	return newFromFS(schemaFS, schemaDir)
}

func newFromFS(fsys fs.FS, dir string) (*validator, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	v := &validator{schemas: make(map[string]*jsonschema.Schema)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".json" {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		v.schemas[strings.TrimSuffix(name, ".json")] = schema
	}
	return v, nil
}

func (v *validator) Has(key string) bool {
	_, ok := v.schemas[key]
	return ok
}

func (v *validator) Keys() []string {
	keys := make([]string, 0, len(v.schemas))
	for k := range v.schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *validator) Validate(key string, data []byte) error {
	schema, ok := v.schemas[key]
	if !ok {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %v", domain.ErrInvalidInput, key, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s %s", domain.ErrInvalidInput, key, formatValidationError(err))
	}
	return nil
}

// formatValidationError flattens the error tree into one line per leaf
func formatValidationError(err error) string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err.Error()
	}
	var msgs []string
	collectErrors(validationErr, &msgs)
	return "failed schema validation: " + strings.Join(msgs, "; ")
}

func collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		*msgs = append(*msgs, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, msgs)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil {
		if kw := err.ErrorKind.KeywordPath(); len(kw) > 0 {
			return fmt.Sprintf("at %s: %s", location, strings.Join(kw, "."))
		}
	}
	return "at " + location
}
