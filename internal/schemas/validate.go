// Package schemas provides JSON Schema validation for card input payloads.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// Suffix is appended to logical schema names that do not already carry it.
const Suffix = ".schema.json"

// ValidationError reports a payload that failed schema validation, with the
// violated field paths dot-joined.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation against %s failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema document that could not be read or
// compiled. This is a configuration error: there is no sensible fallback for
// a broken schema.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Registry loads schema documents by logical name from a directory and caches
// the compiled schemas for the lifetime of the process. Schemas are read-only
// after load.
type Registry struct {
	dir    string
	log    *zap.Logger
	cache  map[string]*gojsonschema.Schema
	absent map[string]bool
}

// NewRegistry creates a registry rooted at dir. A nil logger disables the
// missing-schema warnings.
func NewRegistry(dir string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		dir:    dir,
		log:    log,
		cache:  make(map[string]*gojsonschema.Schema),
		absent: make(map[string]bool),
	}
}

// NormalizeName appends the schema-file suffix when absent, so "weather" and
// "weather.schema.json" address the same document.
func NormalizeName(name string) string {
	if strings.HasSuffix(name, Suffix) {
		return name
	}
	return name + Suffix
}

// Load compiles the named schema, caching the result. A missing schema file
// returns (nil, nil): validation is a quality gate, not a hard dependency,
// and callers treat a nil schema as "skip validation". A schema that exists
// but fails to compile returns a SchemaLoadError.
func (r *Registry) Load(name string) (*gojsonschema.Schema, error) {
	normalized := NormalizeName(name)

	if schema, ok := r.cache[normalized]; ok {
		return schema, nil
	}
	if r.absent[normalized] {
		return nil, nil
	}

	path := filepath.Join(r.dir, normalized)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.absent[normalized] = true
		r.log.Warn("schema not found, skipping validation",
			zap.String("schema", normalized),
			zap.String("dir", r.dir),
		)
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "cannot resolve path", Cause: err}
	}

	loader := gojsonschema.NewReferenceLoader("file://" + absPath)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "schema failed to compile", Cause: err}
	}

	r.cache[normalized] = schema
	return schema, nil
}

// Validate checks data against the named schema, returning a ValidationError
// on violation. Missing schema files are treated as success.
func (r *Registry) Validate(data any, name string) error {
	schema, err := r.Load(name)
	if err != nil {
		return err
	}
	if schema == nil {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: NormalizeName(name), Message: "validation could not run", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{
		Schema: NormalizeName(name),
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// TryValidate flattens a validation failure into a single diagnostic line,
// described by what the payload is ("weather input"). It returns "" when the
// payload is valid or the schema is unavailable.
func (r *Registry) TryValidate(data any, name, description string) string {
	err := r.Validate(data, name)
	if err == nil {
		return ""
	}

	if ve, ok := err.(*ValidationError); ok && len(ve.Errors) > 0 {
		first := ve.Errors[0]
		msg := fmt.Sprintf("%s validation failed: %s", description, first.Message)
		if first.Field != "(root)" {
			msg += fmt.Sprintf(" (at path: %s)", first.Field)
		}
		return msg
	}
	return fmt.Sprintf("%s validation failed: %v", description, err)
}
