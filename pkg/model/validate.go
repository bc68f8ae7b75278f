package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	js "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError reports a value rejected by the model's schema, either at
// construction or on assignment.
type ValidationError struct {
	Model string
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("modelgen: %s.%s: %v", e.Model, e.Field, e.Err)
	}
	return fmt.Sprintf("modelgen: %s: %v", e.Model, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validate checks the instance payload against the model schema. Nil values
// of optional fields stand for NULL and are left out of the payload; nil
// values of non-optional fields stay in so the type check rejects them.
func (m *Model) validate(values map[string]any) error {
	payload := make(map[string]any, len(values))
	for _, field := range m.fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		if isNilValue(value) && field.Optional {
			continue
		}
		payload[field.Exposed()] = value
	}

	normalized, err := normalize(payload)
	if err != nil {
		return &ValidationError{Model: m.name, Err: err}
	}
	if err := m.compiled.Validate(normalized); err != nil {
		return wrapValidation(m.name, "", err)
	}
	return nil
}

// validateField checks a single assignment against the field's own schema.
func (m *Model) validateField(exposed string, value any) error {
	fieldSchema, ok := m.fieldSchemas[exposed]
	if !ok {
		return fmt.Errorf("modelgen: %s has no field %q", m.name, exposed)
	}
	normalized, err := normalize(value)
	if err != nil {
		return &ValidationError{Model: m.name, Field: exposed, Err: err}
	}
	if err := fieldSchema.Validate(normalized); err != nil {
		return wrapValidation(m.name, exposed, err)
	}
	return nil
}

// isNilValue reports whether value stands for NULL: the untyped nil, or a
// typed nil such as a nil slice read off a record struct, which compares
// unequal to nil once boxed in an interface.
func isNilValue(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}

// normalize round-trips a value through JSON so the validator sees the same
// shapes an interchange payload would have (ints as numbers, timestamps as
// RFC 3339 strings, structs as objects).
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode value for validation: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode value for validation: %w", err)
	}
	return out, nil
}

func wrapValidation(model, field string, err error) error {
	var ve *js.ValidationError
	if errors.As(err, &ve) {
		if field == "" {
			field = fieldFromInstanceLocation(deepestCause(ve).InstanceLocation)
		}
	}
	return &ValidationError{Model: model, Field: field, Err: err}
}

func deepestCause(ve *js.ValidationError) *js.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

func fieldFromInstanceLocation(location string) string {
	trimmed := strings.TrimPrefix(location, "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.ReplaceAll(trimmed, "~1", "/")
	return strings.ReplaceAll(trimmed, "~0", "~")
}
