package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Instance is one validated record of a synthesized model. Values are stored
// by internal field name; construction and JSON output use exposed names.
type Instance struct {
	model  *Model
	values map[string]any
}

// New constructs a validated instance from keyword values keyed by exposed
// field name (the alias when one is declared). Defaults fill absent fields,
// with default factories invoked once per construction, and the result is
// validated
// against the model schema before it is returned. Keys that match no field
// are ignored.
func (m *Model) New(values map[string]any) (*Instance, error) {
	stored := make(map[string]any, len(m.fields))
	for _, field := range m.fields {
		value, ok := values[field.Exposed()]
		if !ok && m.config.AllowFieldNames {
			value, ok = values[field.Name]
		}
		if !ok {
			switch {
			case field.DefaultFunc != nil:
				value = field.DefaultFunc()
			case field.HasDefault:
				value = field.Default
			default:
				// Required and absent: the schema's required check reports it.
				continue
			}
		}
		stored[field.Name] = value
	}

	if err := m.validate(stored); err != nil {
		return nil, err
	}
	return &Instance{model: m, values: stored}, nil
}

// Model returns the model this instance belongs to.
func (i *Instance) Model() *Model {
	return i.model
}

// Get reads a field value by internal or exposed name.
func (i *Instance) Get(name string) (any, bool) {
	field, ok := i.model.Field(name)
	if !ok {
		return nil, false
	}
	value, ok := i.values[field.Name]
	return value, ok
}

// MustGet reads a field value and panics when the field does not exist.
func (i *Instance) MustGet(name string) any {
	value, ok := i.Get(name)
	if !ok {
		panic(fmt.Sprintf("modelgen: %s has no field %q", i.model.Name(), name))
	}
	return value
}

// Set assigns a field value. When the model was synthesized with
// ValidateAssignment, immutable fields reject the write and the value is
// validated against the field's schema entry before it lands; otherwise the
// assignment is unchecked, matching construction-only validation semantics.
func (i *Instance) Set(name string, value any) error {
	field, ok := i.model.Field(name)
	if !ok {
		return fmt.Errorf("modelgen: %s has no field %q", i.model.Name(), name)
	}
	if i.model.config.ValidateAssignment {
		if field.Immutable {
			return fmt.Errorf("modelgen: %s.%s is immutable", i.model.Name(), field.Exposed())
		}
		if isNilValue(value) {
			if !field.Optional {
				return &ValidationError{
					Model: i.model.Name(),
					Field: field.Exposed(),
					Err:   fmt.Errorf("field is not nullable"),
				}
			}
		} else if err := i.model.validateField(field.Exposed(), value); err != nil {
			return err
		}
	}
	i.values[field.Name] = value
	return nil
}

// Map returns a copy of the values keyed by internal field name.
func (i *Instance) Map() map[string]any {
	out := make(map[string]any, len(i.values))
	for name, value := range i.values {
		out[name] = value
	}
	return out
}

// MarshalJSON emits the instance with fields in declaration order, keyed by
// exposed name. Absent required fields are omitted; null-valued fields are
// emitted as null.
func (i *Instance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, field := range i.model.fields {
		value, ok := i.values[field.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(field.Exposed())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("modelgen: marshal %s.%s: %w", i.model.Name(), field.Name, err)
		}
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
