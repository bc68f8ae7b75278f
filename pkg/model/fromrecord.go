package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-modelgen/internal/naming"
)

// FromRecord constructs a validated instance from a live persisted-record
// struct, reading each field's current value off of it. It is a
// one-directional read adapter: it never writes back, and session lifecycle
// around the record belongs entirely to the caller.
//
// Struct fields match model fields through a `db` or `json` tag, or through
// a case-insensitive name match that ignores underscores ("created_at" binds
// CreatedAt).
func (m *Model) FromRecord(record any) (*Instance, error) {
	value := reflect.ValueOf(record)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("modelgen: record for %s is nil", m.name)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("modelgen: record for %s must be a struct, got %T", m.name, record)
	}

	index := recordFieldIndex(value.Type())
	values := make(map[string]any, len(m.fields))
	for _, field := range m.fields {
		fieldValue, ok := recordValue(value, index, field.Name)
		if !ok {
			return nil, fmt.Errorf("modelgen: record for %s has no value for field %q", m.name, field.Name)
		}
		values[field.Exposed()] = fieldValue
	}
	return m.New(values)
}

// recordFieldIndex maps tag names and folded field names to struct indices.
func recordFieldIndex(t reflect.Type) map[string]int {
	index := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		if !structField.IsExported() {
			continue
		}
		if tag := tagName(structField.Tag.Get("db")); tag != "" {
			index[tag] = i
		}
		if tag := tagName(structField.Tag.Get("json")); tag != "" {
			if _, taken := index[tag]; !taken {
				index[tag] = i
			}
		}
		folded := naming.Fold(structField.Name)
		if _, taken := index[folded]; !taken {
			index[folded] = i
		}
	}
	return index
}

func recordValue(value reflect.Value, index map[string]int, name string) (any, bool) {
	i, ok := index[name]
	if !ok {
		i, ok = index[naming.Fold(name)]
	}
	if !ok {
		return nil, false
	}
	field := value.Field(i)
	// Unwrap nullable storage representations so NULL arrives as a plain nil
	// and present values arrive unwrapped.
	for field.Kind() == reflect.Pointer || field.Kind() == reflect.Interface {
		if field.IsNil() {
			return nil, true
		}
		field = field.Elem()
	}
	if (field.Kind() == reflect.Slice || field.Kind() == reflect.Map) && field.IsNil() {
		return nil, true
	}
	return field.Interface(), true
}

func tagName(tag string) string {
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "-" {
		return ""
	}
	return tag
}
