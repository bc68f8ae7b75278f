package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/vocabulary"
)

const componentRefPrefix = "#/components/schemas/"

// ComponentsFromModels exports synthesized models as OpenAPI component
// schemas. Each model becomes an object schema keyed by its name; enum types
// referenced by any model become their own components and model properties
// point at them by $ref. Two models sharing an enum name with different
// members is an export error.
func ComponentsFromModels(models ...*model.Model) (*openapi3.Components, error) {
	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}

	for _, m := range models {
		if m == nil {
			return nil, fmt.Errorf("openapi: nil model")
		}
		if _, dup := components.Schemas[m.Name()]; dup {
			return nil, fmt.Errorf("openapi: duplicate component schema %q", m.Name())
		}
		for _, enum := range m.Enums() {
			existing, ok := components.Schemas[enum.Name]
			if !ok {
				components.Schemas[enum.Name] = openapi3.NewSchemaRef("", enumComponent(enum))
				continue
			}
			if !equalEnum(existing.Value, enum) {
				return nil, fmt.Errorf("openapi: enum %q declared twice with different members", enum.Name)
			}
		}
		components.Schemas[m.Name()] = openapi3.NewSchemaRef("", ModelSchema(m))
	}
	return &components, nil
}

// ModelSchema exports one model as an OpenAPI object schema with properties
// in field declaration order semantics (ordering inside the map is up to the
// serializer; the required list keeps declaration order).
func ModelSchema(m *model.Model) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = m.Name()
	out.Properties = openapi3.Schemas{}
	for _, field := range m.Fields() {
		out.Properties[field.Exposed()] = fieldSchemaRef(field)
		if field.Required {
			out.Required = append(out.Required, field.Exposed())
		}
	}
	return out
}

func fieldSchemaRef(field fieldgen.FieldSpec) *openapi3.SchemaRef {
	if field.Type.Enum != nil {
		return openapi3.NewSchemaRef(componentRefPrefix+field.Type.Enum.Name, nil)
	}
	return openapi3.NewSchemaRef("", fieldSchema(field))
}

func fieldSchema(field fieldgen.FieldSpec) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:   &openapi3.Types{field.Type.JSONType},
		Format: field.Type.Format,
	}
	if field.Type.Item != nil {
		out.Items = openapi3.NewSchemaRef("", &openapi3.Schema{
			Type: &openapi3.Types{field.Type.Item.JSONType},
		})
	}
	if field.Optional {
		out.Nullable = true
	}
	if field.HasDefault && field.Default != nil {
		out.Default = field.Default
	}

	for key, value := range field.Constraints {
		applyConstraint(out, key, value)
	}
	return out
}

// applyConstraint maps one vocabulary constraint onto the OpenAPI schema
// object. Annotation keys map to their OpenAPI counterparts; numeric bounds
// use the 3.0 exclusive flags.
func applyConstraint(out *openapi3.Schema, key vocabulary.Key, value any) {
	switch key {
	case vocabulary.KeyGE:
		out.Min = toFloat(value)
	case vocabulary.KeyGT:
		out.Min = toFloat(value)
		out.ExclusiveMin = true
	case vocabulary.KeyLE:
		out.Max = toFloat(value)
	case vocabulary.KeyLT:
		out.Max = toFloat(value)
		out.ExclusiveMax = true
	case vocabulary.KeyMultipleOf:
		out.MultipleOf = toFloat(value)
	case vocabulary.KeyMinLength:
		if n, ok := toUint64(value); ok {
			out.MinLength = n
		}
	case vocabulary.KeyMaxLength:
		if n, ok := toUint64(value); ok {
			out.MaxLength = &n
		}
	case vocabulary.KeyRegex:
		if s, ok := value.(string); ok {
			out.Pattern = s
		}
	case vocabulary.KeyMinItems:
		if n, ok := toUint64(value); ok {
			out.MinItems = n
		}
	case vocabulary.KeyMaxItems:
		if n, ok := toUint64(value); ok {
			out.MaxItems = &n
		}
	case vocabulary.KeyTitle:
		if s, ok := value.(string); ok {
			out.Title = s
		}
	case vocabulary.KeyDescription:
		if s, ok := value.(string); ok {
			out.Description = s
		}
	case vocabulary.KeyExample:
		out.Example = value
	case vocabulary.KeyConst:
		// OpenAPI 3.0 has no const keyword; a single-member enum carries the
		// same meaning.
		out.Enum = []any{value}
	}
}

func enumComponent(enum *fieldgen.EnumType) *openapi3.Schema {
	out := &openapi3.Schema{
		Title:       enum.Name,
		Description: enum.Description,
		Enum:        enum.RawValues(),
	}
	if enum.JSONType != "" {
		out.Type = &openapi3.Types{enum.JSONType}
	}
	return out
}

func equalEnum(schema *openapi3.Schema, enum *fieldgen.EnumType) bool {
	if schema == nil {
		return false
	}
	values := enum.RawValues()
	if len(schema.Enum) != len(values) {
		return false
	}
	for i, v := range values {
		if schema.Enum[i] != v {
			return false
		}
	}
	return true
}

func toFloat(value any) *float64 {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return nil
	}
	return &f
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
