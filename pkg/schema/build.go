package schema

import (
	"github.com/goliatone/go-modelgen/internal/naming"
	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/vocabulary"
)

// Build renders field specifications into a document. Field order becomes
// property order; required names keep the same order; definitions carry one
// entry per synthesized enum type, in first-reference order.
func Build(title string, fields []fieldgen.FieldSpec, enums []*fieldgen.EnumType) *Document {
	doc := &Document{Title: title}
	for _, field := range fields {
		doc.Properties = append(doc.Properties, Property{
			Name:   field.Exposed(),
			Schema: PropertySchema(field),
		})
		if field.Required {
			doc.Required = append(doc.Required, field.Exposed())
		}
	}
	for _, enum := range enums {
		doc.Definitions = append(doc.Definitions, Definition{
			Name:   enum.Name,
			Schema: enumSchema(enum),
		})
	}
	return doc
}

// PropertySchema renders one field's schema entry. Enum-typed fields emit a
// bare $ref when they carry no sibling keywords, and wrap the $ref in allOf
// otherwise so siblings stay meaningful to strict validators.
func PropertySchema(field fieldgen.FieldSpec) map[string]any {
	entry := make(map[string]any)
	for key, value := range field.Constraints {
		keyword := vocabulary.SchemaKeyword(key)
		if keyword == "" {
			continue
		}
		if key == vocabulary.KeyTitle || key == vocabulary.KeyDescription {
			if s, ok := value.(string); ok {
				entry[keyword] = sanitizeText(s)
				continue
			}
		}
		entry[keyword] = value
	}

	hasDefault := field.HasDefault && field.Default != nil

	if field.Type.Enum != nil {
		ref := map[string]any{"$ref": "#/definitions/" + field.Type.Enum.Name}
		if len(entry) == 0 && !hasDefault {
			return ref
		}
		entry["allOf"] = []any{ref}
		if hasDefault {
			entry["default"] = field.Default
		}
		return entry
	}

	if _, ok := entry["title"]; !ok {
		entry["title"] = naming.Title(field.Exposed())
	}
	if hasDefault {
		entry["default"] = field.Default
	}
	entry["type"] = field.Type.JSONType
	if field.Type.Format != "" {
		entry["format"] = field.Type.Format
	}
	if field.Type.Item != nil {
		item := map[string]any{"type": field.Type.Item.JSONType}
		entry["items"] = item
	}
	return entry
}

func enumSchema(enum *fieldgen.EnumType) map[string]any {
	entry := map[string]any{
		"title": enum.Name,
		"enum":  enum.RawValues(),
	}
	if enum.Description != "" {
		entry["description"] = sanitizeText(enum.Description)
	}
	if enum.JSONType != "" {
		entry["type"] = enum.JSONType
	}
	return entry
}
