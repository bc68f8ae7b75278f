// Package schema renders synthesized field specifications into a JSON-Schema
// document. Property order follows field declaration order, which requires an
// ordered document representation instead of plain maps.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property is one named entry of the document's properties object.
type Property struct {
	Name   string
	Schema map[string]any
}

// Definition is one named entry of the document's definitions object, one per
// distinct enumeration referenced by the model.
type Definition struct {
	Name   string
	Schema map[string]any
}

// Document is a JSON-Schema-shaped object description. Properties and
// definitions keep declaration order when marshalled.
type Document struct {
	Title       string
	Properties  []Property
	Required    []string
	Definitions []Definition
}

// Property looks up a property schema by exposed name.
func (d *Document) Property(name string) (map[string]any, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// Definition looks up a definition schema by name.
func (d *Document) Definition(name string) (map[string]any, bool) {
	for _, def := range d.Definitions {
		if def.Name == name {
			return def.Schema, true
		}
	}
	return nil, false
}

// PropertyNames returns the property names in declaration order.
func (d *Document) PropertyNames() []string {
	names := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}
	return names
}

// Map returns the document as nested plain maps. Ordering is lost; intended
// for comparisons and for handing the document to map-based consumers.
func (d *Document) Map() map[string]any {
	out := map[string]any{
		"title": d.Title,
		"type":  "object",
	}
	properties := make(map[string]any, len(d.Properties))
	for _, p := range d.Properties {
		properties[p.Name] = p.Schema
	}
	out["properties"] = properties
	if len(d.Required) > 0 {
		out["required"] = append([]string(nil), d.Required...)
	}
	if len(d.Definitions) > 0 {
		definitions := make(map[string]any, len(d.Definitions))
		for _, def := range d.Definitions {
			definitions[def.Name] = def.Schema
		}
		out["definitions"] = definitions
	}
	return out
}

// MarshalJSON emits the document with properties and definitions in
// declaration order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeEntry(&buf, "title", d.Title, false); err != nil {
		return nil, err
	}
	if err := writeEntry(&buf, "type", "object", true); err != nil {
		return nil, err
	}

	buf.WriteString(`,"properties":`)
	if err := writeOrderedObject(&buf, propertyEntries(d.Properties)); err != nil {
		return nil, err
	}

	if len(d.Required) > 0 {
		if err := writeEntry(&buf, "required", d.Required, true); err != nil {
			return nil, err
		}
	}
	if len(d.Definitions) > 0 {
		buf.WriteString(`,"definitions":`)
		if err := writeOrderedObject(&buf, definitionEntries(d.Definitions)); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type objectEntry struct {
	name  string
	value any
}

func propertyEntries(properties []Property) []objectEntry {
	entries := make([]objectEntry, 0, len(properties))
	for _, p := range properties {
		entries = append(entries, objectEntry{name: p.Name, value: p.Schema})
	}
	return entries
}

func definitionEntries(definitions []Definition) []objectEntry {
	entries := make([]objectEntry, 0, len(definitions))
	for _, d := range definitions {
		entries = append(entries, objectEntry{name: d.Name, value: d.Schema})
	}
	return entries
}

func writeOrderedObject(buf *bytes.Buffer, entries []objectEntry) error {
	buf.WriteByte('{')
	for i, entry := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.name)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.value)
		if err != nil {
			return fmt.Errorf("schema: marshal %q: %w", entry.name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return nil
}

func writeEntry(buf *bytes.Buffer, name string, value any, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	key, err := json.Marshal(name)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("schema: marshal %q: %w", name, err)
	}
	buf.Write(payload)
	return nil
}
