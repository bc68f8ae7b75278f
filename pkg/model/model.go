// Package model assembles validated model types from record-model tables.
// A Model carries the reconciled field specifications of one table, exposes
// JSON-Schema introspection, and constructs validated instances either from
// keyword values or from live record structs.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	js "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

// Config is model-level configuration, attached verbatim at synthesis time.
type Config struct {
	// ValidateAssignment re-validates values (and enforces field
	// immutability) on Instance.Set.
	ValidateAssignment bool
	// AllowFieldNames lets construction address aliased fields by their
	// internal column name as well as the alias.
	AllowFieldNames bool
}

// Option configures model synthesis.
type Option func(*settings)

type settings struct {
	config Config
}

// WithConfig attaches model-level configuration. The synthesizer does not
// interpret it beyond handing it to the model.
func WithConfig(config Config) Option {
	return func(s *settings) {
		s.config = config
	}
}

// Model is a synthesized validated-model type. It is immutable after
// synthesis and safe for concurrent use; instances it constructs are not.
type Model struct {
	name   string
	fields []fieldgen.FieldSpec
	enums  []*fieldgen.EnumType
	config Config

	byExposed map[string]int
	byName    map[string]int

	doc          *schema.Document
	compiled     *js.Schema
	fieldSchemas map[string]*js.Schema
}

// Synthesize derives a validated model from a table. Columns are processed in
// declaration order; the first failing column aborts the whole synthesis and
// its error is returned unchanged. Every call produces an independent model:
// there is no cache keyed by table, and the table itself is never mutated.
func Synthesize(table *recordmodel.Table, options ...Option) (*Model, error) {
	if table == nil {
		return nil, fmt.Errorf("modelgen: table is nil")
	}
	var cfg settings
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	registry := fieldgen.NewEnumRegistry()
	columns := table.Columns()
	fields := make([]fieldgen.FieldSpec, 0, len(columns))
	for _, col := range columns {
		spec, err := fieldgen.Synthesize(col, registry)
		if err != nil {
			return nil, err
		}
		fields = append(fields, spec)
	}

	m := &Model{
		name:      table.Name(),
		fields:    fields,
		enums:     registry.Types(),
		config:    cfg.config,
		byExposed: make(map[string]int, len(fields)),
		byName:    make(map[string]int, len(fields)),
	}
	for i, field := range fields {
		if prev, dup := m.byExposed[field.Exposed()]; dup {
			return nil, fmt.Errorf("modelgen: model %q exposes %q for both columns %q and %q",
				m.name, field.Exposed(), fields[prev].Name, field.Name)
		}
		m.byExposed[field.Exposed()] = i
		m.byName[field.Name] = i
	}

	m.doc = schema.Build(m.name, m.fields, m.enums)
	if err := m.compile(); err != nil {
		return nil, err
	}
	return m, nil
}

const schemaResource = "schema.json"

// compile turns the emitted document into the validators used at
// construction and assignment time. The document is the single source of
// truth: whatever it says is exactly what instances are checked against.
func (m *Model) compile() error {
	payload, err := json.Marshal(m.doc)
	if err != nil {
		return fmt.Errorf("modelgen: marshal schema for %q: %w", m.name, err)
	}

	compiler := js.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("modelgen: register schema for %q: %w", m.name, err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return fmt.Errorf("modelgen: compile schema for %q: %w", m.name, err)
	}
	m.compiled = compiled

	m.fieldSchemas = make(map[string]*js.Schema, len(m.fields))
	for _, field := range m.fields {
		pointer := schemaResource + "#/properties/" + escapePointerToken(field.Exposed())
		fieldSchema, err := compiler.Compile(pointer)
		if err != nil {
			return fmt.Errorf("modelgen: compile field schema %q for %q: %w", field.Exposed(), m.name, err)
		}
		m.fieldSchemas[field.Exposed()] = fieldSchema
	}
	return nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointerToken(token string) string {
	return pointerEscaper.Replace(token)
}

// Name returns the model name, taken verbatim from the source table.
func (m *Model) Name() string {
	return m.name
}

// Config returns the configuration attached at synthesis time.
func (m *Model) Config() Config {
	return m.config
}

// Fields returns the field specifications in declaration order.
func (m *Model) Fields() []fieldgen.FieldSpec {
	return append([]fieldgen.FieldSpec(nil), m.fields...)
}

// Field looks up a specification by internal or exposed name.
func (m *Model) Field(name string) (fieldgen.FieldSpec, bool) {
	if i, ok := m.byName[name]; ok {
		return m.fields[i], true
	}
	if i, ok := m.byExposed[name]; ok {
		return m.fields[i], true
	}
	return fieldgen.FieldSpec{}, false
}

// Enums returns the synthesized enumeration types in first-reference order.
func (m *Model) Enums() []*fieldgen.EnumType {
	return append([]*fieldgen.EnumType(nil), m.enums...)
}

// Schema returns the model's JSON-Schema document.
func (m *Model) Schema() *schema.Document {
	return m.doc
}

// SchemaJSON returns the schema document serialized with properties in
// declaration order.
func (m *Model) SchemaJSON() ([]byte, error) {
	return json.Marshal(m.doc)
}
