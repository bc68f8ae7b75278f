package recordmodel

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Definition is the result of loading a YAML record-model file: tables in
// file order plus the enumerations they reference.
type Definition struct {
	Tables []*Table
	Enums  map[string]*EnumDef
}

// Table looks up a loaded table by name.
func (d *Definition) Table(name string) (*Table, bool) {
	for _, t := range d.Tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// LoaderOption customizes YAML loading.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	factories map[string]func() any
}

// WithFactory registers a named default factory that column definitions can
// reference through `default_func`. Built-ins: "now" (UTC timestamp) and
// "uuid" (random UUID string).
func WithFactory(name string, f func() any) LoaderOption {
	return func(opts *loaderOptions) {
		if name == "" || f == nil {
			return
		}
		opts.factories[name] = f
	}
}

func defaultLoaderOptions() *loaderOptions {
	return &loaderOptions{
		factories: map[string]func() any{
			"now":  func() any { return time.Now().UTC() },
			"uuid": func() any { return uuid.NewString() },
		},
	}
}

type fileDoc struct {
	Enums  []enumDoc  `yaml:"enums"`
	Tables []tableDoc `yaml:"tables"`
}

type enumDoc struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Values      []enumValueDoc `yaml:"values"`
}

type enumValueDoc struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

type tableDoc struct {
	Name    string      `yaml:"name"`
	Columns []columnDoc `yaml:"columns"`
}

type columnDoc struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Length      int            `yaml:"length"`
	Items       string         `yaml:"items"`
	Enum        string         `yaml:"enum"`
	Nullable    *bool          `yaml:"nullable"`
	PrimaryKey  bool           `yaml:"primary_key"`
	Default     any            `yaml:"default"`
	DefaultFunc string         `yaml:"default_func"`
	Comment     string         `yaml:"comment"`
	Info        map[string]any `yaml:"info"`
}

// LoadFile reads a YAML record-model definition from disk.
func LoadFile(path string, options ...LoaderOption) (*Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recordmodel: read %s: %w", path, err)
	}
	return LoadBytes(raw, options...)
}

// LoadBytes parses a YAML record-model definition. Column order in the file
// is declaration order for the resulting tables.
func LoadBytes(raw []byte, options ...LoaderOption) (*Definition, error) {
	opts := defaultLoaderOptions()
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("recordmodel: parse definition: %w", err)
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("recordmodel: definition declares no tables")
	}

	enums := make(map[string]*EnumDef, len(doc.Enums))
	for _, e := range doc.Enums {
		if e.Name == "" {
			return nil, fmt.Errorf("recordmodel: enum without a name")
		}
		if _, dup := enums[e.Name]; dup {
			return nil, fmt.Errorf("recordmodel: enum %q declared twice", e.Name)
		}
		def := NewEnum(e.Name)
		if e.Description != "" {
			def.Describe(e.Description)
		}
		for _, v := range e.Values {
			if v.Name == "" {
				return nil, fmt.Errorf("recordmodel: enum %q has a member without a name", e.Name)
			}
			def.Value(v.Name, v.Value)
		}
		enums[e.Name] = def
	}

	definition := &Definition{Enums: enums}
	for _, t := range doc.Tables {
		columns := make([]*Column, 0, len(t.Columns))
		for _, c := range t.Columns {
			col, err := buildColumn(t.Name, c, enums, opts)
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
		}
		table, err := NewTable(t.Name, columns...)
		if err != nil {
			return nil, err
		}
		definition.Tables = append(definition.Tables, table)
	}
	return definition, nil
}

func buildColumn(table string, c columnDoc, enums map[string]*EnumDef, opts *loaderOptions) (*Column, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("recordmodel: table %q has a column without a name", table)
	}

	var col *Column
	switch Kind(c.Type) {
	case KindInteger:
		col = Integer(c.Name)
	case KindFloat:
		col = Float(c.Name)
	case KindBool:
		col = Bool(c.Name)
	case KindString, "text":
		col = String(c.Name)
		if c.Length > 0 {
			col.Length(c.Length)
		}
	case KindDateTime:
		col = DateTime(c.Name)
	case KindEnum:
		def, ok := enums[c.Enum]
		if !ok {
			return nil, fmt.Errorf("recordmodel: column %s.%s references unknown enum %q", table, c.Name, c.Enum)
		}
		col = Enum(c.Name, def)
	case KindArray:
		item := Kind(c.Items)
		switch item {
		case KindInteger, KindFloat, KindBool, KindString:
		default:
			return nil, fmt.Errorf("recordmodel: column %s.%s has unsupported array item type %q", table, c.Name, c.Items)
		}
		col = Array(c.Name, item)
	default:
		return nil, fmt.Errorf("recordmodel: column %s.%s has unknown type %q", table, c.Name, c.Type)
	}

	if c.PrimaryKey {
		col.Primary()
	}
	if c.Nullable != nil && !*c.Nullable {
		col.NotNull()
	}
	if c.Default != nil {
		col.WithDefault(c.Default)
	}
	if c.DefaultFunc != "" {
		factory, ok := opts.factories[c.DefaultFunc]
		if !ok {
			return nil, fmt.Errorf("recordmodel: column %s.%s references unknown default factory %q", table, c.Name, c.DefaultFunc)
		}
		col.WithDefaultFunc(factory)
	}
	if c.Comment != "" {
		col.WithComment(c.Comment)
	}
	if len(c.Info) > 0 {
		col.WithInfo(c.Info)
	}
	return col, nil
}
