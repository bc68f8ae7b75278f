// Package recordmodel provides the declarative, column-oriented record-model
// definitions that model synthesis consumes. A Table is an ordered set of
// Column descriptors; each column carries its storage type, nullability,
// default, and a free-form metadata bag that field synthesis reconciles with
// the intrinsic column facts.
package recordmodel

// Kind enumerates the primitive storage kinds a column can declare.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindString   Kind = "string"
	KindDateTime Kind = "datetime"
	KindArray    Kind = "array"
	KindEnum     Kind = "enum"
)

// TypeInfo describes a column's storage type. Length applies only to bounded
// string columns (zero means unbounded), Item only to arrays, Enum only to
// enumerated columns.
type TypeInfo struct {
	Kind   Kind
	Length int
	Item   *TypeInfo
	Enum   *EnumDef
}

// Column is the read-only descriptor consumed by field synthesis. Build one
// through the typed constructors (Integer, String, Enum, ...) and the chained
// modifiers; synthesis never mutates it.
type Column struct {
	Name        string
	Type        TypeInfo
	NullableCol bool
	PrimaryKey  bool
	Default     any
	DefaultFunc func() any
	Comment     string
	Info        map[string]any
}

// Integer declares an integer column.
func Integer(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindInteger})
}

// Float declares a floating-point column.
func Float(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindFloat})
}

// Bool declares a boolean column.
func Bool(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindBool})
}

// String declares an unbounded string column. Use Length to bound it.
func String(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindString})
}

// Text declares an unbounded text column. It behaves exactly like String and
// exists so definitions can mirror the storage-level distinction.
func Text(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindString})
}

// DateTime declares a timestamp column.
func DateTime(name string) *Column {
	return newColumn(name, TypeInfo{Kind: KindDateTime})
}

// Enum declares a column constrained to the members of def. The same *EnumDef
// instance shared across columns identifies the same enumeration for schema
// definition deduplication.
func Enum(name string, def *EnumDef) *Column {
	return newColumn(name, TypeInfo{Kind: KindEnum, Enum: def})
}

// Array declares a sequence column whose elements have the given primitive
// kind.
func Array(name string, item Kind) *Column {
	return newColumn(name, TypeInfo{Kind: KindArray, Item: &TypeInfo{Kind: item}})
}

func newColumn(name string, info TypeInfo) *Column {
	return &Column{Name: name, Type: info, NullableCol: true}
}

// Length bounds a string column to n characters. The bound becomes an
// intrinsic max_length constraint during field synthesis.
func (c *Column) Length(n int) *Column {
	c.Type.Length = n
	return c
}

// NotNull marks the column non-nullable, making the synthesized field
// required unless a default is declared.
func (c *Column) NotNull() *Column {
	c.NullableCol = false
	return c
}

// Primary marks the column as (part of) the primary key. Primary-key fields
// are always required at construction time, regardless of any default.
func (c *Column) Primary() *Column {
	c.PrimaryKey = true
	c.NullableCol = false
	return c
}

// WithDefault sets a static default value.
func (c *Column) WithDefault(v any) *Column {
	c.Default = v
	return c
}

// WithDefaultFunc sets a lazily-evaluated default. The function runs once per
// instance construction, not once per model.
func (c *Column) WithDefaultFunc(f func() any) *Column {
	c.DefaultFunc = f
	return c
}

// WithComment attaches a doc string; it becomes the field description when
// the metadata bag does not declare one.
func (c *Column) WithComment(doc string) *Column {
	c.Comment = doc
	return c
}

// WithInfo attaches the free-form metadata bag. Keys recognized by the
// constraint vocabulary become field constraints; everything else passes
// through to the synthesized field's metadata channel.
func (c *Column) WithInfo(info map[string]any) *Column {
	c.Info = info
	return c
}

// Nullable reports whether the column accepts NULL.
func (c *Column) Nullable() bool {
	return c.NullableCol
}
