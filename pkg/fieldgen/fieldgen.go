// Package fieldgen synthesizes one validated-model field specification per
// record-model column. It reconciles the column's intrinsic structural facts
// (storage type, nullability, declared length, defaults) with the free-form
// metadata bag attached to the column, producing a single unambiguous
// FieldSpec or failing fast when the two disagree.
package fieldgen

import (
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/recordmodel"
	"github.com/goliatone/go-modelgen/pkg/vocabulary"
)

const (
	infoDefaultKey        = "default"
	infoDefaultFactoryKey = "default_factory"
)

// TypeRef is the resolved host type of a field: its JSON type plus the array
// item or enum reference where applicable. Enum-typed fields leave JSONType
// empty and render as a $ref into the model's definitions.
type TypeRef struct {
	JSONType string
	Format   string
	Item     *TypeRef
	Enum     *EnumType
}

// FieldSpec is the reconciled specification of one target field. It is
// immutable once produced: synthesis hands it to the model layer and retains
// no further ownership.
//
// Exactly one of Required, HasDefault, or DefaultFunc holds.
type FieldSpec struct {
	Name       string
	Alias      string
	Type       TypeRef
	Kind       vocabulary.FieldKind
	Optional   bool
	PrimaryKey bool

	Required    bool
	HasDefault  bool
	Default     any
	DefaultFunc func() any

	Constraints map[vocabulary.Key]any
	Metadata    map[string]any
	Immutable   bool
}

// Exposed returns the name the field presents to callers: the alias when one
// is declared, the column name otherwise.
func (f FieldSpec) Exposed() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// Constraint returns a constraint value and whether it is set.
func (f FieldSpec) Constraint(key vocabulary.Key) (any, bool) {
	v, ok := f.Constraints[key]
	return v, ok
}

// Synthesize maps one column descriptor to a field specification. The enum
// registry must be shared across all columns of one model synthesis run so
// repeated references to the same enumeration deduplicate.
func Synthesize(col *recordmodel.Column, enums *EnumRegistry) (FieldSpec, error) {
	if col == nil {
		return FieldSpec{}, fmt.Errorf("fieldgen: column is nil")
	}
	if enums == nil {
		enums = NewEnumRegistry()
	}

	spec := FieldSpec{Name: col.Name, PrimaryKey: col.PrimaryKey}

	typeRef, kind, err := resolveType(col, enums)
	if err != nil {
		return FieldSpec{}, err
	}
	spec.Type = typeRef
	spec.Kind = kind

	// Nullable columns become optional fields. Primary keys are required at
	// construction time but stay optional in shape, standing in for records
	// not yet read back from storage.
	spec.Optional = col.Nullable() || col.PrimaryKey

	bag := make(map[string]any, len(col.Info))
	for k, v := range col.Info {
		bag[k] = v
	}
	bagDefault, hasBagDefault := bag[infoDefaultKey]
	bagFactory, hasBagFactory := bag[infoDefaultFactoryKey]
	delete(bag, infoDefaultKey)
	delete(bag, infoDefaultFactoryKey)

	constraints, extras := vocabulary.Split(bag, kind)
	if constraints == nil {
		constraints = make(map[vocabulary.Key]any)
	}

	if err := reconcileLength(col, constraints); err != nil {
		return FieldSpec{}, err
	}

	if col.Comment != "" {
		if _, ok := constraints[vocabulary.KeyDescription]; !ok {
			constraints[vocabulary.KeyDescription] = col.Comment
		}
	}

	if alias, ok := constraints[vocabulary.KeyAlias]; ok {
		s, isString := alias.(string)
		if !isString || s == "" {
			return FieldSpec{}, ConstraintConflictError{
				Column: col.Name,
				Key:    vocabulary.KeyAlias,
				Detail: fmt.Sprintf("alias must be a non-empty string, got %v", alias),
			}
		}
		spec.Alias = s
		delete(constraints, vocabulary.KeyAlias)
	}

	if mut, ok := constraints[vocabulary.KeyAllowMutation]; ok {
		allowed, isBool := mut.(bool)
		if !isBool {
			return FieldSpec{}, ConstraintConflictError{
				Column: col.Name,
				Key:    vocabulary.KeyAllowMutation,
				Detail: fmt.Sprintf("allow_mutation must be a bool, got %v", mut),
			}
		}
		spec.Immutable = !allowed
	}

	if err := resolveDefault(&spec, col, bagDefault, hasBagDefault, bagFactory, hasBagFactory); err != nil {
		return FieldSpec{}, err
	}

	if len(constraints) > 0 {
		spec.Constraints = constraints
	}
	spec.Metadata = extras
	return spec, nil
}

func resolveType(col *recordmodel.Column, enums *EnumRegistry) (TypeRef, vocabulary.FieldKind, error) {
	switch col.Type.Kind {
	case recordmodel.KindInteger:
		return TypeRef{JSONType: "integer"}, vocabulary.FieldNumeric, nil
	case recordmodel.KindFloat:
		return TypeRef{JSONType: "number"}, vocabulary.FieldNumeric, nil
	case recordmodel.KindBool:
		return TypeRef{JSONType: "boolean"}, vocabulary.FieldOther, nil
	case recordmodel.KindString:
		return TypeRef{JSONType: "string"}, vocabulary.FieldString, nil
	case recordmodel.KindDateTime:
		return TypeRef{JSONType: "string", Format: "date-time"}, vocabulary.FieldOther, nil
	case recordmodel.KindArray:
		if col.Type.Item == nil {
			return TypeRef{}, "", UnsupportedTypeError{Column: col.Name, Kind: col.Type.Kind}
		}
		item, err := resolveItemType(col, *col.Type.Item)
		if err != nil {
			return TypeRef{}, "", err
		}
		return TypeRef{JSONType: "array", Item: &item}, vocabulary.FieldSequence, nil
	case recordmodel.KindEnum:
		if col.Type.Enum == nil || len(col.Type.Enum.Values) == 0 {
			return TypeRef{}, "", UnsupportedTypeError{Column: col.Name, Kind: col.Type.Kind}
		}
		return TypeRef{Enum: enums.Resolve(col.Type.Enum)}, vocabulary.FieldOther, nil
	}
	return TypeRef{}, "", UnsupportedTypeError{Column: col.Name, Kind: col.Type.Kind}
}

func resolveItemType(col *recordmodel.Column, item recordmodel.TypeInfo) (TypeRef, error) {
	switch item.Kind {
	case recordmodel.KindInteger:
		return TypeRef{JSONType: "integer"}, nil
	case recordmodel.KindFloat:
		return TypeRef{JSONType: "number"}, nil
	case recordmodel.KindBool:
		return TypeRef{JSONType: "boolean"}, nil
	case recordmodel.KindString:
		return TypeRef{JSONType: "string"}, nil
	}
	return TypeRef{}, UnsupportedTypeError{Column: col.Name, Kind: item.Kind}
}

// reconcileLength merges the bounded-string length declared on the column
// type with a metadata max_length. Disagreement is a construction-time error,
// never silently resolved; agreement is redundant and harmless. A metadata
// max_length on an unbounded string column is simply adopted.
func reconcileLength(col *recordmodel.Column, constraints map[vocabulary.Key]any) error {
	if col.Type.Length <= 0 {
		return nil
	}
	if declared, ok := constraints[vocabulary.KeyMaxLength]; ok {
		infoLength, numeric := asInt(declared)
		if !numeric || infoLength != col.Type.Length {
			return ConstraintConflictError{
				Column:      col.Name,
				Key:         vocabulary.KeyMaxLength,
				InfoValue:   declared,
				ColumnValue: col.Type.Length,
			}
		}
	}
	constraints[vocabulary.KeyMaxLength] = col.Type.Length
	return nil
}

func resolveDefault(spec *FieldSpec, col *recordmodel.Column, bagDefault any, hasBagDefault bool, bagFactory any, hasBagFactory bool) error {
	if hasBagDefault && hasBagFactory {
		return ConstraintConflictError{
			Column: col.Name,
			Detail: "both default and default_factory were specified in info; the two are mutually exclusive",
		}
	}

	// Primary keys are always required: identity values are never fabricated,
	// so any declared default is ignored.
	if col.PrimaryKey {
		spec.Required = true
		return nil
	}

	if hasBagFactory {
		factory, ok := bagFactory.(func() any)
		if !ok {
			return ConstraintConflictError{
				Column: col.Name,
				Detail: fmt.Sprintf("default_factory must be a func() any, got %T", bagFactory),
			}
		}
		spec.DefaultFunc = factory
		return nil
	}

	if !hasBagDefault && col.DefaultFunc != nil {
		spec.DefaultFunc = col.DefaultFunc
		return nil
	}

	switch {
	case hasBagDefault:
		spec.HasDefault = true
		spec.Default = bagDefault
	case col.Default != nil:
		spec.HasDefault = true
		spec.Default = col.Default
	case col.Nullable():
		spec.HasDefault = true
		spec.Default = nil
	default:
		spec.Required = true
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n == uint64(int(n)) {
			return int(n), true
		}
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
