package fieldgen

import (
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
)

// EnumType is the synthesized enumeration referenced from field specs. One
// EnumType exists per distinct source *recordmodel.EnumDef within a synthesis
// run, so every field sharing a source enum shares one schema definition.
type EnumType struct {
	Name        string
	Description string
	JSONType    string
	Values      []recordmodel.EnumValue
}

// RawValues returns member values in declaration order.
func (e *EnumType) RawValues() []any {
	out := make([]any, 0, len(e.Values))
	for _, v := range e.Values {
		out = append(out, v.Value)
	}
	return out
}

// Contains reports whether v equals one of the members' values.
func (e *EnumType) Contains(v any) bool {
	for _, member := range e.Values {
		if member.Value == v {
			return true
		}
	}
	return false
}

// EnumRegistry is the per-synthesis-run identity map from source enum
// definitions to synthesized enum types. It is scoped to one model synthesis
// invocation; there is no cross-call cache.
type EnumRegistry struct {
	types map[*recordmodel.EnumDef]*EnumType
	order []*EnumType
}

// NewEnumRegistry creates an empty registry for one synthesis run.
func NewEnumRegistry() *EnumRegistry {
	return &EnumRegistry{types: make(map[*recordmodel.EnumDef]*EnumType)}
}

// Resolve returns the synthesized enum type for def, creating it on first
// reference and reusing the same instance afterwards.
func (r *EnumRegistry) Resolve(def *recordmodel.EnumDef) *EnumType {
	if existing, ok := r.types[def]; ok {
		return existing
	}
	built := &EnumType{
		Name:        def.Name,
		Description: def.Description,
		JSONType:    enumJSONType(def),
		Values:      append([]recordmodel.EnumValue(nil), def.Values...),
	}
	r.types[def] = built
	r.order = append(r.order, built)
	return built
}

// Types returns the synthesized enum types in first-reference order.
func (r *EnumRegistry) Types() []*EnumType {
	return append([]*EnumType(nil), r.order...)
}

func enumJSONType(def *recordmodel.EnumDef) string {
	if len(def.Values) == 0 {
		return ""
	}
	allStrings, allInts := true, true
	for _, v := range def.Values {
		switch v.Value.(type) {
		case string:
			allInts = false
		case int, int32, int64:
			allStrings = false
		default:
			return ""
		}
	}
	switch {
	case allStrings:
		return "string"
	case allInts:
		return "integer"
	}
	return ""
}
